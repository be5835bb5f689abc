package models

import "github.com/shopspring/decimal"

// NetBalance maps a user to their signed aggregate of unsettled shares
// within one scope. Positive means the user is owed money. Over any
// closed scope the values sum to exactly zero.
type NetBalance map[string]decimal.Decimal

// Sum returns the total of all balances. For a closed scope this is
// zero; callers use it as a conservation check.
func (b NetBalance) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b {
		total = total.Add(v)
	}
	return total
}

// SuggestedTransfer is one payment proposed by debt simplification.
type SuggestedTransfer struct {
	FromUserID string
	ToUserID   string
	Amount     decimal.Decimal
}

// Scope is the bounded set of users over which balances are
// aggregated: a group, or the whole household.
type Scope struct {
	// GroupID identifies the group, empty for the household scope.
	GroupID string

	// Members is the closed user set. Records referencing users outside
	// it are skipped during aggregation.
	Members []string
}

// Contains reports whether the user belongs to the scope.
func (s Scope) Contains(userID string) bool {
	for _, m := range s.Members {
		if m == userID {
			return true
		}
	}
	return false
}
