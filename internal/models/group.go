package models

import "github.com/shopspring/decimal"

// Group represents a reusable set of users who share expenses, with
// defaults applied by the entry form when a new expense is created in
// the group.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name (e.g., "Roommates", "Ski Trip").
	Name string

	// Members is the list of user IDs in this group.
	Members []string

	// DefaultSplitMethod is applied to new expenses in the group when
	// the user does not pick one.
	DefaultSplitMethod SplitMethod

	// DefaultSplitWeights are the default weights for the default
	// method, keyed by user ID.
	DefaultSplitWeights map[string]decimal.Decimal

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
