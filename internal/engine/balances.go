package engine

import (
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

// ComputeBalances folds every expense and settlement in one scope into
// net per-user balances. The fold is symmetric and subject-agnostic:
// for each expense, the payer's balance rises by every other
// participant's share and each of those participants' balances fall by
// their own share; for each settlement, the payer's balance rises and
// the receiver's falls by the settlement amount. Balances over the
// scope therefore always sum to zero.
//
// Records referencing users outside the scope's membership, and
// expenses whose split configuration fails validation, are skipped
// rather than failing the whole report; the second return value counts
// them so callers can surface an integrity warning. A partial report
// beats none, but never a silent one.
//
// The computation is a single pass over the inputs and is idempotent on
// an unchanged snapshot.
func ComputeBalances(scope models.Scope, expenses []models.ExpenseRecord, settlements []models.Settlement) (models.NetBalance, int) {
	members := make(map[string]bool, len(scope.Members))
	balances := make(models.NetBalance, len(scope.Members))
	for _, m := range scope.Members {
		members[m] = true
		balances[m] = decimal.Zero
	}

	skipped := 0

	for _, e := range expenses {
		if !expenseInScope(e, members) {
			skipped++
			continue
		}
		res, err := ComputeShares(e)
		if err != nil {
			skipped++
			continue
		}
		for _, sh := range res.Shares {
			if sh.IsPayer {
				// the payer's own consumption moves no money
				continue
			}
			balances[e.PayerID] = balances[e.PayerID].Add(sh.Amount)
			balances[sh.ParticipantID] = balances[sh.ParticipantID].Sub(sh.Amount)
		}
	}

	for _, s := range settlements {
		if !members[s.PayerID] || !members[s.ReceiverID] {
			skipped++
			continue
		}
		balances[s.PayerID] = balances[s.PayerID].Add(s.Amount)
		balances[s.ReceiverID] = balances[s.ReceiverID].Sub(s.Amount)
	}

	return balances, skipped
}

// expenseInScope reports whether the payer and every participant belong
// to the membership set.
func expenseInScope(e models.ExpenseRecord, members map[string]bool) bool {
	if !members[e.PayerID] {
		return false
	}
	for _, id := range e.ParticipantIDs {
		if !members[id] {
			return false
		}
	}
	return true
}
