package engine

import (
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

// epsilon is the noise floor for balances: anything within a cent of
// zero is considered settled.
var epsilon = decimal.New(1, -2)

// SimplifyDebts reduces a net-balance map for one closed scope into an
// ordered list of suggested transfers. Greedy matching: the debtor with
// the largest debt pays the creditor with the largest credit, ties
// broken by lexicographic user ID so the output is deterministic for a
// given balance map.
//
// Applying every emitted transfer brings all balances within epsilon of
// zero, using at most (#creditors + #debtors - 1) transfers. This is a
// greedy approximation, not a minimum-cardinality settlement.
func SimplifyDebts(balances models.NetBalance) []models.SuggestedTransfer {
	type party struct {
		id  string
		amt decimal.Decimal
	}

	var creditors, debtors []party
	for id, b := range balances {
		switch {
		case b.GreaterThan(epsilon):
			creditors = append(creditors, party{id: id, amt: b})
		case b.Neg().GreaterThan(epsilon):
			debtors = append(debtors, party{id: id, amt: b.Neg()})
		}
	}

	// largest amount wins, lexicographically smaller id on ties
	pick := func(parties []party) int {
		best := 0
		for i := 1; i < len(parties); i++ {
			switch parties[i].amt.Cmp(parties[best].amt) {
			case 1:
				best = i
			case 0:
				if parties[i].id < parties[best].id {
					best = i
				}
			}
		}
		return best
	}

	drop := func(parties []party, i int) []party {
		return append(parties[:i], parties[i+1:]...)
	}

	var transfers []models.SuggestedTransfer
	for len(debtors) > 0 && len(creditors) > 0 {
		di := pick(debtors)
		ci := pick(creditors)

		amount := debtors[di].amt
		if creditors[ci].amt.LessThan(amount) {
			amount = creditors[ci].amt
		}

		transfers = append(transfers, models.SuggestedTransfer{
			FromUserID: debtors[di].id,
			ToUserID:   creditors[ci].id,
			Amount:     amount,
		})

		debtors[di].amt = debtors[di].amt.Sub(amount)
		creditors[ci].amt = creditors[ci].amt.Sub(amount)

		if debtors[di].amt.LessThan(epsilon) {
			debtors = drop(debtors, di)
		}
		if creditors[ci].amt.LessThan(epsilon) {
			creditors = drop(creditors, ci)
		}
	}

	return transfers
}
