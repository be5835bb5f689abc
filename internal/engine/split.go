package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

var hundred = decimal.NewFromInt(100)

// SplitResult is the complete outcome of splitting one expense.
type SplitResult struct {
	// PayerID is carried over from the expense so consumers can
	// attribute shares without holding the record.
	PayerID string

	// Payer is the payer's own consumption share. Zero when the payer
	// is listed as a participant; their share then sits in Shares with
	// IsPayer set, so each share is counted exactly once.
	Payer models.PayerShare

	// Shares holds one entry per participant, in the expense's
	// participant order.
	Shares []models.ParticipantShare
}

// Share returns userID's consumption share of the expense, whether the
// user appears as payer, participant, or both.
func (r SplitResult) Share(userID string) decimal.Decimal {
	for _, s := range r.Shares {
		if s.ParticipantID == userID {
			return s.Amount
		}
	}
	if userID == r.PayerID {
		return r.Payer.Amount
	}
	return decimal.Zero
}

// Total returns the payer share plus all participant shares. By
// construction it equals the expense's TotalAmount.
func (r SplitResult) Total() decimal.Decimal {
	t := r.Payer.Amount
	for _, s := range r.Shares {
		t = t.Add(s.Amount)
	}
	return t
}

// ComputeShares turns one expense into the payer's share and the
// per-participant shares. The shares always sum exactly to TotalAmount:
// remainders from cent division and weight discrepancies land on the
// last entry in iteration order (participants in listed order, then the
// payer), so recomputation is deterministic.
//
// Percentage weights that do not sum to 100 have the whole discrepancy
// folded into the last weighted share. This is deliberately unclamped;
// a pathological weight configuration can push that share negative, but
// clamping would silently break conservation for every downstream
// balance.
//
// It fails closed: on any validation error no shares are returned.
func ComputeShares(e models.ExpenseRecord) (SplitResult, error) {
	if e.SplitMethod == models.SplitNone || e.SplitMethod == "" {
		return SplitResult{
			PayerID: e.PayerID,
			Payer: models.PayerShare{
				Amount:         e.TotalAmount,
				OriginalAmount: e.OriginalAmount,
			},
		}, nil
	}

	if len(e.ParticipantIDs) == 0 {
		return SplitResult{}, ErrNoParticipants
	}

	var (
		res SplitResult
		err error
	)
	switch e.SplitMethod {
	case models.SplitEqual:
		res, err = splitEqual(e)
	case models.SplitPercentage:
		res, err = splitPercentage(e)
	case models.SplitCustom:
		res, err = splitCustom(e)
	default:
		return SplitResult{}, fmt.Errorf("%w: unknown split method %q", ErrInvalidSplitConfig, e.SplitMethod)
	}
	if err != nil {
		return SplitResult{}, err
	}

	fillOriginalAmounts(&res, e)
	return res, nil
}

// splitEqual divides the total evenly. The payer joins the head count
// when not listed as a participant; the cent-division remainder goes to
// the last participant.
func splitEqual(e models.ExpenseRecord) (SplitResult, error) {
	res := SplitResult{PayerID: e.PayerID}

	payerListed := containsID(e.ParticipantIDs, e.PayerID)
	count := int64(len(e.ParticipantIDs))
	if !payerListed {
		count++
	}

	per := e.TotalAmount.Div(decimal.NewFromInt(count)).Truncate(2)

	assigned := decimal.Zero
	if !payerListed {
		res.Payer.Amount = per
		assigned = per
	}

	res.Shares = make([]models.ParticipantShare, 0, len(e.ParticipantIDs))
	for _, id := range e.ParticipantIDs {
		res.Shares = append(res.Shares, models.ParticipantShare{
			ParticipantID: id,
			Amount:        per,
			IsPayer:       payerListed && id == e.PayerID,
		})
		assigned = assigned.Add(per)
	}

	last := &res.Shares[len(res.Shares)-1]
	last.Amount = last.Amount.Add(e.TotalAmount.Sub(assigned))
	return res, nil
}

// splitPercentage gives each weighted user weight/100 of the total.
// Unweighted participants owe nothing.
func splitPercentage(e models.ExpenseRecord) (SplitResult, error) {
	if len(e.SplitWeights) == 0 {
		return SplitResult{}, fmt.Errorf("%w: percentage split has no weights", ErrInvalidSplitConfig)
	}
	if err := validateWeights(e); err != nil {
		return SplitResult{}, err
	}

	res := SplitResult{
		PayerID: e.PayerID,
		Shares:  make([]models.ParticipantShare, 0, len(e.ParticipantIDs)),
	}
	payerListed := containsID(e.ParticipantIDs, e.PayerID)

	assigned := decimal.Zero
	lastWeighted := -1
	for _, id := range e.ParticipantIDs {
		amt := decimal.Zero
		if w, ok := e.SplitWeights[id]; ok {
			amt = e.TotalAmount.Mul(w).Div(hundred).Round(2)
			lastWeighted = len(res.Shares)
		}
		res.Shares = append(res.Shares, models.ParticipantShare{
			ParticipantID: id,
			Amount:        amt,
			IsPayer:       payerListed && id == e.PayerID,
		})
		assigned = assigned.Add(amt)
	}

	payerWeighted := false
	if !payerListed {
		if w, ok := e.SplitWeights[e.PayerID]; ok {
			res.Payer.Amount = e.TotalAmount.Mul(w).Div(hundred).Round(2)
			assigned = assigned.Add(res.Payer.Amount)
			payerWeighted = true
		}
	}

	// Rounding drift and weights that do not sum to 100 both end up
	// here; the last computed share absorbs the difference.
	if diff := e.TotalAmount.Sub(assigned); !diff.IsZero() {
		switch {
		case payerWeighted:
			res.Payer.Amount = res.Payer.Amount.Add(diff)
		case lastWeighted >= 0:
			res.Shares[lastWeighted].Amount = res.Shares[lastWeighted].Amount.Add(diff)
		}
	}
	return res, nil
}

// splitCustom uses weights as literal amounts. Whatever the explicit
// amounts leave unassigned is divided evenly among the unweighted
// participants, with the cent remainder on the last of them.
func splitCustom(e models.ExpenseRecord) (SplitResult, error) {
	if err := validateWeights(e); err != nil {
		return SplitResult{}, err
	}

	res := SplitResult{
		PayerID: e.PayerID,
		Shares:  make([]models.ParticipantShare, 0, len(e.ParticipantIDs)),
	}
	payerListed := containsID(e.ParticipantIDs, e.PayerID)

	assigned := decimal.Zero
	var unweighted []int
	lastWeighted := -1
	for _, id := range e.ParticipantIDs {
		sh := models.ParticipantShare{
			ParticipantID: id,
			IsPayer:       payerListed && id == e.PayerID,
		}
		if w, ok := e.SplitWeights[id]; ok {
			sh.Amount = w.Round(2)
			assigned = assigned.Add(sh.Amount)
			lastWeighted = len(res.Shares)
		} else {
			unweighted = append(unweighted, len(res.Shares))
		}
		res.Shares = append(res.Shares, sh)
	}

	payerWeighted := false
	if !payerListed {
		if w, ok := e.SplitWeights[e.PayerID]; ok {
			res.Payer.Amount = w.Round(2)
			assigned = assigned.Add(res.Payer.Amount)
			payerWeighted = true
		}
	}

	remainder := e.TotalAmount.Sub(assigned)

	if len(unweighted) > 0 {
		per := remainder.Div(decimal.NewFromInt(int64(len(unweighted)))).Truncate(2)
		spread := decimal.Zero
		for _, idx := range unweighted[:len(unweighted)-1] {
			res.Shares[idx].Amount = per
			spread = spread.Add(per)
		}
		res.Shares[unweighted[len(unweighted)-1]].Amount = remainder.Sub(spread)
		return res, nil
	}

	// Every participant carries an explicit amount; drift between the
	// amounts and the total folds into the last entry in iteration
	// order.
	if !remainder.IsZero() {
		if payerWeighted {
			res.Payer.Amount = res.Payer.Amount.Add(remainder)
		} else if lastWeighted >= 0 {
			res.Shares[lastWeighted].Amount = res.Shares[lastWeighted].Amount.Add(remainder)
		}
	}
	return res, nil
}

// validateWeights rejects negative weights and weights keyed on users
// who are neither participants nor the payer.
func validateWeights(e models.ExpenseRecord) error {
	for id, w := range e.SplitWeights {
		if w.IsNegative() {
			return fmt.Errorf("%w: negative weight for %q", ErrInvalidSplitConfig, id)
		}
		if id != e.PayerID && !containsID(e.ParticipantIDs, id) {
			return fmt.Errorf("%w: %q", ErrUnknownParticipant, id)
		}
	}
	return nil
}

// fillOriginalAmounts scales the ledger-currency shares into the
// expense's original currency when one is present. The last participant
// share absorbs rounding drift so the original total reconciles too.
func fillOriginalAmounts(res *SplitResult, e models.ExpenseRecord) {
	if e.OriginalAmount.IsZero() || e.TotalAmount.IsZero() {
		return
	}
	ratio := e.OriginalAmount.Div(e.TotalAmount)

	sum := decimal.Zero
	res.Payer.OriginalAmount = res.Payer.Amount.Mul(ratio).Round(2)
	sum = sum.Add(res.Payer.OriginalAmount)
	for i := range res.Shares {
		res.Shares[i].OriginalAmount = res.Shares[i].Amount.Mul(ratio).Round(2)
		sum = sum.Add(res.Shares[i].OriginalAmount)
	}

	drift := e.OriginalAmount.Sub(sum)
	if drift.IsZero() {
		return
	}
	if n := len(res.Shares); n > 0 {
		res.Shares[n-1].OriginalAmount = res.Shares[n-1].OriginalAmount.Add(drift)
	} else {
		res.Payer.OriginalAmount = res.Payer.OriginalAmount.Add(drift)
	}
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
