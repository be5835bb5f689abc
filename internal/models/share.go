package models

import "github.com/shopspring/decimal"

// ParticipantShare is the monetary amount attributed to one participant
// of an expense. Shares are derived, never persisted: they are always
// recomputed from the current ExpenseRecord.
type ParticipantShare struct {
	// ParticipantID is the user the share belongs to.
	ParticipantID string

	// Amount is the share in the ledger currency.
	Amount decimal.Decimal

	// OriginalAmount is the share in the expense's original currency,
	// zero when the expense has no original currency.
	OriginalAmount decimal.Decimal

	// IsPayer marks the share of a payer who is also listed as a
	// participant. Their consumption share then lives in the
	// participant list and the separate PayerShare is zero.
	IsPayer bool
}

// PayerShare is the payer's own consumption share of an expense when
// the payer is not listed among the participants.
type PayerShare struct {
	Amount         decimal.Decimal
	OriginalAmount decimal.Decimal
}
