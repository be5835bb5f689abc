package models

import "github.com/shopspring/decimal"

// Settlement represents an explicit payment between two users that
// offsets previously computed debt. Settlements are created only by
// user action, never derived, and the ledger they live in is append
// only.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group the settlement belongs to, empty for
	// household settlements.
	GroupID string

	// PayerID is the user who paid (debtor settling up).
	PayerID string

	// ReceiverID is the user who received the payment. Must differ
	// from PayerID.
	ReceiverID string

	// Amount is the payment amount, strictly positive.
	Amount decimal.Decimal

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// CreatedBy is the user who recorded the settlement.
	CreatedBy string

	// Description is an optional note.
	Description string
}
