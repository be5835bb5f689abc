package models

import "github.com/shopspring/decimal"

// SplitMethod is the policy for dividing an expense's total among the
// payer and participants.
type SplitMethod string

const (
	// SplitNone leaves the whole amount with the payer.
	SplitNone SplitMethod = "none"

	// SplitEqual divides the total evenly among the participants, plus
	// the payer when the payer is not listed as a participant.
	SplitEqual SplitMethod = "equal"

	// SplitPercentage divides the total by per-user percentage weights.
	SplitPercentage SplitMethod = "percentage"

	// SplitCustom uses per-user literal amounts; any unassigned
	// remainder is divided evenly among the unweighted participants.
	SplitCustom SplitMethod = "custom"
)

// CategoryAllocation assigns part of an expense's total to one budget
// category. Allocations are a participant-independent split dimension:
// an expense carries either a single CategoryID or a list of
// allocations, never both.
type CategoryAllocation struct {
	CategoryID string
	Amount     decimal.Decimal
}

// ExpenseRecord represents one shared expense as entered by the
// transaction-entry feature. All monetary fields are in the ledger
// currency; OriginalAmount/OriginalCurrency preserve what was actually
// paid when the expense was entered in a foreign currency.
type ExpenseRecord struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is a free-form label for the expense.
	Description string

	// TotalAmount is the full expense amount in the ledger currency.
	TotalAmount decimal.Decimal

	// OriginalAmount is the amount in OriginalCurrency, zero when the
	// expense was entered directly in the ledger currency.
	OriginalAmount   decimal.Decimal
	OriginalCurrency string

	// PayerID is the user who paid the expense.
	PayerID string

	// ParticipantIDs are the users the expense is split among. The
	// slice order is significant: rounding remainders are assigned to
	// the last entry, so the order must be stable across recomputations.
	// The payer may or may not be listed.
	ParticipantIDs []string

	// SplitMethod selects how TotalAmount is divided.
	SplitMethod SplitMethod

	// SplitWeights maps a user to their weight. The meaning depends on
	// SplitMethod: percentages for SplitPercentage, literal amounts for
	// SplitCustom, ignored otherwise.
	SplitWeights map[string]decimal.Decimal

	// GroupID links the expense to a group, empty for household
	// expenses.
	GroupID string

	// CategoryID is the expense's single budget category. Cleared when
	// CategoryAllocations are present.
	CategoryID string

	// CategoryAllocations split the total across several budget
	// categories. Mutually exclusive with CategoryID.
	CategoryAllocations []CategoryAllocation

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Normalize enforces the category exclusivity rule: an expense with
// allocations has no single category.
func (e *ExpenseRecord) Normalize() {
	if len(e.CategoryAllocations) > 0 {
		e.CategoryID = ""
	}
}
