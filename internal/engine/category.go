package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

// CategorySplitMismatch reports that an expense's category allocations
// did not sum to its total. The allocations were auto-corrected; the
// diagnostic exists so callers can surface a non-blocking warning.
// Category splits are a budget-display concern, not money movement,
// which is why this is softer than the calculator's fail-closed errors.
type CategorySplitMismatch struct {
	// Difference is totalAmount minus the submitted allocation sum: the
	// amount added to the last allocation to reconcile.
	Difference decimal.Decimal
}

func (m *CategorySplitMismatch) String() string {
	return fmt.Sprintf("category allocations off by %s, corrected on last allocation", m.Difference)
}

// AllocateCategories validates that the allocations sum to totalAmount.
// On mismatch it returns a corrected copy with the difference added to
// the last allocation, plus a CategorySplitMismatch diagnostic; the
// diagnostic is nil when the sum was already exact. An empty allocation
// list means the expense has no categorized view and passes through
// untouched.
//
// The input slice is never modified.
func AllocateCategories(totalAmount decimal.Decimal, allocations []models.CategoryAllocation) ([]models.CategoryAllocation, *CategorySplitMismatch) {
	if len(allocations) == 0 {
		return nil, nil
	}

	out := make([]models.CategoryAllocation, len(allocations))
	copy(out, allocations)

	sum := decimal.Zero
	for _, a := range out {
		sum = sum.Add(a.Amount)
	}

	diff := totalAmount.Sub(sum)
	if diff.IsZero() {
		return out, nil
	}

	last := &out[len(out)-1]
	last.Amount = last.Amount.Add(diff)
	return out, &CategorySplitMismatch{Difference: diff}
}
