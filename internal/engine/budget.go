package engine

import (
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

// CategoryScope is the set of budget categories a budget covers: one
// category plus, optionally, its subcategories.
type CategoryScope struct {
	IDs []string
}

// NewCategoryScope builds a scope from a root category and its
// subcategory IDs.
func NewCategoryScope(categoryID string, subcategoryIDs ...string) CategoryScope {
	return CategoryScope{IDs: append([]string{categoryID}, subcategoryIDs...)}
}

func (s CategoryScope) contains(categoryID string) bool {
	if categoryID == "" {
		return false
	}
	for _, id := range s.IDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// BudgetSpent computes how much of the given expenses counts toward a
// user's budget in the given category scope.
//
// An expense contributes through exactly one of two passes, never both:
// a plainly categorized expense (no allocations) adds the user's full
// share when its category is in scope; an expense carrying category
// allocations adds share/total of each in-scope allocation instead.
// Expenses whose category matches nothing, along with expenses whose
// split fails validation, contribute zero; budget progress degrades
// softly rather than erroring.
//
// The expense set is assumed to be date-bounded by the caller.
func BudgetSpent(userID string, scope CategoryScope, expenses []models.ExpenseRecord) decimal.Decimal {
	spent := decimal.Zero

	for _, e := range expenses {
		res, err := ComputeShares(e)
		if err != nil {
			continue
		}
		share := res.Share(userID)
		if share.IsZero() {
			continue
		}

		if len(e.CategoryAllocations) == 0 {
			if scope.contains(e.CategoryID) {
				spent = spent.Add(share)
			}
			continue
		}

		if e.TotalAmount.IsZero() {
			continue
		}
		ratio := share.Div(e.TotalAmount)
		for _, alloc := range e.CategoryAllocations {
			if scope.contains(alloc.CategoryID) {
				spent = spent.Add(alloc.Amount.Mul(ratio))
			}
		}
	}

	return spent.Round(2)
}
