// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/splitledger/splitledger/internal/models"
)

// DateRange bounds an expense query by CreatedAt, inclusive on both
// ends. A zero bound is unbounded.
type DateRange struct {
	From int64
	To   int64
}

// Contains reports whether the Unix timestamp falls inside the range.
func (r DateRange) Contains(ts int64) bool {
	if r.From != 0 && ts < r.From {
		return false
	}
	if r.To != 0 && ts > r.To {
		return false
	}
	return true
}

// Store defines the persistence interface the engine's callers consume.
// The engine itself never touches storage: one Store read forms the
// consistent snapshot a balance or budget computation folds over.
// The abstraction allows swapping backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group. Group.ID is populated by the
	// store when empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// GroupMembers returns the member user IDs of a group.
	GroupMembers(ctx context.Context, groupID string) ([]string, error)

	// CreateExpense persists a new expense. ExpenseRecord.ID is
	// populated by the store when empty.
	CreateExpense(ctx context.Context, expense *models.ExpenseRecord) error

	// GetExpense retrieves an expense by ID.
	GetExpense(ctx context.Context, expenseID string) (*models.ExpenseRecord, error)

	// ListExpenses returns the expenses of a group within the range,
	// ordered by CreatedAt ascending.
	ListExpenses(ctx context.Context, groupID string, r DateRange) ([]models.ExpenseRecord, error)

	// CreateSettlement appends a settlement. Settlement.ID is populated
	// by the store when empty.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlements returns all settlements of a group ordered by
	// CreatedAt ascending.
	ListSettlements(ctx context.Context, groupID string) ([]models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}
