package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "splitledger-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGroupRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{
		Name:               "Roommates",
		Members:            []string{"alice", "bob", "carol"},
		DefaultSplitMethod: models.SplitPercentage,
		DefaultSplitWeights: map[string]decimal.Decimal{
			"alice": decimal.RequireFromString("50"),
			"bob":   decimal.RequireFromString("30"),
			"carol": decimal.RequireFromString("20"),
		},
	}
	require.NoError(t, store.CreateGroup(ctx, group))
	assert.NotEmpty(t, group.ID, "expected group ID to be generated")
	assert.NotZero(t, group.CreatedAt)

	got, err := store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "Roommates", got.Name)
	assert.Equal(t, models.SplitPercentage, got.DefaultSplitMethod)
	assert.Equal(t, []string{"alice", "bob", "carol"}, got.Members)
	assert.True(t, got.DefaultSplitWeights["bob"].Equal(decimal.RequireFromString("30")))

	members, err := store.GroupMembers(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, members, 3)

	_, err = store.GetGroup(ctx, "nonexistent-id")
	assert.Error(t, err)
}

func TestExpenseRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Trip", Members: []string{"alice", "bob"}}
	require.NoError(t, store.CreateGroup(ctx, group))

	expense := &models.ExpenseRecord{
		Description:      "Dinner",
		TotalAmount:      decimal.RequireFromString("90.00"),
		OriginalAmount:   decimal.RequireFromString("100.00"),
		OriginalCurrency: "USD",
		PayerID:          "alice",
		ParticipantIDs:   []string{"bob", "alice"},
		SplitMethod:      models.SplitCustom,
		SplitWeights: map[string]decimal.Decimal{
			"bob": decimal.RequireFromString("60.00"),
		},
		GroupID:    group.ID,
		CategoryID: "food",
	}
	require.NoError(t, store.CreateExpense(ctx, expense))
	assert.NotEmpty(t, expense.ID)

	got, err := store.GetExpense(ctx, expense.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("90.00")))
	assert.True(t, got.OriginalAmount.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, "USD", got.OriginalCurrency)
	assert.Equal(t, models.SplitCustom, got.SplitMethod)
	assert.Equal(t, "food", got.CategoryID)
	// participant order is load-bearing for remainder assignment
	assert.Equal(t, []string{"bob", "alice"}, got.ParticipantIDs)
	assert.True(t, got.SplitWeights["bob"].Equal(decimal.RequireFromString("60.00")))
}

func TestExpenseAllocationsClearCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	expense := &models.ExpenseRecord{
		TotalAmount:    decimal.RequireFromString("120.00"),
		PayerID:        "alice",
		ParticipantIDs: []string{"alice", "bob"},
		SplitMethod:    models.SplitEqual,
		CategoryID:     "food",
		CategoryAllocations: []models.CategoryAllocation{
			{CategoryID: "food", Amount: decimal.RequireFromString("80.00")},
			{CategoryID: "transport", Amount: decimal.RequireFromString("40.00")},
		},
	}
	require.NoError(t, store.CreateExpense(ctx, expense))

	got, err := store.GetExpense(ctx, expense.ID)
	require.NoError(t, err)
	assert.Empty(t, got.CategoryID, "single category must be cleared when allocations exist")
	require.Len(t, got.CategoryAllocations, 2)
	assert.Equal(t, "food", got.CategoryAllocations[0].CategoryID)
	assert.True(t, got.CategoryAllocations[1].Amount.Equal(decimal.RequireFromString("40.00")))
}

func TestListExpensesDateRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Trip", Members: []string{"alice", "bob"}}
	require.NoError(t, store.CreateGroup(ctx, group))

	for _, ts := range []int64{1000, 2000, 3000} {
		require.NoError(t, store.CreateExpense(ctx, &models.ExpenseRecord{
			TotalAmount:    decimal.RequireFromString("10.00"),
			PayerID:        "alice",
			ParticipantIDs: []string{"bob"},
			SplitMethod:    models.SplitEqual,
			GroupID:        group.ID,
			CreatedAt:      ts,
		}))
	}

	all, err := store.ListExpenses(ctx, group.ID, storage.DateRange{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(1000), all[0].CreatedAt, "expenses ordered by created_at ascending")

	bounded, err := store.ListExpenses(ctx, group.ID, storage.DateRange{From: 1500, To: 2500})
	require.NoError(t, err)
	require.Len(t, bounded, 1)
	assert.Equal(t, int64(2000), bounded[0].CreatedAt)
}

func TestSettlementRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Trip", Members: []string{"alice", "bob"}}
	require.NoError(t, store.CreateGroup(ctx, group))

	first := &models.Settlement{
		GroupID:     group.ID,
		PayerID:     "bob",
		ReceiverID:  "alice",
		Amount:      decimal.RequireFromString("30.00"),
		CreatedAt:   2000,
		Description: "venmo",
	}
	second := &models.Settlement{
		GroupID:    group.ID,
		PayerID:    "alice",
		ReceiverID: "bob",
		Amount:     decimal.RequireFromString("5.00"),
		CreatedAt:  1000,
	}
	require.NoError(t, store.CreateSettlement(ctx, first))
	require.NoError(t, store.CreateSettlement(ctx, second))

	got, err := store.ListSettlements(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID, "settlements ordered by created_at ascending")
	assert.True(t, got[1].Amount.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, "venmo", got[1].Description)
}
