package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/engine"
	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// fakeStore is an in-memory storage.Store for service tests.
type fakeStore struct {
	groups      map[string]*models.Group
	expenses    []models.ExpenseRecord
	settlements []models.Settlement
}

func newFakeStore() *fakeStore {
	return &fakeStore{groups: make(map[string]*models.Group)}
}

func (f *fakeStore) CreateGroup(_ context.Context, g *models.Group) error {
	f.groups[g.ID] = g
	return nil
}

func (f *fakeStore) GetGroup(_ context.Context, id string) (*models.Group, error) {
	return f.groups[id], nil
}

func (f *fakeStore) GroupMembers(_ context.Context, id string) ([]string, error) {
	if g, ok := f.groups[id]; ok {
		return g.Members, nil
	}
	return nil, nil
}

func (f *fakeStore) CreateExpense(_ context.Context, e *models.ExpenseRecord) error {
	f.expenses = append(f.expenses, *e)
	return nil
}

func (f *fakeStore) GetExpense(_ context.Context, _ string) (*models.ExpenseRecord, error) {
	return nil, nil
}

func (f *fakeStore) ListExpenses(_ context.Context, groupID string, r storage.DateRange) ([]models.ExpenseRecord, error) {
	var out []models.ExpenseRecord
	for _, e := range f.expenses {
		if e.GroupID == groupID && r.Contains(e.CreatedAt) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateSettlement(_ context.Context, s *models.Settlement) error {
	f.settlements = append(f.settlements, *s)
	return nil
}

func (f *fakeStore) ListSettlements(_ context.Context, groupID string) ([]models.Settlement, error) {
	var out []models.Settlement
	for _, s := range f.settlements {
		if s.GroupID == groupID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) Close() error { return nil }

func TestComputeBalancesEndToEnd(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.groups["g1"] = &models.Group{ID: "g1", Members: []string{"alice", "bob", "carol"}}
	store.expenses = []models.ExpenseRecord{
		{
			TotalAmount:    decimal.RequireFromString("90.00"),
			PayerID:        "alice",
			ParticipantIDs: []string{"bob", "carol"},
			SplitMethod:    models.SplitEqual,
			GroupID:        "g1",
			CreatedAt:      100,
		},
	}

	svc := New(store)
	balances, skipped, err := svc.ComputeBalances(ctx, "g1")
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.True(t, balances["alice"].Equal(decimal.RequireFromString("60.00")))
	assert.True(t, balances["bob"].Equal(decimal.RequireFromString("-30.00")))
	assert.True(t, balances.Sum().IsZero(), "conservation must hold")

	// settle bob's debt and recompute
	require.NoError(t, svc.RecordSettlement(ctx, &models.Settlement{
		GroupID:    "g1",
		PayerID:    "bob",
		ReceiverID: "alice",
		Amount:     decimal.RequireFromString("30.00"),
	}))

	balances, _, err = svc.ComputeBalances(ctx, "g1")
	require.NoError(t, err)
	assert.True(t, balances["bob"].IsZero())
	assert.True(t, balances["alice"].Equal(decimal.RequireFromString("30.00")))
}

func TestSuggestTransfers(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.groups["g1"] = &models.Group{ID: "g1", Members: []string{"alice", "bob", "carol"}}
	store.expenses = []models.ExpenseRecord{
		{
			TotalAmount:    decimal.RequireFromString("70.00"),
			PayerID:        "alice",
			ParticipantIDs: []string{"carol"},
			SplitMethod:    models.SplitCustom,
			SplitWeights: map[string]decimal.Decimal{
				"carol": decimal.RequireFromString("50.00"),
				"alice": decimal.RequireFromString("20.00"),
			},
			GroupID: "g1",
		},
		{
			TotalAmount:    decimal.RequireFromString("20.00"),
			PayerID:        "bob",
			ParticipantIDs: []string{"carol"},
			SplitMethod:    models.SplitCustom,
			SplitWeights:   map[string]decimal.Decimal{"carol": decimal.RequireFromString("20.00")},
			GroupID:        "g1",
		},
	}

	svc := New(store)
	transfers, skipped, err := svc.SuggestTransfers(ctx, "g1")
	require.NoError(t, err)
	assert.Zero(t, skipped)

	require.Len(t, transfers, 2)
	assert.Equal(t, "carol", transfers[0].FromUserID)
	assert.Equal(t, "alice", transfers[0].ToUserID)
	assert.True(t, transfers[0].Amount.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, "bob", transfers[1].ToUserID)
	assert.True(t, transfers[1].Amount.Equal(decimal.RequireFromString("20.00")))
}

func TestRecordSettlementRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := New(store)

	err := svc.RecordSettlement(ctx, &models.Settlement{
		PayerID:    "alice",
		ReceiverID: "alice",
		Amount:     decimal.RequireFromString("5.00"),
	})
	require.ErrorIs(t, err, ledger.ErrInvalidSettlement)
	assert.Empty(t, store.settlements)
}

func TestBudgetSpentHonorsDateRange(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.groups["g1"] = &models.Group{ID: "g1", Members: []string{"alice", "bob"}}
	store.expenses = []models.ExpenseRecord{
		{
			TotalAmount:    decimal.RequireFromString("30.00"),
			PayerID:        "alice",
			ParticipantIDs: []string{"alice", "bob"},
			SplitMethod:    models.SplitEqual,
			CategoryID:     "food",
			GroupID:        "g1",
			CreatedAt:      1000,
		},
		{
			TotalAmount:    decimal.RequireFromString("50.00"),
			PayerID:        "alice",
			ParticipantIDs: []string{"alice", "bob"},
			SplitMethod:    models.SplitEqual,
			CategoryID:     "food",
			GroupID:        "g1",
			CreatedAt:      5000,
		},
	}

	svc := New(store)
	spent, err := svc.BudgetSpent(ctx, "alice", engine.NewCategoryScope("food"), "g1", storage.DateRange{From: 0, To: 2000})
	require.NoError(t, err)
	assert.True(t, spent.Equal(decimal.RequireFromString("15.00")), "spent = %s", spent)
}
