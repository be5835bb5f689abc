// Package service wires the pure engine to storage and exposes the
// split ledger's operations to callers (API layer, CLI). It owns the
// read-consistency requirement: each computation folds over one Store
// snapshot fetched up front, never mixing pre- and post-edit state.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/engine"
	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/metrics"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// LedgerService exposes share computation, balance aggregation, debt
// simplification and budget attribution over a Store.
type LedgerService struct {
	store  storage.Store
	ledger *ledger.Ledger
}

// New creates a LedgerService with the given storage backend.
func New(store storage.Store) *LedgerService {
	return &LedgerService{
		store:  store,
		ledger: ledger.New(store),
	}
}

// ComputeShares splits a single expense. Validation errors map to
// rejected requests at the API layer; no partial result accompanies an
// error.
func (s *LedgerService) ComputeShares(expense models.ExpenseRecord) (engine.SplitResult, error) {
	res, err := engine.ComputeShares(expense)
	if err != nil {
		slog.Error("ComputeShares failed", "expense_id", expense.ID, "error", err)
		return engine.SplitResult{}, err
	}
	return res, nil
}

// ComputeBalances aggregates net balances for a group from the current
// expense and settlement set. The returned count reports how many
// records were skipped for referencing users outside the group or
// carrying invalid split configurations; callers surface it as a
// non-blocking integrity warning.
func (s *LedgerService) ComputeBalances(ctx context.Context, groupID string) (models.NetBalance, int, error) {
	scope, err := s.scopeFor(ctx, groupID)
	if err != nil {
		return nil, 0, err
	}

	expenses, err := s.store.ListExpenses(ctx, groupID, storage.DateRange{})
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	settlements, err := s.ledger.Query(ctx, scope)
	if err != nil {
		return nil, 0, err
	}

	balances, skipped := engine.ComputeBalances(scope, expenses, settlements)
	metrics.BalanceComputations.Inc()
	if skipped > 0 {
		metrics.SkippedRecords.Add(float64(skipped))
		slog.Warn("balance aggregation skipped records",
			"group_id", groupID,
			"skipped", skipped,
		)
	}

	slog.Info("balances computed",
		"group_id", groupID,
		"expenses", len(expenses),
		"settlements", len(settlements),
		"members", len(scope.Members),
	)
	return balances, skipped, nil
}

// SimplifyDebts reduces a balance map to suggested transfers.
func (s *LedgerService) SimplifyDebts(balances models.NetBalance) []models.SuggestedTransfer {
	return engine.SimplifyDebts(balances)
}

// SuggestTransfers computes balances for a group and reduces them to a
// minimal-ish transfer list in one call.
func (s *LedgerService) SuggestTransfers(ctx context.Context, groupID string) ([]models.SuggestedTransfer, int, error) {
	balances, skipped, err := s.ComputeBalances(ctx, groupID)
	if err != nil {
		return nil, 0, err
	}
	return engine.SimplifyDebts(balances), skipped, nil
}

// RecordSettlement validates and appends a settlement to the ledger.
func (s *LedgerService) RecordSettlement(ctx context.Context, settlement *models.Settlement) error {
	if err := s.ledger.Record(ctx, settlement); err != nil {
		metrics.SettlementsRejected.Inc()
		slog.Error("RecordSettlement failed",
			"payer_id", settlement.PayerID,
			"receiver_id", settlement.ReceiverID,
			"error", err,
		)
		return err
	}
	metrics.SettlementsRecorded.Inc()
	slog.Info("settlement recorded",
		"settlement_id", settlement.ID,
		"group_id", settlement.GroupID,
		"amount", settlement.Amount.String(),
	)
	return nil
}

// BudgetSpent computes a user's contribution toward a budget over the
// group's expenses in the date range.
func (s *LedgerService) BudgetSpent(ctx context.Context, userID string, scope engine.CategoryScope, groupID string, r storage.DateRange) (decimal.Decimal, error) {
	expenses, err := s.store.ListExpenses(ctx, groupID, r)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list expenses: %w", err)
	}
	spent := engine.BudgetSpent(userID, scope, expenses)
	slog.Debug("budget spent computed",
		"user_id", userID,
		"group_id", groupID,
		"expenses", len(expenses),
		"spent", spent.String(),
	)
	return spent, nil
}

// scopeFor resolves a group into the closed scope its balances are
// aggregated over.
func (s *LedgerService) scopeFor(ctx context.Context, groupID string) (models.Scope, error) {
	members, err := s.store.GroupMembers(ctx, groupID)
	if err != nil {
		return models.Scope{}, fmt.Errorf("group members: %w", err)
	}
	return models.Scope{GroupID: groupID, Members: members}, nil
}
