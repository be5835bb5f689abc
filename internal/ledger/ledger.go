// Package ledger provides the append-only settlement ledger: explicit
// payments between users that offset computed debt. Settlements are
// never derived automatically and never updated after the fact.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/splitledger/splitledger/internal/models"
)

// ErrInvalidSettlement is returned when a settlement fails validation;
// nothing is recorded.
var ErrInvalidSettlement = errors.New("invalid settlement")

// Store is the persistence the ledger appends to.
type Store interface {
	CreateSettlement(ctx context.Context, s *models.Settlement) error
	ListSettlements(ctx context.Context, groupID string) ([]models.Settlement, error)
}

// Ledger validates and records settlements and answers scoped queries.
type Ledger struct {
	store Store
}

// New creates a Ledger backed by the given store.
func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// Record validates the settlement and appends it. A settlement must
// carry a strictly positive amount and two distinct parties; anything
// else is rejected with ErrInvalidSettlement.
func (l *Ledger) Record(ctx context.Context, s *models.Settlement) error {
	if s.PayerID == "" || s.ReceiverID == "" {
		return fmt.Errorf("%w: payer and receiver are required", ErrInvalidSettlement)
	}
	if s.PayerID == s.ReceiverID {
		return fmt.Errorf("%w: payer and receiver must differ", ErrInvalidSettlement)
	}
	if !s.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidSettlement, s.Amount)
	}
	return l.store.CreateSettlement(ctx, s)
}

// Query returns the settlements whose payer and receiver are both
// members of the scope, ordered by recorded timestamp.
func (l *Ledger) Query(ctx context.Context, scope models.Scope) ([]models.Settlement, error) {
	all, err := l.store.ListSettlements(ctx, scope.GroupID)
	if err != nil {
		return nil, fmt.Errorf("list settlements: %w", err)
	}

	var out []models.Settlement
	for _, s := range all {
		if scope.Contains(s.PayerID) && scope.Contains(s.ReceiverID) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt < out[j].CreatedAt
	})
	return out, nil
}
