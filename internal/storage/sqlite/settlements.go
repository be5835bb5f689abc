package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

// CreateSettlement appends a settlement row. Settlements are append
// only; there is no update path.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}

	var groupID interface{}
	if settlement.GroupID != "" {
		groupID = settlement.GroupID
	}
	var description interface{}
	if settlement.Description != "" {
		description = settlement.Description
	}
	var createdBy interface{}
	if settlement.CreatedBy != "" {
		createdBy = settlement.CreatedBy
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, group_id, payer_id, receiver_id, amount, created_at, created_by, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, groupID, settlement.PayerID, settlement.ReceiverID,
		settlement.Amount.String(), settlement.CreatedAt, createdBy, description,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	return nil
}

// ListSettlements returns all settlements of a group ordered by
// created_at ascending.
func (s *SQLiteStore) ListSettlements(ctx context.Context, groupID string) ([]models.Settlement, error) {
	query := `SELECT id, group_id, payer_id, receiver_id, amount, created_at, created_by, description
	          FROM settlements WHERE group_id = ? ORDER BY created_at ASC, id ASC`
	rows, err := s.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		settlement := models.Settlement{}
		var (
			group       sql.NullString
			amount      string
			createdBy   sql.NullString
			description sql.NullString
		)
		if err := rows.Scan(&settlement.ID, &group, &settlement.PayerID, &settlement.ReceiverID,
			&amount, &settlement.CreatedAt, &createdBy, &description); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlement.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse settlement amount %q: %w", amount, err)
		}
		if group.Valid {
			settlement.GroupID = group.String
		}
		if createdBy.Valid {
			settlement.CreatedBy = createdBy.String
		}
		if description.Valid {
			settlement.Description = description.String
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}
