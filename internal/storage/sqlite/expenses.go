package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// CreateExpense persists a new expense with its participants, weights
// and category allocations in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.ExpenseRecord) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	expense.Normalize()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var originalAmount, originalCurrency interface{}
	if !expense.OriginalAmount.IsZero() {
		originalAmount = expense.OriginalAmount.String()
		originalCurrency = expense.OriginalCurrency
	}
	var groupID interface{}
	if expense.GroupID != "" {
		groupID = expense.GroupID
	}
	var categoryID interface{}
	if expense.CategoryID != "" {
		categoryID = expense.CategoryID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, description, total_amount, original_amount, original_currency,
		                       payer_id, split_method, group_id, category_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Description, expense.TotalAmount.String(), originalAmount, originalCurrency,
		expense.PayerID, string(expense.SplitMethod), groupID, categoryID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, userID := range expense.ParticipantIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, position, user_id) VALUES (?, ?, ?)",
			expense.ID, i, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for userID, weight := range expense.SplitWeights {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_weights (expense_id, user_id, weight) VALUES (?, ?, ?)",
			expense.ID, userID, weight.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert split weight: %w", err)
		}
	}

	for i, alloc := range expense.CategoryAllocations {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_allocations (expense_id, position, category_id, amount) VALUES (?, ?, ?, ?)",
			expense.ID, i, alloc.CategoryID, alloc.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert category allocation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including participants in
// their recorded order, weights and allocations.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.ExpenseRecord, error) {
	expense, err := s.scanExpenseRow(s.db.QueryRowContext(ctx,
		`SELECT id, description, total_amount, original_amount, original_currency,
		        payer_id, split_method, group_id, category_id, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense not found: %s", expenseID)
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadExpenseDetails(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses returns the expenses of a group within the range,
// ordered by created_at ascending.
func (s *SQLiteStore) ListExpenses(ctx context.Context, groupID string, r storage.DateRange) ([]models.ExpenseRecord, error) {
	query := `SELECT id, description, total_amount, original_amount, original_currency,
	                 payer_id, split_method, group_id, category_id, created_at
	          FROM expenses WHERE group_id = ?`
	args := []interface{}{groupID}
	if r.From != 0 {
		query += " AND created_at >= ?"
		args = append(args, r.From)
	}
	if r.To != 0 {
		query += " AND created_at <= ?"
		args = append(args, r.To)
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.ExpenseRecord
	for rows.Next() {
		expense, err := s.scanExpenseRow(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		if err := s.loadExpenseDetails(ctx, &expenses[i]); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *SQLiteStore) scanExpenseRow(row rowScanner) (*models.ExpenseRecord, error) {
	expense := &models.ExpenseRecord{}
	var (
		total            string
		originalAmount   sql.NullString
		originalCurrency sql.NullString
		method           string
		groupID          sql.NullString
		categoryID       sql.NullString
	)
	err := row.Scan(&expense.ID, &expense.Description, &total, &originalAmount, &originalCurrency,
		&expense.PayerID, &method, &groupID, &categoryID, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}

	expense.TotalAmount, err = decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("failed to parse total amount %q: %w", total, err)
	}
	if originalAmount.Valid {
		expense.OriginalAmount, err = decimal.NewFromString(originalAmount.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse original amount %q: %w", originalAmount.String, err)
		}
	}
	if originalCurrency.Valid {
		expense.OriginalCurrency = originalCurrency.String
	}
	expense.SplitMethod = models.SplitMethod(method)
	if groupID.Valid {
		expense.GroupID = groupID.String
	}
	if categoryID.Valid {
		expense.CategoryID = categoryID.String
	}
	return expense, nil
}

// loadExpenseDetails fills participants, weights and allocations.
func (s *SQLiteStore) loadExpenseDetails(ctx context.Context, expense *models.ExpenseRecord) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM expense_participants WHERE expense_id = ? ORDER BY position",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		expense.ParticipantIDs = append(expense.ParticipantIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}

	weightRows, err := s.db.QueryContext(ctx,
		"SELECT user_id, weight FROM expense_weights WHERE expense_id = ?",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get split weights: %w", err)
	}
	defer weightRows.Close()
	for weightRows.Next() {
		var userID, weight string
		if err := weightRows.Scan(&userID, &weight); err != nil {
			return fmt.Errorf("failed to scan split weight: %w", err)
		}
		w, err := decimal.NewFromString(weight)
		if err != nil {
			return fmt.Errorf("failed to parse split weight %q: %w", weight, err)
		}
		if expense.SplitWeights == nil {
			expense.SplitWeights = make(map[string]decimal.Decimal)
		}
		expense.SplitWeights[userID] = w
	}
	if err := weightRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate split weights: %w", err)
	}

	allocRows, err := s.db.QueryContext(ctx,
		"SELECT category_id, amount FROM expense_allocations WHERE expense_id = ? ORDER BY position",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get category allocations: %w", err)
	}
	defer allocRows.Close()
	for allocRows.Next() {
		var categoryID, amount string
		if err := allocRows.Scan(&categoryID, &amount); err != nil {
			return fmt.Errorf("failed to scan category allocation: %w", err)
		}
		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return fmt.Errorf("failed to parse allocation amount %q: %w", amount, err)
		}
		expense.CategoryAllocations = append(expense.CategoryAllocations, models.CategoryAllocation{
			CategoryID: categoryID,
			Amount:     amt,
		})
	}
	if err := allocRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate category allocations: %w", err)
	}

	return nil
}
