package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/spendwise/internal/models"
)

const expenseColumns = "id, owner_id, title, amount, category, occurred_at, source_split_id, created_at"

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	prepareExpense(expense)
	if err := insertExpense(ctx, s.db, expense); err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense, err := scanExpense(s.db.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, notFound("expense", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// ListExpenses retrieves a user's expenses within the filter's inclusive range.
// OccurredAt is stored with second precision, so a From bound with a
// fractional second rounds up to the next whole second.
func (s *SQLiteStore) ListExpenses(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error) {
	clauses := []string{"owner_id = ?"}
	args := []any{filter.OwnerID}

	if !filter.From.IsZero() {
		from := filter.From.Unix()
		if filter.From.Nanosecond() > 0 {
			from++
		}
		clauses = append(clauses, "occurred_at >= ?")
		args = append(args, from)
	}
	if !filter.To.IsZero() {
		clauses = append(clauses, "occurred_at <= ?")
		args = append(args, filter.To.Unix())
	}
	if filter.Category != nil {
		clauses = append(clauses, "category = ?")
		args = append(args, string(*filter.Category))
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE "+strings.Join(clauses, " AND ")+
			" ORDER BY occurred_at, created_at, id",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// UpdateExpense overwrites the editable fields of an expense.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	expense.OccurredAt = expense.OccurredAt.UTC().Truncate(time.Second)

	result, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET title = ?, amount = ?, category = ?, occurred_at = ? WHERE id = ?",
		expense.Title, expense.Amount, string(expense.Category), expense.OccurredAt.Unix(), expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return requireAffected(result, "expense", expense.ID)
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return requireAffected(result, "expense", id)
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// prepareExpense generates the ID and timestamps of a new expense.
func prepareExpense(expense *models.Expense) {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	expense.OccurredAt = expense.OccurredAt.UTC().Truncate(time.Second)
}

func insertExpense(ctx context.Context, db execer, expense *models.Expense) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		expense.ID, expense.OwnerID, expense.Title, expense.Amount, string(expense.Category),
		expense.OccurredAt.Unix(), nullString(expense.SourceSplitID), expense.CreatedAt,
	)
	return err
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var category string
	var occurredAt int64
	var sourceSplitID sql.NullString

	err := row.Scan(
		&expense.ID,
		&expense.OwnerID,
		&expense.Title,
		&expense.Amount,
		&category,
		&occurredAt,
		&sourceSplitID,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	expense.Category = models.Category(category)
	expense.OccurredAt = time.Unix(occurredAt, 0).UTC()
	if sourceSplitID.Valid {
		expense.SourceSplitID = sourceSplitID.String
	}
	return expense, nil
}

// requireAffected turns a zero-row UPDATE or DELETE into a not-found error.
func requireAffected(result sql.Result, kind, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return notFound(kind, id)
	}
	return nil
}
