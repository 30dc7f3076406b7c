package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/spendwise/internal/models"
	"github.com/mmynk/spendwise/internal/storage"
)

const (
	groupExpenseColumns = "id, title, total_amount, category, occurred_at, created_by, created_at"
	splitColumns        = "id, group_expense_id, participant_id, share_amount, has_paid, paid_at"
)

// CreateGroupExpense persists a group expense and its splits atomically.
func (s *SQLiteStore) CreateGroupExpense(ctx context.Context, expense *models.GroupExpense, splits []*models.GroupExpenseSplit) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	expense.OccurredAt = expense.OccurredAt.UTC().Truncate(time.Second)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO group_expenses ("+groupExpenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		expense.ID, expense.Title, expense.TotalAmount, string(expense.Category),
		expense.OccurredAt.Unix(), expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group expense: %w", err)
	}

	for _, split := range splits {
		if split.ID == "" {
			split.ID = uuid.New().String()
		}
		split.GroupExpenseID = expense.ID

		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_expense_splits ("+splitColumns+") VALUES (?, ?, ?, ?, ?, ?)",
			split.ID, split.GroupExpenseID, split.ParticipantID, split.ShareAmount, split.HasPaid, split.PaidAt,
		)
		if isUniqueViolation(err) {
			return fmt.Errorf("participant %s appears twice: %w", split.ParticipantID, storage.ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroupExpense retrieves a group expense by ID.
func (s *SQLiteStore) GetGroupExpense(ctx context.Context, id string) (*models.GroupExpense, error) {
	expense := &models.GroupExpense{}
	var category string
	var occurredAt int64

	err := s.db.QueryRowContext(ctx,
		"SELECT "+groupExpenseColumns+" FROM group_expenses WHERE id = ?", id,
	).Scan(&expense.ID, &expense.Title, &expense.TotalAmount, &category, &occurredAt, &expense.CreatedBy, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, notFound("group expense", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group expense: %w", err)
	}

	expense.Category = models.Category(category)
	expense.OccurredAt = time.Unix(occurredAt, 0).UTC()
	return expense, nil
}

// GetSplit retrieves a split by ID.
func (s *SQLiteStore) GetSplit(ctx context.Context, id string) (*models.GroupExpenseSplit, error) {
	split, err := scanSplit(s.db.QueryRowContext(ctx,
		"SELECT "+splitColumns+" FROM group_expense_splits WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, notFound("split", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get split: %w", err)
	}
	return split, nil
}

// ListSplitsByGroupExpense retrieves every split of one group expense.
func (s *SQLiteStore) ListSplitsByGroupExpense(ctx context.Context, groupExpenseID string) ([]*models.GroupExpenseSplit, error) {
	return s.listSplits(ctx,
		"SELECT "+splitColumns+" FROM group_expense_splits WHERE group_expense_id = ? ORDER BY rowid",
		groupExpenseID,
	)
}

// ListSplitsByParticipant retrieves a user's splits, newest group expense first.
func (s *SQLiteStore) ListSplitsByParticipant(ctx context.Context, participantID string, unpaidOnly bool) ([]*models.GroupExpenseSplit, error) {
	query := `SELECT s.id, s.group_expense_id, s.participant_id, s.share_amount, s.has_paid, s.paid_at
		FROM group_expense_splits s
		JOIN group_expenses g ON g.id = s.group_expense_id
		WHERE s.participant_id = ?`
	if unpaidOnly {
		query += " AND s.has_paid = 0"
	}
	query += " ORDER BY g.occurred_at DESC, g.created_at DESC, s.id"
	return s.listSplits(ctx, query, participantID)
}

// SettleSplit marks a split paid and records the mirrored personal expense.
// The UPDATE only matches an unpaid split, so of two concurrent callers
// exactly one inserts the expense.
func (s *SQLiteStore) SettleSplit(ctx context.Context, splitID string, expense *models.Expense) error {
	prepareExpense(expense)
	expense.SourceSplitID = splitID

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE group_expense_splits SET has_paid = 1, paid_at = ? WHERE id = ? AND has_paid = 0",
		expense.CreatedAt, splitID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark split paid: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM group_expense_splits WHERE id = ?", splitID).Scan(&exists)
		if err == sql.ErrNoRows {
			return notFound("split", splitID)
		}
		if err != nil {
			return fmt.Errorf("failed to check split existence: %w", err)
		}
		return fmt.Errorf("split %s: %w", splitID, storage.ErrAlreadySettled)
	}

	if err := insertExpense(ctx, tx, expense); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("split %s: %w", splitID, storage.ErrAlreadySettled)
		}
		return fmt.Errorf("failed to insert settlement expense: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) listSplits(ctx context.Context, query string, args ...any) ([]*models.GroupExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer rows.Close()

	var splits []*models.GroupExpenseSplit
	for rows.Next() {
		split, err := scanSplit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}

func scanSplit(row rowScanner) (*models.GroupExpenseSplit, error) {
	split := &models.GroupExpenseSplit{}
	err := row.Scan(
		&split.ID,
		&split.GroupExpenseID,
		&split.ParticipantID,
		&split.ShareAmount,
		&split.HasPaid,
		&split.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	return split, nil
}
