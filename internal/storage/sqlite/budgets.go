package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/spendwise/internal/models"
)

const budgetColumns = "id, owner_id, amount, duration, category, created_at"

// CreateBudget persists a new budget to the database.
func (s *SQLiteStore) CreateBudget(ctx context.Context, budget *models.Budget) error {
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	if budget.CreatedAt == 0 {
		budget.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO budgets ("+budgetColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		budget.ID, budget.OwnerID, budget.Amount, string(budget.Duration),
		categoryValue(budget.Category), budget.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert budget: %w", err)
	}
	return nil
}

// GetBudget retrieves a budget by ID.
func (s *SQLiteStore) GetBudget(ctx context.Context, id string) (*models.Budget, error) {
	budget, err := scanBudget(s.db.QueryRowContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, notFound("budget", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget, nil
}

// ListBudgets retrieves all budgets owned by a user, oldest first.
func (s *SQLiteStore) ListBudgets(ctx context.Context, ownerID string) ([]*models.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE owner_id = ? ORDER BY created_at, id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*models.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budgets: %w", err)
	}
	return budgets, nil
}

// UpdateBudget overwrites the amount, duration and category of a budget.
func (s *SQLiteStore) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE budgets SET amount = ?, duration = ?, category = ? WHERE id = ?",
		budget.Amount, string(budget.Duration), categoryValue(budget.Category), budget.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	return requireAffected(result, "budget", budget.ID)
}

// DeleteBudget removes a budget by ID.
func (s *SQLiteStore) DeleteBudget(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM budgets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return requireAffected(result, "budget", id)
}

func categoryValue(c *models.Category) any {
	if c == nil {
		return nil
	}
	return string(*c)
}

func scanBudget(row rowScanner) (*models.Budget, error) {
	budget := &models.Budget{}
	var duration string
	var category sql.NullString

	err := row.Scan(&budget.ID, &budget.OwnerID, &budget.Amount, &duration, &category, &budget.CreatedAt)
	if err != nil {
		return nil, err
	}

	budget.Duration = models.Duration(duration)
	if category.Valid {
		c := models.Category(category.String)
		budget.Category = &c
	}
	return budget, nil
}
