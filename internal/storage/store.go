// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/spendwise/internal/models"
)

var (
	// ErrNotFound is returned (wrapped) when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadySettled is returned by SettleSplit when the split was
	// already marked paid, including by a concurrent caller.
	ErrAlreadySettled = errors.New("split already settled")

	// ErrConflict is returned when a uniqueness constraint is violated.
	ErrConflict = errors.New("conflict")
)

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts a new user. Returns ErrConflict if the username is taken.
	CreateUser(ctx context.Context, user *models.User) error

	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUsersByUsernames returns the users matching names, keyed by
	// username, including soft-deleted ones. Unknown names are omitted.
	GetUsersByUsernames(ctx context.Context, names []string) (map[string]*models.User, error)

	// GetUsersByIDs returns the users matching ids, keyed by ID.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// SoftDeleteUser stamps DeletedAt; the row is kept.
	SoftDeleteUser(ctx context.Context, id string) error
}

// ExpenseStore persists personal ledger entries.
type ExpenseStore interface {
	// CreateExpense persists a new expense. expense.ID and CreatedAt are
	// populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListExpenses returns the expenses matching filter ordered by
	// OccurredAt ascending.
	ListExpenses(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error)

	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, id string) error
}

// BudgetStore persists budgets.
type BudgetStore interface {
	CreateBudget(ctx context.Context, budget *models.Budget) error
	GetBudget(ctx context.Context, id string) (*models.Budget, error)
	ListBudgets(ctx context.Context, ownerID string) ([]*models.Budget, error)
	UpdateBudget(ctx context.Context, budget *models.Budget) error
	DeleteBudget(ctx context.Context, id string) error
}

// GroupExpenseStore persists group expenses and their splits.
type GroupExpenseStore interface {
	// CreateGroupExpense inserts the group expense and all of its splits in
	// one transaction: either every row exists afterwards or none does.
	CreateGroupExpense(ctx context.Context, expense *models.GroupExpense, splits []*models.GroupExpenseSplit) error

	GetGroupExpense(ctx context.Context, id string) (*models.GroupExpense, error)
	GetSplit(ctx context.Context, id string) (*models.GroupExpenseSplit, error)
	ListSplitsByGroupExpense(ctx context.Context, groupExpenseID string) ([]*models.GroupExpenseSplit, error)
	ListSplitsByParticipant(ctx context.Context, participantID string, unpaidOnly bool) ([]*models.GroupExpenseSplit, error)

	// SettleSplit flips the split to paid and inserts expense in one
	// transaction. The flip is conditional on the split being unpaid; if it
	// is already paid nothing is written and ErrAlreadySettled is returned.
	// The split's PaidAt is set to the expense's CreatedAt.
	SettleSplit(ctx context.Context, splitID string, expense *models.Expense) error
}

// Store is the complete persistence collaborator of the ledger core.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	UserStore
	ExpenseStore
	BudgetStore
	GroupExpenseStore

	// Close releases any resources held by the store.
	Close() error
}
