package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/spendwise/internal/calculator"
	"github.com/mmynk/spendwise/internal/errs"
	"github.com/mmynk/spendwise/internal/models"
	"github.com/mmynk/spendwise/internal/storage"
)

// BudgetInput is a budget as entered by its owner.
type BudgetInput struct {
	Amount   string
	Duration string

	// Category is empty for a budget over all categories.
	Category string
}

// BudgetService manages budgets and computes their consumption on read.
type BudgetService struct {
	store   storage.Store
	workers int
	now     func() time.Time
}

// NewBudgetService creates a BudgetService. workers bounds how many budgets
// have their consumption computed concurrently.
func NewBudgetService(store storage.Store, workers int) *BudgetService {
	if workers < 1 {
		workers = 1
	}
	return &BudgetService{store: store, workers: workers, now: time.Now}
}

// CreateBudget validates and stores a new budget for ownerID.
func (s *BudgetService) CreateBudget(ctx context.Context, ownerID string, in BudgetInput) (*models.BudgetStatus, error) {
	if _, err := requireActiveUser(ctx, s.store, ownerID); err != nil {
		return nil, err
	}

	budget, err := parseBudget(in)
	if err != nil {
		return nil, err
	}
	budget.OwnerID = ownerID

	if err := s.store.CreateBudget(ctx, budget); err != nil {
		slog.ErrorContext(ctx, "CreateBudget failed", "error", err, "user_id", ownerID)
		return nil, errs.Server(err, "failed to create budget")
	}

	slog.InfoContext(ctx, "Budget created", "budget_id", budget.ID, "duration", budget.Duration)
	return s.status(ctx, budget, s.now())
}

// GetBudget returns one of ownerID's budgets with its consumption.
func (s *BudgetService) GetBudget(ctx context.Context, ownerID, budgetID string) (*models.BudgetStatus, error) {
	if _, err := requireActiveUser(ctx, s.store, ownerID); err != nil {
		return nil, err
	}

	budget, err := s.load(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.OwnerID != ownerID {
		return nil, errs.NotFoundf("budget %s not found", budgetID)
	}
	return s.status(ctx, budget, s.now())
}

// ListBudgetsWithConsumed returns every budget of ownerID with its
// consumption, all measured against the same instant.
func (s *BudgetService) ListBudgetsWithConsumed(ctx context.Context, ownerID string) ([]*models.BudgetStatus, error) {
	if _, err := requireActiveUser(ctx, s.store, ownerID); err != nil {
		return nil, err
	}

	budgets, err := s.store.ListBudgets(ctx, ownerID)
	if err != nil {
		slog.ErrorContext(ctx, "ListBudgets failed", "error", err, "user_id", ownerID)
		return nil, errs.Server(err, "failed to list budgets")
	}

	now := s.now()
	statuses := make([]*models.BudgetStatus, len(budgets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, budget := range budgets {
		g.Go(func() error {
			status, err := s.status(gctx, budget, now)
			if err != nil {
				return err
			}
			statuses[i] = status
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return statuses, nil
}

// UpdateBudget replaces the amount, duration and category of a budget.
func (s *BudgetService) UpdateBudget(ctx context.Context, ownerID, budgetID string, in BudgetInput) (*models.BudgetStatus, error) {
	if _, err := requireActiveUser(ctx, s.store, ownerID); err != nil {
		return nil, err
	}

	budget, err := s.load(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.OwnerID != ownerID {
		return nil, errs.Unauthorizedf("budget %s belongs to another user", budgetID)
	}

	updated, err := parseBudget(in)
	if err != nil {
		return nil, err
	}
	budget.Amount = updated.Amount
	budget.Duration = updated.Duration
	budget.Category = updated.Category

	if err := s.store.UpdateBudget(ctx, budget); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errs.NotFoundf("budget %s not found", budgetID)
		}
		slog.ErrorContext(ctx, "UpdateBudget failed", "error", err, "budget_id", budgetID)
		return nil, errs.Server(err, "failed to update budget")
	}

	slog.InfoContext(ctx, "Budget updated", "budget_id", budgetID)
	return s.status(ctx, budget, s.now())
}

// DeleteBudget removes one of ownerID's budgets.
func (s *BudgetService) DeleteBudget(ctx context.Context, ownerID, budgetID string) error {
	if _, err := requireActiveUser(ctx, s.store, ownerID); err != nil {
		return err
	}

	budget, err := s.load(ctx, budgetID)
	if err != nil {
		return err
	}
	if budget.OwnerID != ownerID {
		return errs.Unauthorizedf("budget %s belongs to another user", budgetID)
	}

	if err := s.store.DeleteBudget(ctx, budgetID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errs.NotFoundf("budget %s not found", budgetID)
		}
		slog.ErrorContext(ctx, "DeleteBudget failed", "error", err, "budget_id", budgetID)
		return errs.Server(err, "failed to delete budget")
	}

	slog.InfoContext(ctx, "Budget deleted", "budget_id", budgetID)
	return nil
}

// ComputeConsumed sums the owner's expenses inside the budget's rolling
// window ending at now, restricted to the budget's category if it has one.
// Nothing is cached: every call reads the current ledger.
func (s *BudgetService) ComputeConsumed(ctx context.Context, budget *models.Budget, now time.Time) (decimal.Decimal, error) {
	expenses, err := s.store.ListExpenses(ctx, models.ExpenseFilter{
		OwnerID:  budget.OwnerID,
		From:     calculator.WindowStart(now, budget.Duration),
		To:       now,
		Category: budget.Category,
	})
	if err != nil {
		slog.ErrorContext(ctx, "ListExpenses failed", "error", err, "budget_id", budget.ID)
		return decimal.Zero, errs.Server(err, "failed to load expenses")
	}
	return calculator.SumAmounts(expenses), nil
}

func (s *BudgetService) status(ctx context.Context, budget *models.Budget, now time.Time) (*models.BudgetStatus, error) {
	consumed, err := s.ComputeConsumed(ctx, budget, now)
	if err != nil {
		return nil, err
	}
	return &models.BudgetStatus{
		Budget:      budget,
		Consumed:    consumed,
		Remaining:   budget.Amount.Sub(consumed),
		WindowStart: calculator.WindowStart(now, budget.Duration),
		WindowEnd:   now,
	}, nil
}

func (s *BudgetService) load(ctx context.Context, budgetID string) (*models.Budget, error) {
	budget, err := s.store.GetBudget(ctx, budgetID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errs.NotFoundf("budget %s not found", budgetID)
	}
	if err != nil {
		slog.ErrorContext(ctx, "GetBudget failed", "error", err, "budget_id", budgetID)
		return nil, errs.Server(err, "failed to load budget")
	}
	return budget, nil
}

func parseBudget(in BudgetInput) (*models.Budget, error) {
	amount, err := models.ParsePositiveAmount(in.Amount)
	if err != nil {
		return nil, errs.Validationf("%v", err)
	}
	duration, err := models.ParseDuration(in.Duration)
	if err != nil {
		return nil, errs.Validationf("%v", err)
	}
	category, err := models.ParseOptionalCategory(in.Category)
	if err != nil {
		return nil, errs.Validationf("%v", err)
	}
	return &models.Budget{Amount: amount, Duration: duration, Category: category}, nil
}
