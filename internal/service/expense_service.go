package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/spendwise/internal/calculator"
	"github.com/mmynk/spendwise/internal/errs"
	"github.com/mmynk/spendwise/internal/models"
	"github.com/mmynk/spendwise/internal/storage"
)

// maxRangeDays caps analytics ranges so a gap-filled series stays bounded.
const maxRangeDays = 3660

// ExpenseInput is a personal expense as entered by its owner.
type ExpenseInput struct {
	Title      string
	Amount     string
	Category   string
	OccurredAt string
}

// ExpenseQuery filters ListExpenses. Empty fields are open.
type ExpenseQuery struct {
	StartDate string
	EndDate   string
	Category  string
}

// ExpenseService manages a user's personal ledger and its analytics.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpense records a personal expense for ownerID.
func (s *ExpenseService) CreateExpense(ctx context.Context, ownerID string, in ExpenseInput) (*models.Expense, error) {
	if _, err := requireActiveUser(ctx, s.store, ownerID); err != nil {
		return nil, err
	}

	expense, err := parseExpense(in)
	if err != nil {
		return nil, err
	}
	expense.OwnerID = ownerID

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.ErrorContext(ctx, "CreateExpense failed", "error", err, "user_id", ownerID)
		return nil, errs.Server(err, "failed to create expense")
	}

	slog.InfoContext(ctx, "Expense created", "expense_id", expense.ID, "category", expense.Category)
	return expense, nil
}

// GetExpense returns one of ownerID's expenses.
func (s *ExpenseService) GetExpense(ctx context.Context, ownerID, expenseID string) (*models.Expense, error) {
	if _, err := requireActiveUser(ctx, s.store, ownerID); err != nil {
		return nil, err
	}

	expense, err := s.load(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.OwnerID != ownerID {
		return nil, errs.NotFoundf("expense %s not found", expenseID)
	}
	return expense, nil
}

// ListExpenses returns ownerID's expenses, oldest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, ownerID string, q ExpenseQuery) ([]*models.Expense, error) {
	if _, err := requireActiveUser(ctx, s.store, ownerID); err != nil {
		return nil, err
	}

	filter := models.ExpenseFilter{OwnerID: ownerID}
	if strings.TrimSpace(q.StartDate) != "" {
		start, err := models.ParseDate(q.StartDate)
		if err != nil {
			return nil, errs.Validationf("startDate: %v", err)
		}
		filter.From = models.StartOfDay(start)
	}
	if strings.TrimSpace(q.EndDate) != "" {
		end, err := models.ParseDate(q.EndDate)
		if err != nil {
			return nil, errs.Validationf("endDate: %v", err)
		}
		filter.To = models.EndOfDay(end)
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, errs.Validationf("endDate must not be before startDate")
	}
	category, err := models.ParseOptionalCategory(q.Category)
	if err != nil {
		return nil, errs.Validationf("%v", err)
	}
	filter.Category = category

	expenses, err := s.store.ListExpenses(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "ListExpenses failed", "error", err, "user_id", ownerID)
		return nil, errs.Server(err, "failed to list expenses")
	}
	return expenses, nil
}

// UpdateExpense replaces the editable fields of an expense. Expenses that
// mirror a settled split cannot be edited.
func (s *ExpenseService) UpdateExpense(ctx context.Context, ownerID, expenseID string, in ExpenseInput) (*models.Expense, error) {
	if _, err := requireActiveUser(ctx, s.store, ownerID); err != nil {
		return nil, err
	}

	expense, err := s.load(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.OwnerID != ownerID {
		return nil, errs.Unauthorizedf("expense %s belongs to another user", expenseID)
	}
	if expense.IsSettlementDerived() {
		return nil, errs.Validationf("expense %s was created by settling a split and cannot be edited", expenseID)
	}

	updated, err := parseExpense(in)
	if err != nil {
		return nil, err
	}
	expense.Title = updated.Title
	expense.Amount = updated.Amount
	expense.Category = updated.Category
	expense.OccurredAt = updated.OccurredAt

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errs.NotFoundf("expense %s not found", expenseID)
		}
		slog.ErrorContext(ctx, "UpdateExpense failed", "error", err, "expense_id", expenseID)
		return nil, errs.Server(err, "failed to update expense")
	}

	slog.InfoContext(ctx, "Expense updated", "expense_id", expenseID)
	return expense, nil
}

// DeleteExpense removes one of ownerID's expenses, including settlement
// mirrors. The split they came from stays paid.
func (s *ExpenseService) DeleteExpense(ctx context.Context, ownerID, expenseID string) error {
	if _, err := requireActiveUser(ctx, s.store, ownerID); err != nil {
		return err
	}

	expense, err := s.load(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.OwnerID != ownerID {
		return errs.Unauthorizedf("expense %s belongs to another user", expenseID)
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errs.NotFoundf("expense %s not found", expenseID)
		}
		slog.ErrorContext(ctx, "DeleteExpense failed", "error", err, "expense_id", expenseID)
		return errs.Server(err, "failed to delete expense")
	}

	slog.InfoContext(ctx, "Expense deleted", "expense_id", expenseID)
	return nil
}

// GetDailyTotals returns ownerID's spending per UTC day from startDate to
// endDate inclusive, with zero entries for days without expenses.
func (s *ExpenseService) GetDailyTotals(ctx context.Context, ownerID, startDate, endDate string) ([]calculator.DailyTotal, error) {
	from, to, err := s.parseRange(ctx, ownerID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	expenses, err := s.fetchRange(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	return calculator.DailyTotals(expenses, from, to), nil
}

// GetCategoryTotals returns ownerID's spending per category from startDate
// to endDate inclusive. Categories without expenses are omitted.
func (s *ExpenseService) GetCategoryTotals(ctx context.Context, ownerID, startDate, endDate string) ([]calculator.CategoryTotal, error) {
	from, to, err := s.parseRange(ctx, ownerID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	expenses, err := s.fetchRange(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	return calculator.CategoryTotals(expenses), nil
}

// parseRange authorizes ownerID and parses an analytics range covering
// whole UTC days.
func (s *ExpenseService) parseRange(ctx context.Context, ownerID, startDate, endDate string) (time.Time, time.Time, error) {
	if _, err := requireActiveUser(ctx, s.store, ownerID); err != nil {
		return time.Time{}, time.Time{}, err
	}

	start, err := models.ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Validationf("startDate: %v", err)
	}
	end, err := models.ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Validationf("endDate: %v", err)
	}

	from, to := models.StartOfDay(start), models.EndOfDay(end)
	if to.Before(from) {
		return time.Time{}, time.Time{}, errs.Validationf("endDate must not be before startDate")
	}
	if to.Sub(from) > maxRangeDays*24*time.Hour {
		return time.Time{}, time.Time{}, errs.Validationf("date range must not exceed %d days", maxRangeDays)
	}
	return from, to, nil
}

func (s *ExpenseService) fetchRange(ctx context.Context, ownerID string, from, to time.Time) ([]*models.Expense, error) {
	expenses, err := s.store.ListExpenses(ctx, models.ExpenseFilter{OwnerID: ownerID, From: from, To: to})
	if err != nil {
		slog.ErrorContext(ctx, "ListExpenses failed", "error", err, "user_id", ownerID)
		return nil, errs.Server(err, "failed to load expenses")
	}
	return expenses, nil
}

func (s *ExpenseService) load(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errs.NotFoundf("expense %s not found", expenseID)
	}
	if err != nil {
		slog.ErrorContext(ctx, "GetExpense failed", "error", err, "expense_id", expenseID)
		return nil, errs.Server(err, "failed to load expense")
	}
	return expense, nil
}

func parseExpense(in ExpenseInput) (*models.Expense, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errs.Validationf("title is required")
	}
	amount, err := models.ParseAmount(in.Amount)
	if err != nil {
		return nil, errs.Validationf("%v", err)
	}
	category, err := models.ParseCategory(in.Category)
	if err != nil {
		return nil, errs.Validationf("%v", err)
	}
	occurredAt, err := models.ParseDate(in.OccurredAt)
	if err != nil {
		return nil, errs.Validationf("occurredAt: %v", err)
	}
	return &models.Expense{Title: title, Amount: amount, Category: category, OccurredAt: occurredAt}, nil
}
