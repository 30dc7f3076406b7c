// Package settlement moves group expense splits from unpaid to paid.
//
// Settling a split mirrors it into the payer's personal ledger: exactly one
// Expense is created per split, however many times or however concurrently
// MarkAsPaid is called.
package settlement

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/spendwise/internal/errs"
	"github.com/mmynk/spendwise/internal/events"
	"github.com/mmynk/spendwise/internal/models"
	"github.com/mmynk/spendwise/internal/storage"
)

// Store is the persistence the engine needs.
type Store interface {
	GetSplit(ctx context.Context, id string) (*models.GroupExpenseSplit, error)
	GetGroupExpense(ctx context.Context, id string) (*models.GroupExpense, error)
	SettleSplit(ctx context.Context, splitID string, expense *models.Expense) error
}

// Result is the outcome of MarkAsPaid.
type Result struct {
	Split *models.GroupExpenseSplit

	// Expense is the personal expense created by this call. It is nil when
	// the split had already been settled.
	Expense *models.Expense

	AlreadyPaid bool
}

// Engine settles splits.
type Engine struct {
	store     Store
	publisher events.Publisher
	settled   prometheus.Counter
}

// NewEngine creates an Engine. The settled-splits counter is registered on
// reg when reg is non-nil.
func NewEngine(store Store, publisher events.Publisher, reg prometheus.Registerer) *Engine {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	settled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "spendwise_splits_settled_total",
		Help: "Number of group expense splits marked paid.",
	})
	if reg != nil {
		reg.MustRegister(settled)
	}
	return &Engine{store: store, publisher: publisher, settled: settled}
}

// MarkAsPaid settles the split splitID on behalf of userID.
//
// A split that does not exist or belongs to someone else is NotFound, as is
// a split whose group expense is missing. Settling an already paid split
// succeeds without side effects and reports AlreadyPaid.
func (e *Engine) MarkAsPaid(ctx context.Context, splitID, userID string) (*Result, error) {
	split, err := e.store.GetSplit(ctx, splitID)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && split.ParticipantID != userID) {
		return nil, errs.NotFoundf("split %s not found", splitID)
	}
	if err != nil {
		slog.ErrorContext(ctx, "GetSplit failed", "error", err, "split_id", splitID)
		return nil, errs.Server(err, "failed to load split")
	}

	groupExpense, err := e.store.GetGroupExpense(ctx, split.GroupExpenseID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errs.NotFoundf("group expense %s not found", split.GroupExpenseID)
	}
	if err != nil {
		slog.ErrorContext(ctx, "GetGroupExpense failed", "error", err, "group_expense_id", split.GroupExpenseID)
		return nil, errs.Server(err, "failed to load group expense")
	}

	if split.HasPaid {
		return &Result{Split: split, AlreadyPaid: true}, nil
	}

	expense := &models.Expense{
		OwnerID:    userID,
		Title:      groupExpense.Title,
		Amount:     split.ShareAmount,
		Category:   groupExpense.Category,
		OccurredAt: groupExpense.OccurredAt,
	}

	err = e.store.SettleSplit(ctx, split.ID, expense)
	switch {
	case errors.Is(err, storage.ErrAlreadySettled):
		// Lost the race to a concurrent caller.
		split.HasPaid = true
		return &Result{Split: split, AlreadyPaid: true}, nil
	case errors.Is(err, storage.ErrNotFound):
		return nil, errs.NotFoundf("split %s not found", splitID)
	case err != nil:
		slog.ErrorContext(ctx, "SettleSplit failed", "error", err, "split_id", splitID)
		return nil, errs.Server(err, "failed to settle split")
	}

	split.HasPaid = true
	split.PaidAt = expense.CreatedAt
	e.settled.Inc()

	slog.InfoContext(ctx, "Split settled",
		"split_id", split.ID,
		"user_id", userID,
		"expense_id", expense.ID,
		"amount", expense.Amount.String())

	if err := e.publisher.Publish(ctx, events.NewSplitSettled(split, expense)); err != nil {
		slog.WarnContext(ctx, "Failed to publish event", "error", err, "type", events.TypeSplitSettled)
	}

	return &Result{Split: split, Expense: expense}, nil
}
