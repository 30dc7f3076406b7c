package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mmynk/spendwise/internal/auth"
	"github.com/mmynk/spendwise/internal/calculator"
	"github.com/mmynk/spendwise/internal/errs"
	"github.com/mmynk/spendwise/internal/events"
	"github.com/mmynk/spendwise/internal/models"
	"github.com/mmynk/spendwise/internal/settlement"
	"github.com/mmynk/spendwise/internal/storage"
)

// GroupExpenseInput is a shared purchase as entered by the requester.
// Shares are keyed by username and hold fractions of TotalAmount.
type GroupExpenseInput struct {
	Title       string
	TotalAmount string
	Category    string
	OccurredAt  string
	Shares      []calculator.ShareInput
}

// GroupExpenseService creates group expenses and settles their splits.
type GroupExpenseService struct {
	store     storage.Store
	engine    *settlement.Engine
	publisher events.Publisher
}

// NewGroupExpenseService creates a GroupExpenseService.
func NewGroupExpenseService(store storage.Store, engine *settlement.Engine, publisher events.Publisher) *GroupExpenseService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &GroupExpenseService{store: store, engine: engine, publisher: publisher}
}

// CreateGroupExpense validates a split and stores the group expense with
// one split per participant, atomically.
func (s *GroupExpenseService) CreateGroupExpense(ctx context.Context, requesterID string, in GroupExpenseInput) (*models.GroupExpenseDetail, error) {
	if _, err := requireActiveUser(ctx, s.store, requesterID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errs.Validationf("title is required")
	}
	total, err := models.ParsePositiveAmount(in.TotalAmount)
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

	inputs := make([]calculator.ShareInput, len(in.Shares))
	for i, share := range in.Shares {
		inputs[i] = calculator.ShareInput{
			Participant: auth.NormalizeUsername(share.Participant),
			Fraction:    share.Fraction,
		}
	}
	shares, err := calculator.SplitShares(inputs, total)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(shares))
	for i, share := range shares {
		names[i] = share.Participant
	}
	users, err := s.store.GetUsersByUsernames(ctx, names)
	if err != nil {
		slog.ErrorContext(ctx, "GetUsersByUsernames failed", "error", err)
		return nil, errs.Server(err, "failed to resolve participants")
	}
	for _, name := range names {
		if !users[name].IsActive() {
			return nil, errs.Validationf("at least one user doesn't exist")
		}
	}

	expense := &models.GroupExpense{
		Title:       title,
		TotalAmount: total,
		Category:    category,
		OccurredAt:  occurredAt,
		CreatedBy:   requesterID,
	}
	splits := make([]*models.GroupExpenseSplit, len(shares))
	usernames := make(map[string]string, len(shares))
	for i, share := range shares {
		participant := users[share.Participant]
		splits[i] = &models.GroupExpenseSplit{
			ParticipantID: participant.ID,
			ShareAmount:   share.Amount,
		}
		usernames[participant.ID] = participant.Username
	}

	if err := s.store.CreateGroupExpense(ctx, expense, splits); err != nil {
		slog.ErrorContext(ctx, "CreateGroupExpense failed", "error", err, "user_id", requesterID)
		return nil, errs.Server(err, "failed to create group expense")
	}

	slog.InfoContext(ctx, "Group expense created",
		"group_expense_id", expense.ID,
		"participants", len(splits),
		"total", total.String())

	if err := s.publisher.Publish(ctx, events.NewGroupExpenseCreated(expense, splits)); err != nil {
		slog.WarnContext(ctx, "Failed to publish event", "error", err, "type", events.TypeGroupExpenseCreated)
	}

	return &models.GroupExpenseDetail{GroupExpense: expense, Splits: splits, Usernames: usernames}, nil
}

// GetGroupExpense returns a group expense with its splits. Only its
// participants can see it.
func (s *GroupExpenseService) GetGroupExpense(ctx context.Context, requesterID, groupExpenseID string) (*models.GroupExpenseDetail, error) {
	if _, err := requireActiveUser(ctx, s.store, requesterID); err != nil {
		return nil, err
	}

	expense, err := s.store.GetGroupExpense(ctx, groupExpenseID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errs.NotFoundf("group expense %s not found", groupExpenseID)
	}
	if err != nil {
		slog.ErrorContext(ctx, "GetGroupExpense failed", "error", err, "group_expense_id", groupExpenseID)
		return nil, errs.Server(err, "failed to load group expense")
	}

	splits, err := s.store.ListSplitsByGroupExpense(ctx, groupExpenseID)
	if err != nil {
		slog.ErrorContext(ctx, "ListSplitsByGroupExpense failed", "error", err, "group_expense_id", groupExpenseID)
		return nil, errs.Server(err, "failed to load splits")
	}

	ids := make([]string, len(splits))
	participant := false
	for i, split := range splits {
		ids[i] = split.ParticipantID
		if split.ParticipantID == requesterID {
			participant = true
		}
	}
	if !participant {
		return nil, errs.NotFoundf("group expense %s not found", groupExpenseID)
	}

	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		slog.ErrorContext(ctx, "GetUsersByIDs failed", "error", err)
		return nil, errs.Server(err, "failed to resolve participants")
	}
	usernames := make(map[string]string, len(users))
	for id, u := range users {
		usernames[id] = u.Username
	}

	return &models.GroupExpenseDetail{GroupExpense: expense, Splits: splits, Usernames: usernames}, nil
}

// ListMySplits returns the requester's splits, newest purchase first.
func (s *GroupExpenseService) ListMySplits(ctx context.Context, requesterID string, unpaidOnly bool) ([]*models.SplitWithExpense, error) {
	if _, err := requireActiveUser(ctx, s.store, requesterID); err != nil {
		return nil, err
	}

	splits, err := s.store.ListSplitsByParticipant(ctx, requesterID, unpaidOnly)
	if err != nil {
		slog.ErrorContext(ctx, "ListSplitsByParticipant failed", "error", err, "user_id", requesterID)
		return nil, errs.Server(err, "failed to list splits")
	}

	expenses := make(map[string]*models.GroupExpense)
	result := make([]*models.SplitWithExpense, 0, len(splits))
	for _, split := range splits {
		expense, ok := expenses[split.GroupExpenseID]
		if !ok {
			expense, err = s.store.GetGroupExpense(ctx, split.GroupExpenseID)
			if err != nil {
				slog.ErrorContext(ctx, "GetGroupExpense failed", "error", err, "group_expense_id", split.GroupExpenseID)
				return nil, errs.Server(err, "failed to load group expense")
			}
			expenses[split.GroupExpenseID] = expense
		}
		result = append(result, &models.SplitWithExpense{Split: split, GroupExpense: expense})
	}
	return result, nil
}

// MarkSplitPaid settles the requester's split. Settling twice is a no-op.
func (s *GroupExpenseService) MarkSplitPaid(ctx context.Context, requesterID, splitID string) (*settlement.Result, error) {
	if _, err := requireActiveUser(ctx, s.store, requesterID); err != nil {
		return nil, err
	}
	return s.engine.MarkAsPaid(ctx, splitID, requesterID)
}
