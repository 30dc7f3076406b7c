package settlement

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/mmynk/spendwise/internal/errs"
	"github.com/mmynk/spendwise/internal/events"
	"github.com/mmynk/spendwise/internal/models"
	"github.com/mmynk/spendwise/internal/storage"
	"github.com/mmynk/spendwise/internal/storage/sqlite"
)

type fixture struct {
	store     *sqlite.SQLiteStore
	engine    *Engine
	publisher *events.MemoryPublisher
	registry  *prometheus.Registry
	alice     *models.User
	bob       *models.User
	expense   *models.GroupExpense
	splits    map[string]*models.GroupExpenseSplit // by participant ID
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	f := &fixture{
		store:     store,
		publisher: events.NewMemoryPublisher(),
		registry:  prometheus.NewRegistry(),
		alice:     models.NewUser("alice", "Alice", "hash"),
		bob:       models.NewUser("bob", "Bob", "hash"),
		splits:    make(map[string]*models.GroupExpenseSplit),
	}
	for _, u := range []*models.User{f.alice, f.bob} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	f.expense = &models.GroupExpense{
		Title:       "Groceries run",
		TotalAmount: decimal.RequireFromString("100"),
		Category:    models.CategoryGroceries,
		OccurredAt:  time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC),
		CreatedBy:   f.alice.ID,
	}
	splits := []*models.GroupExpenseSplit{
		{ParticipantID: f.alice.ID, ShareAmount: decimal.RequireFromString("50")},
		{ParticipantID: f.bob.ID, ShareAmount: decimal.RequireFromString("50")},
	}
	if err := store.CreateGroupExpense(ctx, f.expense, splits); err != nil {
		t.Fatalf("CreateGroupExpense failed: %v", err)
	}
	for _, s := range splits {
		f.splits[s.ParticipantID] = s
	}

	f.engine = NewEngine(store, f.publisher, f.registry)
	return f
}

func (f *fixture) personalExpenses(t *testing.T, userID string) []*models.Expense {
	t.Helper()
	list, err := f.store.ListExpenses(context.Background(), models.ExpenseFilter{OwnerID: userID})
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	return list
}

func TestMarkAsPaid(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	aliceSplit := f.splits[f.alice.ID]

	result, err := f.engine.MarkAsPaid(ctx, aliceSplit.ID, f.alice.ID)
	if err != nil {
		t.Fatalf("MarkAsPaid failed: %v", err)
	}
	if result.AlreadyPaid || result.Expense == nil {
		t.Fatalf("expected a new expense, got %+v", result)
	}
	if !result.Split.HasPaid || result.Split.PaidAt == 0 {
		t.Errorf("split should be paid: %+v", result.Split)
	}

	list := f.personalExpenses(t, f.alice.ID)
	if len(list) != 1 {
		t.Fatalf("expected 1 personal expense, got %d", len(list))
	}
	got := list[0]
	if !got.Amount.Equal(aliceSplit.ShareAmount) {
		t.Errorf("Amount = %s, want %s", got.Amount, aliceSplit.ShareAmount)
	}
	if got.Title != f.expense.Title || got.Category != f.expense.Category || !got.OccurredAt.Equal(f.expense.OccurredAt) {
		t.Errorf("expense does not mirror group expense: %+v", got)
	}
	if got.SourceSplitID != aliceSplit.ID {
		t.Errorf("SourceSplitID = %q, want %q", got.SourceSplitID, aliceSplit.ID)
	}

	bobSplit, _ := f.store.GetSplit(ctx, f.splits[f.bob.ID].ID)
	if bobSplit.HasPaid {
		t.Error("bob's split should remain unpaid")
	}
	if len(f.personalExpenses(t, f.bob.ID)) != 0 {
		t.Error("bob should have no personal expenses")
	}

	if got := testutil.ToFloat64(f.engine.settled); got != 1 {
		t.Errorf("settled counter = %v, want 1", got)
	}
	if got := len(f.publisher.Events(events.TypeSplitSettled)); got != 1 {
		t.Errorf("expected 1 settled event, got %d", got)
	}
}

func TestMarkAsPaidTwice(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	split := f.splits[f.bob.ID]

	if _, err := f.engine.MarkAsPaid(ctx, split.ID, f.bob.ID); err != nil {
		t.Fatalf("first MarkAsPaid failed: %v", err)
	}
	result, err := f.engine.MarkAsPaid(ctx, split.ID, f.bob.ID)
	if err != nil {
		t.Fatalf("second MarkAsPaid failed: %v", err)
	}
	if !result.AlreadyPaid || result.Expense != nil {
		t.Errorf("second call should be a no-op, got %+v", result)
	}
	if got := len(f.personalExpenses(t, f.bob.ID)); got != 1 {
		t.Errorf("expected 1 personal expense, got %d", got)
	}
	if got := testutil.ToFloat64(f.engine.settled); got != 1 {
		t.Errorf("settled counter = %v, want 1", got)
	}
}

func TestMarkAsPaidConcurrent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	split := f.splits[f.bob.ID]

	const callers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := f.engine.MarkAsPaid(ctx, split.ID, f.bob.ID)
			if err != nil {
				t.Errorf("MarkAsPaid failed: %v", err)
				return
			}
			if result.Expense != nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Errorf("expected exactly one call to create an expense, got %d", created)
	}
	if got := len(f.personalExpenses(t, f.bob.ID)); got != 1 {
		t.Errorf("expected 1 personal expense, got %d", got)
	}
}

func TestMarkAsPaidNotFound(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		splitID string
		userID  string
	}{
		{"unknown split", "missing", f.bob.ID},
		{"someone else's split", f.splits[f.alice.ID].ID, f.bob.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.MarkAsPaid(ctx, tt.splitID, tt.userID)
			if !errs.Is(err, errs.KindNotFound) {
				t.Errorf("expected NotFound, got %v", err)
			}
		})
	}

	if len(f.personalExpenses(t, f.bob.ID)) != 0 {
		t.Error("failed settlement must not create expenses")
	}
}

// stubStore drives the failure paths the real store cannot produce.
type stubStore struct {
	split     *models.GroupExpenseSplit
	getGroup  error
	settleErr error
}

func (s *stubStore) GetSplit(context.Context, string) (*models.GroupExpenseSplit, error) {
	return s.split, nil
}

func (s *stubStore) GetGroupExpense(context.Context, string) (*models.GroupExpense, error) {
	if s.getGroup != nil {
		return nil, s.getGroup
	}
	return &models.GroupExpense{ID: s.split.GroupExpenseID, Title: "t", Category: models.CategoryOther}, nil
}

func (s *stubStore) SettleSplit(context.Context, string, *models.Expense) error {
	return s.settleErr
}

func TestMarkAsPaidFailures(t *testing.T) {
	split := func() *models.GroupExpenseSplit {
		return &models.GroupExpenseSplit{ID: "s1", GroupExpenseID: "g1", ParticipantID: "u1", ShareAmount: decimal.NewFromInt(5)}
	}

	tests := []struct {
		name  string
		store *stubStore
		want  errs.Kind
	}{
		{"missing group expense", &stubStore{split: split(), getGroup: storage.ErrNotFound}, errs.KindNotFound},
		{"group expense lookup fails", &stubStore{split: split(), getGroup: errors.New("disk I/O error")}, errs.KindServer},
		{"settle fails", &stubStore{split: split(), settleErr: errors.New("database is locked")}, errs.KindServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(tt.store, nil, nil)
			_, err := engine.MarkAsPaid(context.Background(), "s1", "u1")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errs.KindOf(err); got != tt.want {
				t.Errorf("kind = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("lost race is a no-op", func(t *testing.T) {
		engine := NewEngine(&stubStore{split: split(), settleErr: storage.ErrAlreadySettled}, nil, nil)
		result, err := engine.MarkAsPaid(context.Background(), "s1", "u1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.AlreadyPaid || result.Expense != nil {
			t.Errorf("unexpected result: %+v", result)
		}
	})
}
