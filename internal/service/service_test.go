package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/spendwise/internal/auth"
	"github.com/mmynk/spendwise/internal/errs"
	"github.com/mmynk/spendwise/internal/events"
	"github.com/mmynk/spendwise/internal/models"
	"github.com/mmynk/spendwise/internal/settlement"
	"github.com/mmynk/spendwise/internal/storage/sqlite"
)

// testEnv wires every service against a throwaway SQLite database.
type testEnv struct {
	store     *sqlite.SQLiteStore
	publisher *events.MemoryPublisher
	budgets   *BudgetService
	expenses  *ExpenseService
	groups    *GroupExpenseService
	auth      *AuthService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	publisher := events.NewMemoryPublisher()
	engine := settlement.NewEngine(store, publisher, prometheus.NewRegistry())
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	jwtManager := auth.NewJWTManager("test-secret-0123456789", time.Hour)

	return &testEnv{
		store:     store,
		publisher: publisher,
		budgets:   NewBudgetService(store, 2),
		expenses:  NewExpenseService(store),
		groups:    NewGroupExpenseService(store, engine, publisher),
		auth:      NewAuthService(authenticator, jwtManager, store, nil),
	}
}

func (e *testEnv) register(t *testing.T, username string) *models.User {
	t.Helper()
	user, _, err := e.auth.Register(context.Background(), username, "", "password123")
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", username, err)
	}
	return user
}

func (e *testEnv) addExpense(t *testing.T, ownerID, amount, category, occurredAt string) *models.Expense {
	t.Helper()
	expense, err := e.expenses.CreateExpense(context.Background(), ownerID, ExpenseInput{
		Title:      "expense",
		Amount:     amount,
		Category:   category,
		OccurredAt: occurredAt,
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return expense
}

func assertKind(t *testing.T, err error, want errs.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := errs.KindOf(err); got != want {
		t.Errorf("error kind = %v, want %v (%v)", got, want, err)
	}
}
