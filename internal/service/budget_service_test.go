package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/spendwise/internal/errs"
	"github.com/mmynk/spendwise/internal/models"
)

var budgetNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func TestCreateBudgetValidation(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")

	tests := []struct {
		name string
		in   BudgetInput
	}{
		{"zero amount", BudgetInput{Amount: "0", Duration: "MONTHLY"}},
		{"non-numeric amount", BudgetInput{Amount: "lots", Duration: "MONTHLY"}},
		{"negative amount", BudgetInput{Amount: "-5", Duration: "MONTHLY"}},
		{"unknown duration", BudgetInput{Amount: "100", Duration: "DAILY"}},
		{"unknown category", BudgetInput{Amount: "100", Duration: "WEEKLY", Category: "FOOD"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.budgets.CreateBudget(context.Background(), alice.ID, tt.in)
			assertKind(t, err, errs.KindValidation)
		})
	}

	list, err := env.budgets.ListBudgetsWithConsumed(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListBudgetsWithConsumed failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("invalid budgets must not be stored, got %d", len(list))
	}
}

func TestCreateBudgetUnknownUser(t *testing.T) {
	env := setupTestEnv(t)
	_, err := env.budgets.CreateBudget(context.Background(), "ghost", BudgetInput{Amount: "10", Duration: "WEEKLY"})
	assertKind(t, err, errs.KindUnauthorized)
}

func TestComputeConsumedWindow(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	env.budgets.now = func() time.Time { return budgetNow }

	env.addExpense(t, alice.ID, "10", "GROCERIES", "2024-03-08T13:00:00Z") // inside weekly window
	env.addExpense(t, alice.ID, "20", "GROCERIES", "2024-03-08T11:00:00Z") // before weekly window
	env.addExpense(t, alice.ID, "5.25", "TRANSPORT", "2024-03-15T12:00:00Z")
	env.addExpense(t, alice.ID, "40", "GROCERIES", "2024-03-16") // after now
	env.addExpense(t, alice.ID, "7", "HEALTH", "2024-02-20")
	env.addExpense(t, bob.ID, "1000", "GROCERIES", "2024-03-14")

	tests := []struct {
		name string
		in   BudgetInput
		want string
	}{
		{"weekly all categories", BudgetInput{Amount: "100", Duration: "WEEKLY"}, "15.25"},
		{"weekly groceries", BudgetInput{Amount: "100", Duration: "WEEKLY", Category: "GROCERIES"}, "10"},
		{"monthly all categories", BudgetInput{Amount: "100", Duration: "MONTHLY"}, "42.25"},
		{"yearly health", BudgetInput{Amount: "100", Duration: "YEARLY", Category: "health"}, "7"},
		{"monthly utilities", BudgetInput{Amount: "100", Duration: "MONTHLY", Category: "UTILITIES"}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := env.budgets.CreateBudget(ctx, alice.ID, tt.in)
			if err != nil {
				t.Fatalf("CreateBudget failed: %v", err)
			}
			want := decimal.RequireFromString(tt.want)
			if !status.Consumed.Equal(want) {
				t.Errorf("Consumed = %s, want %s", status.Consumed, want)
			}
			if !status.Remaining.Equal(status.Budget.Amount.Sub(want)) {
				t.Errorf("Remaining = %s, want amount - consumed", status.Remaining)
			}
			if !status.WindowEnd.Equal(budgetNow) {
				t.Errorf("WindowEnd = %v, want %v", status.WindowEnd, budgetNow)
			}
		})
	}
}

func TestComputeConsumedMonotonic(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	budget := &models.Budget{OwnerID: alice.ID, Amount: decimal.NewFromInt(100), Duration: models.DurationMonthly}

	previous := decimal.Zero
	for i, amount := range []string{"0", "3.10", "0.01", "12"} {
		env.addExpense(t, alice.ID, amount, "OTHER", fmt.Sprintf("2024-03-%02d", 10+i))
		consumed, err := env.budgets.ComputeConsumed(ctx, budget, budgetNow)
		if err != nil {
			t.Fatalf("ComputeConsumed failed: %v", err)
		}
		if consumed.LessThan(previous) {
			t.Fatalf("consumed decreased from %s to %s", previous, consumed)
		}
		previous = consumed
	}
	if !previous.Equal(decimal.RequireFromString("15.11")) {
		t.Errorf("final consumed = %s, want 15.11", previous)
	}
}

func TestListBudgetsWithConsumed(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	env.budgets.now = func() time.Time { return budgetNow }

	env.addExpense(t, alice.ID, "30", "ENTERTAINMENT", "2024-03-14")

	categories := []string{"", "GROCERIES", "TRANSPORT", "ENTERTAINMENT", "HEALTH", "UTILITIES", "OTHER"}
	for _, c := range categories {
		if _, err := env.budgets.CreateBudget(ctx, alice.ID, BudgetInput{Amount: "50", Duration: "WEEKLY", Category: c}); err != nil {
			t.Fatalf("CreateBudget failed: %v", err)
		}
	}

	list, err := env.budgets.ListBudgetsWithConsumed(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListBudgetsWithConsumed failed: %v", err)
	}
	if len(list) != len(categories) {
		t.Fatalf("expected %d budgets, got %d", len(categories), len(list))
	}
	for _, status := range list {
		want := decimal.Zero
		if status.Budget.Category == nil || *status.Budget.Category == models.CategoryEntertainment {
			want = decimal.NewFromInt(30)
		}
		if !status.Consumed.Equal(want) {
			t.Errorf("budget %v consumed = %s, want %s", status.Budget.Category, status.Consumed, want)
		}
	}
}

func TestBudgetOwnership(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	status, err := env.budgets.CreateBudget(ctx, alice.ID, BudgetInput{Amount: "100", Duration: "MONTHLY"})
	if err != nil {
		t.Fatalf("CreateBudget failed: %v", err)
	}
	id := status.Budget.ID

	_, err = env.budgets.GetBudget(ctx, bob.ID, id)
	assertKind(t, err, errs.KindNotFound)

	_, err = env.budgets.UpdateBudget(ctx, bob.ID, id, BudgetInput{Amount: "1", Duration: "WEEKLY"})
	assertKind(t, err, errs.KindUnauthorized)

	err = env.budgets.DeleteBudget(ctx, bob.ID, id)
	assertKind(t, err, errs.KindUnauthorized)

	updated, err := env.budgets.UpdateBudget(ctx, alice.ID, id, BudgetInput{Amount: "250.50", Duration: "YEARLY", Category: "HEALTH"})
	if err != nil {
		t.Fatalf("UpdateBudget failed: %v", err)
	}
	if updated.Budget.Duration != models.DurationYearly || *updated.Budget.Category != models.CategoryHealth {
		t.Errorf("update not applied: %+v", updated.Budget)
	}

	if err := env.budgets.DeleteBudget(ctx, alice.ID, id); err != nil {
		t.Fatalf("DeleteBudget failed: %v", err)
	}
	_, err = env.budgets.GetBudget(ctx, alice.ID, id)
	assertKind(t, err, errs.KindNotFound)
}
