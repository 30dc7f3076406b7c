package calculator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/spendwise/internal/models"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC)
}

func expense(amount string, category models.Category, at time.Time) *models.Expense {
	return &models.Expense{
		Amount:     decimal.RequireFromString(amount),
		Category:   category,
		OccurredAt: at,
	}
}

func TestSumAmounts(t *testing.T) {
	if got := SumAmounts(nil); !got.IsZero() {
		t.Errorf("empty sum = %s, want 0", got)
	}

	got := SumAmounts([]*models.Expense{
		expense("0.1", models.CategoryOther, day(1)),
		expense("0.2", models.CategoryOther, day(1)),
		expense("10", models.CategoryHealth, day(2)),
	})
	if !got.Equal(decimal.RequireFromString("10.3")) {
		t.Errorf("sum = %s, want 10.3", got)
	}
}

func TestDailyTotals(t *testing.T) {
	tests := []struct {
		name     string
		expenses []*models.Expense
		start    time.Time
		end      time.Time
		want     []DailyTotal
	}{
		{
			name: "gap filled middle day",
			expenses: []*models.Expense{
				expense("10", models.CategoryGroceries, day(1)),
				expense("5", models.CategoryTransport, day(3)),
				expense("2.5", models.CategoryGroceries, day(3)),
			},
			start: day(1),
			end:   day(3),
			want: []DailyTotal{
				{Date: "2024-03-01", Amount: decimal.RequireFromString("10")},
				{Date: "2024-03-02", Amount: decimal.Zero},
				{Date: "2024-03-03", Amount: decimal.RequireFromString("7.5")},
			},
		},
		{
			name:  "no expenses is all zero",
			start: day(1),
			end:   day(2),
			want: []DailyTotal{
				{Date: "2024-03-01", Amount: decimal.Zero},
				{Date: "2024-03-02", Amount: decimal.Zero},
			},
		},
		{
			name: "single day range",
			expenses: []*models.Expense{
				expense("4", models.CategoryOther, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
				expense("6", models.CategoryOther, time.Date(2024, 3, 5, 23, 59, 59, 0, time.UTC)),
			},
			start: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			want: []DailyTotal{
				{Date: "2024-03-05", Amount: decimal.RequireFromString("10")},
			},
		},
		{
			name: "month boundary",
			expenses: []*models.Expense{
				expense("1", models.CategoryOther, time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC)),
			},
			start: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			want: []DailyTotal{
				{Date: "2024-02-28", Amount: decimal.Zero},
				{Date: "2024-02-29", Amount: decimal.RequireFromString("1")},
				{Date: "2024-03-01", Amount: decimal.Zero},
			},
		},
		{
			name:     "out of range expense ignored",
			expenses: []*models.Expense{expense("99", models.CategoryOther, day(9))},
			start:    day(1),
			end:      day(1),
			want:     []DailyTotal{{Date: "2024-03-01", Amount: decimal.Zero}},
		},
		{
			name:  "end before start",
			start: day(3),
			end:   day(1),
			want:  []DailyTotal{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DailyTotals(tt.expenses, tt.start, tt.end)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i].Date != tt.want[i].Date {
					t.Errorf("entry %d date = %s, want %s", i, got[i].Date, tt.want[i].Date)
				}
				if !got[i].Amount.Equal(tt.want[i].Amount) {
					t.Errorf("entry %d (%s) amount = %s, want %s", i, got[i].Date, got[i].Amount, tt.want[i].Amount)
				}
			}
		})
	}
}

func TestCategoryTotals(t *testing.T) {
	got := CategoryTotals([]*models.Expense{
		expense("10", models.CategoryGroceries, day(1)),
		expense("30", models.CategoryTransport, day(1)),
		expense("5", models.CategoryGroceries, day(2)),
		expense("0", models.CategoryHealth, day(2)),
	})

	want := []CategoryTotal{
		{Category: models.CategoryTransport, Amount: decimal.RequireFromString("30")},
		{Category: models.CategoryGroceries, Amount: decimal.RequireFromString("15")},
		{Category: models.CategoryHealth, Amount: decimal.Zero},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Category != want[i].Category || !got[i].Amount.Equal(want[i].Amount) {
			t.Errorf("entry %d = %v %s, want %v %s", i, got[i].Category, got[i].Amount, want[i].Category, want[i].Amount)
		}
	}
}

func TestCategoryTotalsOmitsInactiveCategories(t *testing.T) {
	got := CategoryTotals([]*models.Expense{
		expense("12", models.CategoryUtilities, day(1)),
	})
	if len(got) != 1 {
		t.Fatalf("expected only UTILITIES, got %v", got)
	}
	for _, c := range got {
		if c.Category != models.CategoryUtilities {
			t.Errorf("unexpected category %s", c.Category)
		}
	}

	if got := CategoryTotals(nil); len(got) != 0 {
		t.Errorf("no expenses should give no categories, got %v", got)
	}
}

func TestCategoryTotalsTieOrder(t *testing.T) {
	got := CategoryTotals([]*models.Expense{
		expense("5", models.CategoryOther, day(1)),
		expense("5", models.CategoryGroceries, day(1)),
	})
	if got[0].Category != models.CategoryGroceries || got[1].Category != models.CategoryOther {
		t.Errorf("ties should follow canonical order, got %v", got)
	}
}
