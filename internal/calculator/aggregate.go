package calculator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/spendwise/internal/models"
)

// DailyTotal is the amount spent on one UTC calendar date.
type DailyTotal struct {
	Date   string // YYYY-MM-DD
	Amount decimal.Decimal
}

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Category models.Category
	Amount   decimal.Decimal
}

// SumAmounts adds up expense amounts. An empty slice sums to zero.
func SumAmounts(expenses []*models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// DailyTotals groups expenses by the UTC date of OccurredAt and returns one
// entry per calendar date from start to end inclusive, ascending. Dates
// without expenses are present with a zero amount so the series has no
// holes. Expenses dated outside the range are ignored. If end is before
// start the result is empty.
func DailyTotals(expenses []*models.Expense, start, end time.Time) []DailyTotal {
	first := models.StartOfDay(start)
	last := models.StartOfDay(end)
	if last.Before(first) {
		return []DailyTotal{}
	}

	byDay := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		day := models.DayKey(e.OccurredAt)
		byDay[day] = byDay[day].Add(e.Amount)
	}

	var totals []DailyTotal
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		key := models.DayKey(day)
		amount, ok := byDay[key]
		if !ok {
			amount = decimal.Zero
		}
		totals = append(totals, DailyTotal{Date: key, Amount: amount})
	}
	return totals
}

// CategoryTotals sums expenses per category. Only categories with at least
// one expense appear. Results are ordered by amount, largest first, with
// ties broken by the canonical category order.
func CategoryTotals(expenses []*models.Expense) []CategoryTotal {
	byCategory := make(map[models.Category]decimal.Decimal)
	for _, e := range expenses {
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for category, amount := range byCategory {
		totals = append(totals, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(totals, func(i, j int) bool {
		if c := totals[i].Amount.Cmp(totals[j].Amount); c != 0 {
			return c > 0
		}
		return totals[i].Category.Rank() < totals[j].Category.Rank()
	})
	return totals
}
