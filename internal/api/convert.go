package api

import (
	"time"

	"github.com/mmynk/spendwise/internal/calculator"
	"github.com/mmynk/spendwise/internal/models"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toUser(u *models.User) *User {
	return &User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toExpense(e *models.Expense) *Expense {
	return &Expense{
		ID:            e.ID,
		Title:         e.Title,
		Amount:        e.Amount,
		Category:      string(e.Category),
		OccurredAt:    formatTime(e.OccurredAt),
		SourceSplitID: e.SourceSplitID,
		CreatedAt:     e.CreatedAt,
	}
}

func toExpenses(expenses []*models.Expense) []*Expense {
	out := make([]*Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toExpense(e)
	}
	return out
}

func toDailyTotals(totals []calculator.DailyTotal) []DailyTotal {
	out := make([]DailyTotal, len(totals))
	for i, t := range totals {
		out[i] = DailyTotal{Date: t.Date, Amount: t.Amount}
	}
	return out
}

func toCategoryTotals(totals []calculator.CategoryTotal) []CategoryTotal {
	out := make([]CategoryTotal, len(totals))
	for i, t := range totals {
		out[i] = CategoryTotal{Category: string(t.Category), Amount: t.Amount}
	}
	return out
}

func toBudget(s *models.BudgetStatus) *Budget {
	b := &Budget{
		ID:          s.Budget.ID,
		Amount:      s.Budget.Amount,
		Duration:    string(s.Budget.Duration),
		CreatedAt:   s.Budget.CreatedAt,
		Consumed:    s.Consumed,
		Remaining:   s.Remaining,
		WindowStart: formatTime(s.WindowStart),
		WindowEnd:   formatTime(s.WindowEnd),
	}
	if s.Budget.Category != nil {
		b.Category = string(*s.Budget.Category)
	}
	return b
}

func toSplit(s *models.GroupExpenseSplit, username string) *Split {
	return &Split{
		ID:             s.ID,
		GroupExpenseID: s.GroupExpenseID,
		ParticipantID:  s.ParticipantID,
		Username:       username,
		ShareAmount:    s.ShareAmount,
		HasPaid:        s.HasPaid,
		PaidAt:         s.PaidAt,
	}
}

func toGroupExpense(g *models.GroupExpense) *GroupExpense {
	return &GroupExpense{
		ID:          g.ID,
		Title:       g.Title,
		TotalAmount: g.TotalAmount,
		Category:    string(g.Category),
		OccurredAt:  formatTime(g.OccurredAt),
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt,
	}
}

func toGroupExpenseDetail(d *models.GroupExpenseDetail) *GroupExpense {
	g := toGroupExpense(d.GroupExpense)
	g.Splits = make([]*Split, len(d.Splits))
	for i, s := range d.Splits {
		g.Splits[i] = toSplit(s, d.Usernames[s.ParticipantID])
	}
	return g
}
