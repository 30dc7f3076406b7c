package api

import (
	"github.com/shopspring/decimal"
)

// User is the public view of an account.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

type RegisterRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type DeleteAccountRequest struct{}

type DeleteAccountResponse struct{}

// Expense is one personal ledger entry.
type Expense struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	OccurredAt    string          `json:"occurredAt"`
	SourceSplitID string          `json:"sourceSplitId,omitempty"`
	CreatedAt     int64           `json:"createdAt"`
}

type CreateExpenseRequest struct {
	Title      string `json:"title"`
	Amount     string `json:"amount"`
	Category   string `json:"category"`
	OccurredAt string `json:"occurredAt"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

// ListExpensesRequest filters by inclusive UTC days and category; empty
// fields are open.
type ListExpensesRequest struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Category  string `json:"category,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type UpdateExpenseRequest struct {
	ExpenseID  string `json:"expenseId"`
	Title      string `json:"title"`
	Amount     string `json:"amount"`
	Category   string `json:"category"`
	OccurredAt string `json:"occurredAt"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

// DailyTotal is the amount spent on one UTC date.
type DailyTotal struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type GetDailyTotalsRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type GetDailyTotalsResponse struct {
	Totals []DailyTotal `json:"totals"`
}

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type GetCategoryTotalsRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type GetCategoryTotalsResponse struct {
	Totals []CategoryTotal `json:"totals"`
}

// Budget is a budget with its consumption at WindowEnd.
type Budget struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Duration    string          `json:"duration"`
	Category    string          `json:"category,omitempty"`
	CreatedAt   int64           `json:"createdAt"`
	Consumed    decimal.Decimal `json:"consumed"`
	Remaining   decimal.Decimal `json:"remaining"`
	WindowStart string          `json:"windowStart"`
	WindowEnd   string          `json:"windowEnd"`
}

type CreateBudgetRequest struct {
	Amount   string `json:"amount"`
	Duration string `json:"duration"`
	Category string `json:"category,omitempty"`
}

type CreateBudgetResponse struct {
	Budget *Budget `json:"budget"`
}

type GetBudgetRequest struct {
	BudgetID string `json:"budgetId"`
}

type GetBudgetResponse struct {
	Budget *Budget `json:"budget"`
}

type ListBudgetsRequest struct{}

type ListBudgetsResponse struct {
	Budgets []*Budget `json:"budgets"`
}

type UpdateBudgetRequest struct {
	BudgetID string `json:"budgetId"`
	Amount   string `json:"amount"`
	Duration string `json:"duration"`
	Category string `json:"category,omitempty"`
}

type UpdateBudgetResponse struct {
	Budget *Budget `json:"budget"`
}

type DeleteBudgetRequest struct {
	BudgetID string `json:"budgetId"`
}

type DeleteBudgetResponse struct{}

// Share is one participant's fraction of a group expense, in [0, 1].
type Share struct {
	Username string `json:"username"`
	Fraction string `json:"fraction"`
}

// Split is one participant's owed share.
type Split struct {
	ID             string          `json:"id"`
	GroupExpenseID string          `json:"groupExpenseId"`
	ParticipantID  string          `json:"participantId"`
	Username       string          `json:"username,omitempty"`
	ShareAmount    decimal.Decimal `json:"shareAmount"`
	HasPaid        bool            `json:"hasPaid"`
	PaidAt         int64           `json:"paidAt,omitempty"`
}

// GroupExpense is a shared purchase. Splits are omitted in listings.
type GroupExpense struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Category    string          `json:"category"`
	OccurredAt  string          `json:"occurredAt"`
	CreatedBy   string          `json:"createdBy"`
	CreatedAt   int64           `json:"createdAt"`
	Splits      []*Split        `json:"splits,omitempty"`
}

type CreateGroupExpenseRequest struct {
	Title       string  `json:"title"`
	TotalAmount string  `json:"totalAmount"`
	Category    string  `json:"category"`
	OccurredAt  string  `json:"occurredAt"`
	Shares      []Share `json:"shares"`
}

type CreateGroupExpenseResponse struct {
	GroupExpense *GroupExpense `json:"groupExpense"`
}

type GetGroupExpenseRequest struct {
	GroupExpenseID string `json:"groupExpenseId"`
}

type GetGroupExpenseResponse struct {
	GroupExpense *GroupExpense `json:"groupExpense"`
}

type ListMySplitsRequest struct {
	UnpaidOnly bool `json:"unpaidOnly,omitempty"`
}

// MySplit is one of the caller's splits with its purchase.
type MySplit struct {
	Split        *Split        `json:"split"`
	GroupExpense *GroupExpense `json:"groupExpense"`
}

type ListMySplitsResponse struct {
	Splits []*MySplit `json:"splits"`
}

type MarkSplitPaidRequest struct {
	SplitID string `json:"splitId"`
}

// MarkSplitPaidResponse carries the expense created by settlement. Expense
// is nil and AlreadyPaid is true when the split had been settled before.
type MarkSplitPaidResponse struct {
	Split       *Split   `json:"split"`
	Expense     *Expense `json:"expense,omitempty"`
	AlreadyPaid bool     `json:"alreadyPaid"`
}
