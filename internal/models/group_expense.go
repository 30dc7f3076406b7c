package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroupExpense is one purchase shared by several users.
// It is created together with its splits and never edited afterwards.
type GroupExpense struct {
	// ID is the unique identifier for the group expense (UUID format).
	ID string

	Title       string
	TotalAmount decimal.Decimal
	Category    Category
	OccurredAt  time.Time

	// CreatedBy is the user who recorded the group expense.
	CreatedBy string

	CreatedAt int64
}

// GroupExpenseSplit is one participant's owed share of a GroupExpense.
// HasPaid only ever moves from false to true.
type GroupExpenseSplit struct {
	ID             string
	GroupExpenseID string
	ParticipantID  string
	ShareAmount    decimal.Decimal
	HasPaid        bool

	// PaidAt is the Unix timestamp of settlement, or 0 while unpaid.
	PaidAt int64
}

// GroupExpenseDetail is a group expense with all of its splits.
type GroupExpenseDetail struct {
	GroupExpense *GroupExpense
	Splits       []*GroupExpenseSplit

	// Usernames maps participant IDs to usernames.
	Usernames map[string]string
}

// SplitWithExpense is one of a user's splits with the purchase it belongs to.
type SplitWithExpense struct {
	Split        *GroupExpenseSplit
	GroupExpense *GroupExpense
}
