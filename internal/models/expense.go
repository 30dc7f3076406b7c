package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is one entry in a user's personal ledger.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// OwnerID is the user the expense belongs to.
	OwnerID string

	Title    string
	Amount   decimal.Decimal
	Category Category

	// OccurredAt is when the money was spent. Daily totals bucket by its UTC date.
	OccurredAt time.Time

	// SourceSplitID is set when the expense was materialized by settling a
	// group expense split. Such expenses cannot be edited.
	SourceSplitID string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// IsSettlementDerived reports whether the expense mirrors a settled split.
func (e *Expense) IsSettlementDerived() bool {
	return e.SourceSplitID != ""
}

// ExpenseFilter selects a user's expenses. From and To are inclusive; a
// zero bound is open. A nil Category matches every category.
type ExpenseFilter struct {
	OwnerID  string
	From     time.Time
	To       time.Time
	Category *Category
}
