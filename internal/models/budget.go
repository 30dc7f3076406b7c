package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a spending limit over a rolling window ending now.
type Budget struct {
	// ID is the unique identifier for the budget (UUID format).
	ID string

	OwnerID  string
	Amount   decimal.Decimal
	Duration Duration

	// Category scopes the budget; nil means all categories.
	Category *Category

	CreatedAt int64
}

// BudgetStatus is a budget together with its consumption computed at read time.
type BudgetStatus struct {
	Budget      *Budget
	Consumed    decimal.Decimal
	Remaining   decimal.Decimal
	WindowStart time.Time
	WindowEnd   time.Time
}
