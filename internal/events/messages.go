package events

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/spendwise/internal/models"
)

// Event types, also used as AMQP routing keys.
const (
	TypeGroupExpenseCreated = "group_expense.created"
	TypeSplitSettled        = "split.settled"
)

// Event is one domain event published after a successful write.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// ToJSON converts the event to JSON bytes.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GroupExpenseCreatedData describes a new group expense and who owes what.
type GroupExpenseCreatedData struct {
	GroupExpenseID string           `json:"groupExpenseId"`
	Title          string           `json:"title"`
	TotalAmount    decimal.Decimal  `json:"totalAmount"`
	Category       models.Category  `json:"category"`
	CreatedBy      string           `json:"createdBy"`
	Splits         []SplitShareData `json:"splits"`
}

// SplitShareData is one participant's share in GroupExpenseCreatedData.
type SplitShareData struct {
	SplitID       string          `json:"splitId"`
	ParticipantID string          `json:"participantId"`
	ShareAmount   decimal.Decimal `json:"shareAmount"`
}

// SplitSettledData describes a settled split and the expense it produced.
type SplitSettledData struct {
	SplitID        string          `json:"splitId"`
	GroupExpenseID string          `json:"groupExpenseId"`
	ParticipantID  string          `json:"participantId"`
	ExpenseID      string          `json:"expenseId"`
	Amount         decimal.Decimal `json:"amount"`
}

// NewGroupExpenseCreated builds the event for a persisted group expense.
func NewGroupExpenseCreated(expense *models.GroupExpense, splits []*models.GroupExpenseSplit) Event {
	data := GroupExpenseCreatedData{
		GroupExpenseID: expense.ID,
		Title:          expense.Title,
		TotalAmount:    expense.TotalAmount,
		Category:       expense.Category,
		CreatedBy:      expense.CreatedBy,
		Splits:         make([]SplitShareData, 0, len(splits)),
	}
	for _, s := range splits {
		data.Splits = append(data.Splits, SplitShareData{
			SplitID:       s.ID,
			ParticipantID: s.ParticipantID,
			ShareAmount:   s.ShareAmount,
		})
	}
	return Event{Type: TypeGroupExpenseCreated, Timestamp: time.Now().UTC(), Data: data}
}

// NewSplitSettled builds the event for a split that was just marked paid.
func NewSplitSettled(split *models.GroupExpenseSplit, expense *models.Expense) Event {
	return Event{
		Type:      TypeSplitSettled,
		Timestamp: time.Now().UTC(),
		Data: SplitSettledData{
			SplitID:        split.ID,
			GroupExpenseID: split.GroupExpenseID,
			ParticipantID:  split.ParticipantID,
			ExpenseID:      expense.ID,
			Amount:         expense.Amount,
		},
	}
}
