package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/conkccc/studio-sub000/internal/expense/split"
)

// Expense represents one recorded cost within a meeting. Expenses are
// immutable once recorded; corrections delete and re-create.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	MeetingID   uuid.UUID       `json:"meeting_id"`
	PaidByID    uuid.UUID       `json:"paid_by_id"`
	Description string          `json:"description"`
	TotalAmount float64         `json:"total_amount"`
	SplitType   split.SplitType `json:"split_type"` // EQUAL, CUSTOM
	CreatedAt   time.Time       `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// ShareRow records one participant's involvement in an expense's split.
// For EQUAL splits the row marks membership of the split set and Amount is
// nil; for CUSTOM splits Amount carries the explicit per-person amount.
type ShareRow struct {
	ExpenseID     uuid.UUID `json:"expense_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	Amount        *float64  `json:"amount,omitempty"`

	// Populated via JOIN
	ParticipantName string `json:"participant_name,omitempty"`
}

// ExpenseWithShares combines an expense with its split rows
type ExpenseWithShares struct {
	Expense *Expense
	Shares  []*ShareRow
}
