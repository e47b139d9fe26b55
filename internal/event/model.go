package event

import (
	"context"
	"time"
)

// Type identifies the kind of domain event being recorded
type Type string

const (
	TypeMeetingCreated     Type = "MEETING_CREATED"
	TypeExpenseCreated     Type = "EXPENSE_CREATED"
	TypeExpenseDeleted     Type = "EXPENSE_DELETED"
	TypeSettlementComputed Type = "SETTLEMENT_COMPUTED"
	TypeFundDeposit        Type = "FUND_DEPOSIT"
	TypeFundWithdrawal     Type = "FUND_WITHDRAWAL"
)

// Event is one domain event, recorded asynchronously so request handling
// never waits on the activity log.
type Event struct {
	Type       Type           `json:"type"`
	EntityID   string         `json:"entity_id"`
	Detail     map[string]any `json:"detail,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// New builds an event stamped with the current time
func New(t Type, entityID string, detail map[string]any) Event {
	return Event{
		Type:       t,
		EntityID:   entityID,
		Detail:     detail,
		OccurredAt: time.Now().UTC(),
	}
}

// Logger persists events; the worker drains its channel into one of these
type Logger interface {
	Save(ctx context.Context, e Event) error
}
