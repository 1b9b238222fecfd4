// Package events publishes ledger change notifications after a mutation commits.
//
// Events are lightweight: they carry ids and amounts, and a consumer that needs
// the full record fetches it from the ledger. Delivery is best effort.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Type names a kind of ledger change. It doubles as the AMQP routing key.
type Type string

const (
	ExpenseRecorded Type = "expense.recorded"
	ExpenseVoided   Type = "expense.voided"
	ExpenseReplaced Type = "expense.replaced"
)

// Event is one ledger change.
type Event struct {
	Type      Type   `json:"type"`
	CircleID  string `json:"circle_id"`
	ExpenseID string `json:"expense_id"`

	// ReplacementID is set on expense.replaced.
	ReplacementID string `json:"replacement_id,omitempty"`

	AmountYen     int64     `json:"amount_yen"`
	ActorMemberID string    `json:"actor_member_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ToJSON converts the event to JSON bytes
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON decodes an event from JSON bytes
func FromJSON(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
