package ledger

import (
	"context"
	"time"

	"github.com/2ellamills/fitness-class/internal/model"
)

// EventType names a ledger mutation.
type EventType string

const (
	EventClassBooked      EventType = "class.booked"
	EventBookingCancelled EventType = "booking.cancelled"
	EventPassPurchased    EventType = "pass.purchased"
)

// Event describes a mutation that has already been applied.
type Event struct {
	Type              EventType      `json:"type"`
	ActorID           string         `json:"actor_id"`
	ClassID           string         `json:"class_id,omitempty"`
	ClassTitle        string         `json:"class_title,omitempty"`
	ClassDate         string         `json:"class_date,omitempty"`
	ClassTime         string         `json:"class_time,omitempty"`
	PassID            string         `json:"pass_id,omitempty"`
	PassType          model.PassType `json:"pass_type,omitempty"`
	RemainingSessions int            `json:"remaining_sessions"`
	Refunded          bool           `json:"refunded,omitempty"`
	OccurredAt        time.Time      `json:"occurred_at"`
}

// Observer receives events after the ledger lock is released.  Observers
// must not call back into the ledger synchronously from OnEvent.
type Observer interface {
	OnEvent(ctx context.Context, ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, ev Event)

func (f ObserverFunc) OnEvent(ctx context.Context, ev Event) { f(ctx, ev) }

func (l *Ledger) notify(ctx context.Context, ev Event) {
	for _, o := range l.observers {
		o.OnEvent(ctx, ev)
	}
}
