// Package queue carries ledger events over RabbitMQ and records them in the
// booking log.
package queue

import (
	"github.com/google/uuid"

	"github.com/2ellamills/fitness-class/internal/ledger"
)

// DefaultQueue is the durable queue booking events are published to.
const DefaultQueue = "booking.events"

// BookingEvent is the message body: a ledger event plus a unique id so
// consumers can spot redeliveries.
type BookingEvent struct {
	EventID string `json:"event_id"`
	ledger.Event
}

func NewBookingEvent(ev ledger.Event) BookingEvent {
	return BookingEvent{EventID: uuid.NewString(), Event: ev}
}
