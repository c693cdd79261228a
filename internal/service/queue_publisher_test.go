package queue_publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/2ellamills/fitness-class/internal/ledger"
	q "github.com/2ellamills/fitness-class/internal/queue"
)

func TestMessage(t *testing.T) {
	at := time.Date(2025, 3, 10, 7, 0, 0, 0, time.FixedZone("CET", 3600))
	ev := q.BookingEvent{EventID: "e1", Event: ledger.Event{Type: ledger.EventClassBooked, ActorID: "alice", ClassID: "c1", OccurredAt: at}}

	msg, err := message(ev)
	if err != nil {
		t.Fatal(err)
	}
	if msg.DeliveryMode != amqp.Persistent || msg.ContentType != "application/json" {
		t.Fatalf("msg = %+v", msg)
	}
	if msg.MessageId != "e1" || msg.Type != "class.booked" || !msg.Timestamp.Equal(at) {
		t.Fatalf("msg = %+v", msg)
	}
	var back q.BookingEvent
	if err := json.Unmarshal(msg.Body, &back); err != nil || back.ClassID != "c1" || back.EventID != "e1" {
		t.Fatalf("body = %s (%v)", msg.Body, err)
	}
}

func TestPublishDialFailure(t *testing.T) {
	p := NewPublisher("amqp://unused", "")
	if p.queue != q.DefaultQueue {
		t.Fatalf("queue = %q", p.queue)
	}
	dials := 0
	p.dial = func(string) (*amqp.Connection, error) {
		dials++
		return nil, errors.New("connection refused")
	}

	if err := p.Publish(context.Background(), q.NewBookingEvent(ledger.Event{Type: ledger.EventPassPurchased})); err == nil {
		t.Fatal("expected error")
	}
	// OnEvent swallows the error and retries the dial
	p.OnEvent(context.Background(), ledger.Event{Type: ledger.EventPassPurchased, ActorID: "bob"})
	if dials != 2 {
		t.Fatalf("dials = %d", dials)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}
