package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/2ellamills/fitness-class/internal/ledger"
)

// Consumer appends every booking event it receives to <LogDir>/booking.log.
type Consumer struct {
	URL    string
	Queue  string
	LogDir string
}

// Run connects, consumes and reconnects with exponential backoff (capped at
// 30s) until ctx is cancelled.  Malformed messages are logged and rejected
// without requeue so one bad message cannot stall the queue.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			log.Printf("booking-consumer: dial failed: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("booking-consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(c.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.Handle(d.Body); err != nil {
				log.Printf("booking-consumer: handle message failed: %v", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Handle decodes one message body and appends its log line.
func (c *Consumer) Handle(body []byte) error {
	var ev BookingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" {
		return errors.New("event without type")
	}
	if err := os.MkdirAll(c.LogDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", c.LogDir, err)
	}
	f, err := os.OpenFile(filepath.Join(c.LogDir, "booking.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders an event as one human readable line ending in \n.
func FormatLine(ev BookingEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ", ev.OccurredAt.UTC().Format(time.RFC3339))
	switch ev.Type {
	case ledger.EventClassBooked:
		b.WriteString("Class booked")
	case ledger.EventBookingCancelled:
		b.WriteString("Booking cancelled")
	case ledger.EventPassPurchased:
		b.WriteString("Pass purchased")
	default:
		b.WriteString(string(ev.Type))
	}
	fmt.Fprintf(&b, " | event_id=%s | actor=%s", ev.EventID, ev.ActorID)
	if ev.ClassID != "" {
		fmt.Fprintf(&b, " | class=%s | title=%q | at=%s %s", ev.ClassID, ev.ClassTitle, ev.ClassDate, ev.ClassTime)
	}
	if ev.PassID != "" {
		fmt.Fprintf(&b, " | pass=%s | type=%s | remaining=%d", ev.PassID, ev.PassType, ev.RemainingSessions)
	}
	if ev.Type == ledger.EventBookingCancelled {
		fmt.Fprintf(&b, " | refunded=%t", ev.Refunded)
	}
	b.WriteByte('\n')
	return b.String()
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
