// Package queue_publisher publishes ledger events to RabbitMQ.  Failures are
// logged and never reach the request that caused the event.
package queue_publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/2ellamills/fitness-class/internal/ledger"
	q "github.com/2ellamills/fitness-class/internal/queue"
)

// Publisher is a ledger.Observer that sends every event as a persistent JSON
// message to a durable queue on the default exchange.  The connection is
// opened on first use and re-opened after a failure.
type Publisher struct {
	url     string
	queue   string
	timeout time.Duration
	dial    func(url string) (*amqp.Connection, error)

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url, queue string) *Publisher {
	if queue == "" {
		queue = q.DefaultQueue
	}
	return &Publisher{url: url, queue: queue, timeout: 5 * time.Second, dial: amqp.Dial}
}

var _ ledger.Observer = (*Publisher)(nil)

// OnEvent implements ledger.Observer.
func (p *Publisher) OnEvent(ctx context.Context, ev ledger.Event) {
	if err := p.Publish(ctx, q.NewBookingEvent(ev)); err != nil {
		log.Printf("rabbitmq: publish %s actor=%s failed: %v", ev.Type, ev.ActorID, err)
	}
}

// Publish sends one message, opening the channel if needed.  On error the
// channel is dropped so the next call reconnects.
func (p *Publisher) Publish(ctx context.Context, ev q.BookingEvent) error {
	msg, err := message(ev)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.reset()
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := p.dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("channel open: %w", err)
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("queue declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func message(ev q.BookingEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Type:         string(ev.Type),
		Timestamp:    ev.OccurredAt.UTC(),
		Body:         body,
	}, nil
}
