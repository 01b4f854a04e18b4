// Package service holds outbound integrations used by the HTTP handlers.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/ticketr/internal/metrics"
	"github.com/iliyamo/ticketr/internal/queue"
)

// TicketPublisher sends ticket.issued messages to RabbitMQ. Each publish
// dials its own connection; ticket creation is not hot enough to warrant a
// pooled channel.
type TicketPublisher struct {
	url string
}

// NewTicketPublisher returns nil when url is empty so callers can treat a
// missing broker as "publishing disabled".
func NewTicketPublisher(url string) *TicketPublisher {
	if url == "" {
		return nil
	}
	return &TicketPublisher{url: url}
}

// PublishTicketIssued publishes ev as a persistent JSON message on the
// default exchange, routed to the durable ticket.issued queue.
func (p *TicketPublisher) PublishTicketIssued(ctx context.Context, ev queue.TicketIssuedEvent) (err error) {
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		metrics.TicketEventsPublished.WithLabelValues(result).Inc()
	}()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.TicketIssuedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal ticket event: %w", err)
	}
	return ch.PublishWithContext(ctx, "", queue.TicketIssuedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
