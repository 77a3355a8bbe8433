// Package amqp publishes record lifecycle events to RabbitMQ.
package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"wisewallet/internal/domain/record"
)

const publishTimeout = 5 * time.Second

// Publisher implements record.Publisher over a topic exchange.
type Publisher struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	logger       *slog.Logger

	mu sync.Mutex
}

func NewPublisher(url, exchangeName string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Publisher{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		logger:       logger,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, evt record.Event) error {
	msg := NewRecordMessage(evt)
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName,   // exchange
		msg.RoutingKey(), // routing key
		false,            // mandatory
		false,            // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    msg.ID,
			Timestamp:    msg.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	p.logger.DebugContext(ctx, "published record event",
		"exchange", p.exchangeName,
		"routing_key", msg.RoutingKey(),
		"id", msg.ID)

	return nil
}

func (p *Publisher) Close() error {
	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close AMQP publisher: %v", errs)
	}
	return nil
}
