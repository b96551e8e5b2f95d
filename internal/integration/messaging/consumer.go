// Package messaging consumes the plan-change events that invalidate cached reports.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/bookkeeping/backend/config"
)

const maxBackoff = 30 * time.Second

// MessageHandler processes one decoded plan-change message.
type MessageHandler func(ctx context.Context, msg *PlanItemChangedMessage) error

// acknowledger is the part of a delivery the consumer settles.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// Consumer reads plan-change events from a durable queue bound to the budgeting exchange.
type Consumer struct {
	cfg     config.AMQPConfig
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// NewConsumer connects to the broker and declares the exchange, queue and binding.
func NewConsumer(cfg config.AMQPConfig) (*Consumer, error) {
	c := &Consumer{cfg: cfg}
	if err := c.connect(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Consumer) connect() error {
	conn, err := amqp091.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	c.conn = conn
	c.channel = channel

	if err := c.setup(); err != nil {
		c.Close()
		return fmt.Errorf("setup exchange and queue: %w", err)
	}
	return nil
}

func (c *Consumer) setup() error {
	err := c.channel.ExchangeDeclare(
		c.cfg.Exchange, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.cfg.Queue, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = c.channel.QueueBind(
		c.cfg.Queue,      // queue name
		c.cfg.RoutingKey, // routing key
		c.cfg.Exchange,   // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	if c.cfg.Prefetch > 0 {
		if err := c.channel.Qos(c.cfg.Prefetch, 0, false); err != nil {
			return fmt.Errorf("set prefetch: %w", err)
		}
	}
	return nil
}

// Run consumes messages until ctx is cancelled, reconnecting with exponential backoff
// when the broker connection drops.
func (c *Consumer) Run(ctx context.Context, handler MessageHandler) error {
	attempt := 0
	for {
		err := c.consume(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !isConnectionError(err) {
			return err
		}

		delay := exponentialBackoff(attempt)
		slog.WarnContext(ctx, "AMQP connection lost, reconnecting",
			"error", err,
			"attempt", attempt+1,
			"delay", delay)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		c.Close()
		if err := c.connect(); err != nil {
			slog.ErrorContext(ctx, "AMQP reconnect failed", "error", err)
			attempt++
			continue
		}
		attempt = 0
	}
}

// consume reports amqp091.ErrClosed without a channel, so a failed reconnect goes back to backoff.
func (c *Consumer) consume(ctx context.Context, handler MessageHandler) error {
	if c.channel == nil {
		return amqp091.ErrClosed
	}

	msgs, err := c.channel.Consume(
		c.cfg.Queue, // queue
		"",          // consumer
		false,       // auto-ack (we want manual ack)
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming plan change messages", "queue", c.cfg.Queue)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping message consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return errors.New("message channel closed")
			}
			process(ctx, delivery.Body, delivery, handler)
		}
	}
}

// process decodes and handles one delivery. Undecodable messages are dropped;
// handler failures are requeued.
func process(ctx context.Context, body []byte, ack acknowledger, handler MessageHandler) {
	msg, err := PlanItemChangedMessageFromJSON(body)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to decode message", "error", err)
		_ = ack.Nack(false, false)
		return
	}

	if err := handler(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to handle message",
			"error", err,
			"company_id", msg.CompanyID.String(),
			"plan_item_id", msg.PlanItemID.String())
		_ = ack.Nack(false, true)
		return
	}

	_ = ack.Ack(false)
}

// Close closes the channel and the connection.
func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}

func exponentialBackoff(attempt int) time.Duration {
	if attempt > 5 {
		return maxBackoff
	}
	delay := time.Second << attempt
	if delay > maxBackoff {
		return maxBackoff
	}
	return delay
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, amqp091.ErrClosed) {
		return true
	}
	msg := err.Error()
	for _, marker := range []string{"connection", "EOF", "broken pipe", "channel closed"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
