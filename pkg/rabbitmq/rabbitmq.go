package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"ecommerce/pkg/logger"

	"github.com/google/uuid"
	amqp "github.com/streadway/amqp"
)

// CatalogQueue receives every catalog event.
const CatalogQueue = "catalog_events"

// ErrChannelClosed is returned once the client has been closed.
var ErrChannelClosed = errors.New("rabbitmq channel is not available")

// Event is the envelope published for every catalog change.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     *logger.Logger
	// amqp channels are not safe for concurrent publishing.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects, opens a channel and declares the catalog queue.
func NewClient(cfg Config, log *logger.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareCatalogQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info().Str("queue", CatalogQueue).Msg("rabbitmq client connected")

	return &Client{
		conn:    conn,
		channel: ch,
		log:     log,
	}, nil
}

func declareCatalogQueue(ch *amqp.Channel) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		CatalogQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to declare %s: %w", CatalogQueue, err)
	}
	return q, nil
}

// Close closes the channel and then the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
		c.channel = nil
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
		c.conn = nil
	}
	return errors.Join(errs...)
}

// NewEvent wraps payload in an Event envelope.
func NewEvent(eventType string, payload interface{}) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    body,
	}, nil
}

// Publish sends a persistent JSON event to the catalog queue.
func (c *Client) Publish(ctx context.Context, eventType string, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	event, err := NewEvent(eventType, payload)
	if err != nil {
		return err
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel == nil {
		return ErrChannelClosed
	}
	err = c.channel.Publish(
		"",           // default exchange
		CatalogQueue, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         eventType,
			MessageId:    event.ID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	c.log.Debug().Str("event", eventType).Str("id", event.ID).Msg("catalog event published")
	return nil
}

// ConsumeCatalogEvents starts a goroutine that hands every decoded event to
// handler. Messages are acked on success, requeued when handler fails and
// dropped when they cannot be decoded.
func (c *Client) ConsumeCatalogEvents(handler func(Event) error) error {
	c.mu.Lock()
	ch := c.channel
	c.mu.Unlock()
	if ch == nil {
		return ErrChannelClosed
	}

	queue, err := declareCatalogQueue(ch)
	if err != nil {
		return err
	}
	msgs, err := ch.Consume(
		queue.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.log.Info().Str("queue", queue.Name).Msg("waiting for catalog events")

	go func() {
		for msg := range msgs {
			c.handleDelivery(msg, handler)
		}
	}()
	return nil
}

func (c *Client) handleDelivery(msg amqp.Delivery, handler func(Event) error) {
	var event Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		c.log.Warn().Err(err).Uint64("tag", msg.DeliveryTag).Msg("dropping malformed catalog event")
		if err := msg.Nack(false, false); err != nil {
			c.log.Error().Err(err).Uint64("tag", msg.DeliveryTag).Msg("nack failed")
		}
		return
	}

	if err := handler(event); err != nil {
		c.log.Error().Err(err).Str("event", event.Type).Uint64("tag", msg.DeliveryTag).Msg("catalog event handler failed")
		if err := msg.Nack(false, true); err != nil {
			c.log.Error().Err(err).Uint64("tag", msg.DeliveryTag).Msg("nack failed")
		}
		return
	}
	if err := msg.Ack(false); err != nil {
		c.log.Error().Err(err).Uint64("tag", msg.DeliveryTag).Msg("ack failed")
	}
}
