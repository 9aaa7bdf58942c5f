package events

import (
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/streadway/amqp"
)

// queueName is the durable queue mirroring waitlist and review events.
const queueName = "skincache_events"

// Publisher mirrors domain events (waitlist.joined, review.created) to an
// AMQP broker. It is optional: when no broker URL is configured the
// application simply runs without one.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds broker connection details.
type Config struct {
	URL string
}

// NewPublisher connects to the broker and declares the event queue.
func NewPublisher(cfg Config) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", queueName, err)
	}

	return &Publisher{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the broker connection and channel.
func (p *Publisher) Close() error {
	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors during publisher close: %v", errs)
	}
	return nil
}

// Publish sends one event with a JSON payload to the event queue. The event
// name travels in the message type field.
func (p *Publisher) Publish(event string, payload map[string]interface{}) error {
	if p.channel == nil {
		return fmt.Errorf("broker channel is not available")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	err = p.channel.Publish(
		"",        // exchange: default
		queueName, // routing key: the queue name
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event, err)
	}
	return nil
}
