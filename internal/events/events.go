// Package events publishes engine outcomes to Pulsar so downstream consumers
// (reminders, reporting) can react without polling the database.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apache/pulsar-client-go/pulsar"
)

// Event types emitted by the engine.
const (
	ContributionRecorded = "contribution.recorded"
	ContributionVerified = "contribution.verified"
	CycleOpened          = "cycle.opened"
	CycleClosed          = "cycle.closed"
	CycleCancelled       = "cycle.cancelled"
	MemberRemoved        = "member.removed"
)

type EventPayload struct {
	Type      string  `json:"type"`
	GroupID   string  `json:"groupId"`
	EntityID  string  `json:"entityId"`
	ActorID   string  `json:"actorId"`
	Amount    float64 `json:"amount,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

// Notifier is the publishing boundary the engine depends on. Publishing is
// best effort and happens after commit; a failed notify never rolls the
// operation back.
type Notifier interface {
	Notify(event EventPayload) error
	Close()
}

type EventPublisher struct {
	client   pulsar.Client
	producer pulsar.Producer
}

// NewEventPublisher initializes the Pulsar client and producer.
func NewEventPublisher(pulsarURL, topic string) (*EventPublisher, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{
		URL: pulsarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create Pulsar client: %w", err)
	}

	producer, err := client.CreateProducer(pulsar.ProducerOptions{
		Topic: topic,
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create Pulsar producer: %w", err)
	}

	return &EventPublisher{client: client, producer: producer}, nil
}

// Notify publishes an event to the configured topic.
func (p *EventPublisher) Notify(event EventPayload) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UTC().Unix()
	}

	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not serialize event payload: %w", err)
	}

	_, err = p.producer.Send(context.Background(), &pulsar.ProducerMessage{
		Key:     event.GroupID,
		Payload: message,
	})
	if err != nil {
		return fmt.Errorf("could not send event to Pulsar: %w", err)
	}

	return nil
}

// Close closes the Pulsar producer and client.
func (p *EventPublisher) Close() {
	p.producer.Close()
	p.client.Close()
}
