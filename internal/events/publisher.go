package events

import (
	"context"
	"encoding/json"
	"fmt"

	"foodfast-user-service/pkg/mqtt"
)

// Publisher is the best-effort notification channel for domain events.
// Callers treat a publish failure as log-only; it never rolls back the
// write that triggered it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event interface{}) error
}

// MQTTPublisher publishes JSON-encoded events over the shared MQTT client.
type MQTTPublisher struct {
	client *mqtt.Client
	qos    byte
}

func NewMQTTPublisher(client *mqtt.Client, qos byte) *MQTTPublisher {
	return &MQTTPublisher{
		client: client,
		qos:    qos,
	}
}

func (p *MQTTPublisher) Publish(ctx context.Context, topic string, event interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if err := p.client.Publish(topic, p.qos, false, payload); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	return nil
}
