package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	appoutbox "bnb/internal/app/outbox"
)

type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

var ErrRelayNotConfigured = errors.New("outbox: relay missing producer")

// Relay wraps records as CloudEvents and publishes them to a topic derived
// from the event name: "booking.requested" goes to "<prefix>booking.events.v1".
type Relay struct {
	Producer    Producer
	TopicPrefix string
	Source      string
}

func (r Relay) Deliver(ctx context.Context, rec appoutbox.EventRecord) error {
	if r.Producer == nil {
		return ErrRelayNotConfigured
	}
	payload, headers, err := r.formatPayload(rec)
	if err != nil {
		return fmt.Errorf("format %s: %w", rec.Name, err)
	}
	if err := r.Producer.Publish(ctx, r.TopicFor(rec.Name), rec.Aggregate, payload, headers); err != nil {
		return fmt.Errorf("publish %s: %w", rec.Name, err)
	}
	return nil
}

func (r Relay) formatPayload(rec appoutbox.EventRecord) ([]byte, map[string]string, error) {
	data := map[string]any{}
	if err := json.Unmarshal(rec.Payload, &data); err != nil {
		return nil, nil, err
	}
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	evt := map[string]any{
		"specversion":     "1.0",
		"id":              id,
		"type":            rec.Name + ".v1",
		"source":          r.source(),
		"time":            rec.OccurredAt,
		"datacontenttype": "application/json",
		"data":            data,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, nil, err
	}
	headers := map[string]string{
		"content-type": "application/cloudevents+json",
	}
	for k, v := range rec.Headers {
		headers[k] = v
	}
	return payload, headers, nil
}

func (r Relay) TopicFor(name string) string {
	base := name
	if idx := strings.IndexRune(name, '.'); idx > 0 {
		base = name[:idx]
	}
	topic := base + ".events.v1"
	if r.TopicPrefix != "" {
		topic = r.TopicPrefix + topic
	}
	return topic
}

func (r Relay) source() string {
	if r.Source != "" {
		return r.Source
	}
	return "app://bnb"
}
