package logsink

import (
	"context"
	"log/slog"
)

// Producer writes events to the log instead of a broker. It stands in for
// Kafka when no brokers are configured.
type Producer struct {
	Logger *slog.Logger
}

func (p Producer) Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error {
	log := p.Logger
	if log == nil {
		log = slog.Default()
	}
	log.InfoContext(ctx, "event published", "topic", topic, "key", key, "payload", string(payload))
	return nil
}
