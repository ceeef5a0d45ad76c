package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"bnb/internal/domain/shared/events"
)

type EventRecord struct {
	ID         string
	Name       string
	Payload    []byte
	OccurredAt time.Time
	Aggregate  string
	Headers    map[string]string
}

// Outbox buffers records until the command that produced them succeeds.
// Records are grouped by the scope on ctx: Flush and Discard only touch the
// records added under the same scope.
type Outbox interface {
	Add(ctx context.Context, record EventRecord) error
	Flush(ctx context.Context) error
	Discard(ctx context.Context) error
}

type scopeKey struct{}

// WithScope starts a fresh record scope, one per dispatched command.
func WithScope(ctx context.Context) context.Context {
	return context.WithValue(ctx, scopeKey{}, uuid.NewString())
}

// ScopeFromContext returns the scope set by WithScope, or "" outside any
// command.
func ScopeFromContext(ctx context.Context) string {
	scope, _ := ctx.Value(scopeKey{}).(string)
	return scope
}

type EventEncoder interface {
	Encode(ctx context.Context, ev events.DomainEvent) (EventRecord, error)
}

type JSONEventEncoder struct {
	IDGenerator func() string
	// RequestID, when set, copies a correlation id from ctx into the headers.
	RequestID func(ctx context.Context) string
}

func (e JSONEventEncoder) Encode(ctx context.Context, ev events.DomainEvent) (EventRecord, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return EventRecord{}, err
	}
	idGen := e.IDGenerator
	if idGen == nil {
		idGen = uuid.NewString
	}
	headers := map[string]string{}
	if e.RequestID != nil {
		if id := e.RequestID(ctx); id != "" {
			headers["x-request-id"] = id
		}
	}
	return EventRecord{
		ID:         idGen(),
		Name:       ev.EventName(),
		Payload:    payload,
		OccurredAt: ev.OccurredAt(),
		Aggregate:  ev.AggregateID(),
		Headers:    headers,
	}, nil
}

func RecordDomainEvents(ctx context.Context, box Outbox, encoder EventEncoder, evs []events.DomainEvent) error {
	if box == nil || len(evs) == 0 {
		return nil
	}
	if encoder == nil {
		encoder = JSONEventEncoder{}
	}
	for _, ev := range evs {
		rec, err := encoder.Encode(ctx, ev)
		if err != nil {
			return err
		}
		if err := box.Add(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
