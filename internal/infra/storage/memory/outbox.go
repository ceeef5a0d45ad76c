package memory

import (
	"context"
	"errors"
	"sync"

	appoutbox "bnb/internal/app/outbox"
)

// Relay delivers one record to the outside world.
type Relay interface {
	Deliver(ctx context.Context, record appoutbox.EventRecord) error
}

// Outbox keeps records in memory, grouped by the command scope on the
// context, and hands a scope's records to the relay on Flush. Without a
// relay, Flush just drops them.
type Outbox struct {
	mu      sync.Mutex
	pending map[string][]appoutbox.EventRecord
	relay   Relay
}

func NewOutbox(relay Relay) *Outbox {
	return &Outbox{pending: make(map[string][]appoutbox.EventRecord), relay: relay}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	scope := appoutbox.ScopeFromContext(ctx)
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending[scope] = append(o.pending[scope], record)
	return nil
}

// Flush delivers every record of the caller's scope once. Records that fail
// are not retried; their errors are joined into the result.
func (o *Outbox) Flush(ctx context.Context) error {
	pending := o.take(ctx)
	if o.relay == nil {
		return nil
	}
	var errs []error
	for _, rec := range pending {
		if err := o.relay.Deliver(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops the caller's scope without delivering it.
func (o *Outbox) Discard(ctx context.Context) error {
	o.take(ctx)
	return nil
}

func (o *Outbox) take(ctx context.Context) []appoutbox.EventRecord {
	scope := appoutbox.ScopeFromContext(ctx)
	o.mu.Lock()
	defer o.mu.Unlock()
	pending := o.pending[scope]
	delete(o.pending, scope)
	return pending
}

// Pending reports how many records wait across all scopes.
func (o *Outbox) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, recs := range o.pending {
		n += len(recs)
	}
	return n
}

var _ appoutbox.Outbox = (*Outbox)(nil)
