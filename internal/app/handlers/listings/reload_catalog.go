package listings

import (
	"context"
	"fmt"
	"time"

	"bnb/internal/app/commands"
	"bnb/internal/app/outbox"
	"bnb/internal/app/policies"
	domainlistings "bnb/internal/domain/listings"
	"bnb/internal/domain/shared/events"
)

const reloadCatalogKey = "listings.reload"

// ReloadCatalogCommand fetches the data document again and swaps it in. A
// failed fetch leaves the served document untouched.
type ReloadCatalogCommand struct{}

func (c ReloadCatalogCommand) Key() string { return reloadCatalogKey }

func (ReloadCatalogCommand) AdminOnly() {}

type ReloadCatalogResult struct {
	Source string `json:"source"`
	Rooms  int    `json:"rooms"`
}

type ReloadCatalogHandler struct {
	Source  policies.CatalogSource
	Catalog policies.CatalogStore
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Now     func() time.Time
}

func (h *ReloadCatalogHandler) Handle(ctx context.Context, _ ReloadCatalogCommand) (ReloadCatalogResult, error) {
	catalog, err := h.Source.Load(ctx)
	if err != nil {
		return ReloadCatalogResult{}, fmt.Errorf("load catalog from %s: %w", h.Source.Name(), err)
	}
	if err := h.Catalog.Replace(ctx, catalog); err != nil {
		return ReloadCatalogResult{}, err
	}

	var rec events.Recorder
	rec.Record(domainlistings.CatalogReloaded{
		Source: h.Source.Name(),
		Rooms:  len(catalog.Rooms),
		At:     h.now(),
	})
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, rec.Drain()); err != nil {
		return ReloadCatalogResult{}, err
	}
	return ReloadCatalogResult{Source: h.Source.Name(), Rooms: len(catalog.Rooms)}, nil
}

func (h *ReloadCatalogHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[ReloadCatalogCommand, ReloadCatalogResult] = (*ReloadCatalogHandler)(nil)
