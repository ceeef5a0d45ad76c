package listings

import (
	"time"
)

// CatalogReloaded is recorded whenever a fresh data document replaces the
// one being served.
type CatalogReloaded struct {
	Source string    `json:"source"`
	Rooms  int       `json:"rooms"`
	At     time.Time `json:"at"`
}

func (e CatalogReloaded) EventName() string     { return "catalog.reloaded" }
func (e CatalogReloaded) AggregateID() string   { return e.Source }
func (e CatalogReloaded) OccurredAt() time.Time { return e.At }
