package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"bnb/internal/app/policies"
	domainlistings "bnb/internal/domain/listings"
)

// ErrCatalogNotLoaded is reported by Ready until the first successful load.
var ErrCatalogNotLoaded = errors.New("memory: catalog not loaded yet")

// CatalogStore keeps the served data document. Before the first load it
// serves an empty catalog so pages render with no rooms.
type CatalogStore struct {
	mu       sync.RWMutex
	catalog  domainlistings.Catalog
	loadedAt time.Time
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{}
}

func (s *CatalogStore) Current(ctx context.Context) (domainlistings.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, nil
}

// Replace swaps the whole document.
func (s *CatalogStore) Replace(ctx context.Context, catalog domainlistings.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog
	s.loadedAt = time.Now().UTC()
	return nil
}

func (s *CatalogStore) Ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loadedAt.IsZero() {
		return ErrCatalogNotLoaded
	}
	return nil
}

// LoadedAt is the time of the last successful Replace, zero before that.
func (s *CatalogStore) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

var _ policies.CatalogStore = (*CatalogStore)(nil)
