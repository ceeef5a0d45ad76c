package policies

import (
	"context"

	domainlistings "bnb/internal/domain/listings"
)

// CatalogSource fetches the site data document from wherever it lives.
type CatalogSource interface {
	Name() string
	Load(ctx context.Context) (domainlistings.Catalog, error)
}

// CatalogStore holds the document currently being served.
type CatalogStore interface {
	Current(ctx context.Context) (domainlistings.Catalog, error)
	Replace(ctx context.Context, catalog domainlistings.Catalog) error
}
