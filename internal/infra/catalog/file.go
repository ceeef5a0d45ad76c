package catalog

import (
	"context"
	"fmt"
	"os"

	"bnb/internal/app/policies"
	domainlistings "bnb/internal/domain/listings"
)

// FileSource reads the data document from local disk on every Load.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Load(ctx context.Context) (domainlistings.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return domainlistings.Catalog{}, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return domainlistings.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return Decode(s.Path, data)
}

var _ policies.CatalogSource = FileSource{}
