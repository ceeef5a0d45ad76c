package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	domainlistings "bnb/internal/domain/listings"
)

var ErrUnsupportedFormat = errors.New("catalog: unsupported document format")

// Decode parses a data document. The format is picked from the extension of
// name: .json, .yaml or .yml.
func Decode(name string, data []byte) (domainlistings.Catalog, error) {
	var c domainlistings.Catalog
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&c); err != nil {
			return domainlistings.Catalog{}, fmt.Errorf("decode %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return domainlistings.Catalog{}, fmt.Errorf("decode %s: %w", name, err)
		}
	default:
		return domainlistings.Catalog{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	return c, nil
}
