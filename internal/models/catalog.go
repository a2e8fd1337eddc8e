package models

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// Catalog is a read-only table of known products keyed by base id
type Catalog struct {
	products []ProductRecord
	byID     map[string]int
}

type catalogFile struct {
	Products []ProductRecord `yaml:"products"`
}

// NewCatalog validates the records and builds a catalog preserving their order
func NewCatalog(products []ProductRecord) (*Catalog, error) {
	c := &Catalog{
		products: make([]ProductRecord, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}

	for _, p := range products {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byID[p.BaseID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProduct, p.BaseID)
		}
		c.byID[p.BaseID] = len(c.products)
		c.products = append(c.products, p)
	}

	return c, nil
}

// ParseCatalog decodes a YAML catalog document
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return NewCatalog(f.Products)
}

// DefaultCatalog returns the storefront catalog embedded in the binary.
// It is decoded once per process.
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = ParseCatalog(catalogYAML)
	})
	return defaultCatalog, defaultCatalogErr
}

// MustDefaultCatalog is DefaultCatalog for callers that cannot proceed without it
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the product with the given base id
func (c *Catalog) Lookup(baseID string) (ProductRecord, error) {
	i, ok := c.byID[baseID]
	if !ok {
		return ProductRecord{}, fmt.Errorf("%w: %q", ErrProductNotFound, baseID)
	}
	return c.products[i], nil
}

// Products returns a copy of all products in catalog order
func (c *Catalog) Products() []ProductRecord {
	out := make([]ProductRecord, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}
