package catalog

import (
	"labequip/storefront/internal/domain"
)

// Catalog is the ordered, immutable product list
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

func New(products []domain.Product) *Catalog {
	c := &Catalog{
		products: products,
		byID:     make(map[string]int, len(products)),
	}

	for i, p := range products {
		// First occurrence wins; duplicates are reported by Validate.
		if _, exists := c.byID[p.ID]; !exists {
			c.byID[p.ID] = i
		}
	}

	return c
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func (c *Catalog) Find(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Search narrows the catalog with the given criteria, see Filter
func (c *Catalog) Search(criteria Criteria) []domain.Product {
	return Filter(c.products, criteria)
}
