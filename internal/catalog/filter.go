package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"labequip/storefront/internal/domain"
)

// All is the sentinel for "no constraint" on category and type
const All = "all"

type Criteria struct {
	Search      string `json:"search"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	InStockOnly bool   `json:"in_stock_only"`
}

// CriteriaFromQuery maps deep-link query parameters (?category=, ?type=, ?q=, ?inStock=) to criteria
func CriteriaFromQuery(values url.Values) Criteria {
	search := values.Get("q")
	if search == "" {
		search = values.Get("search")
	}

	inStock, _ := strconv.ParseBool(values.Get("inStock"))

	return Criteria{
		Search:      strings.TrimSpace(search),
		Category:    orAll(values.Get("category")),
		Type:        orAll(values.Get("type")),
		InStockOnly: inStock,
	}
}

// Filter returns the products matching every criterion, in catalog order.
// The result is never nil.
func Filter(products []domain.Product, criteria Criteria) []domain.Product {
	folder := cases.Fold()
	needle := folder.String(criteria.Search)
	category := orAll(criteria.Category)
	equipmentType := orAll(criteria.Type)

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != All && p.Category != category {
			continue
		}
		if equipmentType != All && p.Type != equipmentType {
			continue
		}
		if criteria.InStockOnly && !p.InStock {
			continue
		}
		if needle != "" && !matchesText(folder, p, needle) {
			continue
		}
		result = append(result, p)
	}

	return result
}

func matchesText(folder cases.Caser, p domain.Product, needle string) bool {
	for _, field := range []string{p.Name, p.Model, p.Brand} {
		if strings.Contains(folder.String(field), needle) {
			return true
		}
	}
	return false
}

func orAll(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return All
	}
	return value
}
