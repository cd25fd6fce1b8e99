package taxonomy

import (
	"labequip/storefront/internal/domain"
)

// Taxonomy is the two-level category -> equipment type classification.
// It is immutable after New and safe for concurrent reads.
type Taxonomy struct {
	categories []domain.Category
	types      []domain.EquipmentType

	categoryByID map[string]domain.Category
	typeByKey    map[string]domain.EquipmentType
}

// CategoryNode is a category together with its equipment types, in declaration order
type CategoryNode struct {
	domain.Category
	Types []domain.EquipmentType `json:"types"`
}

func New(categories []domain.Category, types []domain.EquipmentType) *Taxonomy {
	t := &Taxonomy{
		categories:   categories,
		types:        types,
		categoryByID: make(map[string]domain.Category, len(categories)),
		typeByKey:    make(map[string]domain.EquipmentType, len(types)),
	}

	for _, c := range categories {
		t.categoryByID[c.ID] = c
	}
	for _, et := range types {
		t.typeByKey[et.Key] = et
	}

	return t
}

func (t *Taxonomy) Categories() []domain.Category {
	return append([]domain.Category(nil), t.categories...)
}

func (t *Taxonomy) Types() []domain.EquipmentType {
	return append([]domain.EquipmentType(nil), t.types...)
}

func (t *Taxonomy) LookupCategory(id string) (domain.Category, bool) {
	c, ok := t.categoryByID[id]
	return c, ok
}

func (t *Taxonomy) LookupType(key string) (domain.EquipmentType, bool) {
	et, ok := t.typeByKey[key]
	return et, ok
}

// TypesOf returns the equipment types of a category. Unknown categories have none.
func (t *Taxonomy) TypesOf(categoryID string) []domain.EquipmentType {
	var result []domain.EquipmentType
	for _, et := range t.types {
		if et.Category == categoryID {
			result = append(result, et)
		}
	}
	return result
}

// DisplayLabel resolves an equipment type key for display, falling back to the raw key
func (t *Taxonomy) DisplayLabel(key string, lang domain.Language) string {
	if et, ok := t.typeByKey[key]; ok {
		return et.DisplayLabel(lang)
	}
	return key
}

// CategoryLabel resolves a category ID for display, falling back to the raw ID
func (t *Taxonomy) CategoryLabel(id string, lang domain.Language) string {
	if c, ok := t.categoryByID[id]; ok {
		return c.DisplayLabel(lang)
	}
	return id
}

func (t *Taxonomy) Tree() []CategoryNode {
	nodes := make([]CategoryNode, 0, len(t.categories))
	for _, c := range t.categories {
		nodes = append(nodes, CategoryNode{
			Category: c,
			Types:    t.TypesOf(c.ID),
		})
	}
	return nodes
}
