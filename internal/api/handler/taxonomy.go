package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"labequip/storefront/internal/api/request"
	"labequip/storefront/internal/api/response"
	"labequip/storefront/internal/domain"
	"labequip/storefront/internal/taxonomy"
)

type categoryView struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
	Types       []typeView `json:"types"`
}

type typeView struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	FullName string `json:"full_name"`
	Category string `json:"category"`
}

func newTypeView(t domain.EquipmentType, lang domain.Language) typeView {
	return typeView{
		Key:      t.Key,
		Label:    t.DisplayLabel(lang),
		FullName: t.FullName,
		Category: t.Category,
	}
}

type Taxonomy struct {
	tax *taxonomy.Taxonomy
}

func NewTaxonomy(tax *taxonomy.Taxonomy) *Taxonomy {
	return &Taxonomy{tax: tax}
}

func (h *Taxonomy) Tree(w http.ResponseWriter, r *http.Request) {
	lang := request.Language(r)

	nodes := h.tax.Tree()
	categories := make([]categoryView, 0, len(nodes))
	for _, n := range nodes {
		view := categoryView{
			ID:          n.ID,
			Label:       n.DisplayLabel(lang),
			Description: n.Description,
			Types:       make([]typeView, 0, len(n.Types)),
		}
		for _, t := range n.Types {
			view.Types = append(view.Types, newTypeView(t, lang))
		}
		categories = append(categories, view)
	}

	response.WriteList(w, http.StatusOK, categories)
}

// Type resolves an equipment type key. Unknown keys answer 404 with the raw key as label.
func (h *Taxonomy) Type(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	lang := request.Language(r)

	t, ok := h.tax.LookupType(key)
	if !ok {
		response.WriteJSON(w, http.StatusNotFound, map[string]string{
			"error": "unknown equipment type",
			"key":   key,
			"label": h.tax.DisplayLabel(key, lang),
		})
		return
	}

	response.WriteJSON(w, http.StatusOK, newTypeView(t, lang))
}
