package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"labequip/storefront/internal/api/middleware"
	"labequip/storefront/internal/api/request"
	"labequip/storefront/internal/api/response"
	"labequip/storefront/internal/catalog"
	"labequip/storefront/internal/domain"
	"labequip/storefront/internal/rfq"
	"labequip/storefront/internal/taxonomy"
)

type productView struct {
	domain.Product
	TypeLabel     string `json:"type_label"`
	CategoryLabel string `json:"category_label"`
}

type productList struct {
	Criteria catalog.Criteria `json:"criteria"`
	Items    []productView    `json:"items"`
	Count    int              `json:"count"`
	Total    int              `json:"total"`
}

type productDetail struct {
	productView
	InCart bool `json:"in_cart"`
}

type Catalog struct {
	catalog  *catalog.Catalog
	tax      *taxonomy.Taxonomy
	sessions *rfq.Sessions
}

func NewCatalog(c *catalog.Catalog, tax *taxonomy.Taxonomy, sessions *rfq.Sessions) *Catalog {
	return &Catalog{catalog: c, tax: tax, sessions: sessions}
}

func (h *Catalog) view(p domain.Product, lang domain.Language) productView {
	return productView{
		Product:       p,
		TypeLabel:     h.tax.DisplayLabel(p.Type, lang),
		CategoryLabel: h.tax.CategoryLabel(p.Category, lang),
	}
}

// List filters the catalog with the deep-link query parameters
func (h *Catalog) List(w http.ResponseWriter, r *http.Request) {
	lang := request.Language(r)
	criteria := catalog.CriteriaFromQuery(r.URL.Query())

	products := h.catalog.Search(criteria)
	items := make([]productView, 0, len(products))
	for _, p := range products {
		items = append(items, h.view(p, lang))
	}

	response.WriteJSON(w, http.StatusOK, productList{
		Criteria: criteria,
		Items:    items,
		Count:    len(items),
		Total:    h.catalog.Len(),
	})
}

func (h *Catalog) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, ok := h.catalog.Find(id)
	if !ok {
		response.WriteError(w, http.StatusNotFound, "product not found")
		return
	}

	detail := productDetail{productView: h.view(p, request.Language(r))}

	// The badge is a convenience; a session store outage must not hide the product
	if inCart, err := h.sessions.Contains(r.Context(), middleware.SessionID(r.Context()), p.ID); err == nil {
		detail.InCart = inCart
	}

	response.WriteJSON(w, http.StatusOK, detail)
}
