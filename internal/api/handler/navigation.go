package handler

import (
	"net/http"

	"labequip/storefront/internal/api/request"
	"labequip/storefront/internal/api/response"
	"labequip/storefront/internal/navigation"
	"labequip/storefront/internal/taxonomy"
)

type Navigation struct {
	tax *taxonomy.Taxonomy
}

func NewNavigation(tax *taxonomy.Taxonomy) *Navigation {
	return &Navigation{tax: tax}
}

func (h *Navigation) Get(w http.ResponseWriter, r *http.Request) {
	response.WriteList(w, http.StatusOK, navigation.Build(h.tax, request.Language(r)))
}
