package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"labequip/storefront/internal/api/middleware"
	"labequip/storefront/internal/api/request"
	"labequip/storefront/internal/api/response"
	"labequip/storefront/internal/catalog"
	"labequip/storefront/internal/config"
	"labequip/storefront/internal/domain"
	"labequip/storefront/internal/rfq"
)

const sessionUnavailable = "RFQ list is temporarily unavailable"

type cartView struct {
	Items []domain.LineItem `json:"items"`
	Count int               `json:"count"`
	Added *bool             `json:"added,omitempty"`
}

func newCartView(items []domain.LineItem) cartView {
	if items == nil {
		items = []domain.LineItem{}
	}
	return cartView{Items: items, Count: len(items)}
}

type RFQ struct {
	sessions *rfq.Sessions
	catalog  *catalog.Catalog
	cfg      config.SessionConfig
}

func NewRFQ(sessions *rfq.Sessions, c *catalog.Catalog, cfg config.SessionConfig) *RFQ {
	return &RFQ{sessions: sessions, catalog: c, cfg: cfg}
}

func (h *RFQ) Get(w http.ResponseWriter, r *http.Request) {
	items, err := h.sessions.Items(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		log.Errorf("❌ Failed to load RFQ list: %v", err)
		response.WriteError(w, http.StatusServiceUnavailable, sessionUnavailable)
		return
	}

	response.WriteJSON(w, http.StatusOK, newCartView(items))
}

// Add puts a catalog product on the RFQ list. Adding a product that is already listed is a no-op.
func (h *RFQ) Add(w http.ResponseWriter, r *http.Request) {
	var req request.AddRFQItem
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, ok := h.catalog.Find(req.ProductID)
	if !ok {
		response.WriteError(w, http.StatusNotFound, "product not found")
		return
	}

	items, added, err := h.sessions.Add(r.Context(), middleware.SessionID(r.Context()), p.LineItem())
	if err != nil {
		log.Errorf("❌ Failed to add %s to RFQ list: %v", p.ID, err)
		response.WriteError(w, http.StatusServiceUnavailable, sessionUnavailable)
		return
	}

	view := newCartView(items)
	view.Added = &added
	response.WriteJSON(w, http.StatusOK, view)
}

func (h *RFQ) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.sessions.Remove(r.Context(), middleware.SessionID(r.Context()), id)
	if err != nil {
		log.Errorf("❌ Failed to remove %s from RFQ list: %v", id, err)
		response.WriteError(w, http.StatusServiceUnavailable, sessionUnavailable)
		return
	}

	response.WriteJSON(w, http.StatusOK, newCartView(items))
}

func (h *RFQ) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(r.Context(), middleware.SessionID(r.Context())); err != nil {
		log.Errorf("❌ Failed to clear RFQ list: %v", err)
		response.WriteError(w, http.StatusServiceUnavailable, sessionUnavailable)
		return
	}

	response.WriteJSON(w, http.StatusOK, newCartView(nil))
}

// EndSession discards the visitor's cart and cookie
func (h *RFQ) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(r.Context(), middleware.SessionID(r.Context())); err != nil {
		log.Errorf("❌ Failed to end session: %v", err)
		response.WriteError(w, http.StatusServiceUnavailable, sessionUnavailable)
		return
	}

	middleware.ExpireSession(w, h.cfg)
	w.WriteHeader(http.StatusNoContent)
}
