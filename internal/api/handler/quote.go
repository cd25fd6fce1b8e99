package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"labequip/storefront/internal/api/middleware"
	"labequip/storefront/internal/api/request"
	"labequip/storefront/internal/api/response"
	"labequip/storefront/internal/domain"
	"labequip/storefront/internal/rfq"
	"labequip/storefront/internal/service"
)

type LeadSubmitter interface {
	Submit(ctx context.Context, lead *domain.Lead) error
}

type quoteAccepted struct {
	ID          string    `json:"id"`
	Items       int       `json:"items"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Quote struct {
	sessions *rfq.Sessions
	leads    LeadSubmitter
}

func NewQuote(sessions *rfq.Sessions, leads LeadSubmitter) *Quote {
	return &Quote{sessions: sessions, leads: leads}
}

// Submit turns the contact form and the session cart into a lead. The cart is cleared only
// once the lead has been accepted.
func (h *Quote) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitQuote
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID := middleware.SessionID(r.Context())
	items, err := h.sessions.Items(r.Context(), sessionID)
	if err != nil {
		log.Errorf("❌ Failed to load RFQ list for quote: %v", err)
		response.WriteError(w, http.StatusServiceUnavailable, sessionUnavailable)
		return
	}

	lead := req.Lead(items, request.Language(r))
	if err := h.leads.Submit(r.Context(), lead); err != nil {
		if errors.Is(err, service.ErrEmptyRequest) {
			response.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Errorf("❌ Failed to submit quote request: %v", err)
		response.WriteError(w, http.StatusServiceUnavailable, service.ErrUnavailable.Error())
		return
	}

	if err := h.sessions.Clear(r.Context(), sessionID); err != nil {
		log.Warnf("⚠️ Quote %s accepted but RFQ list was not cleared: %v", lead.ID, err)
	}

	response.WriteJSON(w, http.StatusCreated, quoteAccepted{
		ID:          lead.ID,
		Items:       len(lead.Items),
		SubmittedAt: lead.SubmittedAt,
	})
}
