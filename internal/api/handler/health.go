package handler

import (
	"net/http"

	"labequip/storefront/internal/api/response"
)

func Healthz(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
