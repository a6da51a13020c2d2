package handlers

import (
	"net/http"

	"github.com/bookverse/bookverse-api/internal/transport/http/response"
)

// Health handles GET /healthz.
func Health(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
