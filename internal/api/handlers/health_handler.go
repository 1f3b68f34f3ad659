package handlers

import "net/http"

// HealthHandler reports engine readiness.
type HealthHandler struct {
	ready func() bool
}

// NewHealthHandler creates a health handler. The ready probe reports whether
// the chunk snapshot is loaded and the engine can answer.
func NewHealthHandler(ready func() bool) *HealthHandler {
	return &HealthHandler{ready: ready}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil && !h.ready() {
		respondWithError(w, http.StatusServiceUnavailable, "engine not initialized")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
