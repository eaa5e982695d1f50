package api

import (
	"net/http"
	"time"

	"github.com/vgwingman/wingman/internal/api/respond"
	"github.com/vgwingman/wingman/internal/store"
)

type HealthHandler struct {
	store store.Store
}

func NewHealthHandler(store store.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// CheckHealth GET /v0/health
// Always returns 200; body reports healthy/unhealthy.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if err := h.store.HealthPing(r.Context()); err != nil {
		status = "unhealthy"
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
