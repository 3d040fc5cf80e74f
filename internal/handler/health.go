package handler

import (
	"net/http"

	"github.com/codeclimb/unirank/api/internal/service"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	registry *service.RegistryService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(registry *service.RegistryService) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	platforms, users := h.registry.Counts(r.Context())
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"platforms": platforms,
		"users":     users,
	})
}
