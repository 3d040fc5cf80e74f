package handler

import (
	"net/http"

	"github.com/codeclimb/unirank/api/internal/model"
	"github.com/codeclimb/unirank/api/internal/service"
)

// PlatformHandler handles platform HTTP requests
type PlatformHandler struct {
	registry  *service.RegistryService
	analytics *service.AnalyticsService
}

// NewPlatformHandler creates a new platform handler
func NewPlatformHandler(registry *service.RegistryService, analytics *service.AnalyticsService) *PlatformHandler {
	return &PlatformHandler{registry: registry, analytics: analytics}
}

// Register handles POST /v1/platforms
func (h *PlatformHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterPlatformRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	platform, err := h.registry.RegisterPlatform(ctx, req.Name, req.MaxRating)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, platform, nil)
}

// ApplySnapshot handles POST /v1/platforms/{name}/snapshots
func (h *PlatformHandler) ApplySnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("name")

	var req model.SnapshotRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.registry.ApplySnapshot(ctx, name, req.Difficulty, req.Participation, req.Ratings); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Stats handles GET /v1/platforms/{name}/stats
func (h *PlatformHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("name")

	stats, err := h.analytics.PlatformStats(ctx, name)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, stats, nil)
}
