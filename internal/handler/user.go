package handler

import (
	"net/http"

	"github.com/codeclimb/unirank/api/internal/model"
	"github.com/codeclimb/unirank/api/internal/service"
)

// UserHandler handles user HTTP requests
type UserHandler struct {
	registry *service.RegistryService
}

// NewUserHandler creates a new user handler
func NewUserHandler(registry *service.RegistryService) *UserHandler {
	return &UserHandler{registry: registry}
}

// Get handles GET /v1/users/{userId}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("userId")

	user, err := h.registry.GetUser(ctx, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, user, nil)
}

// RecordRating handles PUT /v1/users/{userId}/ratings/{platform}
func (h *UserHandler) RecordRating(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("userId")
	platform := r.PathValue("platform")

	var req model.RecordRatingRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.registry.RecordUserRating(ctx, userID, platform, req.Rating); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	user, err := h.registry.GetUser(ctx, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, user, nil)
}
