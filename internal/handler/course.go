package handler

import (
	"net/http"

	"github.com/codeclimb/unirank/api/internal/model"
	"github.com/codeclimb/unirank/api/internal/service"
)

// CourseHandler handles course completion HTTP requests
type CourseHandler struct {
	registry *service.RegistryService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(registry *service.RegistryService) *CourseHandler {
	return &CourseHandler{registry: registry}
}

// RecordCompletions handles POST /v1/courses/completions
func (h *CourseHandler) RecordCompletions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RecordCompletionsRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	created, err := h.registry.RecordCompletions(ctx, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusCreated, created, len(created))
}
