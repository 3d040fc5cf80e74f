package handler

import (
	"errors"

	"github.com/codeclimb/unirank/api/internal/model"
	"github.com/codeclimb/unirank/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrPlatformNotFound):
		return model.NewNotFoundError("platform")
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrNoPlatformRatings):
		return model.NewNotFoundError("platform ratings")

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrPlatformNameRequired),
		errors.Is(err, service.ErrMaxRatingInvalid):
		return model.NewValidationError([]model.FieldError{{Field: "platform", Message: err.Error()}})
	case errors.Is(err, service.ErrUserIDRequired):
		return model.NewValidationError([]model.FieldError{{Field: "user_id", Message: err.Error()}})

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}
