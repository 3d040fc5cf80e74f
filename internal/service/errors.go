package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Platform Errors =====
var (
	ErrPlatformNotFound     = errors.New("platform not found")
	ErrPlatformNameRequired = errors.New("platform name is required")
	ErrMaxRatingInvalid     = errors.New("platform max rating must be positive")
	ErrNoPlatformRatings    = errors.New("no ratings available for platform")
)

// ===== User Errors =====
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserIDRequired = errors.New("user id is required")
)
