package model

import "time"

// Course represents an immutable completion fact: a user finished a course
// from a source on a date. The same course_id may appear for many users, or
// repeatedly for one user if the caller resubmits; no de-duplication is
// performed.
type Course struct {
	ID               string     `json:"id"` // record ID, unique per (user, completion event)
	CourseID         string     `json:"course_id"`
	Name             string     `json:"name"`
	Source           string     `json:"source"`
	Topic            string     `json:"topic"`
	CompletionDate   time.Time  `json:"completion_date"`
	Verified         bool       `json:"verified"`
	VerificationDate *time.Time `json:"verification_date,omitempty"`
}

// DaysSinceCompletion returns the age of the completion in whole days.
// Recomputed on every read, so bonus values drift downward over wall-clock
// time even without new input.
func (c *Course) DaysSinceCompletion(now time.Time) int {
	return int(now.Sub(c.CompletionDate).Hours() / 24)
}

// Validation constants
const (
	MaxCourseNameLength = 200
	MaxCourseIDLength   = 100
)

// RecordCompletionsRequest is the payload for recording one course
// completion for a list of users. Verified defaults to true when omitted;
// when certificate data is supplied, the per-source verifier decides.
type RecordCompletionsRequest struct {
	CourseID       string            `json:"course_id"`
	Name           string            `json:"name"`
	Source         string            `json:"source"`
	Topic          string            `json:"topic"`
	CompletionDate time.Time         `json:"completion_date"`
	UserIDs        []string          `json:"user_ids"`
	Verified       *bool             `json:"verified,omitempty"`
	Certificate    map[string]string `json:"certificate,omitempty"`
}

// Validate checks the completion payload
func (r *RecordCompletionsRequest) Validate() []FieldError {
	var errors []FieldError
	if r.CourseID == "" {
		errors = append(errors, FieldError{Field: "course_id", Message: "course_id is required"})
	}
	if len(r.CourseID) > MaxCourseIDLength {
		errors = append(errors, FieldError{Field: "course_id", Message: "course_id exceeds maximum length"})
	}
	if len(r.Name) > MaxCourseNameLength {
		errors = append(errors, FieldError{Field: "name", Message: "name exceeds maximum length"})
	}
	if len(r.UserIDs) == 0 {
		errors = append(errors, FieldError{Field: "user_ids", Message: "at least one user_id is required"})
	}
	for _, id := range r.UserIDs {
		if id == "" {
			errors = append(errors, FieldError{Field: "user_ids", Message: "user_ids must not contain empty entries"})
			break
		}
	}
	if r.CompletionDate.IsZero() {
		errors = append(errors, FieldError{Field: "completion_date", Message: "completion_date is required"})
	}
	return errors
}
