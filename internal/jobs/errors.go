package jobs

import (
	"errors"
	"net/http"
)

// Domain errors for job operations.
var (
	ErrNotFound      = errors.New("job not found")
	ErrDuplicate     = errors.New("job already exists")
	ErrMissingJobURL = errors.New("missing job_url")
	ErrMissingTitle  = errors.New("missing title")
	ErrMissingSite   = errors.New("site required")
	ErrInvalidRequest = errors.New("invalid request body")
)

// MapHTTPStatus maps job domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrMissingSite) || errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
