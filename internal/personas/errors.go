package personas

import (
	"errors"
	"net/http"
)

// Domain errors for persona prompt operations.
var (
	ErrNotFound       = errors.New("persona prompt not found")
	ErrDuplicate      = errors.New("persona prompt name already exists")
	ErrInvalidPersona = errors.New("unknown persona")
)

// MapHTTPStatus maps persona domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidPersona) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
