package api

import (
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/common"
)

// APIError represents a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
	// LoginRequired is set when the backend answered with its login page
	// instead of the resource.
	LoginRequired bool
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// Unwrap maps well-known statuses onto the common sentinels so callers can
// use errors.Is.
func (e *APIError) Unwrap() error {
	if e.LoginRequired {
		return common.ErrUnauthorized
	}
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return common.ErrUnauthorized
	case http.StatusConflict:
		return common.ErrConflict
	case http.StatusNotFound:
		return common.ErrNotFound
	}
	return nil
}

// ServerMessage returns the message the backend supplied, if any.
func (e *APIError) ServerMessage() string {
	return e.Message
}
