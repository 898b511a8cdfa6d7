package common

import "errors"

var (
	// Client-side validation failed; no request was sent.
	ErrValidation = errors.New("validation error")

	// Transport errors (request never got an HTTP response).
	ErrUnavailable = errors.New("server unavailable")

	// Response-level errors mapped from HTTP status codes.
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")

	// Upload sequence errors.
	ErrUploadFailed = errors.New("upload failed")
	ErrSlotNotFound = errors.New("slot not found")

	// Form controller errors.
	ErrSubmitInFlight = errors.New("submission already in progress")
	ErrCanceled       = errors.New("canceled by user")
)
