package toggle_service

import "errors"

var (
	// ErrDraftNotFound is returned when the draft does not exist or expired
	ErrDraftNotFound = errors.New("toggle_service: draft not found")

	// ErrAccessDenied is returned when the draft belongs to another user
	ErrAccessDenied = errors.New("toggle_service: access denied")

	// ErrUnknownService is returned for a service id missing from the draft catalog
	ErrUnknownService = errors.New("toggle_service: unknown service")

	// ErrSubmitInProgress is returned while a booking is being submitted
	ErrSubmitInProgress = errors.New("toggle_service: booking submission in progress")

	// ErrInvalidInput is returned for a malformed request
	ErrInvalidInput = errors.New("toggle_service: invalid input")

	// ErrInternal is returned for storage failures
	ErrInternal = errors.New("toggle_service: internal error")
)
