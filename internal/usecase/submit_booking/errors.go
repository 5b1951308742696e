package submit_booking

import "errors"

var (
	// ErrDraftNotFound is returned when the draft does not exist or expired
	ErrDraftNotFound = errors.New("submit_booking: draft not found")

	// ErrAccessDenied is returned when the draft belongs to another user
	ErrAccessDenied = errors.New("submit_booking: access denied")

	// ErrValidation is returned when the selection is not ready; no request is sent
	ErrValidation = errors.New("submit_booking: validation failed")

	// ErrSubmitInProgress is returned when the draft is already being submitted
	ErrSubmitInProgress = errors.New("submit_booking: submission already in progress")

	// ErrRejected is returned when the booking API refused the booking
	ErrRejected = errors.New("submit_booking: booking rejected")

	// ErrSessionExpired is returned when the credentials were rejected and could not be refreshed
	ErrSessionExpired = errors.New("submit_booking: session expired")

	// ErrUpstream is returned when the booking API could not be reached
	ErrUpstream = errors.New("submit_booking: booking API unavailable")

	// ErrInvalidInput is returned for a malformed request
	ErrInvalidInput = errors.New("submit_booking: invalid input")

	// ErrInternal is returned for storage failures
	ErrInternal = errors.New("submit_booking: internal error")
)

// Submission results reported to metrics
const (
	resultSuccess  = "success"
	resultInvalid  = "invalid"
	resultRejected = "rejected"
	resultFailed   = "failed"
)
