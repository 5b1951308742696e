package select_slot

import "errors"

var (
	// ErrDraftNotFound is returned when the draft does not exist or expired
	ErrDraftNotFound = errors.New("select_slot: draft not found")

	// ErrAccessDenied is returned when the draft belongs to another user
	ErrAccessDenied = errors.New("select_slot: access denied")

	// ErrNoServices is returned when a slot is clicked before any service with a duration is selected
	ErrNoServices = errors.New("select_slot: select at least one service first")

	// ErrOverlapsBooking is returned when the proposed range overlaps an existing booking
	ErrOverlapsBooking = errors.New("select_slot: time overlaps an existing booking")

	// ErrSubmitInProgress is returned while a booking is being submitted
	ErrSubmitInProgress = errors.New("select_slot: booking submission in progress")

	// ErrInvalidInput is returned for a malformed request
	ErrInvalidInput = errors.New("select_slot: invalid input")

	// ErrInternal is returned for storage failures
	ErrInternal = errors.New("select_slot: internal error")
)

// Rejection reasons reported to metrics
const (
	reasonNoServices = "no_services"
	reasonOverlap    = "overlap"
	reasonRange      = "invalid_range"
)
