package calendar

import "errors"

var (
	// ErrUnknownService is returned when toggling a service that is not in the catalog
	ErrUnknownService = errors.New("calendar: unknown service")

	// ErrNoWorktime is returned when a slot is selected before any service with a duration
	ErrNoWorktime = errors.New("calendar: no services selected")

	// ErrSelectionOverlaps is returned when the chosen range overlaps a booked event
	ErrSelectionOverlaps = errors.New("calendar: selected time overlaps an existing booking")

	// ErrInvalidRange is returned for a dragged range that does not end after it starts
	ErrInvalidRange = errors.New("calendar: selected range must end after it starts")

	// ErrValidation wraps submission precondition failures; the wrapped message is shown to the user
	ErrValidation = errors.New("calendar: validation failed")

	// ErrSubmitInProgress is returned when a submission is started while another one is in flight
	ErrSubmitInProgress = errors.New("calendar: submission already in progress")
)

// ValidationError carries the user-facing message of a failed submission precondition.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
