package load_calendar

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingCalendar/internal/integrations/bookingapi"
)

var (
	// ErrDraftNotFound is returned when refreshing a draft that does not exist or expired
	ErrDraftNotFound = errors.New("load_calendar: draft not found")

	// ErrAccessDenied is returned when the draft belongs to another user
	ErrAccessDenied = errors.New("load_calendar: access denied")

	// ErrSessionExpired is returned when the booking API rejected the credentials and refresh failed
	ErrSessionExpired = errors.New("load_calendar: session expired")

	// ErrUpstream is returned when the booking API could not be read
	ErrUpstream = errors.New("load_calendar: booking API unavailable")

	// ErrInternal is returned for storage failures
	ErrInternal = errors.New("load_calendar: internal error")
)

func mapUpstreamError(op string, err error) error {
	if errors.Is(err, bookingapi.ErrSessionExpired) {
		return fmt.Errorf("%w: %s: %v", ErrSessionExpired, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrUpstream, op, err)
}
