package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingCalendar/internal/integrations/bookingapi"
)

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAccessDenied is returned when the booking API refused the operation for this user
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrInvalidInput is returned for malformed input
	ErrInvalidInput = errors.New("bookings: invalid input")

	// ErrOverlapsBooking is returned when a new availability window overlaps an existing booking
	ErrOverlapsBooking = errors.New("bookings: availability overlaps an existing booking")

	// ErrRejected is returned when the booking API refused the payload
	ErrRejected = errors.New("bookings: rejected by booking API")

	// ErrSessionExpired is returned when the credentials were rejected and could not be refreshed
	ErrSessionExpired = errors.New("bookings: session expired")

	// ErrUpstream is returned when the booking API could not be reached or answered unexpectedly
	ErrUpstream = errors.New("bookings: booking API unavailable")
)

func mapUpstreamError(op string, err error) error {
	switch {
	case errors.Is(err, bookingapi.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrBookingNotFound, op)
	case errors.Is(err, bookingapi.ErrForbidden):
		return fmt.Errorf("%w: %s: %v", ErrAccessDenied, op, err)
	case errors.Is(err, bookingapi.ErrBadRequest):
		return fmt.Errorf("%w: %s: %v", ErrRejected, op, err)
	case errors.Is(err, bookingapi.ErrSessionExpired):
		return fmt.Errorf("%w: %s: %v", ErrSessionExpired, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrUpstream, op, err)
	}
}
