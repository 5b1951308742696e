package submit_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/internal/integrations/bookingapi"
)

// BookingAPIClient creates bookings in the booking API
type BookingAPIClient interface {
	CreateBooking(ctx context.Context, req bookingapi.CreateBookingRequest) (*domain.Booking, error)
}

// DraftRepository stores drafts between requests
type DraftRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*calendar.Draft, error)
	Save(ctx context.Context, d *calendar.Draft) error
}

// Metrics counts submissions by result
type Metrics interface {
	IncBookingSubmitted(result string)
}

// TimeProvider returns the current time
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production TimeProvider
type RealTimeProvider struct{}

// Now returns time.Now()
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
