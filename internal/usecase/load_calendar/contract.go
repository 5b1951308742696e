package load_calendar

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
)

// BookingAPIClient is the part of the booking API the fetch cycle reads
type BookingAPIClient interface {
	ListAvailability(ctx context.Context) ([]domain.AvailabilityWindow, error)
	ListAllBookings(ctx context.Context) ([]domain.Booking, error)
	ListMyBookings(ctx context.Context) ([]domain.Booking, error)
	ListServices(ctx context.Context) ([]domain.Service, error)
}

// DraftRepository stores drafts between requests
type DraftRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*calendar.Draft, error)
	Save(ctx context.Context, d *calendar.Draft) error
}

// Metrics records snapshot sizes
type Metrics interface {
	ObserveEvents(kind string, count int)
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
