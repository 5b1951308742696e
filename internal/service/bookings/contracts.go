package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/internal/integrations/bookingapi"
)

// BookingAPIClient is the part of the booking API used for booking detail and admin operations
type BookingAPIClient interface {
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, id int64, req bookingapi.UpdateBookingRequest) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	ListAllBookings(ctx context.Context) ([]domain.Booking, error)
	CreateAvailability(ctx context.Context, window domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
}

// DraftRepository loads and stores the admin's calendar draft so an admin change shows up in it
type DraftRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*calendar.Draft, error)
	Save(ctx context.Context, d *calendar.Draft) error
}

// Logger is the logging interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
