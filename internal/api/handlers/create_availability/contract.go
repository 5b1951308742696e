package create_availability

import (
	"context"

	"github.com/m04kA/SMC-BookingCalendar/internal/service/bookings/models"
)

type AvailabilityService interface {
	CreateAvailability(ctx context.Context, req *models.CreateAvailabilityRequest, draft *models.DraftRef) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
