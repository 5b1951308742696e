package delete_booking

import (
	"context"

	"github.com/m04kA/SMC-BookingCalendar/internal/service/bookings/models"
)

type BookingService interface {
	Delete(ctx context.Context, id int64, draft *models.DraftRef) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
