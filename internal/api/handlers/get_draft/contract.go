package get_draft

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
)

type DraftService interface {
	GetView(ctx context.Context, id uuid.UUID, owner string) (*calendar.View, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
