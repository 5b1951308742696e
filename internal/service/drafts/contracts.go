package drafts

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
)

// DraftRepository reads and discards stored drafts
type DraftRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*calendar.Draft, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Logger is the logging interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
