package toggle_service

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
)

// Request flips one service in or out of the selection
type Request struct {
	DraftID   uuid.UUID
	Owner     string
	ServiceID int64
}

// Response carries the updated draft
type Response struct {
	View     calendar.View
	Selected bool // the service is selected after the toggle
}
