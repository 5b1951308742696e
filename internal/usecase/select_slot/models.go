package select_slot

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
)

// Request places the provisional booking. With End set the range is taken as is (drag select),
// otherwise it spans the selected services from Start.
type Request struct {
	DraftID uuid.UUID
	Owner   string
	Start   time.Time
	End     *time.Time
}

// ClearRequest removes the provisional booking
type ClearRequest struct {
	DraftID uuid.UUID
	Owner   string
}

// Response carries the updated draft
type Response struct {
	View calendar.View
}
