package load_calendar

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
)

// Request loads a new calendar when DraftID is uuid.Nil, otherwise refreshes that draft
type Request struct {
	DraftID uuid.UUID
	Owner   string // JWT subject of the caller, empty for opaque tokens
}

// Response carries the stored draft as the widget sees it
type Response struct {
	View             calendar.View
	Skipped          int  // records dropped as malformed
	SelectionDropped bool // the pending range overlapped a booking in the new snapshot
}
