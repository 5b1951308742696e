package submit_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
)

// Request submits the pending selection of a draft
type Request struct {
	DraftID uuid.UUID
	Owner   string
}

// Response carries the created booking and the draft after it was merged in
type Response struct {
	Booking domain.Booking
	View    calendar.View
}
