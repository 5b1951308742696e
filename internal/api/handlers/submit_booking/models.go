package submit_booking

import (
	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	submitBooking "github.com/m04kA/SMC-BookingCalendar/internal/usecase/submit_booking"
)

// SubmitBookingResponse is the created booking and the updated draft
type SubmitBookingResponse struct {
	Booking domain.Booking `json:"booking"`
	Draft   calendar.View  `json:"draft"`
}

// FromUseCaseResponse converts the use case result into the HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *SubmitBookingResponse {
	return &SubmitBookingResponse{
		Booking: resp.Booking,
		Draft:   resp.View,
	}
}
