package load_calendar

import (
	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	loadCalendar "github.com/m04kA/SMC-BookingCalendar/internal/usecase/load_calendar"
)

// LoadCalendarResponse is the draft view plus what the fetch cycle had to skip
type LoadCalendarResponse struct {
	calendar.View
	Skipped          int  `json:"skipped"`
	SelectionDropped bool `json:"selectionDropped"`
}

// FromUseCaseResponse converts the use case result into the HTTP response
func FromUseCaseResponse(resp *loadCalendar.Response) *LoadCalendarResponse {
	return &LoadCalendarResponse{
		View:             resp.View,
		Skipped:          resp.Skipped,
		SelectionDropped: resp.SelectionDropped,
	}
}
