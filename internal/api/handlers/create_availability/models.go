package create_availability

import (
	"time"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/internal/service/bookings/models"
)

// CreateAvailabilityRequest is the range dragged on the admin calendar
type CreateAvailabilityRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ToServiceRequest parses both ends in the salon time zone
func (r *CreateAvailabilityRequest) ToServiceRequest(loc *time.Location) (*models.CreateAvailabilityRequest, error) {
	start, err := domain.ParseInstant(r.Start, loc)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseInstant(r.End, loc)
	if err != nil {
		return nil, err
	}
	return &models.CreateAvailabilityRequest{Start: start, End: end}, nil
}
