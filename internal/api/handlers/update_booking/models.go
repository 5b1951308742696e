package update_booking

import (
	"time"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/internal/service/bookings/models"
)

// UpdateBookingRequest HTTP request model
type UpdateBookingRequest struct {
	UserID     *int64  `json:"userId,omitempty"`
	ServiceIDs []int64 `json:"serviceIds"`
	Start      string  `json:"start"`
}

// ToServiceRequest parses the start in the salon time zone
func (r *UpdateBookingRequest) ToServiceRequest(loc *time.Location) (*models.UpdateBookingRequest, error) {
	start, err := domain.ParseInstant(r.Start, loc)
	if err != nil {
		return nil, err
	}
	return &models.UpdateBookingRequest{
		UserID:     r.UserID,
		ServiceIDs: r.ServiceIDs,
		Start:      start,
	}, nil
}
