package domain

import "github.com/m04kA/SMC-BookingCalendar/pkg/types"

// Service is a bookable salon service. Reference data, fetched once per draft.
type Service struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Worktime types.Worktime `json:"worktime"` // "HH:MM:SS"
	Price    string         `json:"price"`    // decimal as the API serializes it, e.g. "25.00"
}

// FindService looks a service up by id.
func FindService(catalog []Service, id int64) (Service, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}
