package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
)

// DraftRef names the calendar draft an admin change should be merged into
type DraftRef struct {
	ID    uuid.UUID
	Owner string
}

// UpdateBookingRequest changes the services, start and optionally the owner of a booking
type UpdateBookingRequest struct {
	UserID     *int64    `json:"userId,omitempty"`
	ServiceIDs []int64   `json:"serviceIds"`
	Start      time.Time `json:"start"`
}

// CreateAvailabilityRequest opens the range [Start, End) for bookings
type CreateAvailabilityRequest struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ServiceResponse is one service of a booking
type ServiceResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Worktime string `json:"worktime"`
	Price    string `json:"price"`
}

// BookingResponse is the booking detail shown when a booked event is clicked
type BookingResponse struct {
	ID                   int64             `json:"id"`
	Start                *time.Time        `json:"start,omitempty"`
	End                  *time.Time        `json:"end,omitempty"`
	UserID               int64             `json:"userId,omitempty"`
	UserEmail            string            `json:"userEmail,omitempty"`
	UserName             string            `json:"userName,omitempty"`
	Services             []ServiceResponse `json:"services"`
	TotalWorktimeMinutes float64           `json:"totalWorktimeMinutes"`
	TotalDuration        string            `json:"totalDuration"`
	TotalPrice           float64           `json:"totalPrice"`
}

// AvailabilityResponse is a created availability window
type AvailabilityResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromDomainBooking builds the detail view. Start and End stay empty when the booking times cannot be parsed.
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	services := make([]ServiceResponse, 0, len(b.Services))
	for _, s := range b.Services {
		services = append(services, ServiceResponse{
			ID:       s.ID,
			Name:     s.Name,
			Worktime: s.Worktime.String(),
			Price:    s.Price,
		})
	}

	total := calendar.SumWorktime(b.Services)
	resp := &BookingResponse{
		ID:                   b.ID,
		UserID:               b.UserID(),
		UserName:             b.UserName,
		Services:             services,
		TotalWorktimeMinutes: total,
		TotalDuration:        calendar.FormatDuration(total),
		TotalPrice:           calendar.TotalPrice(b.Services),
	}

	if b.User != nil {
		resp.UserEmail = b.User.Email
	}

	if interval, err := b.Interval(loc); err == nil {
		resp.Start = &interval.Start
		resp.End = &interval.End
	}
	return resp
}

// FromDomainWindow converts a created window
func FromDomainWindow(w *domain.AvailabilityWindow) *AvailabilityResponse {
	return &AvailabilityResponse{
		ID:        w.ID,
		Date:      w.Date,
		StartTime: w.StartTime.String(),
		EndTime:   w.EndTime.String(),
	}
}
