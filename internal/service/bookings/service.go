package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BookingCalendar/internal/service/bookings/models"
)

// Service exposes booking detail and the admin operations of the booking API
type Service struct {
	client   BookingAPIClient
	drafts   DraftRepository
	location *time.Location
	slotSize time.Duration
	logger   Logger
	now      func() time.Time
}

// NewService creates the bookings service
func NewService(client BookingAPIClient, drafts DraftRepository, location *time.Location, slotSize time.Duration, logger Logger) *Service {
	return &Service{
		client:   client,
		drafts:   drafts,
		location: location,
		slotSize: slotSize,
		logger:   logger,
		now:      time.Now,
	}
}

// GetByID returns one booking with its services and totals
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	booking, err := s.client.GetBooking(ctx, id)
	if err != nil {
		s.logger.Warn("GetByID: booking id=%d: %v", id, err)
		return nil, mapUpstreamError("GetByID", err)
	}

	if _, err := booking.Interval(s.location); err != nil {
		s.logger.Warn("GetByID: booking id=%d has unusable times: %v", id, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking, s.location), nil
}

// Update changes a booking as an admin. When draft is set the moved booking is merged into it.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest, draft *models.DraftRef) (*models.BookingResponse, error) {
	s.logger.Info("Update: booking id=%d, services=%v", id, req.ServiceIDs)

	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}
	if len(req.ServiceIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if req.Start.IsZero() {
		return nil, fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	booking, err := s.client.UpdateBooking(ctx, id, bookingapi.UpdateBookingRequest{
		UserID:     req.UserID,
		ServiceIDs: req.ServiceIDs,
		DateTime:   req.Start.UTC().Format(time.RFC3339),
	})
	if err != nil {
		s.logger.Warn("Update: booking id=%d: %v", id, err)
		return nil, mapUpstreamError("Update", err)
	}

	if interval, err := booking.Interval(s.location); err != nil {
		if draft != nil {
			s.logger.Warn("Update: booking id=%d has unusable times, draft id=%s left as is: %v", id, draft.ID, err)
		}
	} else {
		s.patchDraft(ctx, "Update", draft, func(events []domain.CalendarEvent) []domain.CalendarEvent {
			return calendar.MoveBooking(events, id, interval)
		})
	}

	s.logger.Info("Update: booking id=%d updated", id)
	return models.FromDomainBooking(booking, s.location), nil
}

// Delete removes a booking as an admin. When draft is set the booking is dropped from it.
func (s *Service) Delete(ctx context.Context, id int64, draft *models.DraftRef) error {
	s.logger.Info("Delete: booking id=%d", id)

	if id <= 0 {
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	if err := s.client.DeleteBooking(ctx, id); err != nil {
		s.logger.Warn("Delete: booking id=%d: %v", id, err)
		return mapUpstreamError("Delete", err)
	}

	s.patchDraft(ctx, "Delete", draft, func(events []domain.CalendarEvent) []domain.CalendarEvent {
		return calendar.RemoveBooking(events, id)
	})

	s.logger.Info("Delete: booking id=%d deleted", id)
	return nil
}

// CreateAvailability opens a same-day range for bookings. The range is checked against a fresh
// list of all bookings first and rejected when it overlaps any of them.
// When draft is set the new slots are added to it.
func (s *Service) CreateAvailability(ctx context.Context, req *models.CreateAvailabilityRequest, draft *models.DraftRef) (*models.AvailabilityResponse, error) {
	s.logger.Info("CreateAvailability: %s - %s", req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	// 1. Validation
	interval, err := domain.NewInterval(req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	window, err := domain.WindowFromInterval(interval, s.location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Conflict check against the current bookings
	bookings, err := s.client.ListAllBookings(ctx)
	if err != nil {
		s.logger.Error("CreateAvailability: failed to list bookings: %v", err)
		return nil, mapUpstreamError("CreateAvailability", err)
	}

	occupied := make([]domain.Interval, 0, len(bookings))
	for _, b := range bookings {
		bi, err := b.Interval(s.location)
		if err != nil {
			s.logger.Warn("CreateAvailability: skipping booking id=%d: %v", b.ID, err)
			continue
		}
		occupied = append(occupied, bi)
	}
	if calendar.OverlapsAny(interval, occupied) {
		s.logger.Warn("CreateAvailability: %s %s-%s overlaps a booking", window.Date, window.StartTime, window.EndTime)
		return nil, ErrOverlapsBooking
	}

	// 3. Create
	created, err := s.client.CreateAvailability(ctx, window)
	if err != nil {
		s.logger.Error("CreateAvailability: failed to create window: %v", err)
		return nil, mapUpstreamError("CreateAvailability", err)
	}

	// 4. Admin draft
	s.patchDraft(ctx, "CreateAvailability", draft, func(events []domain.CalendarEvent) []domain.CalendarEvent {
		return calendar.AddAvailability(events, interval, s.slotSize)
	})

	s.logger.Info("CreateAvailability: window id=%d created on %s", created.ID, created.Date)
	return models.FromDomainWindow(created), nil
}

// patchDraft merges a completed admin change into the referenced draft. The change already
// happened upstream, so failures here are logged and the draft catches up on its next refresh.
func (s *Service) patchDraft(ctx context.Context, op string, ref *models.DraftRef, apply func([]domain.CalendarEvent) []domain.CalendarEvent) {
	if ref == nil {
		return
	}

	d, err := s.drafts.Get(ctx, ref.ID)
	if err != nil {
		s.logger.Warn("%s: draft id=%s not updated: %v", op, ref.ID, err)
		return
	}
	if !d.OwnedBy(ref.Owner) {
		s.logger.Warn("%s: draft id=%s belongs to another user, not updated", op, ref.ID)
		return
	}

	if d.ApplySnapshot(d.Catalog, apply(d.Events), s.now()) {
		s.logger.Info("%s: draft id=%s selection cleared by the change", op, ref.ID)
	}

	if err := s.drafts.Save(ctx, d); err != nil {
		s.logger.Error("%s: failed to save draft id=%s: %v", op, ref.ID, err)
		return
	}
	s.logger.Info("%s: draft id=%s updated", op, ref.ID)
}
