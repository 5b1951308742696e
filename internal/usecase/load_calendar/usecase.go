package load_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	draftRepo "github.com/m04kA/SMC-BookingCalendar/internal/infra/storage/draft"
)

// UseCase runs one fetch cycle and stores the result in a draft
type UseCase struct {
	client       BookingAPIClient
	drafts       DraftRepository
	metrics      Metrics
	location     *time.Location
	slotSize     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case. metrics may be nil.
func NewUseCase(
	client BookingAPIClient,
	drafts DraftRepository,
	metrics Metrics,
	location *time.Location,
	slotSize time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		client:       client,
		drafts:       drafts,
		metrics:      metrics,
		location:     location,
		slotSize:     slotSize,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute fetches availability, bookings and services, assembles the calendar and saves the draft.
// A failed fetch leaves the stored draft as it was.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	refresh := req.DraftID != uuid.Nil
	uc.logger.Info("LoadCalendar: draft=%s, refresh=%t", req.DraftID, refresh)

	// 1. Load the existing draft on refresh
	var draft *calendar.Draft
	if refresh {
		existing, err := uc.drafts.Get(ctx, req.DraftID)
		if err != nil {
			if errors.Is(err, draftRepo.ErrDraftNotFound) {
				uc.logger.Warn("LoadCalendar: draft=%s not found", req.DraftID)
				return nil, ErrDraftNotFound
			}
			uc.logger.Error("LoadCalendar: failed to get draft=%s: %v", req.DraftID, err)
			return nil, fmt.Errorf("%w: failed to get draft: %v", ErrInternal, err)
		}
		if !existing.OwnedBy(req.Owner) {
			uc.logger.Warn("LoadCalendar: draft=%s belongs to another user", req.DraftID)
			return nil, ErrAccessDenied
		}
		draft = existing
	}

	// 2. Fetch cycle
	snapshot, services, err := uc.fetch(ctx)
	if err != nil {
		uc.logger.Error("LoadCalendar: fetch cycle failed: %v", err)
		return nil, err
	}

	// 3. Drop services whose worktime cannot be parsed
	catalog, skipped := uc.validCatalog(services)

	// 4. Assemble events
	events, warnings := calendar.Assemble(snapshot)
	for _, w := range warnings {
		uc.logger.Warn("LoadCalendar: skipping record: %v", w)
	}
	skipped += len(warnings)
	uc.observe(events)

	// 5. Apply to the draft
	now := uc.timeProvider.Now()
	dropped := false
	if draft == nil {
		draft = calendar.NewDraft(req.Owner, now)
		draft.ApplySnapshot(catalog, events, now)
	} else {
		dropped = draft.ApplySnapshot(catalog, events, now)
		if dropped {
			uc.logger.Info("LoadCalendar: draft=%s selection overlaps a booking now, cleared", draft.ID)
		}
	}

	// 6. Save
	if err := uc.drafts.Save(ctx, draft); err != nil {
		uc.logger.Error("LoadCalendar: failed to save draft=%s: %v", draft.ID, err)
		return nil, fmt.Errorf("%w: failed to save draft: %v", ErrInternal, err)
	}

	uc.logger.Info("LoadCalendar: draft=%s has %d events, %d services, %d records skipped",
		draft.ID, len(events), len(catalog), skipped)

	return &Response{
		View:             draft.View(),
		Skipped:          skipped,
		SelectionDropped: dropped,
	}, nil
}

// fetch issues the four reads concurrently. Any failure cancels the others.
func (uc *UseCase) fetch(ctx context.Context) (calendar.Snapshot, []domain.Service, error) {
	var (
		windows  []domain.AvailabilityWindow
		all      []domain.Booking
		mine     []domain.Booking
		services []domain.Service
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if windows, err = uc.client.ListAvailability(gctx); err != nil {
			return mapUpstreamError("availability", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if all, err = uc.client.ListAllBookings(gctx); err != nil {
			return mapUpstreamError("all bookings", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if mine, err = uc.client.ListMyBookings(gctx); err != nil {
			return mapUpstreamError("my bookings", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if services, err = uc.client.ListServices(gctx); err != nil {
			return mapUpstreamError("services", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return calendar.Snapshot{}, nil, err
	}

	return calendar.Snapshot{
		Windows:     windows,
		AllBookings: all,
		MyBookings:  mine,
		Location:    uc.location,
		SlotSize:    uc.slotSize,
	}, services, nil
}

func (uc *UseCase) validCatalog(services []domain.Service) ([]domain.Service, int) {
	catalog := make([]domain.Service, 0, len(services))
	skipped := 0
	for _, s := range services {
		if err := s.Worktime.Validate(); err != nil {
			uc.logger.Warn("LoadCalendar: skipping service id=%d: %v", s.ID, err)
			skipped++
			continue
		}
		catalog = append(catalog, s)
	}
	return catalog, skipped
}

func (uc *UseCase) observe(events []domain.CalendarEvent) {
	if uc.metrics == nil {
		return
	}
	counts := map[domain.EventKind]int{}
	for _, e := range events {
		counts[e.Kind()]++
	}
	for _, kind := range []domain.EventKind{domain.EventAvailable, domain.EventForeignBooking, domain.EventOwnBooking} {
		uc.metrics.ObserveEvents(string(kind), counts[kind])
	}
}
