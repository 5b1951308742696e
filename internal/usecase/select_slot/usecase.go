package select_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	draftRepo "github.com/m04kA/SMC-BookingCalendar/internal/infra/storage/draft"
)

// UseCase places and clears the provisional booking of a draft
type UseCase struct {
	drafts       DraftRepository
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case. metrics may be nil.
func NewUseCase(drafts DraftRepository, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		drafts:       drafts,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute proposes a booking range. A rejected selection leaves the draft as it was and is not saved.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SelectSlot: draft=%s, start=%s", req.DraftID, req.Start.Format(time.RFC3339))

	// 1. Validation
	if err := validateRequest(req); err != nil {
		uc.reject(reasonRange)
		uc.logger.Warn("SelectSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Load the draft
	d, err := uc.load(ctx, req.DraftID, req.Owner)
	if err != nil {
		return nil, err
	}

	// 3. Place the range
	if req.End != nil {
		err = d.Selection.SelectRange(d.Events, req.Start, *req.End)
	} else {
		err = d.Selection.SelectSlot(d.Events, req.Start)
	}
	if err != nil {
		return nil, uc.mapSelectionError(req.DraftID, err)
	}

	// 4. Save
	if err := uc.save(ctx, d); err != nil {
		return nil, err
	}

	uc.logger.Info("SelectSlot: draft=%s pending %s - %s", req.DraftID,
		d.Selection.Range.Start.Format("15:04"), d.Selection.Range.End.Format("15:04"))

	return &Response{View: d.View()}, nil
}

// Clear drops the provisional booking and keeps the selected services.
func (uc *UseCase) Clear(ctx context.Context, req *ClearRequest) (*Response, error) {
	uc.logger.Info("ClearSelection: draft=%s", req.DraftID)

	if req.DraftID == uuid.Nil {
		return nil, fmt.Errorf("%w: draft id is required", ErrInvalidInput)
	}

	d, err := uc.load(ctx, req.DraftID, req.Owner)
	if err != nil {
		return nil, err
	}

	if err := d.Selection.Clear(); err != nil {
		return nil, ErrSubmitInProgress
	}

	if err := uc.save(ctx, d); err != nil {
		return nil, err
	}

	return &Response{View: d.View()}, nil
}

func (uc *UseCase) load(ctx context.Context, id uuid.UUID, owner string) (*calendar.Draft, error) {
	d, err := uc.drafts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, draftRepo.ErrDraftNotFound) {
			return nil, ErrDraftNotFound
		}
		uc.logger.Error("SelectSlot: failed to get draft=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get draft: %v", ErrInternal, err)
	}
	if !d.OwnedBy(owner) {
		uc.logger.Warn("SelectSlot: draft=%s belongs to another user", id)
		return nil, ErrAccessDenied
	}
	return d, nil
}

func (uc *UseCase) save(ctx context.Context, d *calendar.Draft) error {
	d.UpdatedAt = uc.timeProvider.Now()
	if err := uc.drafts.Save(ctx, d); err != nil {
		uc.logger.Error("SelectSlot: failed to save draft=%s: %v", d.ID, err)
		return fmt.Errorf("%w: failed to save draft: %v", ErrInternal, err)
	}
	return nil
}

func (uc *UseCase) mapSelectionError(id uuid.UUID, err error) error {
	switch {
	case errors.Is(err, calendar.ErrNoWorktime):
		uc.reject(reasonNoServices)
		uc.logger.Warn("SelectSlot: draft=%s has no services with a duration", id)
		return ErrNoServices
	case errors.Is(err, calendar.ErrSelectionOverlaps):
		uc.reject(reasonOverlap)
		uc.logger.Warn("SelectSlot: draft=%s selection overlaps a booking", id)
		return ErrOverlapsBooking
	case errors.Is(err, calendar.ErrInvalidRange):
		uc.reject(reasonRange)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, calendar.ErrSubmitInProgress):
		return ErrSubmitInProgress
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func (uc *UseCase) reject(reason string) {
	if uc.metrics != nil {
		uc.metrics.IncSelectionRejected(reason)
	}
}
