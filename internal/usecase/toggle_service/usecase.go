package toggle_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	draftRepo "github.com/m04kA/SMC-BookingCalendar/internal/infra/storage/draft"
)

// UseCase toggles a service in the draft selection
type UseCase struct {
	drafts       DraftRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case
func NewUseCase(drafts DraftRepository, logger Logger) *UseCase {
	return &UseCase{
		drafts:       drafts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute adds the service if it is not selected and removes it otherwise.
// The total worktime is recomputed and a pending range keeps its start with a new end.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ToggleService: draft=%s, service=%d", req.DraftID, req.ServiceID)

	// 1. Validation
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ToggleService: validation failed: %v", err)
		return nil, err
	}

	// 2. Load the draft
	d, err := uc.drafts.Get(ctx, req.DraftID)
	if err != nil {
		if errors.Is(err, draftRepo.ErrDraftNotFound) {
			return nil, ErrDraftNotFound
		}
		uc.logger.Error("ToggleService: failed to get draft=%s: %v", req.DraftID, err)
		return nil, fmt.Errorf("%w: failed to get draft: %v", ErrInternal, err)
	}
	if !d.OwnedBy(req.Owner) {
		uc.logger.Warn("ToggleService: draft=%s belongs to another user", req.DraftID)
		return nil, ErrAccessDenied
	}

	// 3. Toggle
	if err := d.Selection.Toggle(d.Catalog, req.ServiceID); err != nil {
		switch {
		case errors.Is(err, calendar.ErrUnknownService):
			uc.logger.Warn("ToggleService: draft=%s has no service=%d", req.DraftID, req.ServiceID)
			return nil, fmt.Errorf("%w: id=%d", ErrUnknownService, req.ServiceID)
		case errors.Is(err, calendar.ErrSubmitInProgress):
			return nil, ErrSubmitInProgress
		default:
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	// 4. Save
	d.UpdatedAt = uc.timeProvider.Now()
	if err := uc.drafts.Save(ctx, d); err != nil {
		uc.logger.Error("ToggleService: failed to save draft=%s: %v", req.DraftID, err)
		return nil, fmt.Errorf("%w: failed to save draft: %v", ErrInternal, err)
	}

	uc.logger.Info("ToggleService: draft=%s now has %d services, %.0f min",
		req.DraftID, len(d.Selection.ServiceIDs), d.Selection.TotalWorktime)

	return &Response{
		View:     d.View(),
		Selected: d.Selection.Has(req.ServiceID),
	}, nil
}
