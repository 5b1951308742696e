package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	draftRepo "github.com/m04kA/SMC-BookingCalendar/internal/infra/storage/draft"
	"github.com/m04kA/SMC-BookingCalendar/internal/integrations/bookingapi"
)

// UseCase turns the pending selection of a draft into a booking
type UseCase struct {
	client       BookingAPIClient
	drafts       DraftRepository
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case. metrics may be nil.
func NewUseCase(client BookingAPIClient, drafts DraftRepository, metrics Metrics, location *time.Location, logger Logger) *UseCase {
	return &UseCase{
		client:       client,
		drafts:       drafts,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute re-checks the preconditions, creates the booking and merges it into the draft.
// On failure the selection is kept so the user can retry.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: draft=%s", req.DraftID)

	if req.DraftID == uuid.Nil {
		return nil, fmt.Errorf("%w: draft id is required", ErrInvalidInput)
	}

	// 1. Load the draft
	d, err := uc.drafts.Get(ctx, req.DraftID)
	if err != nil {
		if errors.Is(err, draftRepo.ErrDraftNotFound) {
			return nil, ErrDraftNotFound
		}
		uc.logger.Error("SubmitBooking: failed to get draft=%s: %v", req.DraftID, err)
		return nil, fmt.Errorf("%w: failed to get draft: %v", ErrInternal, err)
	}
	if !d.OwnedBy(req.Owner) {
		uc.logger.Warn("SubmitBooking: draft=%s belongs to another user", req.DraftID)
		return nil, ErrAccessDenied
	}

	// 2. Local preconditions, nothing is sent when they fail
	if err := d.Selection.ReadyToSubmit(d.Events); err != nil {
		if errors.Is(err, calendar.ErrSubmitInProgress) {
			return nil, ErrSubmitInProgress
		}
		uc.record(resultInvalid)
		var verr *calendar.ValidationError
		if errors.As(err, &verr) {
			uc.logger.Warn("SubmitBooking: draft=%s not ready: %s", req.DraftID, verr.Message)
			return nil, fmt.Errorf("%w: %s", ErrValidation, verr.Message)
		}
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// 3. Mark the draft as submitting
	if err := d.Selection.BeginSubmit(); err != nil {
		if errors.Is(err, calendar.ErrSubmitInProgress) {
			return nil, ErrSubmitInProgress
		}
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := uc.save(ctx, d); err != nil {
		return nil, err
	}

	// 4. Create the booking
	selected := *d.Selection.Range
	booking, err := uc.client.CreateBooking(ctx, bookingapi.CreateBookingRequest{
		ServiceIDs: append([]int64(nil), d.Selection.ServiceIDs...),
		DateTime:   selected.Start.UTC().Format(time.RFC3339),
		EndTime:    selected.End.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, uc.fail(ctx, d, err)
	}

	// 5. Merge the new booking and reset the selection
	interval, err := booking.Interval(uc.location)
	if err != nil {
		uc.logger.Warn("SubmitBooking: booking=%d has unusable times, using the selection: %v", booking.ID, err)
		interval = selected
	}
	d.Events = calendar.MergeOwnBooking(d.Events, booking.ID, interval)
	d.Selection.CompleteSubmit()

	if err := uc.save(ctx, d); err != nil {
		return nil, fmt.Errorf("%w: booking=%d created: %v", ErrInternal, booking.ID, err)
	}

	uc.record(resultSuccess)
	uc.logger.Info("SubmitBooking: draft=%s booking=%d created", req.DraftID, booking.ID)

	return &Response{
		Booking: *booking,
		View:    d.View(),
	}, nil
}

// fail returns the draft to pending with a user-facing message and maps the API error.
func (uc *UseCase) fail(ctx context.Context, d *calendar.Draft, apiErr error) error {
	d.Selection.FailSubmit(calendar.MsgSubmitFailed)
	if err := uc.save(ctx, d); err != nil {
		uc.logger.Error("SubmitBooking: draft=%s left submitting until the next refresh: %v", d.ID, err)
	}

	switch {
	case errors.Is(apiErr, bookingapi.ErrSessionExpired):
		uc.record(resultFailed)
		uc.logger.Warn("SubmitBooking: draft=%s session expired", d.ID)
		return fmt.Errorf("%w: %v", ErrSessionExpired, apiErr)
	case errors.Is(apiErr, bookingapi.ErrBadRequest), errors.Is(apiErr, bookingapi.ErrForbidden):
		uc.record(resultRejected)
		uc.logger.Warn("SubmitBooking: draft=%s rejected by booking API: %v", d.ID, apiErr)
		return fmt.Errorf("%w: %v", ErrRejected, apiErr)
	default:
		uc.record(resultFailed)
		uc.logger.Error("SubmitBooking: draft=%s failed to create booking: %v", d.ID, apiErr)
		return fmt.Errorf("%w: %v", ErrUpstream, apiErr)
	}
}

func (uc *UseCase) save(ctx context.Context, d *calendar.Draft) error {
	d.UpdatedAt = uc.timeProvider.Now()
	if err := uc.drafts.Save(ctx, d); err != nil {
		uc.logger.Error("SubmitBooking: failed to save draft=%s: %v", d.ID, err)
		return fmt.Errorf("%w: failed to save draft: %v", ErrInternal, err)
	}
	return nil
}

func (uc *UseCase) record(result string) {
	if uc.metrics != nil {
		uc.metrics.IncBookingSubmitted(result)
	}
}
