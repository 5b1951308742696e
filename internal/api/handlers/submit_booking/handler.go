package submit_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-BookingCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-BookingCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	submitBooking "github.com/m04kA/SMC-BookingCalendar/internal/usecase/submit_booking"
)

const (
	msgInvalidDraftID   = "invalid draft id"
	msgDraftNotFound    = "calendar session not found, please reload"
	msgForbidden        = "access denied"
	msgSubmitInProgress = "booking is already being submitted"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts/{draftId}/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID, err := handlers.UUIDVar(r, "draftId")
	if err != nil {
		h.logger.Warn("POST /drafts/{id}/submit - %v", err)
		handlers.RespondBadRequest(w, msgInvalidDraftID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &submitBooking.Request{
		DraftID: draftID,
		Owner:   middleware.GetOwner(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, submitBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDraftID)

		case errors.Is(err, submitBooking.ErrDraftNotFound):
			handlers.RespondNotFound(w, msgDraftNotFound)

		case errors.Is(err, submitBooking.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, submitBooking.ErrValidation):
			handlers.RespondUnprocessable(w, validationMessage(err))

		case errors.Is(err, submitBooking.ErrSubmitInProgress):
			handlers.RespondConflict(w, msgSubmitInProgress)

		case errors.Is(err, submitBooking.ErrSessionExpired):
			h.logger.Warn("POST /drafts/{id}/submit - Session expired: draft=%s", draftID)
			handlers.RespondSessionExpired(w)

		case errors.Is(err, submitBooking.ErrRejected):
			h.logger.Warn("POST /drafts/{id}/submit - Rejected: draft=%s, error=%v", draftID, err)
			handlers.RespondConflict(w, calendar.MsgSubmitFailed)

		case errors.Is(err, submitBooking.ErrUpstream):
			h.logger.Error("POST /drafts/{id}/submit - Booking API failed: draft=%s, error=%v", draftID, err)
			handlers.RespondBadGateway(w, calendar.MsgSubmitFailed)

		default:
			h.logger.Error("POST /drafts/{id}/submit - Failed to submit: draft=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drafts/{id}/submit - Booking created: draft=%s, booking_id=%d", draftID, result.Booking.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// validationMessage strips the sentinel prefix and keeps the user-facing text
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), submitBooking.ErrValidation.Error()+": ")
}
