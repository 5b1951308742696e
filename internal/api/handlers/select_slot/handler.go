package select_slot

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BookingCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-BookingCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	selectSlot "github.com/m04kA/SMC-BookingCalendar/internal/usecase/select_slot"
)

const (
	msgInvalidDraftID     = "invalid draft id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTime        = "invalid time, expected RFC 3339 or YYYY-MM-DDTHH:MM:SS"
	msgDraftNotFound      = "calendar session not found, please reload"
	msgForbidden          = "access denied"
	msgNoServices         = "Please select at least one service first."
	msgSubmitInProgress   = "booking is being submitted"
)

type Handler struct {
	useCase  SelectSlotUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase SelectSlotUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/drafts/{draftId}/selection
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID, err := handlers.UUIDVar(r, "draftId")
	if err != nil {
		h.logger.Warn("POST /drafts/{id}/selection - %v", err)
		handlers.RespondBadRequest(w, msgInvalidDraftID)
		return
	}

	var req SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drafts/{id}/selection - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(draftID, middleware.GetOwner(r.Context()), h.location)
	if err != nil {
		h.logger.Warn("POST /drafts/{id}/selection - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.View)
}

// HandleClear DELETE /api/v1/drafts/{draftId}/selection
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	draftID, err := handlers.UUIDVar(r, "draftId")
	if err != nil {
		h.logger.Warn("DELETE /drafts/{id}/selection - %v", err)
		handlers.RespondBadRequest(w, msgInvalidDraftID)
		return
	}

	result, err := h.useCase.Clear(r.Context(), &selectSlot.ClearRequest{
		DraftID: draftID,
		Owner:   middleware.GetOwner(r.Context()),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.View)
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, selectSlot.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidTime)
	case errors.Is(err, selectSlot.ErrDraftNotFound):
		handlers.RespondNotFound(w, msgDraftNotFound)
	case errors.Is(err, selectSlot.ErrAccessDenied):
		handlers.RespondForbidden(w, msgForbidden)
	case errors.Is(err, selectSlot.ErrNoServices):
		handlers.RespondUnprocessable(w, msgNoServices)
	case errors.Is(err, selectSlot.ErrOverlapsBooking):
		handlers.RespondConflict(w, calendar.MsgOverlap)
	case errors.Is(err, selectSlot.ErrSubmitInProgress):
		handlers.RespondConflict(w, msgSubmitInProgress)
	default:
		h.logger.Error("%s %s - Failed to update selection: %v", r.Method, r.URL.Path, err)
		handlers.RespondInternalError(w)
	}
}
