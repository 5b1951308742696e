package load_calendar

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-BookingCalendar/internal/api/middleware"
	loadCalendar "github.com/m04kA/SMC-BookingCalendar/internal/usecase/load_calendar"
)

const (
	msgInvalidDraftID = "invalid draft id"
	msgDraftNotFound  = "calendar session not found, please reload"
	msgForbidden      = "access denied"
	msgUpstream       = "could not load the calendar, please try again"
)

type Handler struct {
	useCase LoadCalendarUseCase
	logger  Logger
}

func NewHandler(useCase LoadCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, uuid.Nil, http.StatusCreated)
}

// HandleRefresh POST /api/v1/drafts/{draftId}/refresh
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	draftID, err := handlers.UUIDVar(r, "draftId")
	if err != nil {
		h.logger.Warn("POST /drafts/{id}/refresh - %v", err)
		handlers.RespondBadRequest(w, msgInvalidDraftID)
		return
	}
	h.execute(w, r, draftID, http.StatusOK)
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, draftID uuid.UUID, status int) {
	result, err := h.useCase.Execute(r.Context(), &loadCalendar.Request{
		DraftID: draftID,
		Owner:   middleware.GetOwner(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, loadCalendar.ErrDraftNotFound):
			handlers.RespondNotFound(w, msgDraftNotFound)

		case errors.Is(err, loadCalendar.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, loadCalendar.ErrSessionExpired):
			h.logger.Warn("%s %s - Session expired", r.Method, r.URL.Path)
			handlers.RespondSessionExpired(w)

		case errors.Is(err, loadCalendar.ErrUpstream):
			h.logger.Error("%s %s - Booking API failed: %v", r.Method, r.URL.Path, err)
			handlers.RespondBadGateway(w, msgUpstream)

		default:
			h.logger.Error("%s %s - Failed to load calendar: %v", r.Method, r.URL.Path, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s %s - Calendar loaded: draft=%s, events=%d",
		r.Method, r.URL.Path, result.View.DraftID, len(result.View.Events))
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
