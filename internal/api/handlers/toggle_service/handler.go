package toggle_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-BookingCalendar/internal/api/middleware"
	toggleService "github.com/m04kA/SMC-BookingCalendar/internal/usecase/toggle_service"
)

const (
	msgInvalidDraftID   = "invalid draft id"
	msgInvalidServiceID = "invalid service id"
	msgDraftNotFound    = "calendar session not found, please reload"
	msgForbidden        = "access denied"
	msgUnknownService   = "service not found"
	msgSubmitInProgress = "booking is being submitted"
)

type Handler struct {
	useCase ToggleServiceUseCase
	logger  Logger
}

func NewHandler(useCase ToggleServiceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts/{draftId}/services/{serviceId}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID, err := handlers.UUIDVar(r, "draftId")
	if err != nil {
		h.logger.Warn("POST /drafts/{id}/services/{id}/toggle - %v", err)
		handlers.RespondBadRequest(w, msgInvalidDraftID)
		return
	}
	serviceID, err := handlers.Int64Var(r, "serviceId")
	if err != nil {
		h.logger.Warn("POST /drafts/{id}/services/{id}/toggle - %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &toggleService.Request{
		DraftID:   draftID,
		Owner:     middleware.GetOwner(r.Context()),
		ServiceID: serviceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, toggleService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidServiceID)
		case errors.Is(err, toggleService.ErrDraftNotFound):
			handlers.RespondNotFound(w, msgDraftNotFound)
		case errors.Is(err, toggleService.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, toggleService.ErrUnknownService):
			handlers.RespondNotFound(w, msgUnknownService)
		case errors.Is(err, toggleService.ErrSubmitInProgress):
			handlers.RespondConflict(w, msgSubmitInProgress)
		default:
			h.logger.Error("POST /drafts/{id}/services/{id}/toggle - draft=%s, service=%d, error=%v", draftID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.View)
}
