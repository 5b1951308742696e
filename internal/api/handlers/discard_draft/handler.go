package discard_draft

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-BookingCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-BookingCalendar/internal/service/drafts"
)

const (
	msgInvalidDraftID = "invalid draft id"
	msgDraftNotFound  = "calendar session not found"
	msgForbidden      = "access denied"
)

type Handler struct {
	service DraftService
	logger  Logger
}

func NewHandler(service DraftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/drafts/{draftId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID, err := handlers.UUIDVar(r, "draftId")
	if err != nil {
		h.logger.Warn("DELETE /drafts/{id} - %v", err)
		handlers.RespondBadRequest(w, msgInvalidDraftID)
		return
	}

	if err := h.service.Discard(r.Context(), draftID, middleware.GetOwner(r.Context())); err != nil {
		switch {
		case errors.Is(err, drafts.ErrDraftNotFound):
			handlers.RespondNotFound(w, msgDraftNotFound)
		case errors.Is(err, drafts.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("DELETE /drafts/{id} - Failed to discard draft=%s: %v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondNoContent(w)
}
