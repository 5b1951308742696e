package delete_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-BookingCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-BookingCalendar/internal/service/bookings"
	"github.com/m04kA/SMC-BookingCalendar/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "invalid booking id"
	msgInvalidDraftID   = "invalid draft id"
	msgNotFound         = "booking not found"
	msgForbidden        = "only administrators can delete bookings"
	msgUpstream         = "could not reach the booking service, please try again"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.Int64Var(r, "bookingId")
	if err != nil {
		h.logger.Warn("DELETE /admin/bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	draftID, err := handlers.OptionalUUIDQuery(r, "draftId")
	if err != nil {
		h.logger.Warn("DELETE /admin/bookings/{id} - Invalid draft ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDraftID)
		return
	}

	if err := h.service.Delete(r.Context(), bookingID, draftRef(r, draftID)); err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, bookings.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, bookings.ErrSessionExpired):
			handlers.RespondSessionExpired(w)
		case errors.Is(err, bookings.ErrUpstream), errors.Is(err, bookings.ErrRejected):
			h.logger.Error("DELETE /admin/bookings/{id} - Booking API failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadGateway(w, msgUpstream)
		default:
			h.logger.Error("DELETE /admin/bookings/{id} - Failed to delete: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/bookings/{id} - Booking deleted: booking_id=%d", bookingID)
	handlers.RespondNoContent(w)
}

// draftRef points the change at the caller's draft when a draftId was given
func draftRef(r *http.Request, id *uuid.UUID) *models.DraftRef {
	if id == nil {
		return nil
	}
	return &models.DraftRef{ID: *id, Owner: middleware.GetOwner(r.Context())}
}
