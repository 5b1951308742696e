package update_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-BookingCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-BookingCalendar/internal/service/bookings"
	"github.com/m04kA/SMC-BookingCalendar/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidDraftID     = "invalid draft id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTime        = "invalid start, expected RFC 3339 or YYYY-MM-DDTHH:MM:SS"
	msgInvalidInput       = "select at least one service and a start time"
	msgNotFound           = "booking not found"
	msgForbidden          = "only administrators can change bookings"
	msgRejected           = "the booking could not be updated"
	msgUpstream           = "could not reach the booking service, please try again"
)

type Handler struct {
	service  BookingService
	location *time.Location
	logger   Logger
}

func NewHandler(service BookingService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle PUT /api/v1/admin/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.Int64Var(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /admin/bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	draftID, err := handlers.OptionalUUIDQuery(r, "draftId")
	if err != nil {
		h.logger.Warn("PUT /admin/bookings/{id} - Invalid draft ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDraftID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(h.location)
	if err != nil {
		h.logger.Warn("PUT /admin/bookings/{id} - Failed to parse start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	booking, err := h.service.Update(r.Context(), bookingID, serviceReq, draftRef(r, draftID))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, bookings.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, bookings.ErrRejected):
			h.logger.Warn("PUT /admin/bookings/{id} - Rejected: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgRejected)
		case errors.Is(err, bookings.ErrSessionExpired):
			handlers.RespondSessionExpired(w)
		case errors.Is(err, bookings.ErrUpstream):
			h.logger.Error("PUT /admin/bookings/{id} - Booking API failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadGateway(w, msgUpstream)
		default:
			h.logger.Error("PUT /admin/bookings/{id} - Failed to update: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/bookings/{id} - Booking updated: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

// draftRef points the change at the caller's draft when a draftId was given
func draftRef(r *http.Request, id *uuid.UUID) *models.DraftRef {
	if id == nil {
		return nil
	}
	return &models.DraftRef{ID: *id, Owner: middleware.GetOwner(r.Context())}
}
