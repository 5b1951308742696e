package create_availability

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
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDraftID     = "invalid draft id"
	msgInvalidTime        = "invalid time, expected RFC 3339 or YYYY-MM-DDTHH:MM:SS"
	msgInvalidRange       = "availability must end after it starts and stay within one day"
	msgOverlapsBooking    = "Cannot set availability on an already booked time slot."
	msgForbidden          = "only administrators can set availability"
	msgRejected           = "the availability could not be created"
	msgUpstream           = "could not reach the booking service, please try again"
)

type Handler struct {
	service  AvailabilityService
	location *time.Location
	logger   Logger
}

func NewHandler(service AvailabilityService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/admin/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID, err := handlers.OptionalUUIDQuery(r, "draftId")
	if err != nil {
		h.logger.Warn("POST /admin/availability - Invalid draft ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDraftID)
		return
	}

	var req CreateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /admin/availability - Failed to parse range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	window, err := h.service.CreateAvailability(r.Context(), serviceReq, draftRef(r, draftID))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRange)
		case errors.Is(err, bookings.ErrOverlapsBooking):
			handlers.RespondConflict(w, msgOverlapsBooking)
		case errors.Is(err, bookings.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, bookings.ErrRejected):
			handlers.RespondConflict(w, msgRejected)
		case errors.Is(err, bookings.ErrSessionExpired):
			handlers.RespondSessionExpired(w)
		case errors.Is(err, bookings.ErrUpstream), errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Error("POST /admin/availability - Booking API failed: %v", err)
			handlers.RespondBadGateway(w, msgUpstream)
		default:
			h.logger.Error("POST /admin/availability - Failed to create availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/availability - Window created: id=%d, date=%s", window.ID, window.Date)
	handlers.RespondJSON(w, http.StatusCreated, window)
}

// draftRef points the change at the caller's draft when a draftId was given
func draftRef(r *http.Request, id *uuid.UUID) *models.DraftRef {
	if id == nil {
		return nil
	}
	return &models.DraftRef{ID: *id, Owner: middleware.GetOwner(r.Context())}
}
