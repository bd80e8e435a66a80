package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/travel-backoffice/internal/api/handlers"
	"github.com/m04kA/travel-backoffice/internal/api/middleware"
	"github.com/m04kA/travel-backoffice/internal/service/bookings"
	"github.com/m04kA/travel-backoffice/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgNoData             = "No data provided"
	msgBatchNotFound      = "Import batch not found"
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

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		if handlers.IsEmptyBody(err) {
			handlers.RespondBadRequest(w, msgNoData)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.UserID, _ = middleware.GetUserID(r.Context())

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, handlers.Detail(err, bookings.ErrInvalidInput))

		case errors.Is(err, bookings.ErrBatchNotFound):
			handlers.RespondNotFound(w, msgBatchNotFound)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d", booking.ID)
	handlers.RespondJSON(w, http.StatusCreated, booking)
}
