package create_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/travel-backoffice/internal/api/handlers"
	"github.com/m04kA/travel-backoffice/internal/ledger"
	createPayment "github.com/m04kA/travel-backoffice/internal/usecase/create_payment"
)

const (
	msgInvalidBookingID   = "Invalid booking ID"
	msgInvalidRequestBody = "Invalid request body"
	msgBookingNotFound    = "Booking not found"
	msgVersionConflict    = "Booking was modified by another request, please retry"
)

type Handler struct {
	useCase CreatePaymentUseCase
	logger  Logger
}

func NewHandler(useCase CreatePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payments - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var body CreatePaymentRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /bookings/{id}/payments - Invalid request body: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req, err := body.ToUseCaseRequest(bookingID)
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, createPayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.Detail(err, createPayment.ErrInvalidInput))

		case errors.Is(err, createPayment.ErrRuleViolation):
			if re, ok := ledger.AsRuleError(err); ok {
				handlers.RespondBadRequest(w, re.Error())
				return
			}
			handlers.RespondBadRequest(w, handlers.Detail(err, createPayment.ErrRuleViolation))

		case errors.Is(err, createPayment.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, createPayment.ErrVersionConflict):
			handlers.RespondConflict(w, msgVersionConflict)

		default:
			h.logger.Error("POST /bookings/{id}/payments - Failed to create payment: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payments - Payment created: booking_id=%d, payment_id=%d", bookingID, resp.Payment.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
