package update_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/travel-backoffice/internal/api/handlers"
	"github.com/m04kA/travel-backoffice/internal/ledger"
	updatePayment "github.com/m04kA/travel-backoffice/internal/usecase/update_payment"
)

const (
	msgInvalidPaymentID   = "Invalid payment ID"
	msgInvalidRequestBody = "Invalid request body"
	msgPaymentNotFound    = "Payment not found"
	msgBookingNotFound    = "Booking not found"
	msgVersionConflict    = "Booking was modified by another request, please retry"
)

type Handler struct {
	useCase UpdatePaymentUseCase
	logger  Logger
}

func NewHandler(useCase UpdatePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/payments/{paymentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	paymentID, err := handlers.PathID(r, "paymentId")
	if err != nil {
		h.logger.Warn("PUT /payments/{id} - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	var body UpdatePaymentRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /payments/{id} - Invalid request body: payment_id=%d, error=%v", paymentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req, err := body.ToUseCaseRequest(paymentID)
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, updatePayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.Detail(err, updatePayment.ErrInvalidInput))

		case errors.Is(err, updatePayment.ErrRuleViolation):
			if re, ok := ledger.AsRuleError(err); ok {
				handlers.RespondBadRequest(w, re.Error())
				return
			}
			handlers.RespondBadRequest(w, handlers.Detail(err, updatePayment.ErrRuleViolation))

		case errors.Is(err, updatePayment.ErrPaymentNotFound):
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, updatePayment.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updatePayment.ErrVersionConflict):
			handlers.RespondConflict(w, msgVersionConflict)

		default:
			h.logger.Error("PUT /payments/{id} - Failed to update payment: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /payments/{id} - Payment updated: payment_id=%d, booking_id=%d", paymentID, resp.Booking.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
