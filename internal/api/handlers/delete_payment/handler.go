package delete_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/travel-backoffice/internal/api/handlers"
	deletePayment "github.com/m04kA/travel-backoffice/internal/usecase/delete_payment"
)

const (
	msgInvalidPaymentID = "Invalid payment ID"
	msgPaymentNotFound  = "Payment not found"
	msgVersionConflict  = "Booking was modified by another request, please retry"
)

type Handler struct {
	useCase DeletePaymentUseCase
	logger  Logger
}

func NewHandler(useCase DeletePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/payments/{paymentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	paymentID, err := handlers.PathID(r, "paymentId")
	if err != nil {
		h.logger.Warn("DELETE /payments/{id} - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &deletePayment.Request{PaymentID: paymentID})
	if err != nil {
		switch {
		case errors.Is(err, deletePayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPaymentID)

		case errors.Is(err, deletePayment.ErrPaymentNotFound):
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, deletePayment.ErrVersionConflict):
			handlers.RespondConflict(w, msgVersionConflict)

		default:
			h.logger.Error("DELETE /payments/{id} - Failed to delete payment: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /payments/{id} - Payment deleted: payment_id=%d", paymentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
