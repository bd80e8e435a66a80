package send_payment_email

import (
	"errors"
	"net/http"

	"github.com/m04kA/travel-backoffice/internal/api/handlers"
	"github.com/m04kA/travel-backoffice/internal/service/payments"
	"github.com/m04kA/travel-backoffice/internal/service/payments/models"
)

const (
	msgInvalidPaymentID   = "Invalid payment ID"
	msgInvalidRequestBody = "Invalid request body"
	msgPaymentNotFound    = "Payment not found"
	msgBookingNotFound    = "Booking not found"
	msgMissingRecipient   = "Please provide a recipient email address."
	msgEmailFailed        = "Failed to send email"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/{paymentId}/send-email
// Тело запроса необязательно.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	paymentID, err := handlers.PathID(r, "paymentId")
	if err != nil {
		h.logger.Warn("POST /payments/{id}/send-email - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	var req models.SendEmailRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !handlers.IsEmptyBody(err) {
		h.logger.Warn("POST /payments/{id}/send-email - Invalid request body: payment_id=%d, error=%v", paymentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.PaymentID = paymentID

	resp, err := h.service.SendConfirmation(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, payments.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, payments.ErrMissingRecipient):
			handlers.RespondBadRequest(w, msgMissingRecipient)

		case errors.Is(err, payments.ErrEmailFailed):
			handlers.RespondError(w, http.StatusBadGateway, msgEmailFailed)

		default:
			h.logger.Error("POST /payments/{id}/send-email - Failed to send email: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
