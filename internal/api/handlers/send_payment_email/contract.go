package send_payment_email

import (
	"context"

	"github.com/m04kA/travel-backoffice/internal/service/payments/models"
)

type PaymentService interface {
	SendConfirmation(ctx context.Context, req *models.SendEmailRequest) (*models.MessageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
