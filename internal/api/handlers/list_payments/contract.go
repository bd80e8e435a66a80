package list_payments

import (
	"context"

	"github.com/m04kA/travel-backoffice/internal/service/payments/models"
)

type PaymentService interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]models.PaymentResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
