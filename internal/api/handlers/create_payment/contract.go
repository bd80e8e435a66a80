package create_payment

import (
	"context"

	createPayment "github.com/m04kA/travel-backoffice/internal/usecase/create_payment"
)

type CreatePaymentUseCase interface {
	Execute(ctx context.Context, req *createPayment.Request) (*createPayment.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
