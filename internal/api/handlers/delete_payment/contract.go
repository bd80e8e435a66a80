package delete_payment

import (
	"context"

	deletePayment "github.com/m04kA/travel-backoffice/internal/usecase/delete_payment"
)

type DeletePaymentUseCase interface {
	Execute(ctx context.Context, req *deletePayment.Request) (*deletePayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
