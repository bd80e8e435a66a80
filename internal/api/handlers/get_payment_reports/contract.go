package get_payment_reports

import (
	"context"

	"github.com/m04kA/travel-backoffice/internal/service/payments/models"
)

type PaymentService interface {
	Report(ctx context.Context, req *models.ReportRequest) (*models.ReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
