package list_batches

import (
	"context"

	"github.com/m04kA/travel-backoffice/internal/service/batches/models"
)

type BatchService interface {
	List(ctx context.Context) ([]models.BatchResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
