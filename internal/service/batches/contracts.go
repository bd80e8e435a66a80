package batches

import (
	"context"

	"github.com/m04kA/travel-backoffice/internal/domain"
)

// BatchRepository интерфейс репозитория пакетов импорта
type BatchRepository interface {
	List(ctx context.Context) ([]*domain.ImportBatch, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
