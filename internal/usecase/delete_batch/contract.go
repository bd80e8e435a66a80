package delete_batch

import (
	"context"

	"github.com/m04kA/travel-backoffice/internal/domain"
)

// BatchRepository интерфейс репозитория пакетов импорта
type BatchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ImportBatch, error)
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	DeleteByBatch(ctx context.Context, batchID int64) (int64, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	DeleteByBatch(ctx context.Context, batchID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
