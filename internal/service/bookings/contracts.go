package bookings

import (
	"context"

	"github.com/m04kA/travel-backoffice/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingListFilter) ([]*domain.Booking, error)
	Count(ctx context.Context, filter domain.BookingListFilter) (int64, error)
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*domain.BookingStats, error)
}

// BatchRepository интерфейс репозитория пакетов импорта
type BatchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ImportBatch, error)
	GetOrCreateByName(ctx context.Context, name, fileName string, uploadedBy int64) (*domain.ImportBatch, bool, error)
	IncrementCounts(ctx context.Context, id int64, total, success int) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.Payment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
