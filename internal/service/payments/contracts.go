package payments

import (
	"context"

	"github.com/m04kA/travel-backoffice/internal/domain"
	"github.com/m04kA/travel-backoffice/internal/integrations/mailer"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Stats(ctx context.Context) (*domain.BookingStats, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.Payment, error)
	TotalsByMethod(ctx context.Context, period domain.ReportPeriod) ([]domain.MethodTotal, error)
	TotalsByMonth(ctx context.Context, period domain.ReportPeriod) ([]domain.MonthlyTotal, error)
}

// Mailer интерфейс отправки писем
type Mailer interface {
	SendPaymentConfirmation(ctx context.Context, m *mailer.PaymentConfirmation) error
}

// Metrics метрики отправки писем
type Metrics interface {
	ObserveEmail(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
