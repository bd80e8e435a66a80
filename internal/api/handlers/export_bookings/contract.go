package export_bookings

import (
	"context"

	"github.com/m04kA/travel-backoffice/internal/service/bookings/models"
)

type BookingService interface {
	Export(ctx context.Context) (*models.File, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
