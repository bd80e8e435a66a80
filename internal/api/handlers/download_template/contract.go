package download_template

import (
	"context"

	"github.com/m04kA/travel-backoffice/internal/service/bookings/models"
)

type BookingService interface {
	Template(ctx context.Context) (*models.File, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
