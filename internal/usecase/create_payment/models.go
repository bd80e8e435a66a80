package create_payment

import (
	"time"

	"github.com/m04kA/travel-backoffice/internal/domain"
)

// Request модель запроса на создание платежа
type Request struct {
	BookingID     int64
	Amount        float64
	PaymentDate   *time.Time // если не указана - текущее время
	PaymentMethod string
	Reference     string
	Notes         string
}

// Response созданный платёж и бронирование с новыми итогами
type Response struct {
	Payment *domain.Payment
	Booking *domain.Booking
}
