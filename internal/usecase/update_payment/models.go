package update_payment

import (
	"time"

	"github.com/m04kA/travel-backoffice/internal/domain"
)

// Request изменение платежа, nil-поля не меняются
type Request struct {
	PaymentID     int64
	Amount        *float64
	PaymentDate   *time.Time
	PaymentMethod *string
	Reference     *string
	Notes         *string
}

// Response изменённый платёж и бронирование с новыми итогами
type Response struct {
	Payment *domain.Payment
	Booking *domain.Booking
}
