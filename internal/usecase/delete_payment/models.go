package delete_payment

import "github.com/m04kA/travel-backoffice/internal/domain"

// Request удаление платежа
type Request struct {
	PaymentID int64
}

// Response бронирование после удаления платежа
type Response struct {
	Booking *domain.Booking
	// NegativeTotal итог платежей бронирования стал отрицательным
	NegativeTotal bool
}
