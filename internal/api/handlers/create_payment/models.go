package create_payment

import (
	"github.com/m04kA/travel-backoffice/internal/api/handlers"
	bookingModels "github.com/m04kA/travel-backoffice/internal/service/bookings/models"
	paymentModels "github.com/m04kA/travel-backoffice/internal/service/payments/models"
	createPayment "github.com/m04kA/travel-backoffice/internal/usecase/create_payment"
)

// CreatePaymentRequest тело запроса
type CreatePaymentRequest struct {
	Amount        float64 `json:"amount"`
	PaymentDate   *string `json:"paymentDate,omitempty"`
	PaymentMethod string  `json:"paymentMethod"`
	Reference     string  `json:"reference,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// PaymentMutationResponse платёж и бронирование с новыми итогами
type PaymentMutationResponse struct {
	Payment *paymentModels.PaymentResponse `json:"payment"`
	Booking *bookingModels.BookingResponse `json:"booking"`
}

// ToUseCaseRequest конвертирует тело запроса в запрос use case
func (r *CreatePaymentRequest) ToUseCaseRequest(bookingID int64) (*createPayment.Request, error) {
	req := &createPayment.Request{
		BookingID:     bookingID,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		Reference:     r.Reference,
		Notes:         r.Notes,
	}
	if r.PaymentDate != nil && *r.PaymentDate != "" {
		d, err := handlers.ParseDate(*r.PaymentDate)
		if err != nil {
			return nil, err
		}
		req.PaymentDate = &d
	}
	return req, nil
}

// FromUseCaseResponse конвертирует результат use case в DTO
func FromUseCaseResponse(resp *createPayment.Response) *PaymentMutationResponse {
	return &PaymentMutationResponse{
		Payment: paymentModels.FromDomainPayment(resp.Payment),
		Booking: bookingModels.FromDomainBooking(resp.Booking),
	}
}
