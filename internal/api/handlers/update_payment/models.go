package update_payment

import (
	"github.com/m04kA/travel-backoffice/internal/api/handlers"
	bookingModels "github.com/m04kA/travel-backoffice/internal/service/bookings/models"
	paymentModels "github.com/m04kA/travel-backoffice/internal/service/payments/models"
	updatePayment "github.com/m04kA/travel-backoffice/internal/usecase/update_payment"
)

// UpdatePaymentRequest тело запроса, отсутствующие поля не меняются
type UpdatePaymentRequest struct {
	Amount        *float64 `json:"amount,omitempty"`
	PaymentDate   *string  `json:"paymentDate,omitempty"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
	Reference     *string  `json:"reference,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

type PaymentMutationResponse struct {
	Payment *paymentModels.PaymentResponse `json:"payment"`
	Booking *bookingModels.BookingResponse `json:"booking"`
}

func (r *UpdatePaymentRequest) ToUseCaseRequest(paymentID int64) (*updatePayment.Request, error) {
	req := &updatePayment.Request{
		PaymentID:     paymentID,
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

func FromUseCaseResponse(resp *updatePayment.Response) *PaymentMutationResponse {
	return &PaymentMutationResponse{
		Payment: paymentModels.FromDomainPayment(resp.Payment),
		Booking: bookingModels.FromDomainBooking(resp.Booking),
	}
}
