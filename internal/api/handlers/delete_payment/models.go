package delete_payment

import (
	bookingModels "github.com/m04kA/travel-backoffice/internal/service/bookings/models"
	deletePayment "github.com/m04kA/travel-backoffice/internal/usecase/delete_payment"
)

const msgDeleted = "Payment deleted successfully"

// DeletePaymentResponse booking равен null, если бронирования платежа уже нет
type DeletePaymentResponse struct {
	Message       string                         `json:"message"`
	Booking       *bookingModels.BookingResponse `json:"booking"`
	NegativeTotal bool                           `json:"negativeTotal,omitempty"`
}

func FromUseCaseResponse(resp *deletePayment.Response) *DeletePaymentResponse {
	out := &DeletePaymentResponse{
		Message:       msgDeleted,
		NegativeTotal: resp.NegativeTotal,
	}
	if resp.Booking != nil {
		out.Booking = bookingModels.FromDomainBooking(resp.Booking)
	}
	return out
}
