package domain

import "time"

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "Cash"
	MethodBankTransfer PaymentMethod = "Bank Transfer"
	MethodCreditCard   PaymentMethod = "Credit Card"
	MethodDebitCard    PaymentMethod = "Debit Card"
	MethodMobileMoney  PaymentMethod = "Mobile Money"
	MethodImport       PaymentMethod = "Import"
	MethodOther        PaymentMethod = "Other"
)

// IsValid reports whether the method is one of the known values
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCreditCard, MethodDebitCard,
		MethodMobileMoney, MethodImport, MethodOther:
		return true
	}
	return false
}

// Payment represents one monetary transaction applied to a booking
type Payment struct {
	ID            int64
	BookingID     int64
	Amount        float64
	PaymentDate   time.Time
	PaymentMethod PaymentMethod
	Reference     string
	Notes         string

	CreatedAt time.Time
	UpdatedAt time.Time
}
