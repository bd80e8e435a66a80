package mailer

import "time"

// DefaultBody текст письма, если пользователь не задал свой
const DefaultBody = "Thank you for your business. If you have any questions, please don't hesitate to contact us.\n\nBest regards,\nTravel Agency Team"

// PaymentConfirmation данные письма о принятом платеже
type PaymentConfirmation struct {
	To      string
	Subject string // пусто: "Payment Confirmation - Booking #<номер>"
	Body    string // пусто: DefaultBody

	BookingNumber string
	ETicket       string
	TravelDate    string
	PackagePrice  float64

	Amount        float64
	PaymentDate   time.Time
	PaymentMethod string
	Reference     string

	Remaining float64
}

// Config параметры SMTP
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}
