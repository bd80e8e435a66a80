package update_payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("update_payment: payment not found")

	// ErrBookingNotFound возвращается, когда бронирование платежа не найдено
	ErrBookingNotFound = errors.New("update_payment: booking not found")

	// ErrRuleViolation возвращается, когда ledger отклонил новую сумму
	ErrRuleViolation = errors.New("update_payment: amendment rejected")

	// ErrVersionConflict возвращается, когда бронирование менялось параллельно и попытки исчерпаны
	ErrVersionConflict = errors.New("update_payment: booking was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_payment: internal error")
)
