package delete_payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("delete_payment: payment not found")

	// ErrVersionConflict возвращается, когда бронирование менялось параллельно и попытки исчерпаны
	ErrVersionConflict = errors.New("delete_payment: booking was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("delete_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("delete_payment: internal error")
)
