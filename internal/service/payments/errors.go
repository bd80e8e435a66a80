package payments

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrMissingRecipient возвращается, когда адрес не передан и у бронирования его нет
	ErrMissingRecipient = errors.New("recipient email is missing")

	// ErrEmailFailed возвращается, когда письмо не удалось отправить
	ErrEmailFailed = errors.New("failed to send email")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
