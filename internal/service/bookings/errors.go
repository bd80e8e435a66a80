package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBatchNotFound возвращается, когда указанный пакет импорта не существует
	ErrBatchNotFound = errors.New("import batch not found")

	// ErrVersionConflict возвращается, когда бронирование изменили параллельно
	ErrVersionConflict = errors.New("booking was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
