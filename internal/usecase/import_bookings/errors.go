package import_bookings

import "errors"

var (
	// ErrInvalidInput возвращается, когда в файле нет строк
	ErrInvalidInput = errors.New("import_bookings: invalid input data")

	// ErrInternal возвращается, когда не удалось создать пакет или записать итоговые счётчики
	ErrInternal = errors.New("import_bookings: internal error")
)
