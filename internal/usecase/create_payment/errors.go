package create_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("create_payment: booking not found")

	// ErrRuleViolation возвращается, когда ledger отклонил платёж.
	// Цепочка содержит *ledger.RuleError с текстом для пользователя.
	ErrRuleViolation = errors.New("create_payment: payment rejected")

	// ErrVersionConflict возвращается, когда бронирование менялось параллельно и попытки исчерпаны
	ErrVersionConflict = errors.New("create_payment: booking was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_payment: internal error")
)
