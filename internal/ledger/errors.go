package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount сумма не является положительным конечным числом
	ErrInvalidAmount = errors.New("ledger: invalid amount")

	// ErrAlreadyFullyPaid бронирование уже оплачено полностью
	ErrAlreadyFullyPaid = errors.New("ledger: booking already fully paid")

	// ErrExceedsRemaining сумма превышает остаток к оплате
	ErrExceedsRemaining = errors.New("ledger: amount exceeds remaining balance")
)

// Kind тип нарушения бизнес-правила
type Kind string

const (
	KindInvalidAmount    Kind = "invalid_amount"
	KindAlreadyFullyPaid Kind = "already_fully_paid"
	KindExceedsRemaining Kind = "exceeds_remaining"
)

// RuleError отказ ledger с подсказкой об остатке.
// Сопоставляется с ErrInvalidAmount/ErrAlreadyFullyPaid/ErrExceedsRemaining через errors.Is.
type RuleError struct {
	Kind      Kind
	Remaining float64 // остаток на момент проверки
	Amendment bool    // отказ при изменении существующего платежа
}

func (e *RuleError) Error() string {
	switch e.Kind {
	case KindInvalidAmount:
		return "Amount must be a valid number greater than 0"
	case KindAlreadyFullyPaid:
		return "This booking is already fully paid. No additional payments can be added."
	case KindExceedsRemaining:
		if e.Amendment {
			return fmt.Sprintf("New amount would exceed remaining balance. Remaining: %s", FormatMoney(e.Remaining))
		}
		return fmt.Sprintf("Payment amount exceeds remaining balance. Remaining: %s", FormatMoney(e.Remaining))
	default:
		return "ledger: rule violation"
	}
}

func (e *RuleError) Unwrap() error {
	switch e.Kind {
	case KindInvalidAmount:
		return ErrInvalidAmount
	case KindAlreadyFullyPaid:
		return ErrAlreadyFullyPaid
	case KindExceedsRemaining:
		return ErrExceedsRemaining
	default:
		return nil
	}
}

// AsRuleError извлекает *RuleError из цепочки ошибок
func AsRuleError(err error) (*RuleError, bool) {
	var re *RuleError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
