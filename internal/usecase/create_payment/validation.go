package create_payment

import (
	"fmt"
	"strings"

	"github.com/m04kA/travel-backoffice/internal/domain"
)

const maxReferenceLength = 200

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}
	if req.Amount == 0 || strings.TrimSpace(req.PaymentMethod) == "" {
		return fmt.Errorf("%w: Amount and payment method are required", ErrInvalidInput)
	}
	if !domain.PaymentMethod(req.PaymentMethod).IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}
	if len(req.Reference) > maxReferenceLength {
		return fmt.Errorf("%w: reference must be at most %d characters", ErrInvalidInput, maxReferenceLength)
	}
	if len(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
