package update_payment

import (
	"fmt"

	"github.com/m04kA/travel-backoffice/internal/domain"
)

const maxReferenceLength = 200

func validateRequest(req *Request) error {
	if req.PaymentID <= 0 {
		return fmt.Errorf("%w: payment id must be positive", ErrInvalidInput)
	}
	if req.PaymentMethod != nil && !domain.PaymentMethod(*req.PaymentMethod).IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, *req.PaymentMethod)
	}
	if req.PaymentDate != nil && req.PaymentDate.IsZero() {
		return fmt.Errorf("%w: payment date is invalid", ErrInvalidInput)
	}
	if req.Reference != nil && len(*req.Reference) > maxReferenceLength {
		return fmt.Errorf("%w: reference must be at most %d characters", ErrInvalidInput, maxReferenceLength)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
