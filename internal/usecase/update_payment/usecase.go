package update_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/travel-backoffice/internal/domain"
	bookingRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/payment"
	"github.com/m04kA/travel-backoffice/internal/ledger"
	"github.com/m04kA/travel-backoffice/pkg/retry"
	"github.com/m04kA/travel-backoffice/pkg/txmanager"
)

// DefaultAttempts количество попыток при конфликте версий
const DefaultAttempts = 3

// UseCase use case изменения платежа
type UseCase struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
	attempts    int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	metrics Metrics,
	attempts int,
	logger Logger,
) *UseCase {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return &UseCase{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
		attempts:    attempts,
	}
}

// Execute выполняет use case изменения платежа
// Итоги бронирования пересчитываются только если изменилась сумма.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdatePayment: payment=%d", req.PaymentID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdatePayment: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	err := retry.Do(ctx, uc.attempts, isRetryable, func() error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// 2. Читаем платёж и его бронирование
			payment, err := uc.paymentRepo.GetByID(txCtx, req.PaymentID)
			if err != nil {
				if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
					uc.logger.Warn("UpdatePayment: payment id=%d not found", req.PaymentID)
					return ErrPaymentNotFound
				}
				uc.logger.Error("UpdatePayment: failed to get payment id=%d: %v", req.PaymentID, err)
				return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
			}

			booking, err := uc.bookingRepo.GetByID(txCtx, payment.BookingID)
			if err != nil {
				if errors.Is(err, bookingRepo.ErrBookingNotFound) {
					uc.logger.Warn("UpdatePayment: booking id=%d of payment id=%d not found", payment.BookingID, payment.ID)
					return ErrBookingNotFound
				}
				uc.logger.Error("UpdatePayment: failed to get booking id=%d: %v", payment.BookingID, err)
				return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
			}

			// 3. Новая сумма проходит через ledger
			if req.Amount != nil && ledger.RoundMoney(*req.Amount) != payment.Amount {
				res, err := ledger.ApplyAmendedAmount(booking.Snapshot(), payment.Amount, *req.Amount)
				if err != nil {
					if re, ok := ledger.AsRuleError(err); ok {
						uc.metrics.ObserveLedgerRejection(string(re.Kind))
					}
					uc.logger.Warn("UpdatePayment: payment id=%d rejected: %v", payment.ID, err)
					return fmt.Errorf("%w: %w", ErrRuleViolation, err)
				}

				version, err := uc.bookingRepo.UpdateTotals(txCtx, booking.ID, booking.Version, res.TotalPayments, res.Remaining)
				if err != nil {
					if errors.Is(err, bookingRepo.ErrVersionConflict) {
						uc.logger.Warn("UpdatePayment: version conflict on booking id=%d", booking.ID)
						return err
					}
					uc.logger.Error("UpdatePayment: failed to update totals for booking id=%d: %v", booking.ID, err)
					return fmt.Errorf("%w: failed to update booking totals: %v", ErrInternal, err)
				}

				booking.ApplyLedger(res)
				booking.Version = version
				payment.Amount = ledger.RoundMoney(*req.Amount)
			}

			// 4. Остальные поля
			if req.PaymentDate != nil {
				payment.PaymentDate = *req.PaymentDate
			}
			if req.PaymentMethod != nil {
				payment.PaymentMethod = domain.PaymentMethod(*req.PaymentMethod)
			}
			if req.Reference != nil {
				payment.Reference = strings.TrimSpace(*req.Reference)
			}
			if req.Notes != nil {
				payment.Notes = strings.TrimSpace(*req.Notes)
			}

			if err := uc.paymentRepo.Update(txCtx, payment); err != nil {
				if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
					return ErrPaymentNotFound
				}
				uc.logger.Error("UpdatePayment: failed to update payment id=%d: %v", payment.ID, err)
				return fmt.Errorf("%w: failed to update payment: %v", ErrInternal, err)
			}

			result = &Response{Payment: payment, Booking: booking}
			return nil
		})
	})

	if err != nil {
		if isRetryable(err) {
			uc.logger.Error("UpdatePayment: payment id=%d still conflicting after %d attempts", req.PaymentID, uc.attempts)
			return nil, fmt.Errorf("%w: %v", ErrVersionConflict, err)
		}
		return nil, err
	}

	uc.metrics.ObservePayment("amend")
	uc.logger.Info("UpdatePayment: updated payment id=%d, booking=%d total=%.2f remaining=%.2f",
		result.Payment.ID, result.Booking.ID, result.Booking.TotalPayments, result.Booking.Remaining)

	return result, nil
}

func isRetryable(err error) bool {
	return errors.Is(err, bookingRepo.ErrVersionConflict) || txmanager.IsRetryable(err)
}
