package delete_payment

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/payment"
	"github.com/m04kA/travel-backoffice/internal/ledger"
	"github.com/m04kA/travel-backoffice/pkg/retry"
	"github.com/m04kA/travel-backoffice/pkg/txmanager"
)

// DefaultAttempts количество попыток при конфликте версий
const DefaultAttempts = 3

// UseCase use case удаления платежа
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

// Execute выполняет use case удаления платежа
// Сумма платежа вычитается из итога бронирования без ограничения снизу;
// отрицательный итог только помечается и логируется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DeletePayment: payment=%d", req.PaymentID)

	if req.PaymentID <= 0 {
		return nil, fmt.Errorf("%w: payment id must be positive", ErrInvalidInput)
	}

	var result *Response

	err := retry.Do(ctx, uc.attempts, isRetryable, func() error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// 1. Читаем платёж
			payment, err := uc.paymentRepo.GetByID(txCtx, req.PaymentID)
			if err != nil {
				if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
					uc.logger.Warn("DeletePayment: payment id=%d not found", req.PaymentID)
					return ErrPaymentNotFound
				}
				uc.logger.Error("DeletePayment: failed to get payment id=%d: %v", req.PaymentID, err)
				return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
			}

			// 2. Читаем бронирование; платёж без бронирования удаляется как есть
			booking, err := uc.bookingRepo.GetByID(txCtx, payment.BookingID)
			if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Error("DeletePayment: failed to get booking id=%d: %v", payment.BookingID, err)
				return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
			}

			res := &Response{}
			if booking != nil {
				// 3. Пересчёт итогов
				out := ledger.ApplyRemovedPayment(booking.Snapshot(), payment.Amount)

				version, err := uc.bookingRepo.UpdateTotals(txCtx, booking.ID, booking.Version, out.TotalPayments, out.Remaining)
				if err != nil {
					if errors.Is(err, bookingRepo.ErrVersionConflict) {
						uc.logger.Warn("DeletePayment: version conflict on booking id=%d", booking.ID)
						return err
					}
					uc.logger.Error("DeletePayment: failed to update totals for booking id=%d: %v", booking.ID, err)
					return fmt.Errorf("%w: failed to update booking totals: %v", ErrInternal, err)
				}

				booking.ApplyLedger(out)
				booking.Version = version
				res.Booking = booking
				res.NegativeTotal = out.NegativeTotal
			}

			// 4. Удаляем платёж
			if err := uc.paymentRepo.Delete(txCtx, payment.ID); err != nil {
				if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
					return ErrPaymentNotFound
				}
				uc.logger.Error("DeletePayment: failed to delete payment id=%d: %v", payment.ID, err)
				return fmt.Errorf("%w: failed to delete payment: %v", ErrInternal, err)
			}

			result = res
			return nil
		})
	})

	if err != nil {
		if isRetryable(err) {
			uc.logger.Error("DeletePayment: payment id=%d still conflicting after %d attempts", req.PaymentID, uc.attempts)
			return nil, fmt.Errorf("%w: %v", ErrVersionConflict, err)
		}
		return nil, err
	}

	uc.metrics.ObservePayment("delete")

	if result.NegativeTotal {
		uc.metrics.ObserveNegativeTotal()
		uc.logger.Warn("DeletePayment: booking id=%d total payments went negative: %.2f",
			result.Booking.ID, result.Booking.TotalPayments)
	}

	uc.logger.Info("DeletePayment: deleted payment id=%d", req.PaymentID)

	return result, nil
}

func isRetryable(err error) bool {
	return errors.Is(err, bookingRepo.ErrVersionConflict) || txmanager.IsRetryable(err)
}
