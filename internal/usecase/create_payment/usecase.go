package create_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/travel-backoffice/internal/domain"
	bookingRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/booking"
	"github.com/m04kA/travel-backoffice/internal/ledger"
	"github.com/m04kA/travel-backoffice/pkg/retry"
	"github.com/m04kA/travel-backoffice/pkg/txmanager"
)

// DefaultAttempts количество попыток при конфликте версий
const DefaultAttempts = 3

// UseCase use case добавления платежа к бронированию
type UseCase struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	attempts     int
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
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		attempts:     attempts,
	}
}

// Execute выполняет use case создания платежа
// Чтение бронирования, проверка ledger и запись итогов и платежа идут в одной
// сериализуемой транзакции; при конфликте версий цикл повторяется целиком.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePayment: booking=%d, amount=%.2f, method=%s", req.BookingID, req.Amount, req.PaymentMethod)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreatePayment: validation failed: %v", err)
		return nil, err
	}

	paymentDate := uc.timeProvider.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	var result *Response

	err := retry.Do(ctx, uc.attempts, isRetryable, func() error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// 2. Читаем бронирование с блокировкой
			booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
			if err != nil {
				if errors.Is(err, bookingRepo.ErrBookingNotFound) {
					uc.logger.Warn("CreatePayment: booking id=%d not found", req.BookingID)
					return ErrBookingNotFound
				}
				uc.logger.Error("CreatePayment: failed to get booking id=%d: %v", req.BookingID, err)
				return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
			}

			// 3. Проверяем платёж правилами ledger
			res, err := ledger.ApplyNewPayment(booking.Snapshot(), req.Amount)
			if err != nil {
				if re, ok := ledger.AsRuleError(err); ok {
					uc.metrics.ObserveLedgerRejection(string(re.Kind))
				}
				uc.logger.Warn("CreatePayment: booking id=%d rejected: %v", req.BookingID, err)
				return fmt.Errorf("%w: %w", ErrRuleViolation, err)
			}

			// 4. Записываем итоги с проверкой версии
			version, err := uc.bookingRepo.UpdateTotals(txCtx, booking.ID, booking.Version, res.TotalPayments, res.Remaining)
			if err != nil {
				if errors.Is(err, bookingRepo.ErrVersionConflict) {
					uc.logger.Warn("CreatePayment: version conflict on booking id=%d", booking.ID)
					return err
				}
				uc.logger.Error("CreatePayment: failed to update totals for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to update booking totals: %v", ErrInternal, err)
			}

			// 5. Сохраняем платёж
			payment, err := uc.paymentRepo.Create(txCtx, &domain.Payment{
				BookingID:     booking.ID,
				Amount:        ledger.RoundMoney(req.Amount),
				PaymentDate:   paymentDate,
				PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
				Reference:     strings.TrimSpace(req.Reference),
				Notes:         strings.TrimSpace(req.Notes),
			})
			if err != nil {
				uc.logger.Error("CreatePayment: failed to create payment for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
			}

			booking.ApplyLedger(res)
			booking.Version = version

			result = &Response{Payment: payment, Booking: booking}
			return nil
		})
	})

	if err != nil {
		if isRetryable(err) {
			uc.logger.Error("CreatePayment: booking id=%d still conflicting after %d attempts", req.BookingID, uc.attempts)
			return nil, fmt.Errorf("%w: %v", ErrVersionConflict, err)
		}
		return nil, err
	}

	uc.metrics.ObservePayment("create")
	uc.logger.Info("CreatePayment: created payment id=%d, booking=%d total=%.2f remaining=%.2f",
		result.Payment.ID, result.Booking.ID, result.Booking.TotalPayments, result.Booking.Remaining)

	return result, nil
}

func isRetryable(err error) bool {
	return errors.Is(err, bookingRepo.ErrVersionConflict) || txmanager.IsRetryable(err)
}
