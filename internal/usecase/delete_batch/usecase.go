package delete_batch

import (
	"context"
	"errors"
	"fmt"

	batchRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/batch"
)

// UseCase use case каскадного удаления пакета импорта
type UseCase struct {
	batchRepo   BatchRepository
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	batchRepo BatchRepository,
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		batchRepo:   batchRepo,
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute удаляет платежи, бронирования и сам пакет в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DeleteBatch: batch=%d", req.BatchID)

	resp := &Response{Message: MsgDeleted}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Проверяем, что пакет существует
		if _, err := uc.batchRepo.GetByID(txCtx, req.BatchID); err != nil {
			if errors.Is(err, batchRepo.ErrBatchNotFound) {
				uc.logger.Warn("DeleteBatch: batch id=%d not found", req.BatchID)
				return ErrBatchNotFound
			}
			return fmt.Errorf("%w: failed to get batch: %v", ErrInternal, err)
		}

		// 2. Платежи бронирований пакета
		payments, err := uc.paymentRepo.DeleteByBatch(txCtx, req.BatchID)
		if err != nil {
			return fmt.Errorf("%w: failed to delete payments: %v", ErrInternal, err)
		}

		// 3. Бронирования пакета
		bookings, err := uc.bookingRepo.DeleteByBatch(txCtx, req.BatchID)
		if err != nil {
			return fmt.Errorf("%w: failed to delete bookings: %v", ErrInternal, err)
		}

		// 4. Сам пакет
		if err := uc.batchRepo.Delete(txCtx, req.BatchID); err != nil {
			if errors.Is(err, batchRepo.ErrBatchNotFound) {
				return ErrBatchNotFound
			}
			return fmt.Errorf("%w: failed to delete batch: %v", ErrInternal, err)
		}

		resp.DeletedBookings = bookings
		resp.DeletedPayments = payments
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrBatchNotFound) {
			uc.logger.Error("DeleteBatch: batch id=%d: %v", req.BatchID, err)
		}
		return nil, err
	}

	uc.logger.Info("DeleteBatch: deleted batch id=%d, bookings=%d, payments=%d",
		req.BatchID, resp.DeletedBookings, resp.DeletedPayments)

	return resp, nil
}
