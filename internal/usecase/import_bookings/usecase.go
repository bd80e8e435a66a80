package import_bookings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/travel-backoffice/internal/domain"
	"github.com/m04kA/travel-backoffice/internal/ledger"
	"github.com/m04kA/travel-backoffice/internal/spreadsheet"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

// UseCase use case импорта бронирований из таблицы
type UseCase struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	batchRepo    BatchRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	batchRepo BatchRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		batchRepo:    batchRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет импорт
// Строки обрабатываются последовательно, каждая в своей транзакции;
// ошибка строки не прерывает импорт и попадает в итог.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if len(req.Rows) == 0 {
		uc.logger.Warn("ImportBookings: no rows in file %q", req.FileName)
		return nil, fmt.Errorf("%w: file contains no data rows", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	name, fileName := batchNames(req, now)

	uc.logger.Info("ImportBookings: batch=%q, file=%q, rows=%d, user=%d", name, fileName, len(req.Rows), req.UploadedBy)

	// 1. Создаём пакет до обработки строк
	batch, err := uc.batchRepo.Create(ctx, &domain.ImportBatch{
		Name:         name,
		FileName:     fileName,
		UploadedBy:   req.UploadedBy,
		UploadedAt:   now,
		TotalRecords: len(req.Rows),
	})
	if err != nil {
		uc.logger.Error("ImportBookings: failed to create batch %q: %v", name, err)
		return nil, fmt.Errorf("%w: failed to create import batch: %v", ErrInternal, err)
	}

	// 2. Последовательно обрабатываем строки
	var (
		success int
		rowErrs []RowError
	)
	for i, row := range req.Rows {
		if err := uc.processRow(ctx, batch.ID, row, now); err != nil {
			rowErrs = append(rowErrs, RowError{Row: i + 1, Message: err.Error()})
			uc.metrics.ObserveImportRow(outcomeError)
			uc.logger.Warn("ImportBookings: batch=%d row %d failed: %v", batch.ID, i+1, err)
		} else {
			success++
			uc.metrics.ObserveImportRow(outcomeSuccess)
		}

		if err := uc.batchRepo.UpdateCounts(ctx, batch.ID, success, len(rowErrs)); err != nil {
			uc.logger.Warn("ImportBookings: failed to write progress for batch=%d: %v", batch.ID, err)
		}
	}

	// 3. Итоговые счётчики
	if err := uc.batchRepo.UpdateCounts(ctx, batch.ID, success, len(rowErrs)); err != nil {
		uc.logger.Error("ImportBookings: failed to write final counts for batch=%d: %v", batch.ID, err)
		return nil, fmt.Errorf("%w: failed to update batch counts: %v", ErrInternal, err)
	}

	shown := rowErrs
	if len(shown) > domain.MaxImportErrors {
		shown = shown[:domain.MaxImportErrors]
	}

	uc.logger.Info("ImportBookings: batch=%d done, success=%d, errors=%d", batch.ID, success, len(rowErrs))

	return &Response{
		Message: fmt.Sprintf("Import complete! %d bookings created, %d errors", success, len(rowErrs)),
		Batch: BatchSummary{
			ID:           batch.ID,
			Name:         batch.Name,
			TotalRecords: len(req.Rows),
			SuccessCount: success,
			ErrorCount:   len(rowErrs),
		},
		BookingsCreated: success,
		Errors:          shown,
	}, nil
}

// processRow создаёт бронирование и платёж-депозит в одной транзакции
func (uc *UseCase) processRow(ctx context.Context, batchID int64, row spreadsheet.Row, now time.Time) error {
	in := spreadsheet.MapRow(row)
	if err := in.Validate(); err != nil {
		return err
	}

	return uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking := domain.NewBooking(in, &batchID)
		if booking.Deposit > 0 {
			booking.ApplyLedger(ledger.ApplyImportedDeposit(booking.Snapshot(), booking.Deposit))
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		if created.Deposit > 0 {
			_, err = uc.paymentRepo.Create(txCtx, &domain.Payment{
				BookingID:     created.ID,
				Amount:        created.Deposit,
				PaymentDate:   now,
				PaymentMethod: domain.MethodImport,
				Reference:     domain.ImportDepositReference,
				Notes:         domain.ImportDepositNotes,
			})
			if err != nil {
				return fmt.Errorf("failed to create deposit payment: %w", err)
			}
		}
		return nil
	})
}

func batchNames(req *Request, now time.Time) (name, fileName string) {
	fileName = strings.TrimSpace(req.FileName)
	name = strings.TrimSpace(req.BatchName)
	if name == "" {
		name = fileName
	}
	if name == "" {
		name = "Import " + now.UTC().Format(time.RFC3339)
	}
	if fileName == "" {
		fileName = domain.UnknownFileName
	}
	return name, fileName
}
