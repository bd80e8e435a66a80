package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/travel-backoffice/internal/domain"
	batchRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/batch"
	bookingRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/booking"
	"github.com/m04kA/travel-backoffice/internal/ledger"
	"github.com/m04kA/travel-backoffice/internal/service/bookings/models"
	"github.com/m04kA/travel-backoffice/internal/spreadsheet"
)

const (
	exportFileName   = "CUMRA_2025_Bookings_Export.xlsx"
	templateFileName = "CUMRA_2025_Template.xlsx"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	batchRepo   BatchRepository
	paymentRepo PaymentRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	batchRepo BatchRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		batchRepo:   batchRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create создаёт бронирование вручную
// Если указан groupName (и не указан importBatchId), пакет с этим именем
// находится или создаётся, и его счётчики увеличиваются на одну запись.
func (s *Service) Create(ctx context.Context, req *models.CreateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Create: booking number=%q, group=%q, user=%d", req.BookingNumber, req.GroupName, req.UserID)

	in := req.ToDomainInput()
	if err := in.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var created *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		batchID, err := s.resolveBatch(txCtx, req)
		if err != nil {
			return err
		}

		created, err = s.bookingRepo.Create(txCtx, domain.NewBooking(in, batchID))
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrBatchNotFound) {
			s.logger.Error("Create: failed to create booking: %v", err)
		}
		return nil, err
	}

	s.logger.Info("Create: created booking id=%d, system id=%s", created.ID, created.SystemBookingID)
	return models.FromDomainBooking(created), nil
}

// resolveBatch возвращает id пакета для нового бронирования
func (s *Service) resolveBatch(ctx context.Context, req *models.CreateBookingRequest) (*int64, error) {
	if req.ImportBatchID != nil {
		if _, err := s.batchRepo.GetByID(ctx, *req.ImportBatchID); err != nil {
			if errors.Is(err, batchRepo.ErrBatchNotFound) {
				s.logger.Warn("Create: import batch id=%d not found", *req.ImportBatchID)
				return nil, ErrBatchNotFound
			}
			return nil, fmt.Errorf("%w: Create - get batch: %v", ErrInternal, err)
		}
		return req.ImportBatchID, nil
	}

	name := strings.TrimSpace(req.GroupName)
	if name == "" {
		return nil, nil
	}

	batch, _, err := s.batchRepo.GetOrCreateByName(ctx, name, domain.ManualEntryFileName, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - get or create batch: %v", ErrInternal, err)
	}
	if err := s.batchRepo.IncrementCounts(ctx, batch.ID, 1, 1); err != nil {
		return nil, fmt.Errorf("%w: Create - increment batch counts: %v", ErrInternal, err)
	}

	return &batch.ID, nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// List возвращает страницу бронирований с фильтрами, сортировкой и пагинацией
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		bookings []*domain.Booking
		total    int64
	)
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if total, err = s.bookingRepo.Count(txCtx, filter); err != nil {
			return err
		}
		bookings, err = s.bookingRepo.List(txCtx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: page=%d limit=%d returned %d of %d bookings", req.Page, req.Limit, len(bookings), total)
	return models.FromDomainBookingList(bookings, models.NewPagination(req.Page, req.Limit, total)), nil
}

// Update частично обновляет бронирование и пересчитывает остаток
// groupName переносит бронирование в найденный или созданный пакет.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: booking id=%d, user=%d", id, req.UserID)

	patch := req.ToDomainPatch()
	if err := patch.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var booking *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		if booking, err = s.getBooking(txCtx, "Update", id); err != nil {
			return err
		}

		if req.GroupName != nil && strings.TrimSpace(*req.GroupName) != "" {
			if err := s.moveToGroup(txCtx, booking, strings.TrimSpace(*req.GroupName), req.UserID); err != nil {
				return err
			}
		}

		patch.Apply(booking)

		if err := s.bookingRepo.Update(txCtx, booking); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, bookingRepo.ErrVersionConflict):
				s.logger.Warn("Update: version conflict on booking id=%d", id)
				return ErrVersionConflict
			}
			s.logger.Error("Update: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: updated booking id=%d, remaining=%.2f, version=%d", id, booking.Remaining, booking.Version)
	return models.FromDomainBooking(booking), nil
}

// moveToGroup переносит бронирование в пакет с именем name
// Счётчики увеличиваются только у пакета, созданного этим вызовом.
func (s *Service) moveToGroup(ctx context.Context, booking *domain.Booking, name string, userID int64) error {
	if booking.ImportBatchID != nil {
		if current, err := s.batchRepo.GetByID(ctx, *booking.ImportBatchID); err == nil && current.Name == name {
			return nil
		}
	}

	batch, created, err := s.batchRepo.GetOrCreateByName(ctx, name, domain.ManualEntryFileName, userID)
	if err != nil {
		return fmt.Errorf("%w: Update - get or create batch: %v", ErrInternal, err)
	}
	if created {
		if err := s.batchRepo.IncrementCounts(ctx, batch.ID, 1, 1); err != nil {
			return fmt.Errorf("%w: Update - increment batch counts: %v", ErrInternal, err)
		}
	}

	booking.ImportBatchID = &batch.ID
	return nil
}

// Delete удаляет бронирование вместе с платежами
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted booking id=%d", id)
	return nil
}

// Stats возвращает сводную статистику
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	stats, err := s.bookingRepo.Stats(ctx)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainStats(stats), nil
}

// Export выгружает все бронирования в xlsx
func (s *Service) Export(ctx context.Context) (*models.File, error) {
	bookings, err := s.bookingRepo.List(ctx, domain.BookingListFilter{SortBy: domain.SortByCreatedAt})
	if err != nil {
		s.logger.Error("Export: repository error: %v", err)
		return nil, fmt.Errorf("%w: Export - repository error: %v", ErrInternal, err)
	}

	data, err := spreadsheet.ExportBookings(bookings)
	if err != nil {
		s.logger.Error("Export: failed to encode %d bookings: %v", len(bookings), err)
		return nil, fmt.Errorf("%w: Export - encode: %v", ErrInternal, err)
	}

	s.logger.Info("Export: exported %d bookings", len(bookings))
	return &models.File{Name: exportFileName, ContentType: spreadsheet.ContentType, Data: data}, nil
}

// Template возвращает шаблон импорта с примерами строк
func (s *Service) Template(_ context.Context) (*models.File, error) {
	data, err := spreadsheet.Template()
	if err != nil {
		s.logger.Error("Template: failed to encode template: %v", err)
		return nil, fmt.Errorf("%w: Template - encode: %v", ErrInternal, err)
	}
	return &models.File{Name: templateFileName, ContentType: spreadsheet.ContentType, Data: data}, nil
}

// Reconcile сверяет totalPayments бронирования с суммой его платежей
func (s *Service) Reconcile(ctx context.Context, id int64) (*models.ReconcileResponse, error) {
	var (
		booking  *domain.Booking
		payments []*domain.Payment
	)
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if booking, err = s.getBooking(txCtx, "Reconcile", id); err != nil {
			return err
		}
		if payments, err = s.paymentRepo.ListByBooking(txCtx, id); err != nil {
			s.logger.Error("Reconcile: failed to list payments of booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Reconcile - list payments: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	amounts := make([]float64, 0, len(payments))
	for _, p := range payments {
		amounts = append(amounts, p.Amount)
	}

	res := ledger.Reconcile(booking.Snapshot(), amounts)
	if !res.Consistent {
		s.logger.Warn("Reconcile: booking id=%d drift=%.2f (recorded=%.2f, payments=%.2f)", id, res.Drift, res.Recorded, res.Sum)
	}

	return models.FromReconciliation(booking, res, len(payments)), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
