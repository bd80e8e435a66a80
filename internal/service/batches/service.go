package batches

import (
	"context"
	"fmt"

	"github.com/m04kA/travel-backoffice/internal/service/batches/models"
)

// Service сервис чтения пакетов импорта
type Service struct {
	batchRepo BatchRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса пакетов
func NewService(batchRepo BatchRepository, logger Logger) *Service {
	return &Service{
		batchRepo: batchRepo,
		logger:    logger,
	}
}

// List возвращает пакеты с количеством бронирований, новые первыми
func (s *Service) List(ctx context.Context) ([]models.BatchResponse, error) {
	batches, err := s.batchRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d import batches", len(batches))
	return models.FromDomainBatchList(batches), nil
}
