package delete_batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/travel-backoffice/internal/domain"
	batchRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/batch"
)

// store общая память фейковых репозиториев: бронирование -> пакет, платёж -> бронирование
type store struct {
	batches  map[int64]bool
	bookings map[int64]int64
	payments map[int64]int64
	failPays error
}

func (s *store) GetByID(_ context.Context, id int64) (*domain.ImportBatch, error) {
	if !s.batches[id] {
		return nil, batchRepo.ErrBatchNotFound
	}
	return &domain.ImportBatch{ID: id}, nil
}

func (s *store) Delete(_ context.Context, id int64) error {
	if !s.batches[id] {
		return batchRepo.ErrBatchNotFound
	}
	delete(s.batches, id)
	return nil
}

type bookingStore struct{ *store }

func (s bookingStore) DeleteByBatch(_ context.Context, batchID int64) (int64, error) {
	var n int64
	for id, b := range s.bookings {
		if b == batchID {
			delete(s.bookings, id)
			n++
		}
	}
	return n, nil
}

type paymentStore struct{ *store }

func (s paymentStore) DeleteByBatch(_ context.Context, batchID int64) (int64, error) {
	if s.failPays != nil {
		return 0, s.failPays
	}
	var n int64
	for id, bookingID := range s.payments {
		if s.bookings[bookingID] == batchID {
			delete(s.payments, id)
			n++
		}
	}
	return n, nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newStore() *store {
	return &store{
		batches:  map[int64]bool{1: true, 2: true},
		bookings: map[int64]int64{10: 1, 11: 1, 12: 1, 20: 2},
		payments: map[int64]int64{100: 10, 101: 10, 102: 11, 103: 20},
	}
}

func newUseCase(s *store) *UseCase {
	return NewUseCase(s, bookingStore{s}, paymentStore{s}, fakeTx{}, nopLogger{})
}

func TestExecute_CascadeCounts(t *testing.T) {
	s := newStore()

	resp, err := newUseCase(s).Execute(context.Background(), &Request{BatchID: 1})
	require.NoError(t, err)
	assert.Equal(t, MsgDeleted, resp.Message)
	assert.Equal(t, int64(3), resp.DeletedBookings)
	assert.Equal(t, int64(3), resp.DeletedPayments)

	assert.Equal(t, map[int64]int64{20: 2}, s.bookings)
	assert.Equal(t, map[int64]int64{103: 20}, s.payments)

	_, err = newUseCase(s).Execute(context.Background(), &Request{BatchID: 1})
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestExecute_StorageFailure(t *testing.T) {
	s := newStore()
	s.failPays = errors.New("connection reset")

	_, err := newUseCase(s).Execute(context.Background(), &Request{BatchID: 1})
	require.ErrorIs(t, err, ErrInternal)
	assert.True(t, s.batches[1])
}
