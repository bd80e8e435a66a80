package delete_payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/travel-backoffice/internal/domain"
	bookingRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/payment"
)

type fakeBookings struct {
	items     map[int64]*domain.Booking
	conflicts int
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookings) UpdateTotals(_ context.Context, id, expectedVersion int64, total, remaining float64) (int64, error) {
	if f.conflicts > 0 {
		f.conflicts--
		return 0, bookingRepo.ErrVersionConflict
	}
	b := f.items[id]
	if b.Version != expectedVersion {
		return 0, bookingRepo.ErrVersionConflict
	}
	b.TotalPayments, b.Remaining = total, remaining
	b.Version++
	return b.Version, nil
}

type fakePayments struct {
	items map[int64]*domain.Payment
}

func (f *fakePayments) GetByID(_ context.Context, id int64) (*domain.Payment, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePayments) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return paymentRepo.ErrPaymentNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeTx struct{ calls int }

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeMetrics struct {
	payments []string
	negative int
}

func (m *fakeMetrics) ObservePayment(op string) { m.payments = append(m.payments, op) }
func (m *fakeMetrics) ObserveNegativeTotal()    { m.negative++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newUseCase(b *domain.Booking, payments ...*domain.Payment) (*UseCase, *fakeBookings, *fakePayments, *fakeMetrics) {
	bookings := &fakeBookings{items: map[int64]*domain.Booking{}}
	if b != nil {
		b.Recalculate()
		bookings.items[b.ID] = b
	}
	fp := &fakePayments{items: map[int64]*domain.Payment{}}
	for _, p := range payments {
		fp.items[p.ID] = p
	}
	m := &fakeMetrics{}
	return NewUseCase(bookings, fp, &fakeTx{}, m, 3, nopLogger{}), bookings, fp, m
}

func TestExecute_RestoresRemaining(t *testing.T) {
	uc, bookings, payments, m := newUseCase(
		&domain.Booking{ID: 1, PackagePrice: 2500, Deposit: 500, TotalPayments: 2000, Version: 4},
		&domain.Payment{ID: 3, BookingID: 1, Amount: 2000},
	)

	resp, err := uc.Execute(context.Background(), &Request{PaymentID: 3})
	require.NoError(t, err)
	assert.False(t, resp.NegativeTotal)
	assert.Equal(t, 0.0, resp.Booking.TotalPayments)
	assert.Equal(t, 2000.0, resp.Booking.Remaining)
	assert.Equal(t, int64(5), bookings.items[1].Version)
	assert.Empty(t, payments.items)
	assert.Equal(t, []string{"delete"}, m.payments)
	assert.Zero(t, m.negative)
}

func TestExecute_NegativeTotalIsFlagged(t *testing.T) {
	uc, bookings, _, m := newUseCase(
		&domain.Booking{ID: 1, PackagePrice: 1000, TotalPayments: 100, Version: 1},
		&domain.Payment{ID: 3, BookingID: 1, Amount: 150},
	)

	resp, err := uc.Execute(context.Background(), &Request{PaymentID: 3})
	require.NoError(t, err)
	assert.True(t, resp.NegativeTotal)
	assert.Equal(t, -50.0, resp.Booking.TotalPayments)
	assert.Equal(t, 1050.0, resp.Booking.Remaining)
	assert.Equal(t, -50.0, bookings.items[1].TotalPayments)
	assert.Equal(t, 1, m.negative)
}

func TestExecute_OrphanPayment(t *testing.T) {
	uc, _, payments, _ := newUseCase(nil, &domain.Payment{ID: 3, BookingID: 42, Amount: 10})

	resp, err := uc.Execute(context.Background(), &Request{PaymentID: 3})
	require.NoError(t, err)
	assert.Nil(t, resp.Booking)
	assert.Empty(t, payments.items)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _, _ := newUseCase(nil)

	_, err := uc.Execute(context.Background(), &Request{PaymentID: 3})
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	_, err = uc.Execute(context.Background(), &Request{PaymentID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ConflictExhausted(t *testing.T) {
	uc, bookings, payments, _ := newUseCase(
		&domain.Booking{ID: 1, PackagePrice: 1000, TotalPayments: 100, Version: 1},
		&domain.Payment{ID: 3, BookingID: 1, Amount: 100},
	)
	bookings.conflicts = 5

	_, err := uc.Execute(context.Background(), &Request{PaymentID: 3})
	require.ErrorIs(t, err, ErrVersionConflict)
	assert.Len(t, payments.items, 1)
}
