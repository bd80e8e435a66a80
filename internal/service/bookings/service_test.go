package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/travel-backoffice/internal/domain"
	batchRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/batch"
	bookingRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/booking"
	"github.com/m04kA/travel-backoffice/internal/service/bookings/models"
)

type fakeBookings struct {
	items      map[int64]*domain.Booking
	lastFilter domain.BookingListFilter
	total      int64
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	b.ID = int64(len(f.items) + 1)
	b.Version = 1
	f.items[b.ID] = b
	return b, nil
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookings) List(_ context.Context, filter domain.BookingListFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	var out []*domain.Booking
	for _, b := range f.items {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookings) Count(_ context.Context, _ domain.BookingListFilter) (int64, error) {
	return f.total, nil
}

func (f *fakeBookings) Update(_ context.Context, b *domain.Booking) error {
	cur, ok := f.items[b.ID]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if cur.Version != b.Version {
		return bookingRepo.ErrVersionConflict
	}
	b.Version++
	cp := *b
	f.items[b.ID] = &cp
	return nil
}

func (f *fakeBookings) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeBookings) Stats(_ context.Context) (*domain.BookingStats, error) {
	return &domain.BookingStats{TotalBookings: int64(len(f.items))}, nil
}

type fakeBatches struct {
	items map[int64]*domain.ImportBatch
}

func (f *fakeBatches) GetByID(_ context.Context, id int64) (*domain.ImportBatch, error) {
	b, ok := f.items[id]
	if !ok {
		return nil, batchRepo.ErrBatchNotFound
	}
	return b, nil
}

func (f *fakeBatches) GetOrCreateByName(_ context.Context, name, fileName string, uploadedBy int64) (*domain.ImportBatch, bool, error) {
	for _, b := range f.items {
		if b.Name == name {
			return b, false, nil
		}
	}
	b := &domain.ImportBatch{ID: int64(len(f.items) + 100), Name: name, FileName: fileName, UploadedBy: uploadedBy}
	f.items[b.ID] = b
	return b, true, nil
}

func (f *fakeBatches) IncrementCounts(_ context.Context, id int64, total, success int) error {
	f.items[id].TotalRecords += total
	f.items[id].SuccessCount += success
	return nil
}

type fakePayments struct {
	byBooking map[int64][]*domain.Payment
}

func (f *fakePayments) ListByBooking(_ context.Context, id int64) ([]*domain.Payment, error) {
	return f.byBooking[id], nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error         { return fn(ctx) }
func (fakeTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	svc      *Service
	bookings *fakeBookings
	batches  *fakeBatches
	payments *fakePayments
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &fakeBookings{items: map[int64]*domain.Booking{}},
		batches:  &fakeBatches{items: map[int64]*domain.ImportBatch{}},
		payments: &fakePayments{byBooking: map[int64][]*domain.Payment{}},
	}
	f.svc = NewService(f.bookings, f.batches, f.payments, fakeTx{}, nopLogger{})
	return f
}

func TestCreate_DefaultsAndRemaining(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Create(context.Background(), &models.CreateBookingRequest{
		Surname:      "  SMITH ",
		PackagePrice: 2500,
		Deposit:      500,
	})
	require.NoError(t, err)
	assert.Equal(t, "SMITH", resp.Surname)
	assert.Equal(t, domain.NotAssigned, resp.Passport)
	assert.Equal(t, 2000.0, resp.Remaining)
	assert.Equal(t, 0.0, resp.TotalPayments)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Contains(t, resp.SystemBookingID, "SYS-")
	assert.Nil(t, resp.ImportBatchID)
}

func TestCreate_GroupNameCountsBatch(t *testing.T) {
	f := newFixture()

	for i := 0; i < 2; i++ {
		resp, err := f.svc.Create(context.Background(), &models.CreateBookingRequest{GroupName: "Group A", UserID: 5})
		require.NoError(t, err)
		require.NotNil(t, resp.ImportBatchID)
	}

	require.Len(t, f.batches.items, 1)
	for _, b := range f.batches.items {
		assert.Equal(t, 2, b.TotalRecords)
		assert.Equal(t, 2, b.SuccessCount)
		assert.Equal(t, domain.ManualEntryFileName, b.FileName)
	}
}

func TestCreate_ImportBatchIDWins(t *testing.T) {
	f := newFixture()
	f.batches.items[7] = &domain.ImportBatch{ID: 7, Name: "March"}

	id := int64(7)
	resp, err := f.svc.Create(context.Background(), &models.CreateBookingRequest{ImportBatchID: &id, GroupName: "Other"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), *resp.ImportBatchID)
	assert.Len(t, f.batches.items, 1)

	missing := int64(8)
	_, err = f.svc.Create(context.Background(), &models.CreateBookingRequest{ImportBatchID: &missing})
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestCreate_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), &models.CreateBookingRequest{PackagePrice: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Create(context.Background(), &models.CreateBookingRequest{Status: "Lost"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_Pagination(t *testing.T) {
	f := newFixture()
	f.bookings.total = 120

	resp, err := f.svc.List(context.Background(), &models.ListBookingsRequest{Page: 2, SortBy: "remaining", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, models.Pagination{
		Page: 2, Limit: 50, TotalCount: 120, TotalPages: 3, HasNextPage: true, HasPrevPage: true,
	}, resp.Pagination)
	assert.NotNil(t, resp.Bookings)

	assert.Equal(t, uint64(50), f.bookings.lastFilter.Offset)
	assert.Equal(t, domain.SortByRemaining, f.bookings.lastFilter.SortBy)
	assert.False(t, f.bookings.lastFilter.SortDesc)

	bad := "15/01/2025"
	_, err = f.svc.List(context.Background(), &models.ListBookingsRequest{StartDate: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_RecalculatesAndMovesGroup(t *testing.T) {
	f := newFixture()
	f.bookings.items[1] = &domain.Booking{ID: 1, PackagePrice: 1000, Deposit: 100, TotalPayments: 300, Remaining: 600, Version: 3}

	price := 1500.0
	empty := ""
	group := "Late joiners"
	resp, err := f.svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		PackagePrice: &price,
		Visa:         &empty,
		GroupName:    &group,
	})
	require.NoError(t, err)
	assert.Equal(t, 1100.0, resp.Remaining)
	assert.Equal(t, 300.0, resp.TotalPayments)
	assert.Equal(t, domain.NotAssigned, resp.Visa)
	assert.Equal(t, int64(4), resp.Version)
	require.NotNil(t, resp.ImportBatchID)
	assert.Equal(t, 1, f.batches.items[*resp.ImportBatchID].TotalRecords)

	_, err = f.svc.Update(context.Background(), 2, &models.UpdateBookingRequest{})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdate_ExistingEmptyGroupNotCounted(t *testing.T) {
	f := newFixture()
	f.bookings.items[1] = &domain.Booking{ID: 1, PackagePrice: 1000, Remaining: 1000, Version: 1}
	// уже существующий пакет с нулевыми счётчиками
	f.batches.items[7] = &domain.ImportBatch{ID: 7, Name: "March", FileName: "march.xlsx"}

	group := "March"
	resp, err := f.svc.Update(context.Background(), 1, &models.UpdateBookingRequest{GroupName: &group})
	require.NoError(t, err)
	require.NotNil(t, resp.ImportBatchID)
	assert.Equal(t, int64(7), *resp.ImportBatchID)
	assert.Equal(t, 0, f.batches.items[7].TotalRecords)
	assert.Equal(t, 0, f.batches.items[7].SuccessCount)
	assert.Len(t, f.batches.items, 1)
}

func TestReconcile_ReportsDrift(t *testing.T) {
	f := newFixture()
	f.bookings.items[1] = &domain.Booking{ID: 1, PackagePrice: 1000, TotalPayments: 300, Remaining: 700}
	f.payments.byBooking[1] = []*domain.Payment{{Amount: 100}, {Amount: 150}}

	resp, err := f.svc.Reconcile(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, resp.Consistent)
	assert.Equal(t, 250.0, resp.PaymentsSum)
	assert.Equal(t, 50.0, resp.Drift)
	assert.Equal(t, 750.0, resp.ExpectedRemaining)
	assert.Equal(t, 2, resp.PaymentCount)
}

func TestDelete_NotFound(t *testing.T) {
	f := newFixture()
	assert.ErrorIs(t, f.svc.Delete(context.Background(), 9), ErrBookingNotFound)
}
