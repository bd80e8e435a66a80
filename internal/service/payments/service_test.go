package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/travel-backoffice/internal/domain"
	bookingRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/payment"
	"github.com/m04kA/travel-backoffice/internal/integrations/mailer"
	"github.com/m04kA/travel-backoffice/internal/service/payments/models"
)

type fakeBookings struct {
	items map[int64]*domain.Booking
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookings) Stats(_ context.Context) (*domain.BookingStats, error) {
	return &domain.BookingStats{TotalBookings: 2, TotalRevenue: 1500, TotalOutstanding: 700.5}, nil
}

type fakePayments struct {
	items      map[int64]*domain.Payment
	lastPeriod domain.ReportPeriod
}

func (f *fakePayments) GetByID(_ context.Context, id int64) (*domain.Payment, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return p, nil
}

func (f *fakePayments) ListByBooking(_ context.Context, bookingID int64) ([]*domain.Payment, error) {
	var out []*domain.Payment
	for _, p := range f.items {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePayments) TotalsByMethod(_ context.Context, period domain.ReportPeriod) ([]domain.MethodTotal, error) {
	f.lastPeriod = period
	return []domain.MethodTotal{{Method: domain.MethodCash, Total: 1000, Count: 2}}, nil
}

func (f *fakePayments) TotalsByMonth(_ context.Context, _ domain.ReportPeriod) ([]domain.MonthlyTotal, error) {
	return []domain.MonthlyTotal{{Year: 2025, Month: 5, Total: 1000, Count: 2}}, nil
}

type fakeMailer struct {
	sent []*mailer.PaymentConfirmation
	err  error
}

func (f *fakeMailer) SendPaymentConfirmation(_ context.Context, m *mailer.PaymentConfirmation) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

type fakeMetrics struct{ emails []string }

func (m *fakeMetrics) ObserveEmail(result string) { m.emails = append(m.emails, result) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	svc      *Service
	bookings *fakeBookings
	payments *fakePayments
	mailer   *fakeMailer
	metrics  *fakeMetrics
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &fakeBookings{items: map[int64]*domain.Booking{
			1: {ID: 1, BookingNumber: "UK001", Email: "jane@example.com", PackagePrice: 2500, Remaining: 1500},
			2: {ID: 2, BookingNumber: "UK002", Email: domain.NotAssigned},
		}},
		payments: &fakePayments{items: map[int64]*domain.Payment{
			10: {ID: 10, BookingID: 1, Amount: 500, PaymentMethod: domain.MethodCash, PaymentDate: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)},
			20: {ID: 20, BookingID: 2, Amount: 50, PaymentMethod: domain.MethodOther},
		}},
		mailer:  &fakeMailer{},
		metrics: &fakeMetrics{},
	}
	f.svc = NewService(f.bookings, f.payments, f.mailer, f.metrics, nopLogger{})
	return f
}

func TestSendConfirmation_FallsBackToBookingEmail(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.SendConfirmation(context.Background(), &models.SendEmailRequest{PaymentID: 10})
	require.NoError(t, err)
	assert.Equal(t, models.MsgEmailSent, resp.Message)

	require.Len(t, f.mailer.sent, 1)
	m := f.mailer.sent[0]
	assert.Equal(t, "jane@example.com", m.To)
	assert.Equal(t, "UK001", m.BookingNumber)
	assert.Equal(t, 500.0, m.Amount)
	assert.Equal(t, 1500.0, m.Remaining)
	assert.Equal(t, []string{"sent"}, f.metrics.emails)
}

func TestSendConfirmation_ExplicitRecipient(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SendConfirmation(context.Background(), &models.SendEmailRequest{
		PaymentID:      20,
		RecipientEmail: "agent@example.com",
		Subject:        "Receipt",
	})
	require.NoError(t, err)
	assert.Equal(t, "agent@example.com", f.mailer.sent[0].To)
	assert.Equal(t, "Receipt", f.mailer.sent[0].Subject)
}

func TestSendConfirmation_Errors(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SendConfirmation(context.Background(), &models.SendEmailRequest{PaymentID: 20})
	assert.ErrorIs(t, err, ErrMissingRecipient)

	_, err = f.svc.SendConfirmation(context.Background(), &models.SendEmailRequest{PaymentID: 99})
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	f.mailer.err = mailer.ErrSend
	_, err = f.svc.SendConfirmation(context.Background(), &models.SendEmailRequest{PaymentID: 10})
	assert.ErrorIs(t, err, ErrEmailFailed)

	assert.Equal(t, []string{"rejected", "failed"}, f.metrics.emails)
}

func TestReport_PeriodAndSummary(t *testing.T) {
	f := newFixture()
	start, end := "2025-05-01", "2025-05-31"

	resp, err := f.svc.Report(context.Background(), &models.ReportRequest{StartDate: &start, EndDate: &end})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), *f.payments.lastPeriod.From)
	assert.Equal(t, time.Date(2025, 5, 31, 23, 59, 59, 999999999, time.UTC), *f.payments.lastPeriod.To)

	assert.Equal(t, []models.MethodTotalResponse{{Method: "Cash", Total: 1000, Count: 2}}, resp.PaymentsByMethod)
	assert.Len(t, resp.MonthlyPayments, 1)
	assert.Equal(t, models.ReportSummary{TotalPaid: 1500, TotalRemaining: 700.5, TotalBookingValue: 2200.5}, resp.Summary)

	bad := "31/05/2025"
	_, err = f.svc.Report(context.Background(), &models.ReportRequest{EndDate: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByBooking(t *testing.T) {
	f := newFixture()

	list, err := f.svc.ListByBooking(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cash", list[0].PaymentMethod)

	_, err = f.svc.ListByBooking(context.Background(), 3)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
