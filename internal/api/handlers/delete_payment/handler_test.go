package delete_payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/travel-backoffice/internal/api/handlers"
	"github.com/m04kA/travel-backoffice/internal/domain"
	deletePayment "github.com/m04kA/travel-backoffice/internal/usecase/delete_payment"
)

type stubUseCase struct {
	got  *deletePayment.Request
	resp *deletePayment.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *deletePayment.Request) (*deletePayment.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *stubUseCase, paymentID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/payments/"+paymentID, nil)
	req = mux.SetURLVars(req, map[string]string{"paymentId": paymentID})
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_Deleted(t *testing.T) {
	uc := &stubUseCase{resp: &deletePayment.Response{
		Booking: &domain.Booking{ID: 3, PackagePrice: 2500, Deposit: 500, TotalPayments: 0, Remaining: 2000},
	}}

	rec := serve(uc, "9")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(9), uc.got.PaymentID)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body, "negativeTotal")

	var resp DeletePaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgDeleted, resp.Message)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, 2000.0, resp.Booking.Remaining)
}

func TestHandle_DeletedNegativeTotal(t *testing.T) {
	uc := &stubUseCase{resp: &deletePayment.Response{
		Booking:       &domain.Booking{ID: 3, PackagePrice: 1000, TotalPayments: -200, Remaining: 1200},
		NegativeTotal: true,
	}}

	rec := serve(uc, "9")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp DeletePaymentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.NegativeTotal)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, -200.0, resp.Booking.TotalPayments)
}

func TestHandle_DeletedWithoutBooking(t *testing.T) {
	rec := serve(&stubUseCase{resp: &deletePayment.Response{}}, "9")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "null", string(body["booking"]))
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		paymentID  string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "invalid payment id",
			paymentID:  "abc",
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgInvalidPaymentID,
		},
		{
			name:       "invalid input from use case",
			paymentID:  "9",
			err:        fmt.Errorf("%w: payment id must be positive", deletePayment.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgInvalidPaymentID,
		},
		{
			name:       "payment not found",
			paymentID:  "9",
			err:        deletePayment.ErrPaymentNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    msgPaymentNotFound,
		},
		{
			name:       "version conflict",
			paymentID:  "9",
			err:        fmt.Errorf("%w: retries exhausted", deletePayment.ErrVersionConflict),
			wantStatus: http.StatusConflict,
			wantMsg:    msgVersionConflict,
		},
		{
			name:       "internal",
			paymentID:  "9",
			err:        fmt.Errorf("%w: db down", deletePayment.ErrInternal),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, tt.paymentID)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}
