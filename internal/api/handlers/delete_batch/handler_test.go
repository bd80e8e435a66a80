package delete_batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/travel-backoffice/internal/api/handlers"
	deleteBatch "github.com/m04kA/travel-backoffice/internal/usecase/delete_batch"
)

type stubUseCase struct {
	got  *deleteBatch.Request
	resp *deleteBatch.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *deleteBatch.Request) (*deleteBatch.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *stubUseCase, batchID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/import-batches/"+batchID, nil)
	req = mux.SetURLVars(req, map[string]string{"batchId": batchID})
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_Deleted(t *testing.T) {
	uc := &stubUseCase{resp: &deleteBatch.Response{
		Message:         "Import batch deleted successfully",
		DeletedBookings: 12,
		DeletedPayments: 30,
	}}

	rec := serve(uc, "4")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(4), uc.got.BatchID)

	var resp DeleteBatchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, DeleteBatchResponse{
		Message:         "Import batch deleted successfully",
		DeletedBookings: 12,
		DeletedPayments: 30,
	}, resp)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		batchID    string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "invalid batch id",
			batchID:    "first",
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgInvalidBatchID,
		},
		{
			name:       "negative batch id",
			batchID:    "-4",
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgInvalidBatchID,
		},
		{
			name:       "batch not found",
			batchID:    "4",
			err:        deleteBatch.ErrBatchNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    msgBatchNotFound,
		},
		{
			name:       "internal",
			batchID:    "4",
			err:        fmt.Errorf("%w: %v", deleteBatch.ErrInternal, errors.New("connection reset")),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: tt.err}
			rec := serve(uc, tt.batchID)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantMsg, resp.Message)
			if tt.err == nil {
				assert.Nil(t, uc.got)
			}
		})
	}
}
