package import_bookings

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/travel-backoffice/internal/api/handlers"
	"github.com/m04kA/travel-backoffice/internal/spreadsheet"
	importBookings "github.com/m04kA/travel-backoffice/internal/usecase/import_bookings"
)

const maxFileSize = 1 << 20

type stubUseCase struct {
	got *importBookings.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *importBookings.Request) (*importBookings.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &importBookings.Response{
		Message:         "Import completed",
		Batch:           importBookings.BatchSummary{ID: 1, Name: req.BatchName, TotalRecords: len(req.Rows), SuccessCount: len(req.Rows)},
		BookingsCreated: len(req.Rows),
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func templateBytes(t *testing.T) []byte {
	t.Helper()
	data, err := spreadsheet.Template()
	require.NoError(t, err)
	return data
}

func TestHandle_JSON(t *testing.T) {
	uc := &stubUseCase{}
	body, err := json.Marshal(JSONImportRequest{
		Data:       base64.StdEncoding.EncodeToString(templateBytes(t)),
		ImportName: "March group",
		FileName:   "march.xlsx",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/import", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	NewHandler(uc, maxFileSize, nopLogger{}).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Len(t, uc.got.Rows, 2)
	assert.Equal(t, "March group", uc.got.BatchName)
	assert.Equal(t, "march.xlsx", uc.got.FileName)

	var resp ImportResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.BookingsCreated)
	assert.Equal(t, 2, resp.Batch.SuccessCount)
	assert.NotNil(t, resp.Errors)
}

func TestHandle_Multipart(t *testing.T) {
	uc := &stubUseCase{}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "upload.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(templateBytes(t))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("importName", "April"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	NewHandler(uc, maxFileSize, nopLogger{}).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Len(t, uc.got.Rows, 2)
	assert.Equal(t, "April", uc.got.BatchName)
	assert.Equal(t, "upload.xlsx", uc.got.FileName)
}

func TestHandle_BadInput(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "empty body", body: "", wantStatus: http.StatusBadRequest},
		{name: "empty data", body: `{"data":""}`, wantStatus: http.StatusBadRequest},
		{name: "not base64", body: `{"data":"***"}`, wantStatus: http.StatusBadRequest},
		{name: "not a workbook", body: `{"data":"` + base64.StdEncoding.EncodeToString([]byte("hello")) + `"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/import", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			NewHandler(uc, maxFileSize, nopLogger{}).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_HeaderOnlyFile(t *testing.T) {
	onlyHeader, err := spreadsheet.Encode([]string{"SURNAME", "PACKAGE PRICE"}, nil, "Sheet")
	require.NoError(t, err)

	uc := &stubUseCase{}
	body, err := json.Marshal(JSONImportRequest{Data: base64.StdEncoding.EncodeToString(onlyHeader)})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/import", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	NewHandler(uc, maxFileSize, nopLogger{}).Handle(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, msgNoData, resp.Message)
	assert.Nil(t, uc.got)
}

func TestHandle_TooLarge(t *testing.T) {
	uc := &stubUseCase{}
	data := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("x"), 2048))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/import", strings.NewReader(`{"data":"`+data+`"}`))
	rec := httptest.NewRecorder()
	NewHandler(uc, 1024, nopLogger{}).Handle(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Nil(t, uc.got)
}

func TestStripDataURL(t *testing.T) {
	assert.Equal(t, "QUJD", stripDataURL("data:application/vnd.openxmlformats-officedocument.spreadsheetml.sheet;base64,QUJD"))
	assert.Equal(t, "QUJD", stripDataURL(" QUJD "))
}
