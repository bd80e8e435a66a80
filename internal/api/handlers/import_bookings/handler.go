package import_bookings

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/m04kA/travel-backoffice/internal/api/handlers"
	"github.com/m04kA/travel-backoffice/internal/api/middleware"
	"github.com/m04kA/travel-backoffice/internal/spreadsheet"
	importBookings "github.com/m04kA/travel-backoffice/internal/usecase/import_bookings"
)

const (
	msgNoData          = "No data provided"
	msgInvalidFile     = "Invalid file format. Please upload an .xlsx file"
	msgFileTooLarge    = "File is too large"
	msgInvalidEncoding = "File data must be base64 encoded"
	msgImportFailed    = "Failed to import bookings"
)

var (
	errFileTooLarge    = errors.New("file too large")
	errInvalidEncoding = errors.New("invalid base64 data")
)

// upload прочитанный файл и параметры импорта
type upload struct {
	data       []byte
	fileName   string
	importName string
}

type Handler struct {
	useCase     ImportBookingsUseCase
	maxFileSize int64
	logger      Logger
}

// NewHandler maxFileSize в байтах
func NewHandler(useCase ImportBookingsUseCase, maxFileSize int64, logger Logger) *Handler {
	return &Handler{
		useCase:     useCase,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Handle POST /api/v1/bookings/import
// Принимает multipart (поле file, importName) или JSON {data: base64, importName, fileName}.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Запас на base64 и служебные части multipart
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize*4/3+64*1024)

	up, err := h.readUpload(r)
	if err != nil {
		h.logger.Warn("POST /bookings/import - Invalid upload: %v", err)
		switch {
		case errors.Is(err, errFileTooLarge):
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)
		case errors.Is(err, errInvalidEncoding):
			handlers.RespondBadRequest(w, msgInvalidEncoding)
		default:
			handlers.RespondBadRequest(w, msgNoData)
		}
		return
	}

	rows, err := spreadsheet.DecodeBytes(up.data)
	if err != nil {
		h.logger.Warn("POST /bookings/import - Failed to decode %q: %v", up.fileName, err)
		if errors.Is(err, spreadsheet.ErrEmptySheet) {
			handlers.RespondBadRequest(w, msgNoData)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidFile)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	resp, err := h.useCase.Execute(r.Context(), &importBookings.Request{
		Rows:       rows,
		BatchName:  up.importName,
		FileName:   up.fileName,
		UploadedBy: userID,
	})
	if err != nil {
		if errors.Is(err, importBookings.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgNoData)
			return
		}
		h.logger.Error("POST /bookings/import - Import failed: file=%q, error=%v", up.fileName, err)
		handlers.RespondError(w, http.StatusInternalServerError, msgImportFailed)
		return
	}

	h.logger.Info("POST /bookings/import - Imported batch_id=%d: success=%d, errors=%d",
		resp.Batch.ID, resp.Batch.SuccessCount, resp.Batch.ErrorCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}

func (h *Handler) readUpload(r *http.Request) (*upload, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return h.readMultipart(r)
	}
	return h.readJSON(r)
}

func (h *Handler) readMultipart(r *http.Request) (*upload, error) {
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		return nil, tooLarge(err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("form file: %w", err)
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		return nil, errFileTooLarge
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, tooLarge(err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty file")
	}

	return &upload{
		data:       data,
		fileName:   header.Filename,
		importName: r.FormValue("importName"),
	}, nil
}

func (h *Handler) readJSON(r *http.Request) (*upload, error) {
	var req JSONImportRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		return nil, tooLarge(err)
	}
	if strings.TrimSpace(req.Data) == "" {
		return nil, errors.New("empty data")
	}

	data, err := base64.StdEncoding.DecodeString(stripDataURL(req.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidEncoding, err)
	}
	if int64(len(data)) > h.maxFileSize {
		return nil, errFileTooLarge
	}

	return &upload{
		data:       data,
		fileName:   req.FileName,
		importName: req.ImportName,
	}, nil
}

// stripDataURL убирает префикс "data:...;base64,"
func stripDataURL(s string) string {
	if i := strings.Index(s, ";base64,"); i >= 0 && strings.HasPrefix(s, "data:") {
		return s[i+len(";base64,"):]
	}
	return strings.TrimSpace(s)
}

func tooLarge(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
		return fmt.Errorf("%w: %v", errFileTooLarge, err)
	}
	return err
}
