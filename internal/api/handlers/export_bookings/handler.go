package export_bookings

import (
	"net/http"

	"github.com/m04kA/travel-backoffice/internal/api/handlers"
)

const msgExportFailed = "Failed to export bookings"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/export
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	file, err := h.service.Export(r.Context())
	if err != nil {
		h.logger.Error("GET /bookings/export - Failed to export: %v", err)
		handlers.RespondError(w, http.StatusInternalServerError, msgExportFailed)
		return
	}

	h.logger.Info("GET /bookings/export - Exported %d bytes", len(file.Data))
	handlers.RespondFile(w, file.Name, file.ContentType, file.Data)
}
