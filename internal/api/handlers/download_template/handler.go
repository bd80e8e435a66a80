package download_template

import (
	"net/http"

	"github.com/m04kA/travel-backoffice/internal/api/handlers"
)

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

// Handle GET /api/v1/bookings/template
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	file, err := h.service.Template(r.Context())
	if err != nil {
		h.logger.Error("GET /bookings/template - Failed to build template: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondFile(w, file.Name, file.ContentType, file.Data)
}
