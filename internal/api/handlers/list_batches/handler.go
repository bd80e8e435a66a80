package list_batches

import (
	"net/http"

	"github.com/m04kA/travel-backoffice/internal/api/handlers"
)

type Handler struct {
	service BatchService
	logger  Logger
}

func NewHandler(service BatchService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/import-batches
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /import-batches - Failed to list batches: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
