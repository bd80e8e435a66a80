package get_payment_reports

import (
	"errors"
	"net/http"

	"github.com/m04kA/travel-backoffice/internal/api/handlers"
	"github.com/m04kA/travel-backoffice/internal/service/payments"
	"github.com/m04kA/travel-backoffice/internal/service/payments/models"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/payments/reports/summary?startDate=&endDate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &models.ReportRequest{}
	if v := q.Get("startDate"); v != "" {
		req.StartDate = &v
	}
	if v := q.Get("endDate"); v != "" {
		req.EndDate = &v
	}

	report, err := h.service.Report(r.Context(), req)
	if err != nil {
		if errors.Is(err, payments.ErrInvalidInput) {
			handlers.RespondBadRequest(w, handlers.Detail(err, payments.ErrInvalidInput))
			return
		}
		h.logger.Error("GET /payments/reports/summary - Failed to build report: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}
