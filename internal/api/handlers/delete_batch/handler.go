package delete_batch

import (
	"errors"
	"net/http"

	"github.com/m04kA/travel-backoffice/internal/api/handlers"
	deleteBatch "github.com/m04kA/travel-backoffice/internal/usecase/delete_batch"
)

const (
	msgInvalidBatchID = "Invalid import batch ID"
	msgBatchNotFound  = "Import batch not found"
)

type Handler struct {
	useCase DeleteBatchUseCase
	logger  Logger
}

func NewHandler(useCase DeleteBatchUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/import-batches/{batchId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	batchID, err := handlers.PathID(r, "batchId")
	if err != nil {
		h.logger.Warn("DELETE /import-batches/{id} - Invalid batch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBatchID)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &deleteBatch.Request{BatchID: batchID})
	if err != nil {
		if errors.Is(err, deleteBatch.ErrBatchNotFound) {
			handlers.RespondNotFound(w, msgBatchNotFound)
			return
		}
		h.logger.Error("DELETE /import-batches/{id} - Failed to delete batch: batch_id=%d, error=%v", batchID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /import-batches/{id} - Batch deleted: batch_id=%d, bookings=%d, payments=%d",
		batchID, resp.DeletedBookings, resp.DeletedPayments)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
