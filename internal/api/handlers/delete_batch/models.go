package delete_batch

import deleteBatch "github.com/m04kA/travel-backoffice/internal/usecase/delete_batch"

type DeleteBatchResponse struct {
	Message         string `json:"message"`
	DeletedBookings int64  `json:"deletedBookings"`
	DeletedPayments int64  `json:"deletedPayments"`
}

func FromUseCaseResponse(resp *deleteBatch.Response) *DeleteBatchResponse {
	return &DeleteBatchResponse{
		Message:         resp.Message,
		DeletedBookings: resp.DeletedBookings,
		DeletedPayments: resp.DeletedPayments,
	}
}
