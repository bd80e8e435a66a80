package delete_batch

import (
	"context"

	deleteBatch "github.com/m04kA/travel-backoffice/internal/usecase/delete_batch"
)

type DeleteBatchUseCase interface {
	Execute(ctx context.Context, req *deleteBatch.Request) (*deleteBatch.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
