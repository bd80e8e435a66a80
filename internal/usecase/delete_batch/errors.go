package delete_batch

import "errors"

var (
	// ErrBatchNotFound возвращается, когда пакет импорта не найден
	ErrBatchNotFound = errors.New("delete_batch: import batch not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("delete_batch: internal error")
)
