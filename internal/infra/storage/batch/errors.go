package batch

import "errors"

var (
	// ErrBatchNotFound возвращается, когда пакет импорта не найден
	ErrBatchNotFound = errors.New("batch.repository: import batch not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("batch.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("batch.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("batch.repository: failed to scan row")
)
