package import_bookings

import "github.com/m04kA/travel-backoffice/internal/spreadsheet"

// Request строки таблицы и описание пакета
type Request struct {
	Rows       []spreadsheet.Row
	BatchName  string
	FileName   string
	UploadedBy int64
}

// RowError ошибка обработки строки, Row считается с 1
type RowError struct {
	Row     int
	Message string
}

// BatchSummary итоговые счётчики пакета
type BatchSummary struct {
	ID           int64
	Name         string
	TotalRecords int
	SuccessCount int
	ErrorCount   int
}

// Response итог импорта
type Response struct {
	Message         string
	Batch           BatchSummary
	BookingsCreated int
	// Errors не более domain.MaxImportErrors первых ошибок
	Errors []RowError
}
