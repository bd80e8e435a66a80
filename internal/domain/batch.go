package domain

import "time"

// ImportBatch groups bookings created together, by spreadsheet upload or manual group name
type ImportBatch struct {
	ID           int64
	Name         string
	FileName     string
	UploadedBy   int64
	UploadedAt   time.Time
	TotalRecords int
	SuccessCount int
	ErrorCount   int

	// BookingCount заполняется только в списке пакетов
	BookingCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}
