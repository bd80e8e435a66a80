package models

import (
	"time"

	"github.com/m04kA/travel-backoffice/internal/domain"
)

// BatchResponse пакет импорта со счётчиками
type BatchResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	FileName     string    `json:"fileName"`
	UploadedBy   int64     `json:"uploadedBy"`
	UploadedAt   time.Time `json:"uploadedAt"`
	TotalRecords int       `json:"totalRecords"`
	SuccessCount int       `json:"successCount"`
	ErrorCount   int       `json:"errorCount"`
	BookingCount int       `json:"bookingCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FromDomainBatchList конвертирует список пакетов в DTO
func FromDomainBatchList(batches []*domain.ImportBatch) []BatchResponse {
	resp := make([]BatchResponse, 0, len(batches))
	for _, b := range batches {
		resp = append(resp, BatchResponse{
			ID:           b.ID,
			Name:         b.Name,
			FileName:     b.FileName,
			UploadedBy:   b.UploadedBy,
			UploadedAt:   b.UploadedAt,
			TotalRecords: b.TotalRecords,
			SuccessCount: b.SuccessCount,
			ErrorCount:   b.ErrorCount,
			BookingCount: b.BookingCount,
			CreatedAt:    b.CreatedAt,
			UpdatedAt:    b.UpdatedAt,
		})
	}
	return resp
}
