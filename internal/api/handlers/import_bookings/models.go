package import_bookings

import importBookings "github.com/m04kA/travel-backoffice/internal/usecase/import_bookings"

// JSONImportRequest файл в base64 внутри JSON
type JSONImportRequest struct {
	Data       string `json:"data"`
	ImportName string `json:"importName,omitempty"`
	FileName   string `json:"fileName,omitempty"`
}

type RowErrorResponse struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type BatchSummaryResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	TotalRecords int    `json:"totalRecords"`
	SuccessCount int    `json:"successCount"`
	ErrorCount   int    `json:"errorCount"`
}

type ImportResponse struct {
	Message         string               `json:"message"`
	Batch           BatchSummaryResponse `json:"batch"`
	BookingsCreated int                  `json:"bookingsCreated"`
	Errors          []RowErrorResponse   `json:"errors"`
}

func FromUseCaseResponse(resp *importBookings.Response) *ImportResponse {
	out := &ImportResponse{
		Message: resp.Message,
		Batch: BatchSummaryResponse{
			ID:           resp.Batch.ID,
			Name:         resp.Batch.Name,
			TotalRecords: resp.Batch.TotalRecords,
			SuccessCount: resp.Batch.SuccessCount,
			ErrorCount:   resp.Batch.ErrorCount,
		},
		BookingsCreated: resp.BookingsCreated,
		Errors:          make([]RowErrorResponse, 0, len(resp.Errors)),
	}
	for _, e := range resp.Errors {
		out.Errors = append(out.Errors, RowErrorResponse{Row: e.Row, Message: e.Message})
	}
	return out
}
