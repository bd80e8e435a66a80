package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/travel-backoffice/internal/domain"
)

// ErrInvalidDate возвращается, когда дата не в формате YYYY-MM-DD
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// MsgEmailSent сообщение об успешной отправке письма
const MsgEmailSent = "Email sent successfully"

// Request модели

// SendEmailRequest запрос на отправку подтверждения платежа
type SendEmailRequest struct {
	PaymentID      int64  `json:"-"`
	RecipientEmail string `json:"recipientEmail,omitempty"`
	Subject        string `json:"subject,omitempty"`
	Body           string `json:"body,omitempty"`
}

// ReportRequest период отчёта по дате платежа
type ReportRequest struct {
	StartDate *string
	EndDate   *string
}

// ToDomainPeriod конвертирует даты в период; EndDate включает весь день
func (r *ReportRequest) ToDomainPeriod() (domain.ReportPeriod, error) {
	var period domain.ReportPeriod

	if r.StartDate != nil && strings.TrimSpace(*r.StartDate) != "" {
		from, err := time.Parse(domain.DateFormat, strings.TrimSpace(*r.StartDate))
		if err != nil {
			return period, fmt.Errorf("%w: %q", ErrInvalidDate, *r.StartDate)
		}
		period.From = &from
	}

	if r.EndDate != nil && strings.TrimSpace(*r.EndDate) != "" {
		end, err := time.Parse(domain.DateFormat, strings.TrimSpace(*r.EndDate))
		if err != nil {
			return period, fmt.Errorf("%w: %q", ErrInvalidDate, *r.EndDate)
		}
		to := end.Add(24*time.Hour - time.Nanosecond)
		period.To = &to
	}

	return period, nil
}

// Response модели

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID            int64     `json:"id"`
	BookingID     int64     `json:"bookingId"`
	Amount        float64   `json:"amount"`
	PaymentDate   time.Time `json:"paymentDate"`
	PaymentMethod string    `json:"paymentMethod"`
	Reference     string    `json:"reference"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// MessageResponse ответ с сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// MethodTotalResponse платежи по способу оплаты
type MethodTotalResponse struct {
	Method string  `json:"method"`
	Total  float64 `json:"total"`
	Count  int64   `json:"count"`
}

// MonthlyTotalResponse платежи за месяц
type MonthlyTotalResponse struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

// ReportSummary итог по всем бронированиям
type ReportSummary struct {
	TotalPaid         float64 `json:"totalPaid"`
	TotalRemaining    float64 `json:"totalRemaining"`
	TotalBookingValue float64 `json:"totalBookingValue"`
}

// ReportResponse отчёт по платежам
type ReportResponse struct {
	PaymentsByMethod []MethodTotalResponse  `json:"paymentsByMethod"`
	MonthlyPayments  []MonthlyTotalResponse `json:"monthlyPayments"`
	Summary          ReportSummary          `json:"summary"`
}

// Методы конвертации

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}
	return &PaymentResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		Amount:        p.Amount,
		PaymentDate:   p.PaymentDate,
		PaymentMethod: string(p.PaymentMethod),
		Reference:     p.Reference,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// FromDomainPaymentList конвертирует список платежей в DTO
func FromDomainPaymentList(payments []*domain.Payment) []PaymentResponse {
	resp := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, *FromDomainPayment(p))
	}
	return resp
}

// NewReportResponse собирает отчёт из агрегатов
func NewReportResponse(byMethod []domain.MethodTotal, monthly []domain.MonthlyTotal, stats *domain.BookingStats) *ReportResponse {
	resp := &ReportResponse{
		PaymentsByMethod: make([]MethodTotalResponse, 0, len(byMethod)),
		MonthlyPayments:  make([]MonthlyTotalResponse, 0, len(monthly)),
		Summary: ReportSummary{
			TotalPaid:         stats.TotalRevenue,
			TotalRemaining:    stats.TotalOutstanding,
			TotalBookingValue: stats.TotalRevenue + stats.TotalOutstanding,
		},
	}
	for _, m := range byMethod {
		resp.PaymentsByMethod = append(resp.PaymentsByMethod, MethodTotalResponse{
			Method: string(m.Method),
			Total:  m.Total,
			Count:  m.Count,
		})
	}
	for _, m := range monthly {
		resp.MonthlyPayments = append(resp.MonthlyPayments, MonthlyTotalResponse{
			Year:  m.Year,
			Month: m.Month,
			Total: m.Total,
			Count: m.Count,
		})
	}
	return resp
}
