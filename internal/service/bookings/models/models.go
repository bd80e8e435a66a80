package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/m04kA/travel-backoffice/internal/domain"
	"github.com/m04kA/travel-backoffice/internal/ledger"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidDate возвращается, когда дата фильтра не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// Request модели

// CreateBookingRequest запрос на создание бронирования вручную
// ImportBatchID приоритетнее GroupName.
type CreateBookingRequest struct {
	ETicket       string  `json:"eTicket"`
	BookingNumber string  `json:"bookingNumber"`
	Surname       string  `json:"surname"`
	FirstName     string  `json:"firstName"`
	Passport      string  `json:"passport"`
	TravelDate    string  `json:"travelDate"`
	ReturnDate    string  `json:"returnDate"`
	Visa          string  `json:"visa"`
	DateOfBirth   string  `json:"dateOfBirth"`
	Nationality   string  `json:"nationality"`
	PrivateRoom   string  `json:"privateRoom"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Notes         string  `json:"notes"`
	PackagePrice  float64 `json:"packagePrice"`
	Deposit       float64 `json:"deposit"`
	UmraVisaFee   float64 `json:"umraVisaFee"`
	Status        string  `json:"status"`

	ImportBatchID *int64 `json:"importBatchId,omitempty"`
	GroupName     string `json:"groupName,omitempty"`

	// UserID заполняется из токена
	UserID int64 `json:"-"`
}

// ToDomainInput конвертирует запрос в данные бронирования
func (r *CreateBookingRequest) ToDomainInput() domain.BookingInput {
	return domain.BookingInput{
		ETicket:       r.ETicket,
		BookingNumber: r.BookingNumber,
		Surname:       r.Surname,
		FirstName:     r.FirstName,
		Passport:      r.Passport,
		TravelDate:    r.TravelDate,
		ReturnDate:    r.ReturnDate,
		Visa:          r.Visa,
		DateOfBirth:   r.DateOfBirth,
		Nationality:   r.Nationality,
		PrivateRoom:   r.PrivateRoom,
		Email:         r.Email,
		Phone:         r.Phone,
		Notes:         r.Notes,
		PackagePrice:  r.PackagePrice,
		Deposit:       r.Deposit,
		UmraVisaFee:   r.UmraVisaFee,
		Status:        domain.BookingStatus(strings.TrimSpace(r.Status)),
	}
}

// UpdateBookingRequest частичное обновление, nil-поля не меняются
// totalPayments и remaining не принимаются: они меняются только через платежи.
type UpdateBookingRequest struct {
	ETicket       *string  `json:"eTicket,omitempty"`
	BookingNumber *string  `json:"bookingNumber,omitempty"`
	Surname       *string  `json:"surname,omitempty"`
	FirstName     *string  `json:"firstName,omitempty"`
	Passport      *string  `json:"passport,omitempty"`
	TravelDate    *string  `json:"travelDate,omitempty"`
	ReturnDate    *string  `json:"returnDate,omitempty"`
	Visa          *string  `json:"visa,omitempty"`
	DateOfBirth   *string  `json:"dateOfBirth,omitempty"`
	Nationality   *string  `json:"nationality,omitempty"`
	PrivateRoom   *string  `json:"privateRoom,omitempty"`
	Email         *string  `json:"email,omitempty"`
	Phone         *string  `json:"phone,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	PackagePrice  *float64 `json:"packagePrice,omitempty"`
	Deposit       *float64 `json:"deposit,omitempty"`
	UmraVisaFee   *float64 `json:"umraVisaFee,omitempty"`
	Status        *string  `json:"status,omitempty"`

	GroupName *string `json:"groupName,omitempty"`

	UserID int64 `json:"-"`
}

// ToDomainPatch конвертирует запрос в patch
func (r *UpdateBookingRequest) ToDomainPatch() domain.BookingPatch {
	p := domain.BookingPatch{
		ETicket:       r.ETicket,
		BookingNumber: r.BookingNumber,
		Surname:       r.Surname,
		FirstName:     r.FirstName,
		Passport:      r.Passport,
		TravelDate:    r.TravelDate,
		ReturnDate:    r.ReturnDate,
		Visa:          r.Visa,
		DateOfBirth:   r.DateOfBirth,
		Nationality:   r.Nationality,
		PrivateRoom:   r.PrivateRoom,
		Email:         r.Email,
		Phone:         r.Phone,
		Notes:         r.Notes,
		PackagePrice:  r.PackagePrice,
		Deposit:       r.Deposit,
		UmraVisaFee:   r.UmraVisaFee,
	}
	if r.Status != nil {
		status := domain.BookingStatus(strings.TrimSpace(*r.Status))
		p.Status = &status
	}
	return p
}

// ListBookingsRequest параметры списка бронирований из query string
type ListBookingsRequest struct {
	Status        *string
	StartDate     *string
	EndDate       *string
	ImportBatchID *int64
	HasRemaining  *bool
	HasUmrahFee   *bool
	Search        string
	SortBy        string
	SortOrder     string // asc | desc, по умолчанию desc
	Page          int
	Limit         int
}

// Normalize приводит страницу и лимит к допустимым значениям
func (r *ListBookingsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = domain.DefaultPageLimit
	}
	if r.Limit > domain.MaxPageLimit {
		r.Limit = domain.MaxPageLimit
	}
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingListFilter, error) {
	r.Normalize()

	filter := domain.BookingListFilter{
		ImportBatchID: r.ImportBatchID,
		HasRemaining:  r.HasRemaining,
		HasUmrahFee:   r.HasUmrahFee,
		Search:        strings.TrimSpace(r.Search),
		SortBy:        domain.ParseSortField(r.SortBy),
		SortDesc:      !strings.EqualFold(r.SortOrder, "asc"),
		Offset:        uint64(r.Page-1) * uint64(r.Limit),
		Limit:         uint64(r.Limit),
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	for _, d := range []*string{r.StartDate, r.EndDate} {
		if d == nil {
			continue
		}
		if _, err := time.Parse(domain.DateFormat, *d); err != nil {
			return filter, fmt.Errorf("%w: %q", ErrInvalidDate, *d)
		}
	}
	filter.StartDate = r.StartDate
	filter.EndDate = r.EndDate

	return filter, nil
}

// ToDomainBookingStatus конвертирует строку в статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(strings.TrimSpace(s))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	SystemBookingID string `json:"systemBookingId"`
	ETicket         string `json:"eTicket"`
	BookingNumber   string `json:"bookingNumber"`
	Surname         string `json:"surname"`
	FirstName       string `json:"firstName"`
	Passport        string `json:"passport"`
	TravelDate      string `json:"travelDate"`
	ReturnDate      string `json:"returnDate"`
	Visa            string `json:"visa"`
	DateOfBirth     string `json:"dateOfBirth"`
	Nationality     string `json:"nationality"`
	PrivateRoom     string `json:"privateRoom"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Notes           string `json:"notes"`

	PackagePrice  float64 `json:"packagePrice"`
	Deposit       float64 `json:"deposit"`
	TotalPayments float64 `json:"totalPayments"`
	Remaining     float64 `json:"remaining"`
	UmraVisaFee   float64 `json:"umraVisaFee"`

	Status        string `json:"status"`
	ImportBatchID *int64 `json:"importBatchId,omitempty"`
	Version       int64  `json:"version"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Pagination метаданные страницы
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPagination считает страницы по общему количеству
func NewPagination(page, limit int, total int64) Pagination {
	pages := int(math.Ceil(float64(total) / float64(limit)))
	return Pagination{
		Page:        page,
		Limit:       limit,
		TotalCount:  total,
		TotalPages:  pages,
		HasNextPage: page < pages,
		HasPrevPage: page > 1,
	}
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Pagination Pagination        `json:"pagination"`
}

// StatsResponse сводная статистика по бронированиям
type StatsResponse struct {
	TotalBookings    int64   `json:"totalBookings"`
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalOutstanding float64 `json:"totalOutstanding"`
}

// ReconcileResponse сверка итогов бронирования с платежами
type ReconcileResponse struct {
	BookingID         int64   `json:"bookingId"`
	RecordedTotal     float64 `json:"recordedTotal"`
	PaymentsSum       float64 `json:"paymentsSum"`
	PaymentCount      int     `json:"paymentCount"`
	Drift             float64 `json:"drift"`
	Consistent        bool    `json:"consistent"`
	NegativeTotal     bool    `json:"negativeTotal"`
	Remaining         float64 `json:"remaining"`
	ExpectedRemaining float64 `json:"expectedRemaining"`
}

// File выгружаемый xlsx файл
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		SystemBookingID: b.SystemBookingID,
		ETicket:         b.ETicket,
		BookingNumber:   b.BookingNumber,
		Surname:         b.Surname,
		FirstName:       b.FirstName,
		Passport:        b.Passport,
		TravelDate:      b.TravelDate,
		ReturnDate:      b.ReturnDate,
		Visa:            b.Visa,
		DateOfBirth:     b.DateOfBirth,
		Nationality:     b.Nationality,
		PrivateRoom:     b.PrivateRoom,
		Email:           b.Email,
		Phone:           b.Phone,
		Notes:           b.Notes,
		PackagePrice:    b.PackagePrice,
		Deposit:         b.Deposit,
		TotalPayments:   b.TotalPayments,
		Remaining:       b.Remaining,
		UmraVisaFee:     b.UmraVisaFee,
		Status:          string(b.Status),
		ImportBatchID:   b.ImportBatchID,
		Version:         b.Version,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует страницу бронирований в DTO
func FromDomainBookingList(bookings []*domain.Booking, p Pagination) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings:   make([]BookingResponse, 0, len(bookings)),
		Pagination: p,
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// FromDomainStats конвертирует статистику в DTO
func FromDomainStats(s *domain.BookingStats) *StatsResponse {
	return &StatsResponse{
		TotalBookings:    s.TotalBookings,
		TotalRevenue:     s.TotalRevenue,
		TotalOutstanding: s.TotalOutstanding,
	}
}

// FromReconciliation конвертирует результат сверки в DTO
func FromReconciliation(b *domain.Booking, r ledger.Reconciliation, paymentCount int) *ReconcileResponse {
	return &ReconcileResponse{
		BookingID:         b.ID,
		RecordedTotal:     r.Recorded,
		PaymentsSum:       r.Sum,
		PaymentCount:      paymentCount,
		Drift:             r.Drift,
		Consistent:        r.Consistent,
		NegativeTotal:     r.NegativeTotal,
		Remaining:         b.Remaining,
		ExpectedRemaining: r.ExpectedRemaining,
	}
}
