package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/travel-backoffice/internal/ledger"
)

// ErrInvalidBooking returned when booking input fails validation
var ErrInvalidBooking = errors.New("domain: invalid booking")

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCompleted BookingStatus = "Completed"
	StatusCancelled BookingStatus = "Cancelled"
)

// IsValid reports whether the status is one of the known values
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking represents a single traveller reservation with its payment totals
type Booking struct {
	ID              int64
	SystemBookingID string

	ETicket       string
	BookingNumber string
	Surname       string
	FirstName     string
	Passport      string
	TravelDate    string // YYYY-MM-DD or NotAssigned
	ReturnDate    string
	Visa          string
	DateOfBirth   string
	Nationality   string
	PrivateRoom   string
	Email         string
	Phone         string
	Notes         string

	PackagePrice  float64
	Deposit       float64
	TotalPayments float64
	Remaining     float64 // always PackagePrice - Deposit - TotalPayments
	UmraVisaFee   float64

	Status        BookingStatus
	ImportBatchID *int64

	// Version токен оптимистической блокировки, растёт при каждой записи
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSystemBookingID generates a unique system identifier
func NewSystemBookingID() string {
	return "SYS-" + strings.ToUpper(uuid.NewString())
}

// Snapshot returns the financial state consumed by the ledger
func (b *Booking) Snapshot() ledger.Snapshot {
	return ledger.Snapshot{
		PackagePrice:  b.PackagePrice,
		Deposit:       b.Deposit,
		TotalPayments: b.TotalPayments,
	}
}

// Recalculate recomputes Remaining from its three inputs
func (b *Booking) Recalculate() {
	b.Remaining = ledger.Remaining(b.Snapshot())
}

// ApplyLedger stores totals produced by a ledger operation
func (b *Booking) ApplyLedger(res ledger.Result) {
	b.TotalPayments = res.TotalPayments
	b.Remaining = res.Remaining
}

// ContactEmail returns the booking e-mail or empty string when not set
func (b *Booking) ContactEmail() string {
	email := strings.TrimSpace(b.Email)
	if email == "" || email == NotAssigned {
		return ""
	}
	return email
}

// BookingInput normalized booking data coming from a spreadsheet row or an API request
type BookingInput struct {
	ETicket       string
	BookingNumber string
	Surname       string
	FirstName     string
	Passport      string
	TravelDate    string
	ReturnDate    string
	Visa          string
	DateOfBirth   string
	Nationality   string
	PrivateRoom   string
	Email         string
	Phone         string
	Notes         string

	PackagePrice float64
	Deposit      float64
	UmraVisaFee  float64

	Status BookingStatus
}

// ApplyDefaults fills every empty descriptive field with NotAssigned
func (in *BookingInput) ApplyDefaults() {
	for _, f := range in.descriptiveFields() {
		*f = strings.TrimSpace(*f)
		if *f == "" {
			*f = NotAssigned
		}
	}
	in.Notes = strings.TrimSpace(in.Notes)
	if in.Status == "" {
		in.Status = StatusPending
	}
}

// Validate checks money bounds and status
func (in *BookingInput) Validate() error {
	if err := validateMoney("packagePrice", in.PackagePrice); err != nil {
		return err
	}
	if err := validateMoney("deposit", in.Deposit); err != nil {
		return err
	}
	if err := validateMoney("umraVisaFee", in.UmraVisaFee); err != nil {
		return err
	}
	if in.Status != "" && !in.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidBooking, in.Status)
	}
	if len(in.Notes) > MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidBooking, MaxNotesLength)
	}
	return nil
}

// NewBooking builds a booking from normalized input. Totals start at zero.
func NewBooking(in BookingInput, batchID *int64) *Booking {
	in.ApplyDefaults()

	b := &Booking{
		SystemBookingID: NewSystemBookingID(),
		ETicket:         in.ETicket,
		BookingNumber:   in.BookingNumber,
		Surname:         in.Surname,
		FirstName:       in.FirstName,
		Passport:        in.Passport,
		TravelDate:      in.TravelDate,
		ReturnDate:      in.ReturnDate,
		Visa:            in.Visa,
		DateOfBirth:     in.DateOfBirth,
		Nationality:     in.Nationality,
		PrivateRoom:     in.PrivateRoom,
		Email:           in.Email,
		Phone:           in.Phone,
		Notes:           in.Notes,
		PackagePrice:    ledger.RoundMoney(in.PackagePrice),
		Deposit:         ledger.RoundMoney(in.Deposit),
		UmraVisaFee:     ledger.RoundMoney(in.UmraVisaFee),
		Status:          in.Status,
		ImportBatchID:   batchID,
	}
	b.Recalculate()

	return b
}

func (in *BookingInput) descriptiveFields() []*string {
	return []*string{
		&in.ETicket, &in.BookingNumber, &in.Surname, &in.FirstName, &in.Passport,
		&in.TravelDate, &in.ReturnDate, &in.Visa, &in.DateOfBirth, &in.Nationality,
		&in.PrivateRoom, &in.Email, &in.Phone,
	}
}

// BookingPatch partial update of a booking. Nil fields are left untouched.
// TotalPayments is absent: it changes only through payment operations.
type BookingPatch struct {
	ETicket       *string
	BookingNumber *string
	Surname       *string
	FirstName     *string
	Passport      *string
	TravelDate    *string
	ReturnDate    *string
	Visa          *string
	DateOfBirth   *string
	Nationality   *string
	PrivateRoom   *string
	Email         *string
	Phone         *string
	Notes         *string

	PackagePrice *float64
	Deposit      *float64
	UmraVisaFee  *float64

	Status *BookingStatus
}

// Validate checks the fields present in the patch
func (p *BookingPatch) Validate() error {
	if p.PackagePrice != nil {
		if err := validateMoney("packagePrice", *p.PackagePrice); err != nil {
			return err
		}
	}
	if p.Deposit != nil {
		if err := validateMoney("deposit", *p.Deposit); err != nil {
			return err
		}
	}
	if p.UmraVisaFee != nil {
		if err := validateMoney("umraVisaFee", *p.UmraVisaFee); err != nil {
			return err
		}
	}
	if p.Status != nil && !p.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidBooking, *p.Status)
	}
	if p.Notes != nil && len(*p.Notes) > MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidBooking, MaxNotesLength)
	}
	return nil
}

// Apply copies present fields onto the booking and recomputes Remaining
func (p *BookingPatch) Apply(b *Booking) {
	setText(&b.ETicket, p.ETicket)
	setText(&b.BookingNumber, p.BookingNumber)
	setText(&b.Surname, p.Surname)
	setText(&b.FirstName, p.FirstName)
	setText(&b.Passport, p.Passport)
	setText(&b.TravelDate, p.TravelDate)
	setText(&b.ReturnDate, p.ReturnDate)
	setText(&b.Visa, p.Visa)
	setText(&b.DateOfBirth, p.DateOfBirth)
	setText(&b.Nationality, p.Nationality)
	setText(&b.PrivateRoom, p.PrivateRoom)
	setText(&b.Email, p.Email)
	setText(&b.Phone, p.Phone)

	if p.Notes != nil {
		b.Notes = strings.TrimSpace(*p.Notes)
	}
	if p.PackagePrice != nil {
		b.PackagePrice = ledger.RoundMoney(*p.PackagePrice)
	}
	if p.Deposit != nil {
		b.Deposit = ledger.RoundMoney(*p.Deposit)
	}
	if p.UmraVisaFee != nil {
		b.UmraVisaFee = ledger.RoundMoney(*p.UmraVisaFee)
	}
	if p.Status != nil {
		b.Status = *p.Status
	}

	b.Recalculate()
}

func setText(dst *string, v *string) {
	if v == nil {
		return
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		s = NotAssigned
	}
	*dst = s
}

func validateMoney(field string, v float64) error {
	if v != v || v < 0 || v > MaxMoneyValue {
		return fmt.Errorf("%w: %s must be between 0 and %.0f", ErrInvalidBooking, field, float64(MaxMoneyValue))
	}
	return nil
}

// BookingSortField sort key accepted by the booking list
type BookingSortField string

const (
	SortByTravelDate    BookingSortField = "travelDate"
	SortByReturnDate    BookingSortField = "returnDate"
	SortByCreatedAt     BookingSortField = "createdAt"
	SortBySurname       BookingSortField = "surname"
	SortByFirstName     BookingSortField = "firstName"
	SortByBookingNumber BookingSortField = "bookingNumber"
	SortByPackagePrice  BookingSortField = "packagePrice"
	SortByTotalPayments BookingSortField = "totalPayments"
	SortByRemaining     BookingSortField = "remaining"
	SortByStatus        BookingSortField = "status"
)

// ParseSortField returns the sort field or travelDate for unknown values
func ParseSortField(s string) BookingSortField {
	switch f := BookingSortField(s); f {
	case SortByTravelDate, SortByReturnDate, SortByCreatedAt, SortBySurname, SortByFirstName,
		SortByBookingNumber, SortByPackagePrice, SortByTotalPayments, SortByRemaining, SortByStatus:
		return f
	}
	return SortByTravelDate
}

// BookingListFilter фильтр списка бронирований
type BookingListFilter struct {
	Status        *BookingStatus
	StartDate     *string // travelDate >= StartDate (YYYY-MM-DD)
	EndDate       *string // travelDate <= EndDate
	ImportBatchID *int64
	HasRemaining  *bool // true: remaining > 0, false: remaining <= 0
	HasUmrahFee   *bool // true: umraVisaFee > 0, false: umraVisaFee <= 0
	Search        string

	SortBy   BookingSortField
	SortDesc bool

	Offset uint64
	Limit  uint64 // 0 - без ограничения
}
