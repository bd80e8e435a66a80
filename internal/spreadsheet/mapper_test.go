package spreadsheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/travel-backoffice/internal/domain"
)

func TestMapRow_EmptyRowUsesDefaults(t *testing.T) {
	in := MapRow(Row{})

	for _, v := range []string{
		in.ETicket, in.BookingNumber, in.Surname, in.FirstName, in.Passport,
		in.TravelDate, in.ReturnDate, in.Visa, in.DateOfBirth, in.Nationality,
		in.PrivateRoom, in.Email, in.Phone,
	} {
		assert.Equal(t, domain.NotAssigned, v)
	}
	assert.Equal(t, 0.0, in.PackagePrice)
	assert.Equal(t, 0.0, in.Deposit)
	assert.Equal(t, 0.0, in.UmraVisaFee)
	assert.Equal(t, "", in.Notes)
	assert.Equal(t, domain.StatusPending, in.Status)
}

func TestMapRow_CompanySheetHeaders(t *testing.T) {
	in := MapRow(Row{
		" E-TICKET ":    "YES",
		"UK.NO":         "UK001",
		" SURNAME ":     "  SMITH ",
		"FIRST NAME  ":  "JOHN",
		"PASSPORT":      "AB123456",
		"TRAVEL DATE":   "2025-03-01",
		"RETURN DATE":   "15/03/2025",
		"DOB":           "45717",
		"NATIONALITY":   "UK",
		"PACKAGE PRICE": "2500",
		"DEPOSIT":       500.0,
		"REMAINING":     "999",
		"UMRA VISA FEE": "£1,100.50",
		"PRIVATE ROOM":  "Yes",
	})

	assert.Equal(t, "YES", in.ETicket)
	assert.Equal(t, "UK001", in.BookingNumber)
	assert.Equal(t, "SMITH", in.Surname)
	assert.Equal(t, "JOHN", in.FirstName)
	assert.Equal(t, "2025-03-01", in.TravelDate)
	assert.Equal(t, "2025-03-15", in.ReturnDate)
	assert.Equal(t, "2025-03-01", in.DateOfBirth)
	assert.Equal(t, domain.NotAssigned, in.Visa)
	assert.Equal(t, 2500.0, in.PackagePrice)
	assert.Equal(t, 500.0, in.Deposit)
	assert.Equal(t, 1100.5, in.UmraVisaFee)
	assert.Equal(t, "Yes", in.PrivateRoom)
}

func TestMapRow_SpellingPriority(t *testing.T) {
	in := MapRow(Row{
		"price":         "10",
		"PACKAGE PRICE": "20",
		"ukNo":          "B",
		"UK NO":         "A",
	})
	assert.Equal(t, 20.0, in.PackagePrice)
	assert.Equal(t, "A", in.BookingNumber)

	// пустое значение не считается совпадением
	in = MapRow(Row{"PACKAGE PRICE": "  ", "price": "10"})
	assert.Equal(t, 10.0, in.PackagePrice)
}

func TestMapRow_CaseAndSpaceVariants(t *testing.T) {
	in := MapRow(Row{
		"Surname":    "Khan",
		"first name": "Aisha",
		"Uk No":      "UK9",
		"e ticket":   "NO",
	})
	assert.Equal(t, "Khan", in.Surname)
	assert.Equal(t, "Aisha", in.FirstName)
	assert.Equal(t, "UK9", in.BookingNumber)
	assert.Equal(t, "NO", in.ETicket)
}

func TestMapRow_MalformedCellsDegrade(t *testing.T) {
	in := MapRow(Row{
		"PACKAGE PRICE": "two thousand",
		"DEPOSIT":       "fifty",
		"UMRA VISA FEE": "NaN",
		"TRAVEL DATE":   "next spring",
		"RETURN DATE":   "0",
		"DOB":           []int{1},
	})
	assert.Equal(t, 0.0, in.PackagePrice)
	assert.Equal(t, 0.0, in.Deposit)
	assert.Equal(t, 0.0, in.UmraVisaFee)
	assert.Equal(t, domain.NotAssigned, in.TravelDate)
	assert.Equal(t, domain.NotAssigned, in.ReturnDate)
	assert.Equal(t, domain.NotAssigned, in.DateOfBirth)
}

func TestMapRow_NegativeMoneyKept(t *testing.T) {
	in := MapRow(Row{"PACKAGE PRICE": "-2500", "DEPOSIT": "£-500", "UMRA VISA FEE": -10.5})
	assert.Equal(t, -2500.0, in.PackagePrice)
	assert.Equal(t, -500.0, in.Deposit)
	assert.Equal(t, -10.5, in.UmraVisaFee)

	err := in.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidBooking)
}

func TestMapRow_PaddedHeaderCollision(t *testing.T) {
	for i := 0; i < 50; i++ {
		in := MapRow(Row{
			" SURNAME ":  "Padded",
			"SURNAME":    "Exact",
			"first name": "Lower",
			"FIRST NAME": "Upper",
			" DEPOSIT":   "100",
			"DEPOSIT ":   "200",
		})
		assert.Equal(t, "Exact", in.Surname)
		assert.Equal(t, "Upper", in.FirstName)
		assert.Equal(t, 100.0, in.Deposit)
	}

	// без точного совпадения принимается заголовок с пробелами
	in := MapRow(Row{" SURNAME ": "Padded"})
	assert.Equal(t, "Padded", in.Surname)

	// приоритет написаний сохраняется и для заголовков с пробелами
	in = MapRow(Row{"price": "10", " PACKAGE PRICE ": "20"})
	assert.Equal(t, 20.0, in.PackagePrice)
}

func TestParseDate_Layouts(t *testing.T) {
	tests := map[string]any{
		"2025-03-01":           "2025-03-01",
		"2025/03/01":           "2025-03-01",
		"01/03/2025":           "2025-03-01",
		"1/3/2025":             "2025-03-01",
		"01.03.2025":           "2025-03-01",
		"1 Mar 2025":           "2025-03-01",
		"March 1, 2025":        "2025-03-01",
		"2025-03-01T10:00:00Z": "2025-03-01",
	}
	for raw, want := range tests {
		assert.Equal(t, want, parseDate(raw), raw)
	}

	assert.Equal(t, "2025-03-01", parseDate(45717.0))
	assert.Equal(t, "2025-03-01", parseDate(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)))
}
