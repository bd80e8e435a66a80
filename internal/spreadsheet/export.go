package spreadsheet

import "github.com/m04kA/travel-backoffice/internal/domain"

// ContentType MIME-тип xlsx
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportColumns колонки выгрузки в фиксированном порядке
var ExportColumns = []string{
	"E-TICKET",
	"UK.NO",
	"SURNAME",
	"FIRST NAME",
	"PASSPORT",
	"TRAVEL DATE",
	"RETURN DATE",
	"VISA",
	"DOB",
	"NATIONALITY",
	"PACKAGE PRICE",
	"DEPOSIT",
	"REMAINING",
	"UMRA VISA FEE",
	"PRIVATE ROOM",
}

// BookingRow значения колонок ExportColumns для одного бронирования
func BookingRow(b *domain.Booking) []any {
	return []any{
		orNotAssigned(b.ETicket),
		orNotAssigned(b.BookingNumber),
		orNotAssigned(b.Surname),
		orNotAssigned(b.FirstName),
		orNotAssigned(b.Passport),
		orNotAssigned(b.TravelDate),
		orNotAssigned(b.ReturnDate),
		orNotAssigned(b.Visa),
		orNotAssigned(b.DateOfBirth),
		orNotAssigned(b.Nationality),
		b.PackagePrice,
		b.Deposit,
		b.Remaining,
		b.UmraVisaFee,
		orNotAssigned(b.PrivateRoom),
	}
}

// ExportBookings формирует xlsx со всеми переданными бронированиями
func ExportBookings(bookings []*domain.Booking) ([]byte, error) {
	rows := make([][]any, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, BookingRow(b))
	}
	return Encode(ExportColumns, rows, domain.ExportSheetTitle)
}

// Template шаблон для импорта с двумя примерами строк
func Template() ([]byte, error) {
	rows := [][]any{
		{"YES", "UK001", "SMITH", "JOHN", "AB123456", "2025-03-01", "2025-03-15", "Required", "1990-01-15", "UK", 2500, 500, 2000, 100, "Yes"},
		{"YES", "UK002", "JONES", "MARY", "CD789012", "2025-03-01", "2025-03-15", "Required", "1985-05-20", "UK", 2500, 1000, 1500, 100, "No"},
	}
	return Encode(ExportColumns, rows, domain.ExportSheetTitle)
}

func orNotAssigned(s string) string {
	if s == "" {
		return domain.NotAssigned
	}
	return s
}
