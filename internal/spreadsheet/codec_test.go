package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/travel-backoffice/internal/domain"
)

func TestTemplate_RoundTrip(t *testing.T) {
	data, err := Template()
	require.NoError(t, err)

	rows, err := DecodeBytes(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := MapRow(rows[0])
	assert.Equal(t, "UK001", first.BookingNumber)
	assert.Equal(t, "SMITH", first.Surname)
	assert.Equal(t, "2025-03-01", first.TravelDate)
	assert.Equal(t, "1990-01-15", first.DateOfBirth)
	assert.Equal(t, 2500.0, first.PackagePrice)
	assert.Equal(t, 500.0, first.Deposit)

	second := MapRow(rows[1])
	assert.Equal(t, "JONES", second.Surname)
	assert.Equal(t, 1000.0, second.Deposit)
}

func TestExportBookings_ColumnsAndSheet(t *testing.T) {
	b := &domain.Booking{
		ETicket: "YES", BookingNumber: "UK7", Surname: "DOE",
		PackagePrice: 1200, Deposit: 200, TotalPayments: 300, Remaining: 700,
	}
	data, err := ExportBookings([]*domain.Booking{b})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{domain.ExportSheetTitle}, f.GetSheetList())

	rows, err := f.GetRows(domain.ExportSheetTitle)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ExportColumns, rows[0])
	assert.Equal(t, "UK7", rows[1][1])
	assert.Equal(t, domain.NotAssigned, rows[1][3])
	assert.Equal(t, "700", rows[1][12])
}

func TestDecode_SkipsBlankRowsAndRejectsEmpty(t *testing.T) {
	data, err := Encode([]string{"SURNAME", "DEPOSIT"}, [][]any{
		{"A", 10},
		{"", nil},
		{"B", nil},
	}, "Sheet")
	require.NoError(t, err)

	rows, err := DecodeBytes(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[1]["SURNAME"])
	_, hasDeposit := rows[1]["DEPOSIT"]
	assert.False(t, hasDeposit)

	onlyHeader, err := Encode([]string{"SURNAME"}, nil, "Sheet")
	require.NoError(t, err)
	_, err = DecodeBytes(onlyHeader)
	assert.ErrorIs(t, err, ErrEmptySheet)

	_, err = DecodeBytes([]byte("not a workbook"))
	assert.ErrorIs(t, err, ErrDecode)
}
