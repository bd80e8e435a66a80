package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrDecode файл не удалось прочитать как xlsx
	ErrDecode = errors.New("spreadsheet: failed to decode workbook")

	// ErrEmptySheet в первом листе нет строк с данными
	ErrEmptySheet = errors.New("spreadsheet: no data rows found")

	// ErrEncode не удалось сформировать xlsx
	ErrEncode = errors.New("spreadsheet: failed to encode workbook")
)

// Decode читает первый лист книги. Первая строка - заголовки, пустые строки пропускаются.
func Decode(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrDecode)
	}

	raw, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrDecode, sheets[0], err)
	}
	if len(raw) < 2 {
		return nil, ErrEmptySheet
	}

	headers := raw[0]
	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := make(Row, len(headers))
		filled := false
		for j, value := range cells {
			if j >= len(headers) || strings.TrimSpace(headers[j]) == "" {
				continue
			}
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			row[headers[j]] = value
			filled = true
		}
		if filled {
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	return rows, nil
}

// DecodeBytes обёртка над Decode для содержимого в памяти
func DecodeBytes(data []byte) ([]Row, error) {
	return Decode(bytes.NewReader(data))
}

// Encode пишет строки в книгу с одним листом sheetTitle.
// columns задаёт порядок колонок и строку заголовков.
func Encode(columns []string, rows [][]any, sheetTitle string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetTitle); err != nil {
		return nil, fmt.Errorf("%w: rename sheet: %v", ErrEncode, err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetTitle, "A1", &header); err != nil {
		return nil, fmt.Errorf("%w: write header: %v", ErrEncode, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("%w: cell name: %v", ErrEncode, err)
		}
		values := row
		if err := f.SetSheetRow(sheetTitle, cell, &values); err != nil {
			return nil, fmt.Errorf("%w: write row %d: %v", ErrEncode, i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}
