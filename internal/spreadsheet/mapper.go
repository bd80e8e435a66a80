package spreadsheet

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/travel-backoffice/internal/domain"
)

// Row одна строка таблицы: заголовок колонки -> значение ячейки
type Row map[string]any

// Допустимые написания заголовков в порядке приоритета
var (
	eTicketKeys       = []string{"E-TICKET", "E TICKET", "eTicket"}
	bookingNumberKeys = []string{"UK.NO", "UK NO", "UKNO", "ukNo"}
	surnameKeys       = []string{"SURNAME", "surname"}
	firstNameKeys     = []string{"FIRST NAME", "firstName"}
	passportKeys      = []string{"PASSPORT", "passport"}
	travelDateKeys    = []string{"TRAVEL DATE", "travelDate"}
	returnDateKeys    = []string{"RETURN DATE", "returnDate"}
	visaKeys          = []string{"VISA", "visa"}
	dateOfBirthKeys   = []string{"DOB", "dob", "dateOfBirth"}
	nationalityKeys   = []string{"NATIONALITY", "nationality"}
	packagePriceKeys  = []string{"PACKAGE PRICE", "packagePrice", "price"}
	depositKeys       = []string{"DEPOSIT", "deposit"}
	umraVisaFeeKeys   = []string{"UMRA VISA FEE", "umraVisaFee"}
	privateRoomKeys   = []string{"PRIVATE ROOM", "privateRoom"}
	emailKeys         = []string{"EMAIL", "email"}
	phoneKeys         = []string{"PHONE", "phone"}
)

// Форматы дат, которые встречаются в выгрузках агентов. День идёт перед месяцем.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"2/1/06",
	"02-Jan-2006",
	"2-Jan-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// Серийные номера дней Excel, которые считаем датой (1900-01-01 .. 2173-10-14)
const (
	minExcelSerial = 1
	maxExcelSerial = 100000
)

// MapRow переводит строку таблицы в нормализованные данные бронирования.
// Никогда не возвращает ошибку: некорректная ячейка даёт значение по умолчанию.
// Колонка REMAINING игнорируется, остаток всегда вычисляется.
func MapRow(row Row) domain.BookingInput {
	idx := newIndex(row)

	in := domain.BookingInput{
		ETicket:       idx.text(eTicketKeys),
		BookingNumber: idx.text(bookingNumberKeys),
		Surname:       idx.text(surnameKeys),
		FirstName:     idx.text(firstNameKeys),
		Passport:      idx.text(passportKeys),
		TravelDate:    idx.date(travelDateKeys),
		ReturnDate:    idx.date(returnDateKeys),
		Visa:          idx.text(visaKeys),
		DateOfBirth:   idx.date(dateOfBirthKeys),
		Nationality:   idx.text(nationalityKeys),
		PrivateRoom:   idx.text(privateRoomKeys),
		Email:         idx.text(emailKeys),
		Phone:         idx.text(phoneKeys),
		PackagePrice:  idx.money(packagePriceKeys),
		Deposit:       idx.money(depositKeys),
		UmraVisaFee:   idx.money(umraVisaFeeKeys),
		Status:        domain.StatusPending,
	}
	in.ApplyDefaults()

	return in
}

// index поиск ячейки по точному (после trim) и по нормализованному заголовку
type index struct {
	exact      map[string]any
	normalized map[string]any
}

func newIndex(row Row) index {
	idx := index{
		exact:      make(map[string]any, len(row)),
		normalized: make(map[string]any, len(row)),
	}

	// при коллизии после trim побеждает заголовок без пробелов, затем лексикографически меньший
	keys := make([]string, 0, len(row))
	for k, v := range row {
		if !isEmpty(v) {
			keys = append(keys, k)
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ci, cj := keys[i] == strings.TrimSpace(keys[i]), keys[j] == strings.TrimSpace(keys[j])
		if ci != cj {
			return ci
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		v := row[k]
		key := strings.TrimSpace(k)
		if _, ok := idx.exact[key]; !ok {
			idx.exact[key] = v
		}
		norm := normalizeHeader(key)
		if _, ok := idx.normalized[norm]; !ok {
			idx.normalized[norm] = v
		}
	}
	return idx
}

func (idx index) lookup(keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := idx.exact[k]; ok {
			return v, true
		}
	}
	for _, k := range keys {
		if v, ok := idx.normalized[normalizeHeader(k)]; ok {
			return v, true
		}
	}
	return nil, false
}

func (idx index) text(keys []string) string {
	v, ok := idx.lookup(keys)
	if !ok {
		return domain.NotAssigned
	}
	s := strings.TrimSpace(cellString(v))
	if s == "" {
		return domain.NotAssigned
	}
	return s
}

func (idx index) money(keys []string) float64 {
	v, ok := idx.lookup(keys)
	if !ok {
		return 0
	}
	return parseMoney(v)
}

func (idx index) date(keys []string) string {
	v, ok := idx.lookup(keys)
	if !ok {
		return domain.NotAssigned
	}
	return parseDate(v)
}

// normalizeHeader "First Name " -> "firstname", "UK.NO" -> "ukno"
func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '.', '-', '_', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func cellString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(domain.DateFormat)
	default:
		return fmt.Sprint(v)
	}
}

func parseMoney(v any) float64 {
	var f float64

	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	default:
		s := strings.TrimSpace(cellString(v))
		s = strings.NewReplacer("£", "", "$", "", "€", "", ",", "", " ", "").Replace(s)
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	}

	// отрицательные суммы не обрезаются, их отклоняет валидация строки
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return domain.NotAssigned
		}
		return t.Format(domain.DateFormat)
	case float64:
		return serialDate(t)
	case int:
		return serialDate(float64(t))
	}

	s := strings.TrimSpace(cellString(v))
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format(domain.DateFormat)
		}
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return serialDate(f)
	}

	return domain.NotAssigned
}

func serialDate(f float64) string {
	if f < minExcelSerial || f > maxExcelSerial {
		return domain.NotAssigned
	}
	d, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return domain.NotAssigned
	}
	return d.Format(domain.DateFormat)
}
