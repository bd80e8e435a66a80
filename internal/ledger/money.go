package ledger

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol символ валюты в сообщениях и письмах
const CurrencySymbol = "£"

var zero = decimal.Zero

// dec переводит float64 в decimal с округлением до копеек
func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// RoundMoney округляет сумму до копеек
func RoundMoney(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return toFloat(dec(v))
}

// validAmount проверяет, что сумма конечна и положительна после округления
func validAmount(v float64) (decimal.Decimal, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return zero, false
	}
	d := dec(v)
	if !d.IsPositive() {
		return zero, false
	}
	return d, true
}

// FormatMoney форматирует сумму как "£1,234.50"
func FormatMoney(v float64) string {
	d := dec(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	s := d.StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + CurrencySymbol + b.String() + frac
}
