package valueobject

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatStyle selects which currency markers accompany a formatted amount
type FormatStyle string

const (
	StyleSymbol     FormatStyle = "SYMBOL"      // $ 1.000,00
	StyleCodeSymbol FormatStyle = "CODE_SYMBOL" // $ 1.000,00 COP (code only when the currency shows it)
	StyleCode       FormatStyle = "CODE"        // 1.000,00 COP
	StyleNone       FormatStyle = "NONE"        // 1.000,00
)

// ErrEmptyAmount is returned when the text holds no digits
var ErrEmptyAmount = errors.New("amount is empty")

// FormatMoney renders an amount in the given currency and style.
// The amount is rounded half-up to the currency fraction.
func FormatMoney(amount decimal.Decimal, currency Currency, style FormatStyle) string {
	f := currency.Format()
	rounded := amount.Round(f.Fraction)
	number := formatNumber(rounded.Abs(), f)

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	switch style {
	case StyleSymbol:
		b.WriteString(f.Symbol + " " + number)
	case StyleCode:
		b.WriteString(number + " " + string(f.Code))
	case StyleNone:
		b.WriteString(number)
	default:
		b.WriteString(f.Symbol + " " + number)
		if f.ShowCode {
			b.WriteString(" " + string(f.Code))
		}
	}
	return b.String()
}

// FormatMoneyFloat is FormatMoney for float inputs
func FormatMoneyFloat(amount float64, currency Currency, style FormatStyle) string {
	return FormatMoney(decimal.NewFromFloat(amount), currency, style)
}

// formatNumber groups the integer part and joins the fraction with the currency separators
func formatNumber(abs decimal.Decimal, f CurrencyFormat) string {
	fixed := abs.StringFixed(f.Fraction)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteString(f.Thousand)
		}
		grouped.WriteRune(r)
	}
	if fracPart == "" {
		return grouped.String()
	}
	return grouped.String() + f.Decimal + fracPart
}

// ParseMoney reads an amount typed or formatted in the given currency.
// Symbols, codes, spaces and signs are discarded, the thousands separator is
// dropped and the decimal separator becomes a dot. Only ASCII digits count.
// The result is never negative.
func ParseMoney(text string, currency Currency) (decimal.Decimal, error) {
	f := currency.Format()

	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case string(r) == f.Decimal:
			b.WriteByte('.')
		case string(r) == f.Thousand:
			// dropped
		}
	}
	cleaned := strings.TrimSuffix(b.String(), ".")
	if strings.HasPrefix(cleaned, ".") {
		cleaned = "0" + cleaned
	}
	if cleaned == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	if strings.Count(cleaned, ".") > 1 {
		return decimal.Zero, errors.New("amount has more than one decimal separator")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Round(f.Fraction), nil
}
