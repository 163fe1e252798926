package valueobject

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	USD Currency = "USD" // US Dollar
	COP Currency = "COP" // Colombian Peso (default)
)

// DefaultCurrency is the default currency for the system
const DefaultCurrency = COP

// CurrencyFormat describes how amounts of a currency are rendered.
type CurrencyFormat struct {
	Code     Currency
	Name     string
	Symbol   string
	Thousand string
	Decimal  string
	Fraction int32
	// ShowCode appends the ISO code in CODE_SYMBOL style
	ShowCode bool
}

var currencyFormats = map[Currency]CurrencyFormat{
	USD: newCurrencyFormat(USD, "Dólar estadounidense", false),
	COP: newCurrencyFormat(COP, "Peso colombiano", true),
}

// newCurrencyFormat takes symbol and separators from the go-money currency table.
func newCurrencyFormat(code Currency, name string, showCode bool) CurrencyFormat {
	f := CurrencyFormat{
		Code:     code,
		Name:     name,
		Symbol:   "$",
		Thousand: ",",
		Decimal:  ".",
		Fraction: 2,
		ShowCode: showCode,
	}
	if c := gomoney.GetCurrency(string(code)); c != nil {
		f.Symbol = c.Grapheme
		f.Thousand = c.Thousand
		f.Decimal = c.Decimal
		f.Fraction = int32(c.Fraction)
	}
	// Amounts are always shown with cents.
	if f.Fraction < 2 {
		f.Fraction = 2
	}
	return f
}

// ParseCurrency returns the Currency for a code, case-insensitive
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if c == "" {
		return DefaultCurrency, nil
	}
	if _, ok := currencyFormats[c]; !ok {
		return "", fmt.Errorf("unsupported currency: %s", code)
	}
	return c, nil
}

// IsValid reports whether the currency is supported
func (c Currency) IsValid() bool {
	_, ok := currencyFormats[c]
	return ok
}

// Format returns the rendering rules for the currency.
// Unknown currencies fall back to the default currency rules with their own code.
func (c Currency) Format() CurrencyFormat {
	if f, ok := currencyFormats[c]; ok {
		return f
	}
	f := currencyFormats[DefaultCurrency]
	f.Code = c
	return f
}

// Currencies lists supported currencies in display order
func Currencies() []CurrencyFormat {
	return []CurrencyFormat{currencyFormats[COP], currencyFormats[USD]}
}
