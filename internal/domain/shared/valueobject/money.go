package valueobject

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in one of the supported currencies. The zero value is
// not usable; build it with NewMoney or Zero.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney pairs amount, rounded to the currency fraction, with a supported currency
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if !currency.IsValid() {
		return Money{}, fmt.Errorf("unsupported currency %q", currency)
	}
	return Money{amount: amount.Round(currency.Format().Fraction), currency: currency}, nil
}

// Zero is no money in currency
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() Currency      { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }

// Format renders m in the given style
func (m Money) Format(style FormatStyle) string {
	return FormatMoney(m.amount, m.currency, style)
}

// String is the CODE_SYMBOL rendering, e.g. "$ 2.500.000,00 COP"
func (m Money) String() string {
	return m.Format(StyleCodeSymbol)
}

// MarshalJSON writes the amount as a fixed-point string next to its rendering
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"amount":    m.amount.StringFixed(m.currency.Format().Fraction),
		"currency":  string(m.currency),
		"formatted": m.String(),
	})
}
