package printing

import (
	"fmt"
	"html/template"
	"maps"
	"reflect"
	"strings"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var monthNames = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}


// FuncMap returns the template helpers. loc is the zone dates are shown in.
func FuncMap(loc *time.Location) template.FuncMap {
	if loc == nil {
		loc = time.UTC
	}
	funcs := template.FuncMap{
		// Money formatting
		"money":      formatMoney,
		"moneyStyle": formatMoneyStyle,
		"amount":     formatAmount,

		// Date formatting
		"formatDate":     func(v any) string { return formatDate(v, loc) },
		"formatDateLong": func(v any) string { return formatDateLong(v, loc) },
		"formatDateTime": func(v any) string { return formatDateTime(v, loc) },
		"inputDate":      func(v any) string { return inputDate(v, loc) },

		// Number formatting
		"formatDecimal": formatDecimal,
		"formatPercent": formatPercent,

		// String utilities
		"truncate": truncate,
		"upper":    strings.ToUpper,
		"lower":    strings.ToLower,
		"title":    titleCase,
		"join":     strings.Join,

		// Arithmetic on ints (pagination, loops)
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"seq": seq,

		// Collections and conditionals
		"in":       inSlice,
		"empty":    empty,
		"notEmpty": func(v any) bool { return !empty(v) },
		"default":  defaultFunc,
		"dict":     dict,
		"list":     func(vals ...any) []any { return vals },

		"safeURL": func(s string) template.URL { return template.URL(s) },
		"now":     func() time.Time { return time.Now().In(loc) },
	}
	return funcs
}

// Merge returns a copy of base with extra added on top
func Merge(base, extra template.FuncMap) template.FuncMap {
	out := make(template.FuncMap, len(base)+len(extra))
	maps.Copy(out, base)
	maps.Copy(out, extra)
	return out
}

// formatMoney renders an amount with symbol and, when the currency shows
// it, the code: "$ 3.000.000,25 COP", "$ 3,000,000.25"
func formatMoney(v any, currency any) string {
	return valueobject.FormatMoney(toDecimal(v), toCurrency(currency), valueobject.StyleCodeSymbol)
}

func formatMoneyStyle(v any, currency any, style string) string {
	return valueobject.FormatMoney(toDecimal(v), toCurrency(currency), valueobject.FormatStyle(strings.ToUpper(style)))
}

// formatAmount renders the number only, for form inputs
func formatAmount(v any, currency any) string {
	return valueobject.FormatMoney(toDecimal(v), toCurrency(currency), valueobject.StyleNone)
}

func toCurrency(v any) valueobject.Currency {
	switch c := v.(type) {
	case valueobject.Currency:
		if c.IsValid() {
			return c
		}
	case string:
		if cur, err := valueobject.ParseCurrency(c); err == nil {
			return cur
		}
	}
	return valueobject.DefaultCurrency
}

// formatDate formats as 15/12/2025
func formatDate(v any, loc *time.Location) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format("02/01/2006")
}

// formatDateLong formats as "15 de diciembre de 2025"
func formatDateLong(v any, loc *time.Location) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	t = t.In(loc)
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

func formatDateTime(v any, loc *time.Location) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format("02/01/2006 15:04")
}

// inputDate formats for <input type="date">
func inputDate(v any, loc *time.Location) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(time.DateOnly)
}

func formatDecimal(v any, precision int) string {
	return toDecimal(v).StringFixed(int32(precision))
}

// formatPercent formats a value already expressed in percent: 12.5 -> "12,5 %"
func formatPercent(v any, precision int) string {
	s := toDecimal(v).StringFixed(int32(precision))
	return strings.Replace(s, ".", ",", 1) + " %"
}

// truncate shortens s to max runes, appending an ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max || max < 1 {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// titleCase converts string to title case using proper Unicode handling
func titleCase(s string) string {
	// a Caser keeps state, so each call gets its own
	return cases.Title(language.Spanish).String(strings.ToLower(s))
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// inSlice reports whether needle is an element of haystack (any slice)
func inSlice(needle any, haystack any) bool {
	rv := reflect.ValueOf(haystack)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	want := fmt.Sprint(needle)
	for i := range rv.Len() {
		if fmt.Sprint(rv.Index(i).Interface()) == want {
			return true
		}
	}
	return false
}

func empty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	}
	if d, ok := v.(decimal.Decimal); ok {
		return d.IsZero()
	}
	if t, ok := v.(time.Time); ok {
		return t.IsZero()
	}
	return false
}

func defaultFunc(val, def any) any {
	if empty(val) {
		return def
	}
	return val
}

// dict builds a map from key/value pairs, for passing several values to a partial
func dict(pairs ...any) map[string]any {
	result := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs)-1; i += 2 {
		if key, ok := pairs[i].(string); ok {
			result[key] = pairs[i+1]
		}
	}
	return result
}

func toDecimal(v any) decimal.Decimal {
	switch val := v.(type) {
	case decimal.Decimal:
		return val
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero
		}
		return *val
	case valueobject.Money:
		return val.Amount()
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case float64:
		return decimal.NewFromFloat(val)
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

func toTime(v any) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case *time.Time:
		if val == nil {
			return time.Time{}
		}
		return *val
	case string:
		for _, f := range []string{time.RFC3339, time.DateTime, time.DateOnly} {
			if t, err := time.Parse(f, val); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}
