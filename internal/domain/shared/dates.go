package shared

import (
	"strings"
	"time"
)

// formDateLayouts are the date formats accepted from forms and query strings
var formDateLayouts = []string{time.DateOnly, "02/01/2006", time.RFC3339}

// ParseFormDate reads a date typed in a form, as a local date in loc.
// Empty input yields the zero time and no error.
func ParseFormDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range formDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, NewDomainError("INVALID_INPUT", "Fecha inválida: "+value)
}
