package finance

import (
	"fmt"
	"time"
)

// Quincena identifies a half of a month
type Quincena string

const (
	QuincenaPrimera Quincena = "PRIMERA_QUINCENA" // days 1-15
	QuincenaSegunda Quincena = "SEGUNDA_QUINCENA" // day 16 to month end
)

// IsValid checks if the quincena is known
func (q Quincena) IsValid() bool {
	return q == QuincenaPrimera || q == QuincenaSegunda
}

// Number returns 1 or 2
func (q Quincena) Number() int {
	if q == QuincenaSegunda {
		return 2
	}
	return 1
}

var monthNames = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}

// Periodo is a concrete half-month: year, month and quincena
type Periodo struct {
	Anio     int      `json:"anio"`
	Mes      int      `json:"mes"`
	Quincena Quincena `json:"quincena"`
}

// PeriodoOf returns the half-month containing t
func PeriodoOf(t time.Time) Periodo {
	q := QuincenaPrimera
	if t.Day() > 15 {
		q = QuincenaSegunda
	}
	return Periodo{Anio: t.Year(), Mes: int(t.Month()), Quincena: q}
}

// ParsePeriodo parses the "2006-01-Q1" key form
func ParsePeriodo(key string) (Periodo, error) {
	var p Periodo
	var n int
	if _, err := fmt.Sscanf(key, "%d-%d-Q%d", &p.Anio, &p.Mes, &n); err != nil {
		return Periodo{}, fmt.Errorf("invalid period key %q: %w", key, err)
	}
	switch n {
	case 1:
		p.Quincena = QuincenaPrimera
	case 2:
		p.Quincena = QuincenaSegunda
	default:
		return Periodo{}, fmt.Errorf("invalid quincena in %q", key)
	}
	if err := p.Validate(); err != nil {
		return Periodo{}, err
	}
	return p, nil
}

// Validate checks month and quincena ranges
func (p Periodo) Validate() error {
	if p.Mes < 1 || p.Mes > 12 {
		return fmt.Errorf("month out of range: %d", p.Mes)
	}
	if !p.Quincena.IsValid() {
		return fmt.Errorf("invalid quincena: %s", p.Quincena)
	}
	return nil
}

// Key returns the "2006-01-Q1" form used in query strings
func (p Periodo) Key() string {
	return fmt.Sprintf("%04d-%02d-Q%d", p.Anio, p.Mes, p.Quincena.Number())
}

// Label renders the period for humans, e.g. "1ª quincena de marzo 2026"
func (p Periodo) Label() string {
	if p.Mes < 1 || p.Mes > 12 {
		return p.Key()
	}
	return fmt.Sprintf("%dª quincena de %s %d", p.Quincena.Number(), monthNames[p.Mes-1], p.Anio)
}

// Start returns the first day of the period
func (p Periodo) Start(loc *time.Location) time.Time {
	day := 1
	if p.Quincena == QuincenaSegunda {
		day = 16
	}
	return time.Date(p.Anio, time.Month(p.Mes), day, 0, 0, 0, 0, loc)
}

// End returns the last day of the period
func (p Periodo) End(loc *time.Location) time.Time {
	if p.Quincena == QuincenaPrimera {
		return time.Date(p.Anio, time.Month(p.Mes), 15, 0, 0, 0, 0, loc)
	}
	// day 0 of next month is the last day of this one
	return time.Date(p.Anio, time.Month(p.Mes)+1, 0, 0, 0, 0, 0, loc)
}

// Next returns the following half-month
func (p Periodo) Next() Periodo {
	if p.Quincena == QuincenaPrimera {
		return Periodo{Anio: p.Anio, Mes: p.Mes, Quincena: QuincenaSegunda}
	}
	if p.Mes == 12 {
		return Periodo{Anio: p.Anio + 1, Mes: 1, Quincena: QuincenaPrimera}
	}
	return Periodo{Anio: p.Anio, Mes: p.Mes + 1, Quincena: QuincenaPrimera}
}

// Prev returns the preceding half-month
func (p Periodo) Prev() Periodo {
	if p.Quincena == QuincenaSegunda {
		return Periodo{Anio: p.Anio, Mes: p.Mes, Quincena: QuincenaPrimera}
	}
	if p.Mes == 1 {
		return Periodo{Anio: p.Anio - 1, Mes: 12, Quincena: QuincenaSegunda}
	}
	return Periodo{Anio: p.Anio, Mes: p.Mes - 1, Quincena: QuincenaSegunda}
}
