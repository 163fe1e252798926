package hr

import (
	"fmt"
	"time"
)

// Weekdays are the day names used by the backend shift schedule
var Weekdays = []string{"LUNES", "MARTES", "MIERCOLES", "JUEVES", "VIERNES", "SABADO", "DOMINGO"}

// Shift is a named working window repeated on some weekdays
type Shift struct {
	ID         string   `json:"_id"`
	Nombre     string   `json:"nombre"`
	HoraInicio string   `json:"horaInicio"` // HH:MM
	HoraFin    string   `json:"horaFin"`    // HH:MM, may wrap past midnight
	Dias       []string `json:"dias"`
	Color      string   `json:"color,omitempty"`
	Activo     bool     `json:"activo"`
}

// Duration returns the shift length, handling overnight shifts
func (s Shift) Duration() (time.Duration, error) {
	start, err := time.Parse("15:04", s.HoraInicio)
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q: %w", s.HoraInicio, err)
	}
	end, err := time.Parse("15:04", s.HoraFin)
	if err != nil {
		return 0, fmt.Errorf("invalid end time %q: %w", s.HoraFin, err)
	}
	d := end.Sub(start)
	if d <= 0 {
		d += 24 * time.Hour
	}
	return d, nil
}

// Overnight reports whether the shift ends on the next day
func (s Shift) Overnight() bool {
	return s.HoraFin <= s.HoraInicio
}

// ShiftInput is the payload for create and update
type ShiftInput struct {
	Nombre     string   `json:"nombre"`
	HoraInicio string   `json:"horaInicio"`
	HoraFin    string   `json:"horaFin"`
	Dias       []string `json:"dias"`
	Color      string   `json:"color,omitempty"`
	Activo     bool     `json:"activo"`
}

// AttendanceConfig holds the attendance settings the backend evaluates
type AttendanceConfig struct {
	ToleranciaMinutos         int        `json:"toleranciaMinutos"`
	HorasJornada              float64    `json:"horasJornada"`
	DescansoMinutos           int        `json:"descansoMinutos"`
	RequiereGeolocalizacion   bool       `json:"requiereGeolocalizacion"`
	MarcacionAutomaticaSalida bool       `json:"marcacionAutomaticaSalida"`
	Turnos                    []Shift    `json:"turnos,omitempty"`
	UpdatedAt                 *time.Time `json:"updatedAt,omitempty"`
}
