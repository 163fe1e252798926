package hr

import (
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Employee is an agency staff member
type Employee struct {
	ID           string               `json:"_id"`
	Nombre       string               `json:"nombre"`
	Apellido     string               `json:"apellido"`
	Correo       string               `json:"correoElectronico"`
	Telefono     string               `json:"telefono,omitempty"`
	Area         string               `json:"area"`
	Cargo        string               `json:"cargo"`
	Estado       string               `json:"estado"`
	SalarioBase  decimal.Decimal      `json:"salarioBase"`
	Moneda       valueobject.Currency `json:"moneda"`
	FechaIngreso time.Time            `json:"fechaIngreso"`
}

// FullName joins first and last name
func (e Employee) FullName() string {
	if e.Apellido == "" {
		return e.Nombre
	}
	return e.Nombre + " " + e.Apellido
}
