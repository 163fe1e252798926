package modelo

import (
	"context"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Estado is the lifecycle state of a modelo profile
type Estado string

const (
	EstadoActiva     Estado = "ACTIVA"
	EstadoInactiva   Estado = "INACTIVA"
	EstadoSuspendida Estado = "SUSPENDIDA"
	EstadoTerminada  Estado = "TERMINADA"
)

// Estados lists every state in display order
var Estados = []Estado{EstadoActiva, EstadoInactiva, EstadoSuspendida, EstadoTerminada}

// Plataformas are the content platforms a modelo can publish on
var Plataformas = []string{"ONLYFANS", "FANSLY", "FANVUE", "PATREON", "OTRA"}

// IsValid checks if the state is known
func (e Estado) IsValid() bool {
	switch e {
	case EstadoActiva, EstadoInactiva, EstadoSuspendida, EstadoTerminada:
		return true
	}
	return false
}

// DisplayName returns a human-readable name for the state
func (e Estado) DisplayName() string {
	switch e {
	case EstadoActiva:
		return "Activa"
	case EstadoInactiva:
		return "Inactiva"
	case EstadoSuspendida:
		return "Suspendida"
	case EstadoTerminada:
		return "Terminada"
	default:
		return string(e)
	}
}

// EquipoChatters holds the chatter assigned to each shift of a modelo
type EquipoChatters struct {
	TurnoAM        string `json:"turnoAM,omitempty"`
	TurnoPM        string `json:"turnoPM,omitempty"`
	TurnoMadrugada string `json:"turnoMadrugada,omitempty"`
	Supernumerario string `json:"supernumerario,omitempty"`
}

// Modelo is the talent profile managed by the agency
type Modelo struct {
	ID                         string          `json:"_id"`
	NombreCompleto             string          `json:"nombreCompleto"`
	NumeroIdentificacion       string          `json:"numeroIdentificacion"`
	TipoDocumento              string          `json:"tipoDocumento,omitempty"`
	CorreoElectronico          string          `json:"correoElectronico"`
	Telefono                   string          `json:"telefono,omitempty"`
	PaisResidencia             string          `json:"paisResidencia,omitempty"`
	CiudadResidencia           string          `json:"ciudadResidencia,omitempty"`
	Plataformas                []string        `json:"plataformas,omitempty"`
	PromedioFacturacionMensual decimal.Decimal `json:"promedioFacturacionMensual"`
	EquipoChatters             *EquipoChatters `json:"equipoChatters,omitempty"`
	TraffickerAsignado         string          `json:"traffickerAsignado,omitempty"`
	Estado                     Estado          `json:"estado"`
	FechaRegistro              time.Time       `json:"fechaRegistro"`
}

// Input is the payload for create and update
type Input struct {
	NombreCompleto             string          `json:"nombreCompleto"`
	NumeroIdentificacion       string          `json:"numeroIdentificacion"`
	TipoDocumento              string          `json:"tipoDocumento,omitempty"`
	CorreoElectronico          string          `json:"correoElectronico"`
	Telefono                   string          `json:"telefono,omitempty"`
	PaisResidencia             string          `json:"paisResidencia,omitempty"`
	CiudadResidencia           string          `json:"ciudadResidencia,omitempty"`
	Plataformas                []string        `json:"plataformas,omitempty"`
	PromedioFacturacionMensual decimal.Decimal `json:"promedioFacturacionMensual"`
	Estado                     Estado          `json:"estado"`
}

// Gateway reads and mutates modelos on the remote API
type Gateway interface {
	List(ctx context.Context, filter shared.Filter) (shared.Paginated[Modelo], error)
	Get(ctx context.Context, id string) (*Modelo, error)
	Create(ctx context.Context, in Input) (*Modelo, error)
	Update(ctx context.Context, id string, in Input) (*Modelo, error)
	Delete(ctx context.Context, id string) error
}
