package contract

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/contract"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/modelo"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/printing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var hundred = decimal.NewFromInt(100)

// Document renders a contract for printing
type Document interface {
	HTML(data printing.ContractData) (string, error)
	PDF(ctx context.Context, data printing.ContractData) ([]byte, error)
	CanRenderPDF() bool
}

// ContractForm is the new contract form as submitted
type ContractForm struct {
	ModeloID           string `form:"modeloId" binding:"required"`
	FechaInicio        string `form:"fechaInicio" binding:"required"`
	PeriodicidadPago   string `form:"periodicidadPago" binding:"required,oneof=QUINCENAL MENSUAL"`
	TipoComision       string `form:"tipoComision" binding:"required,oneof=FIJO ESCALONADO"`
	PorcentajeComision string `form:"porcentajeComision" binding:"required"`
	Notas              string `form:"notas" binding:"max=1000"`
}

// Rendered is a printable contract: PDF when a renderer is configured, HTML otherwise
type Rendered struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ContractService backs the contracts pages
type ContractService struct {
	contracts contract.Gateway
	modelos   modelo.Gateway
	document  Document
	agency    string
	loc       *time.Location
	logger    *zap.Logger
	now       func() time.Time
}

// NewContractService creates a new contract service
func NewContractService(contracts contract.Gateway, modelos modelo.Gateway, document Document, agency string, loc *time.Location, logger *zap.Logger) *ContractService {
	if loc == nil {
		loc = time.UTC
	}
	return &ContractService{
		contracts: contracts,
		modelos:   modelos,
		document:  document,
		agency:    agency,
		loc:       loc,
		logger:    logger,
		now:       time.Now,
	}
}

// List lists contracts
func (s *ContractService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[contract.Contract], error) {
	return s.contracts.List(ctx, filter)
}

// Get loads one contract
func (s *ContractService) Get(ctx context.Context, id string) (*contract.Contract, error) {
	return s.contracts.Get(ctx, id)
}

// Create parses the form and creates the contract
func (s *ContractService) Create(ctx context.Context, form ContractForm) (*contract.Contract, error) {
	inicio, err := shared.ParseFormDate(form.FechaInicio, s.loc)
	if err != nil {
		return nil, err
	}
	if inicio.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "La fecha de inicio es obligatoria")
	}
	// a percentage is typed like an amount without symbol
	pct, err := valueobject.ParseMoney(form.PorcentajeComision, valueobject.DefaultCurrency)
	if err != nil || !pct.IsPositive() || pct.GreaterThan(hundred) {
		return nil, shared.NewDomainError("INVALID_INPUT", "El porcentaje debe estar entre 0 y 100")
	}

	c, err := s.contracts.Create(ctx, contract.Input{
		ModeloID:           strings.TrimSpace(form.ModeloID),
		FechaInicio:        inicio,
		PeriodicidadPago:   contract.Periodicidad(form.PeriodicidadPago),
		TipoComision:       contract.TipoComision(form.TipoComision),
		PorcentajeComision: pct,
		Notas:              strings.TrimSpace(form.Notas),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Contract created", zap.String("contract_id", c.ID), zap.String("numero", c.NumeroContrato))
	return c, nil
}

// ChangeStatus moves a contract to estado. Rejecting requires a reason.
func (s *ContractService) ChangeStatus(ctx context.Context, id string, estado contract.Estado, motivo string) (*contract.Contract, error) {
	motivo = strings.TrimSpace(motivo)
	if estado == contract.EstadoRechazado && motivo == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Indica el motivo del rechazo")
	}
	c, err := s.contracts.ChangeStatus(ctx, id, estado, motivo)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Contract status changed", zap.String("contract_id", id), zap.String("estado", string(estado)))
	return c, nil
}

// Render produces the printable contract: PDF when a renderer is configured,
// HTML otherwise. A failed PDF render is an error, not an HTML fallback.
func (s *ContractService) Render(ctx context.Context, id string) (*Rendered, error) {
	data, err := s.documentData(ctx, id)
	if err != nil {
		return nil, err
	}
	name := "contrato-" + safeName(data.Contract.NumeroContrato, data.Contract.ID)

	if !s.document.CanRenderPDF() {
		html, err := s.document.HTML(data)
		if err != nil {
			return nil, err
		}
		return &Rendered{Filename: name + ".html", ContentType: "text/html; charset=utf-8", Data: []byte(html)}, nil
	}

	pdf, err := s.document.PDF(ctx, data)
	if err != nil {
		s.logger.Error("Contract PDF rendering failed", zap.String("contract_id", id), zap.Error(err))
		return nil, err
	}
	return &Rendered{Filename: name + ".pdf", ContentType: "application/pdf", Data: pdf}, nil
}

func (s *ContractService) documentData(ctx context.Context, id string) (printing.ContractData, error) {
	c, err := s.contracts.Get(ctx, id)
	if err != nil {
		return printing.ContractData{}, err
	}
	data := printing.ContractData{
		Contract:    *c,
		AgencyName:  s.agency,
		GeneratedAt: s.now().In(s.loc),
	}
	if c.ModeloID != "" {
		m, err := s.modelos.Get(ctx, c.ModeloID)
		switch {
		case err == nil:
			data.Modelo = m
		case errors.Is(err, shared.ErrNotFound):
			s.logger.Warn("Contract modelo not found", zap.String("modelo_id", c.ModeloID))
		default:
			return printing.ContractData{}, err
		}
	}
	return data, nil
}

func safeName(numero, fallback string) string {
	if numero == "" {
		numero = fallback
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, numero)
}
