package handler

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/modelo"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/traffic"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/middleware"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/router"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web/dropdown"
	"github.com/gin-gonic/gin"
)

const campaignsPath = "/trafico/campanas"

// TrafficHandler serves the traffic campaign CRUD pages
type TrafficHandler struct {
	*BaseHandler
	campaigns traffic.Gateway
	modelos   modelo.Gateway
	loc       *time.Location
}

// NewTrafficHandler creates a new TrafficHandler
func NewTrafficHandler(base *BaseHandler, campaigns traffic.Gateway, modelos modelo.Gateway, loc *time.Location) *TrafficHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TrafficHandler{BaseHandler: base, campaigns: campaigns, modelos: modelos, loc: loc}
}

// CampaignForm is the campaign form as submitted
type CampaignForm struct {
	ModeloID    string `form:"modeloId" binding:"required"`
	Nombre      string `form:"nombre" binding:"required,max=120"`
	Plataforma  string `form:"plataforma" binding:"required"`
	Presupuesto string `form:"presupuesto" binding:"required"`
	Moneda      string `form:"moneda"`
	FechaInicio string `form:"fechaInicio" binding:"required"`
	FechaFin    string `form:"fechaFin"`
	Estado      string `form:"estado" binding:"required,oneof=PLANIFICADA ACTIVA PAUSADA FINALIZADA"`
	Notas       string `form:"notas" binding:"max=500"`
}

func (f CampaignForm) input(loc *time.Location) (traffic.Input, error) {
	plataforma := strings.ToUpper(strings.TrimSpace(f.Plataforma))
	if !slices.Contains(traffic.Plataformas, plataforma) {
		return traffic.Input{}, shared.NewDomainError("INVALID_INPUT", "Plataforma no soportada")
	}
	moneda, err := valueobject.ParseCurrency(f.Moneda)
	if err != nil {
		return traffic.Input{}, shared.NewDomainError("INVALID_INPUT", "Moneda no soportada")
	}
	presupuesto, err := valueobject.ParseMoney(f.Presupuesto, moneda)
	if err != nil {
		return traffic.Input{}, shared.NewDomainError("INVALID_INPUT", "Presupuesto inválido")
	}
	inicio, err := shared.ParseFormDate(f.FechaInicio, loc)
	if err != nil {
		return traffic.Input{}, err
	}
	in := traffic.Input{
		ModeloID:    strings.TrimSpace(f.ModeloID),
		Nombre:      strings.TrimSpace(f.Nombre),
		Plataforma:  plataforma,
		Presupuesto: presupuesto,
		Moneda:      moneda,
		FechaInicio: inicio,
		Estado:      traffic.Estado(f.Estado),
		Notas:       strings.TrimSpace(f.Notas),
	}
	fin, err := shared.ParseFormDate(f.FechaFin, loc)
	if err != nil {
		return traffic.Input{}, err
	}
	if !fin.IsZero() {
		if fin.Before(inicio) {
			return traffic.Input{}, shared.NewDomainError("INVALID_INPUT", "La fecha de fin debe ser posterior a la de inicio")
		}
		in.FechaFin = &fin
	}
	return in, nil
}

func campaignFormOf(c *traffic.Campaign, loc *time.Location) CampaignForm {
	f := CampaignForm{
		ModeloID:    c.ModeloID,
		Nombre:      c.Nombre,
		Plataforma:  c.Plataforma,
		Presupuesto: valueobject.FormatMoney(c.Presupuesto, c.Moneda, valueobject.StyleNone),
		Moneda:      string(c.Moneda),
		FechaInicio: c.FechaInicio.In(loc).Format(time.DateOnly),
		Estado:      string(c.Estado),
		Notas:       c.Notas,
	}
	if c.FechaFin != nil {
		f.FechaFin = c.FechaFin.In(loc).Format(time.DateOnly)
	}
	return f
}

type campaignsData struct {
	Campaigns []traffic.Campaign
	Estados   []traffic.Estado
	Now       time.Time
}

type campaignFormData struct {
	Action      string
	ID          string
	Estados     []traffic.Estado
	Plataformas []string
	Modelos     []dropdown.Option
}

// Routes returns the traffic routes
func (h *TrafficHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("trafico", "/trafico/campanas")
	g.GET("", h.List)
	g.POST("", h.guard(campaignsPath), h.Create)
	g.GET("/new", h.New)
	g.Form("/:id/edit", h.Edit, h.guard(campaignsPath), h.Update)
	g.POST("/:id/delete", h.guard(campaignsPath), h.Delete)
	return g
}

// List shows campaigns, optionally filtered by estado
func (h *TrafficHandler) List(c *gin.Context) {
	filter := listFilter(c)
	if estado := traffic.Estado(strings.ToUpper(c.Query("estado"))); slices.Contains(traffic.Estados, estado) {
		filter = filter.With("estado", string(estado))
	}
	campaigns, err := h.campaigns.List(c.Request.Context(), filter)
	if err != nil {
		h.failPage(c, err)
		return
	}
	p := h.formPage(c, "Campañas de tráfico", "trafico")
	p.Data = campaignsData{Campaigns: campaigns, Estados: traffic.Estados, Now: time.Now().In(h.loc)}
	h.render(c, http.StatusOK, "campanas", p)
}

// New renders the empty campaign form
func (h *TrafficHandler) New(c *gin.Context) {
	form := CampaignForm{
		ModeloID:    c.Query("modeloId"),
		Moneda:      string(valueobject.USD),
		FechaInicio: time.Now().In(h.loc).Format(time.DateOnly),
		Estado:      string(traffic.EstadoPlanificada),
	}
	h.showForm(c, "", form)
}

// Create submits a new campaign
func (h *TrafficHandler) Create(c *gin.Context) {
	h.save(c, "")
}

// Edit renders the form of an existing campaign
func (h *TrafficHandler) Edit(c *gin.Context) {
	id := c.Param("id")
	camp, err := h.campaigns.Get(c.Request.Context(), id)
	if err != nil {
		h.failPage(c, err)
		return
	}
	h.showForm(c, id, campaignFormOf(camp, h.loc))
}

// Update submits the edit form
func (h *TrafficHandler) Update(c *gin.Context) {
	h.save(c, c.Param("id"))
}

// Delete removes a campaign
func (h *TrafficHandler) Delete(c *gin.Context) {
	if err := h.campaigns.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, campaignsPath)
		return
	}
	h.redirect(c, campaignsPath, middleware.FlashSuccess, "Campaña eliminada")
}

func (h *TrafficHandler) save(c *gin.Context, id string) {
	var form CampaignForm
	err := c.ShouldBind(&form)
	if err == nil {
		var in traffic.Input
		if in, err = form.input(h.loc); err == nil {
			ctx := c.Request.Context()
			if id == "" {
				_, err = h.campaigns.Create(ctx, in)
			} else {
				_, err = h.campaigns.Update(ctx, id, in)
			}
			if err == nil {
				h.redirect(c, campaignsPath, middleware.FlashSuccess, "Campaña guardada")
				return
			}
		}
	}
	p, perr := h.campaignFormPage(c, id, form)
	if perr != nil {
		h.failPage(c, perr)
		return
	}
	h.renderForm(c, err, "campana_form", p)
}

func (h *TrafficHandler) showForm(c *gin.Context, id string, form CampaignForm) {
	p, err := h.campaignFormPage(c, id, form)
	if err != nil {
		h.failPage(c, err)
		return
	}
	h.render(c, http.StatusOK, "campana_form", p)
}

func (h *TrafficHandler) campaignFormPage(c *gin.Context, id string, form CampaignForm) (*web.Page, error) {
	modelos, err := modeloOptions(c, h.modelos)
	if err != nil {
		return nil, err
	}
	title, action := "Nueva campaña", campaignsPath
	if id != "" {
		title, action = "Editar campaña", campaignsPath+"/"+id+"/edit"
	}
	p := h.formPage(c, title, "trafico")
	p.Form = form
	p.Data = campaignFormData{
		Action: action, ID: id,
		Estados: traffic.Estados, Plataformas: traffic.Plataformas, Modelos: modelos,
	}
	return p, nil
}
