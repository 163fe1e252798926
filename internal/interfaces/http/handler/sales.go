package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	appexport "github.com/EstalynD/only-top-frontend-nest-sub005/internal/application/export"
	appsales "github.com/EstalynD/only-top-frontend-nest-sub005/internal/application/sales"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/finance"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/modelo"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/sales"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/middleware"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/router"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web/dropdown"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web/modal"
	"github.com/gin-gonic/gin"
)

const (
	formGenerate    = "commissions-generate"
	formCommissions = "commissions-batch"
	commissionsPath = "/ventas/comisiones"
	goalsPath       = "/ventas/metas"
	recentPeriods   = 6
)

var commissionEstados = []sales.CommissionStatus{
	sales.CommissionPending, sales.CommissionApproved, sales.CommissionPaid, sales.CommissionCancelled,
}

// SalesHandler serves commissions, goals and chatter teams
type SalesHandler struct {
	*BaseHandler
	sales   *appsales.SalesService
	exports *appexport.ExportService
	modelos modelo.Gateway
	loc     *time.Location
	now     func() time.Time
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(base *BaseHandler, sales *appsales.SalesService, exports *appexport.ExportService, modelos modelo.Gateway, loc *time.Location) *SalesHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &SalesHandler{BaseHandler: base, sales: sales, exports: exports, modelos: modelos, loc: loc, now: time.Now}
}

type commissionsData struct {
	Listing  *appsales.CommissionListing
	Query    appsales.CommissionQuery
	Estados  []sales.CommissionStatus
	Periodos []finance.Periodo
	Modelos  []dropdown.Option
	Token    string
	Generate *modal.Modal
}

type goalsData struct {
	Goals []appsales.GoalView
}

type goalFormData struct {
	Action  string
	ID      string
	Modelos []dropdown.Option
}

// Routes returns the sales routes
func (h *SalesHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("ventas", "/ventas")

	com := g.Group("comisiones", "/comisiones")
	com.GET("", h.Commissions)
	com.GET("/export", h.ExportCommissions)
	com.POST("/generar", h.Generate)
	com.POST("/aprobar", h.Approve)
	com.POST("/pagar", h.Pay)

	metas := g.Group("metas", "/metas")
	metas.GET("", h.Goals)
	metas.POST("", h.guard(goalsPath), h.CreateGoal)
	metas.GET("/new", h.NewGoal)
	metas.Form("/:id/edit", h.EditGoal, h.guard(goalsPath), h.UpdateGoal)
	metas.POST("/:id/delete", h.guard(goalsPath), h.DeleteGoal)

	g.GET("/equipos", h.Teams)
	return g
}

// Commissions lists commissions for the selected quincena or date range
func (h *SalesHandler) Commissions(c *gin.Context) {
	var q appsales.CommissionQuery
	_ = c.ShouldBindQuery(&q)

	listing, err := h.sales.Commissions(c.Request.Context(), q)
	if err != nil {
		h.failPage(c, err)
		return
	}
	modelos, err := modeloOptions(c, h.modelos)
	if err != nil {
		h.failPage(c, err)
		return
	}

	p := h.page(c, "Comisiones", "ventas")
	gen := modal.New("generate-modal", "Generar comisiones", "gen-periodo", "gen-modelo", "gen-cancel", "gen-submit")
	gen.FormToken = h.issueFormToken(c, formGenerate)
	p.Data = commissionsData{
		Listing:  listing,
		Query:    q,
		Estados:  commissionEstados,
		Periodos: h.recentPeriodos(),
		Modelos:  modelos,
		Token:    h.issueFormToken(c, formCommissions),
		Generate: gen,
	}
	h.render(c, http.StatusOK, "comisiones", p)
}

// Generate computes commissions for a quincena
func (h *SalesHandler) Generate(c *gin.Context) {
	periodo := c.PostForm("periodo")
	back := commissionsPath + "?periodo=" + periodo
	if err := h.consumeFormToken(c, formGenerate); err != nil {
		h.fail(c, err, back)
		return
	}
	res, err := h.sales.Generate(c.Request.Context(), periodo, c.PostForm("modeloId"))
	if err != nil {
		h.fail(c, err, back)
		return
	}
	h.redirect(c, back, middleware.FlashSuccess, fmt.Sprintf("%d comisiones generadas", res.Generadas))
}

// Approve approves the checked commissions
func (h *SalesHandler) Approve(c *gin.Context) {
	h.batch(c, "aprobadas", h.sales.Approve)
}

// Pay marks the checked commissions as paid
func (h *SalesHandler) Pay(c *gin.Context) {
	h.batch(c, "pagadas", h.sales.Pay)
}

func (h *SalesHandler) batch(c *gin.Context, verb string, apply func(ctx context.Context, ids []string) (int, error)) {
	back := backTo(c, commissionsPath)
	ids := postedIDs(c, "commissionIds")
	if len(ids) == 0 {
		h.fail(c, shared.ErrEmptySelection, back)
		return
	}
	if err := h.consumeFormToken(c, formCommissions); err != nil {
		h.fail(c, err, back)
		return
	}
	n, err := apply(c.Request.Context(), ids)
	if err != nil {
		h.fail(c, err, back)
		return
	}
	h.redirect(c, back, middleware.FlashSuccess, fmt.Sprintf("%d comisiones %s", n, verb))
}

// ExportCommissions downloads the current listing as a workbook
func (h *SalesHandler) ExportCommissions(c *gin.Context) {
	var q appsales.CommissionQuery
	_ = c.ShouldBindQuery(&q)
	ctx := c.Request.Context()

	listing, err := h.sales.Commissions(ctx, q)
	if err != nil {
		h.fail(c, err, commissionsPath)
		return
	}
	label := ""
	if listing.Periodo != nil {
		label = listing.Periodo.Key()
	}
	res, err := h.exports.Commissions(ctx, listing.Items, label)
	if err != nil {
		h.fail(c, err, commissionsPath+"?"+c.Request.URL.RawQuery)
		return
	}
	h.sendExport(c, res)
}

// Goals shows the goal progress cards
func (h *SalesHandler) Goals(c *gin.Context) {
	goals, err := h.sales.Goals(c.Request.Context(), listFilter(c))
	if err != nil {
		h.failPage(c, err)
		return
	}
	p := h.formPage(c, "Metas de ventas", "ventas")
	p.Data = goalsData{Goals: goals}
	h.render(c, http.StatusOK, "metas", p)
}

// NewGoal renders the empty goal form
func (h *SalesHandler) NewGoal(c *gin.Context) {
	today := h.now().In(h.loc).Format(time.DateOnly)
	form := appsales.GoalForm{
		ModeloID:    c.Query("modeloId"),
		Moneda:      string(valueobject.USD),
		FechaInicio: today,
	}
	p, err := h.goalFormPage(c, "", form)
	if err != nil {
		h.failPage(c, err)
		return
	}
	h.render(c, http.StatusOK, "meta_form", p)
}

// CreateGoal submits a new goal
func (h *SalesHandler) CreateGoal(c *gin.Context) {
	h.saveGoal(c, "")
}

// EditGoal renders the form of an existing goal
func (h *SalesHandler) EditGoal(c *gin.Context) {
	id := c.Param("id")
	g, err := h.sales.Goal(c.Request.Context(), id)
	if err != nil {
		h.failPage(c, err)
		return
	}
	p, err := h.goalFormPage(c, id, goalFormOf(g, h.loc))
	if err != nil {
		h.failPage(c, err)
		return
	}
	h.render(c, http.StatusOK, "meta_form", p)
}

// UpdateGoal submits the edit form
func (h *SalesHandler) UpdateGoal(c *gin.Context) {
	h.saveGoal(c, c.Param("id"))
}

func (h *SalesHandler) saveGoal(c *gin.Context, id string) {
	var form appsales.GoalForm
	err := c.ShouldBind(&form)
	if err == nil {
		if _, err = h.sales.SaveGoal(c.Request.Context(), id, form); err == nil {
			msg := "Meta creada"
			if id != "" {
				msg = "Meta actualizada"
			}
			h.redirect(c, goalsPath, middleware.FlashSuccess, msg)
			return
		}
	}
	p, perr := h.goalFormPage(c, id, form)
	if perr != nil {
		h.failPage(c, perr)
		return
	}
	h.renderForm(c, err, "meta_form", p)
}

// DeleteGoal removes a goal
func (h *SalesHandler) DeleteGoal(c *gin.Context) {
	if err := h.sales.DeleteGoal(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, goalsPath)
		return
	}
	h.redirect(c, goalsPath, middleware.FlashSuccess, "Meta eliminada")
}

// Teams lists the chatter teams of each modelo
func (h *SalesHandler) Teams(c *gin.Context) {
	teams, err := h.sales.Teams(c.Request.Context())
	if err != nil {
		h.failPage(c, err)
		return
	}
	p := h.page(c, "Equipos de chatters", "ventas")
	p.Data = teams
	h.render(c, http.StatusOK, "equipos", p)
}

func (h *SalesHandler) goalFormPage(c *gin.Context, id string, form appsales.GoalForm) (*web.Page, error) {
	modelos, err := modeloOptions(c, h.modelos)
	if err != nil {
		return nil, err
	}
	title, action := "Nueva meta", goalsPath
	if id != "" {
		title, action = "Editar meta", goalsPath+"/"+id+"/edit"
	}
	p := h.formPage(c, title, "ventas")
	p.Form = form
	p.Data = goalFormData{Action: action, ID: id, Modelos: modelos}
	return p, nil
}

// recentPeriodos is the current quincena and the ones before it, newest first
func (h *SalesHandler) recentPeriodos() []finance.Periodo {
	out := make([]finance.Periodo, 0, recentPeriods)
	p := finance.PeriodoOf(h.now().In(h.loc))
	for range recentPeriods {
		out = append(out, p)
		p = p.Prev()
	}
	return out
}

func goalFormOf(g *sales.Goal, loc *time.Location) appsales.GoalForm {
	return appsales.GoalForm{
		ModeloID:      g.ModeloID,
		Titulo:        g.Titulo,
		Descripcion:   g.Descripcion,
		MontoObjetivo: valueobject.FormatMoney(g.MontoObjetivo, g.Moneda, valueobject.StyleNone),
		Moneda:        string(g.Moneda),
		FechaInicio:   g.FechaInicio.In(loc).Format(time.DateOnly),
		FechaFin:      g.FechaFin.In(loc).Format(time.DateOnly),
	}
}
