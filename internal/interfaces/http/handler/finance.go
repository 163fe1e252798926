package handler

import (
	"net/http"
	"strconv"

	appexport "github.com/EstalynD/only-top-frontend-nest-sub005/internal/application/export"
	appfinance "github.com/EstalynD/only-top-frontend-nest-sub005/internal/application/finance"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/finance"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/middleware"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/router"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web/modal"
	"github.com/gin-gonic/gin"
)

const (
	formConsolidate     = "consolidate"
	fixedExpensesPath   = "/finanzas/gastos-fijos"
	fixedExpenseModalID = "gasto-modal"
)

// FinanceHandler serves periods and fixed expenses
type FinanceHandler struct {
	*BaseHandler
	finance *appfinance.FinanceService
	exports *appexport.ExportService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(base *BaseHandler, finance *appfinance.FinanceService, exports *appexport.ExportService) *FinanceHandler {
	return &FinanceHandler{BaseHandler: base, finance: finance, exports: exports}
}

type periodsData struct {
	Anio    int
	Years   []int
	Periods []finance.Period
	Token   string
}

type fixedExpensesData struct {
	List       *appfinance.FixedExpensePage
	Prev       finance.Periodo
	Next       finance.Periodo
	Categorias []finance.ExpenseCategoria
	Modal      *modal.Modal
}

type fixedExpenseFormData struct {
	ID         string
	Categorias []finance.ExpenseCategoria
}

// Routes returns the finance routes
func (h *FinanceHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("finanzas", "/finanzas")
	g.GET("/periodos", h.Periods)
	g.POST("/periodos/:id/consolidar", h.Consolidate)

	gastos := g.Group("gastos-fijos", "/gastos-fijos")
	gastos.GET("", h.FixedExpenses)
	gastos.POST("", h.guard(fixedExpensesPath), h.CreateFixedExpense)
	gastos.GET("/export", h.ExportFixedExpenses)
	gastos.Form("/:id/edit", h.EditFixedExpense, h.guard(fixedExpensesPath), h.UpdateFixedExpense)
	gastos.POST("/:id/delete", h.guard(fixedExpensesPath), h.DeleteFixedExpense)
	return g
}

// Periods lists the quincenas of a year with their consolidation state
func (h *FinanceHandler) Periods(c *gin.Context) {
	anio, _ := strconv.Atoi(c.Query("anio"))
	periods, err := h.finance.Periods(c.Request.Context(), anio)
	if err != nil {
		h.failPage(c, err)
		return
	}
	current := h.finance.CurrentPeriodo().Anio
	if anio == 0 {
		anio = current
	}
	p := h.page(c, "Periodos financieros", "finanzas")
	p.Data = periodsData{
		Anio:    anio,
		Years:   []int{current, current - 1, current - 2},
		Periods: periods,
		Token:   h.issueFormToken(c, formConsolidate),
	}
	h.render(c, http.StatusOK, "periodos", p)
}

// Consolidate asks the backend to consolidate a period. The one-shot token
// stops a double click from sending two consolidations.
func (h *FinanceHandler) Consolidate(c *gin.Context) {
	back := backTo(c, "/finanzas/periodos")
	if err := h.consumeFormToken(c, formConsolidate); err != nil {
		h.fail(c, err, back)
		return
	}
	period, err := h.finance.Consolidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, back)
		return
	}
	h.redirect(c, back, middleware.FlashSuccess, "Periodo "+period.Periodo().Label()+" consolidado")
}

// FixedExpenses lists the expenses and summary of the selected quincena
func (h *FinanceHandler) FixedExpenses(c *gin.Context) {
	p, err := h.fixedExpensesPage(c, c.Query("periodo"), false)
	if err != nil {
		h.failPage(c, err)
		return
	}
	h.render(c, http.StatusOK, "gastos_fijos", p)
}

// CreateFixedExpense submits the new expense modal. On failure the list is
// shown again with the modal open.
func (h *FinanceHandler) CreateFixedExpense(c *gin.Context) {
	var form appfinance.FixedExpenseForm
	err := c.ShouldBind(&form)
	if err == nil {
		if _, err = h.finance.SaveFixedExpense(c.Request.Context(), "", form); err == nil {
			h.redirect(c, fixedExpensesPath+"?periodo="+form.Periodo, middleware.FlashSuccess, "Gasto registrado")
			return
		}
	}
	p, perr := h.fixedExpensesPage(c, form.Periodo, true)
	if perr != nil {
		h.fail(c, err, fixedExpensesPath)
		return
	}
	p.Form = form
	h.renderForm(c, err, "gastos_fijos", p)
}

// EditFixedExpense renders the edit form of one expense
func (h *FinanceHandler) EditFixedExpense(c *gin.Context) {
	id := c.Param("id")
	e, err := h.finance.FixedExpense(c.Request.Context(), id)
	if err != nil {
		h.failPage(c, err)
		return
	}
	h.render(c, http.StatusOK, "gasto_form", h.fixedExpenseFormPage(c, id, fixedExpenseFormOf(e)))
}

// UpdateFixedExpense submits the edit form
func (h *FinanceHandler) UpdateFixedExpense(c *gin.Context) {
	id := c.Param("id")
	var form appfinance.FixedExpenseForm
	err := c.ShouldBind(&form)
	if err == nil {
		if _, err = h.finance.SaveFixedExpense(c.Request.Context(), id, form); err == nil {
			h.redirect(c, fixedExpensesPath+"?periodo="+form.Periodo, middleware.FlashSuccess, "Gasto actualizado")
			return
		}
	}
	h.renderForm(c, err, "gasto_form", h.fixedExpenseFormPage(c, id, form))
}

// DeleteFixedExpense removes an expense
func (h *FinanceHandler) DeleteFixedExpense(c *gin.Context) {
	back := backTo(c, fixedExpensesPath)
	if err := h.finance.DeleteFixedExpense(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, back)
		return
	}
	h.redirect(c, back, middleware.FlashSuccess, "Gasto eliminado")
}

// ExportFixedExpenses downloads the quincena as a workbook
func (h *FinanceHandler) ExportFixedExpenses(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := h.finance.FixedExpenses(ctx, c.Query("periodo"))
	if err != nil {
		h.fail(c, err, fixedExpensesPath)
		return
	}
	res, err := h.exports.FixedExpenses(ctx, list.Periodo, list.Items, list.Summary)
	if err != nil {
		h.fail(c, err, fixedExpensesPath+"?periodo="+list.Periodo.Key())
		return
	}
	h.sendExport(c, res)
}

func (h *FinanceHandler) fixedExpensesPage(c *gin.Context, periodo string, open bool) (*web.Page, error) {
	list, err := h.finance.FixedExpenses(c.Request.Context(), periodo)
	if err != nil {
		return nil, err
	}
	m := modal.New(fixedExpenseModalID, "Nuevo gasto fijo",
		"gasto-concepto", "gasto-categoria", "gasto-monto", "gasto-moneda", "gasto-notas", "gasto-cancel", "gasto-submit")
	if open {
		m.Show("gasto-new")
	}

	p := h.formPage(c, "Gastos fijos", "finanzas")
	p.Form = appfinance.FixedExpenseForm{Periodo: list.Periodo.Key(), Moneda: string(valueobject.DefaultCurrency)}
	p.Data = fixedExpensesData{
		List:       list,
		Prev:       list.Periodo.Prev(),
		Next:       list.Periodo.Next(),
		Categorias: finance.Categorias,
		Modal:      m,
	}
	return p, nil
}

func (h *FinanceHandler) fixedExpenseFormPage(c *gin.Context, id string, form appfinance.FixedExpenseForm) *web.Page {
	p := h.formPage(c, "Editar gasto fijo", "finanzas")
	p.Form = form
	p.Data = fixedExpenseFormData{ID: id, Categorias: finance.Categorias}
	return p
}

func fixedExpenseFormOf(e *finance.FixedExpense) appfinance.FixedExpenseForm {
	return appfinance.FixedExpenseForm{
		Periodo:   finance.Periodo{Anio: e.Anio, Mes: e.Mes, Quincena: e.Quincena}.Key(),
		Concepto:  e.Concepto,
		Categoria: string(e.Categoria),
		Monto:     valueobject.FormatMoney(e.Monto, e.Moneda, valueobject.StyleNone),
		Moneda:    string(e.Moneda),
		Notas:     e.Notas,
	}
}
