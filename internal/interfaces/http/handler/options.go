package handler

import (
	"strconv"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/finance"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/hr"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/modelo"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/traffic"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/dto"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/router"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web/dropdown"
	"github.com/gin-gonic/gin"
)

const (
	defaultOptionLimit = 20
	maxOptionLimit     = 50
)

// OptionsHandler feeds the searchable dropdowns
type OptionsHandler struct {
	*BaseHandler
	modelos   modelo.Gateway
	employees hr.Gateway
}

// NewOptionsHandler creates a new OptionsHandler
func NewOptionsHandler(base *BaseHandler, modelos modelo.Gateway, employees hr.Gateway) *OptionsHandler {
	return &OptionsHandler{BaseHandler: base, modelos: modelos, employees: employees}
}

// Routes are mounted below /ui
func (h *OptionsHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("options", "/options").GET("/:source", h.Options)
}

// Options answers GET /ui/options/:source?q=&limit= with the best matches
func (h *OptionsHandler) Options(c *gin.Context) {
	limit := defaultOptionLimit
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		limit = min(n, maxOptionLimit)
	}

	var (
		all []dropdown.Option
		err error
	)
	switch source := c.Param("source"); source {
	case "modelos":
		all, err = modeloOptions(c, h.modelos)
	case "empleados":
		all, err = h.employeeOptions(c)
	case "categorias":
		all = dropdown.New(finance.Categorias, func(k finance.ExpenseCategoria) dropdown.Option {
			return dropdown.Option{Value: string(k), Label: titleLabel(string(k))}
		}).Options()
	case "monedas":
		all = currencyOptions()
	case "plataformas":
		all = dropdown.New(traffic.Plataformas, func(p string) dropdown.Option {
			return dropdown.Option{Value: p, Label: titleLabel(p)}
		}).Options()
	default:
		h.NotFound(c, "Origen de opciones desconocido: "+source)
		return
	}
	if err != nil {
		h.failJSON(c, err)
		return
	}

	q := c.Query("q")
	matches := dropdown.New(all, func(o dropdown.Option) dropdown.Option { return o }).Filter(q, limit)
	h.SuccessWithMeta(c, matches, dto.Meta{Total: len(all), Returned: len(matches), Query: q})
}

func (h *OptionsHandler) employeeOptions(c *gin.Context) ([]dropdown.Option, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = maxPageSize
	page, err := h.employees.ListEmployees(c.Request.Context(), filter.With("estado", "ACTIVO"))
	if err != nil {
		return nil, err
	}
	return dropdown.New(page.Items, func(e hr.Employee) dropdown.Option {
		return dropdown.Option{Value: e.ID, Label: e.FullName(), Hint: e.Cargo}
	}).Options(), nil
}

// modeloOptions lists active modelos for selects. The search text is never
// forwarded: the backend matches substrings only, so ranking is left to the
// dropdown.
func modeloOptions(c *gin.Context, modelos modelo.Gateway) ([]dropdown.Option, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = maxPageSize
	page, err := modelos.List(c.Request.Context(), filter.With("estado", string(modelo.EstadoActiva)))
	if err != nil {
		return nil, err
	}
	return dropdown.New(page.Items, func(m modelo.Modelo) dropdown.Option {
		return dropdown.Option{Value: m.ID, Label: m.NombreCompleto, Hint: m.NumeroIdentificacion}
	}).Options(), nil
}

func currencyOptions() []dropdown.Option {
	return dropdown.New(valueobject.Currencies(), func(f valueobject.CurrencyFormat) dropdown.Option {
		return dropdown.Option{Value: string(f.Code), Label: f.Name, Hint: f.Symbol}
	}).Options()
}
