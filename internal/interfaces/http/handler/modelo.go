package handler

import (
	"net/http"
	"strings"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/modelo"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/middleware"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/router"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// billingCurrency is the currency modelo billing averages are reported in
const billingCurrency = valueobject.USD

const modelosPath = "/modelos"

// ModeloHandler serves the modelo CRUD pages. There is no orchestration
// here, so it talks to the gateway directly.
type ModeloHandler struct {
	*BaseHandler
	modelos modelo.Gateway
}

// NewModeloHandler creates a new ModeloHandler
func NewModeloHandler(base *BaseHandler, modelos modelo.Gateway) *ModeloHandler {
	return &ModeloHandler{BaseHandler: base, modelos: modelos}
}

// ModeloForm is the modelo form as submitted
type ModeloForm struct {
	NombreCompleto       string   `form:"nombreCompleto" binding:"required,max=160"`
	NumeroIdentificacion string   `form:"numeroIdentificacion" binding:"required,max=40"`
	TipoDocumento        string   `form:"tipoDocumento" binding:"max=20"`
	CorreoElectronico    string   `form:"correoElectronico" binding:"required,email"`
	Telefono             string   `form:"telefono" binding:"max=40"`
	PaisResidencia       string   `form:"paisResidencia" binding:"max=80"`
	CiudadResidencia     string   `form:"ciudadResidencia" binding:"max=80"`
	Plataformas          []string `form:"plataformas"`
	PromedioFacturacion  string   `form:"promedioFacturacionMensual"`
	Estado               string   `form:"estado" binding:"required,oneof=ACTIVA INACTIVA SUSPENDIDA TERMINADA"`
}

func (f ModeloForm) input() (modelo.Input, error) {
	in := modelo.Input{
		NombreCompleto:       strings.TrimSpace(f.NombreCompleto),
		NumeroIdentificacion: strings.TrimSpace(f.NumeroIdentificacion),
		TipoDocumento:        f.TipoDocumento,
		CorreoElectronico:    strings.TrimSpace(f.CorreoElectronico),
		Telefono:             strings.TrimSpace(f.Telefono),
		PaisResidencia:       f.PaisResidencia,
		CiudadResidencia:     f.CiudadResidencia,
		Plataformas:          f.Plataformas,
		Estado:               modelo.Estado(f.Estado),
	}
	if strings.TrimSpace(f.PromedioFacturacion) != "" {
		amount, err := valueobject.ParseMoney(f.PromedioFacturacion, billingCurrency)
		if err != nil {
			return modelo.Input{}, shared.NewDomainError("INVALID_INPUT", "Promedio de facturación inválido")
		}
		in.PromedioFacturacionMensual = amount
	} else {
		in.PromedioFacturacionMensual = decimal.Zero
	}
	return in, nil
}

func modeloFormOf(m *modelo.Modelo) ModeloForm {
	return ModeloForm{
		NombreCompleto:       m.NombreCompleto,
		NumeroIdentificacion: m.NumeroIdentificacion,
		TipoDocumento:        m.TipoDocumento,
		CorreoElectronico:    m.CorreoElectronico,
		Telefono:             m.Telefono,
		PaisResidencia:       m.PaisResidencia,
		CiudadResidencia:     m.CiudadResidencia,
		Plataformas:          m.Plataformas,
		PromedioFacturacion:  valueobject.FormatMoney(m.PromedioFacturacionMensual, billingCurrency, valueobject.StyleNone),
		Estado:               string(m.Estado),
	}
}

type modeloListData struct {
	Page    shared.Paginated[modelo.Modelo]
	Estados []modelo.Estado
}

type modeloFormData struct {
	Action      string
	ID          string
	Estados     []modelo.Estado
	Plataformas []string
}

// Routes returns the modelo routes
func (h *ModeloHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("modelos", "/modelos")
	g.GET("", h.List)
	g.POST("", h.guard(modelosPath), h.Create)
	g.GET("/new", h.New)
	g.GET("/:id", h.Show)
	g.Form("/:id/edit", h.Edit, h.guard(modelosPath), h.Update)
	g.POST("/:id/delete", h.guard(modelosPath), h.Delete)
	return g
}

// List shows modelos filtered by search text and estado
func (h *ModeloHandler) List(c *gin.Context) {
	filter := listFilter(c).With("estado", c.Query("estado"))
	page, err := h.modelos.List(c.Request.Context(), filter)
	if err != nil {
		h.failPage(c, err)
		return
	}
	p := h.page(c, "Modelos", "modelos")
	p.Data = modeloListData{Page: page, Estados: modelo.Estados}
	h.render(c, http.StatusOK, "modelos", p)
}

// Show renders one modelo
func (h *ModeloHandler) Show(c *gin.Context) {
	m, err := h.modelos.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.failPage(c, err)
		return
	}
	p := h.formPage(c, m.NombreCompleto, "modelos")
	p.Data = m
	h.render(c, http.StatusOK, "modelo", p)
}

// New renders an empty modelo form
func (h *ModeloHandler) New(c *gin.Context) {
	h.renderModeloForm(c, http.StatusOK, "", ModeloForm{Estado: string(modelo.EstadoActiva)})
}

// Create submits a new modelo
func (h *ModeloHandler) Create(c *gin.Context) {
	form, in, err := h.bindModelo(c)
	if err == nil {
		var m *modelo.Modelo
		if m, err = h.modelos.Create(c.Request.Context(), in); err == nil {
			h.redirect(c, "/modelos/"+m.ID, middleware.FlashSuccess, "Modelo registrada")
			return
		}
	}
	h.renderForm(c, err, "modelo_form", h.modeloFormPage(c, "", form))
}

// Edit renders the form for an existing modelo
func (h *ModeloHandler) Edit(c *gin.Context) {
	id := c.Param("id")
	m, err := h.modelos.Get(c.Request.Context(), id)
	if err != nil {
		h.failPage(c, err)
		return
	}
	h.renderModeloForm(c, http.StatusOK, id, modeloFormOf(m))
}

// Update submits changes to a modelo
func (h *ModeloHandler) Update(c *gin.Context) {
	id := c.Param("id")
	form, in, err := h.bindModelo(c)
	if err == nil {
		if _, err = h.modelos.Update(c.Request.Context(), id, in); err == nil {
			h.redirect(c, "/modelos/"+id, middleware.FlashSuccess, "Modelo actualizada")
			return
		}
	}
	h.renderForm(c, err, "modelo_form", h.modeloFormPage(c, id, form))
}

// Delete removes a modelo
func (h *ModeloHandler) Delete(c *gin.Context) {
	if err := h.modelos.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "/modelos/"+c.Param("id"))
		return
	}
	h.redirect(c, modelosPath, middleware.FlashSuccess, "Modelo eliminada")
}

func (h *ModeloHandler) bindModelo(c *gin.Context) (ModeloForm, modelo.Input, error) {
	var form ModeloForm
	if err := c.ShouldBind(&form); err != nil {
		return form, modelo.Input{}, err
	}
	in, err := form.input()
	return form, in, err
}

func (h *ModeloHandler) renderModeloForm(c *gin.Context, status int, id string, form ModeloForm) {
	h.render(c, status, "modelo_form", h.modeloFormPage(c, id, form))
}

func (h *ModeloHandler) modeloFormPage(c *gin.Context, id string, form ModeloForm) *web.Page {
	title, action := "Nueva modelo", "/modelos"
	if id != "" {
		title, action = "Editar modelo", "/modelos/"+id+"/edit"
	}
	p := h.formPage(c, title, "modelos")
	p.Form = form
	p.Data = modeloFormData{Action: action, ID: id, Estados: modelo.Estados, Plataformas: modelo.Plataformas}
	return p
}
