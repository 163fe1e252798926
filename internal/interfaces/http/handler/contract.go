package handler

import (
	"net/http"
	"strconv"

	appcontract "github.com/EstalynD/only-top-frontend-nest-sub005/internal/application/contract"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/contract"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/modelo"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/middleware"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/router"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web/dropdown"
	"github.com/gin-gonic/gin"
)

var contractEstados = []contract.Estado{
	contract.EstadoBorrador, contract.EstadoPendienteFirma, contract.EstadoFirmado,
	contract.EstadoRechazado, contract.EstadoTerminado,
}

// ContractHandler serves the modelo contract pages
type ContractHandler struct {
	*BaseHandler
	contracts *appcontract.ContractService
	modelos   modelo.Gateway
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(base *BaseHandler, contracts *appcontract.ContractService, modelos modelo.Gateway) *ContractHandler {
	return &ContractHandler{BaseHandler: base, contracts: contracts, modelos: modelos}
}

type contractListData struct {
	Page    shared.Paginated[contract.Contract]
	Estados []contract.Estado
}

const contractsPath = "/contratos"

type contractFormData struct {
	Modelos []dropdown.Option
}

// Routes returns the contract routes
func (h *ContractHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("contratos", "/contratos")
	g.GET("", h.List)
	g.POST("", h.guard(contractsPath), h.Create)
	g.GET("/new", h.New)
	g.GET("/:id", h.Show)
	g.POST("/:id/estado", h.guard(contractsPath), h.ChangeStatus)
	g.GET("/:id/pdf", h.Document)
	return g
}

// List shows contracts filtered by estado and search text
func (h *ContractHandler) List(c *gin.Context) {
	filter := listFilter(c).With("estado", c.Query("estado")).With("modeloId", c.Query("modeloId"))
	page, err := h.contracts.List(c.Request.Context(), filter)
	if err != nil {
		h.failPage(c, err)
		return
	}
	p := h.page(c, "Contratos", "contratos")
	p.Data = contractListData{Page: page, Estados: contractEstados}
	h.render(c, http.StatusOK, "contratos", p)
}

// Show renders a contract and the transitions it allows
func (h *ContractHandler) Show(c *gin.Context) {
	k, err := h.contracts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.failPage(c, err)
		return
	}
	p := h.formPage(c, "Contrato "+k.NumeroContrato, "contratos")
	p.Data = k
	h.render(c, http.StatusOK, "contrato", p)
}

// New renders the contract form, optionally preselecting a modelo
func (h *ContractHandler) New(c *gin.Context) {
	form := appcontract.ContractForm{
		ModeloID:         c.Query("modeloId"),
		PeriodicidadPago: string(contract.PeriodicidadQuincenal),
		TipoComision:     string(contract.TipoComisionFijo),
	}
	p, err := h.contractFormPage(c, form)
	if err != nil {
		h.failPage(c, err)
		return
	}
	h.render(c, http.StatusOK, "contrato_form", p)
}

// Create submits a new contract
func (h *ContractHandler) Create(c *gin.Context) {
	var form appcontract.ContractForm
	err := c.ShouldBind(&form)
	if err == nil {
		var k *contract.Contract
		if k, err = h.contracts.Create(c.Request.Context(), form); err == nil {
			h.redirect(c, "/contratos/"+k.ID, middleware.FlashSuccess, "Contrato "+k.NumeroContrato+" creado")
			return
		}
	}
	p, perr := h.contractFormPage(c, form)
	if perr != nil {
		h.failPage(c, perr)
		return
	}
	h.renderForm(c, err, "contrato_form", p)
}

// ChangeStatus moves the contract to the posted estado
func (h *ContractHandler) ChangeStatus(c *gin.Context) {
	id := c.Param("id")
	back := "/contratos/" + id
	estado := contract.Estado(c.PostForm("estado"))
	if !estado.IsValid() {
		h.redirect(c, back, middleware.FlashError, "Estado de contrato inválido")
		return
	}
	if _, err := h.contracts.ChangeStatus(c.Request.Context(), id, estado, c.PostForm("motivo")); err != nil {
		h.fail(c, err, back)
		return
	}
	h.redirect(c, back, middleware.FlashSuccess, "Contrato "+estado.DisplayName())
}

// Document downloads the printable contract
func (h *ContractHandler) Document(c *gin.Context) {
	doc, err := h.contracts.Render(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.failPage(c, err)
		return
	}
	attachment(c, doc.Filename, c.Query("inline") == "1")
	c.Header("Content-Length", strconv.Itoa(len(doc.Data)))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

func (h *ContractHandler) contractFormPage(c *gin.Context, form appcontract.ContractForm) (*web.Page, error) {
	opts, err := modeloOptions(c, h.modelos)
	if err != nil {
		return nil, err
	}
	p := h.formPage(c, "Nuevo contrato", "contratos")
	p.Form = form
	p.Data = contractFormData{Modelos: opts}
	return p, nil
}
