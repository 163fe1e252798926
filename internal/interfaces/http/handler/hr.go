package handler

import (
	"fmt"
	"net/http"

	apphr "github.com/EstalynD/only-top-frontend-nest-sub005/internal/application/hr"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/hr"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/middleware"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/router"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web/modal"
	"github.com/gin-gonic/gin"
)

const (
	formOvertime   = "overtime"
	shiftsPath     = "/rrhh/turnos"
	attendancePath = "/rrhh/asistencia"
	overtimePath   = "/rrhh/horas-extra"
	defaultColor   = "#3b82f6"
)

// HRHandler serves employees, shifts, attendance settings and overtime approval
type HRHandler struct {
	*BaseHandler
	schedule *apphr.ScheduleService
	overtime *apphr.OvertimeService
}

// NewHRHandler creates a new HRHandler
func NewHRHandler(base *BaseHandler, schedule *apphr.ScheduleService, overtime *apphr.OvertimeService) *HRHandler {
	return &HRHandler{BaseHandler: base, schedule: schedule, overtime: overtime}
}

// ShiftForm is the shift form as submitted
type ShiftForm struct {
	Nombre     string   `form:"nombre" binding:"required,max=80"`
	HoraInicio string   `form:"horaInicio" binding:"required,datetime=15:04"`
	HoraFin    string   `form:"horaFin" binding:"required,datetime=15:04"`
	Dias       []string `form:"dias" binding:"required,min=1,max=7"`
	Color      string   `form:"color" binding:"omitempty,hexcolor"`
	Activo     bool     `form:"activo"`
}

func (f ShiftForm) input() hr.ShiftInput {
	return hr.ShiftInput{
		Nombre:     f.Nombre,
		HoraInicio: f.HoraInicio,
		HoraFin:    f.HoraFin,
		Dias:       f.Dias,
		Color:      f.Color,
		Activo:     f.Activo,
	}
}

// AttendanceForm is the attendance settings form as submitted
type AttendanceForm struct {
	ToleranciaMinutos         int     `form:"toleranciaMinutos" binding:"gte=0,lte=120"`
	HorasJornada              float64 `form:"horasJornada" binding:"gt=0,lte=24"`
	DescansoMinutos           int     `form:"descansoMinutos" binding:"gte=0"`
	RequiereGeolocalizacion   bool    `form:"requiereGeolocalizacion"`
	MarcacionAutomaticaSalida bool    `form:"marcacionAutomaticaSalida"`
}

type shiftFormData struct {
	Action   string
	ID       string
	Weekdays []string
}

type overtimeData struct {
	Requests []hr.OvertimeRequest
	Decide   *modal.Modal
}

// Routes returns the HR routes
func (h *HRHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("rrhh", "/rrhh")
	g.GET("/empleados", h.Employees)

	turnos := g.Group("turnos", "/turnos")
	turnos.GET("", h.Shifts)
	turnos.POST("", h.guard(shiftsPath), h.CreateShift)
	turnos.GET("/new", h.NewShift)
	turnos.Form("/:id/edit", h.EditShift, h.guard(shiftsPath), h.UpdateShift)
	turnos.POST("/:id/delete", h.guard(shiftsPath), h.DeleteShift)

	g.Form("/asistencia", h.Attendance, h.guard(attendancePath), h.UpdateAttendance)

	g.GET("/horas-extra", h.Overtime)
	g.POST("/horas-extra/decidir", h.DecideOvertime)
	return g
}

// Employees lists employees page by page
func (h *HRHandler) Employees(c *gin.Context) {
	filter := listFilter(c)
	if estado := c.Query("estado"); estado != "" {
		filter = filter.With("estado", estado)
	}
	page, err := h.schedule.Employees(c.Request.Context(), filter)
	if err != nil {
		h.failPage(c, err)
		return
	}
	p := h.page(c, "Empleados", "rrhh")
	p.Data = page
	h.render(c, http.StatusOK, "empleados", p)
}

// Shifts lists the work shifts ordered by start time
func (h *HRHandler) Shifts(c *gin.Context) {
	shifts, err := h.schedule.Shifts(c.Request.Context())
	if err != nil {
		h.failPage(c, err)
		return
	}
	p := h.formPage(c, "Turnos", "rrhh")
	p.Data = shifts
	h.render(c, http.StatusOK, "turnos", p)
}

// NewShift renders the empty shift form
func (h *HRHandler) NewShift(c *gin.Context) {
	form := ShiftForm{Color: defaultColor, Activo: true}
	h.render(c, http.StatusOK, "turno_form", h.shiftFormPage(c, "", form))
}

// CreateShift submits a new shift
func (h *HRHandler) CreateShift(c *gin.Context) {
	h.saveShift(c, "")
}

// EditShift renders the form of an existing shift. The backend has no
// single-shift read, so it is looked up in the listing.
func (h *HRHandler) EditShift(c *gin.Context) {
	id := c.Param("id")
	shifts, err := h.schedule.Shifts(c.Request.Context())
	if err != nil {
		h.failPage(c, err)
		return
	}
	for _, s := range shifts {
		if s.ID == id {
			form := ShiftForm{
				Nombre: s.Nombre, HoraInicio: s.HoraInicio, HoraFin: s.HoraFin,
				Dias: s.Dias, Color: s.Color, Activo: s.Activo,
			}
			h.render(c, http.StatusOK, "turno_form", h.shiftFormPage(c, id, form))
			return
		}
	}
	h.failPage(c, shared.ErrNotFound)
}

// UpdateShift submits the edit form
func (h *HRHandler) UpdateShift(c *gin.Context) {
	h.saveShift(c, c.Param("id"))
}

func (h *HRHandler) saveShift(c *gin.Context, id string) {
	var form ShiftForm
	err := c.ShouldBind(&form)
	if err == nil {
		if _, err = h.schedule.SaveShift(c.Request.Context(), id, form.input()); err == nil {
			msg := "Turno creado"
			if id != "" {
				msg = "Turno actualizado"
			}
			h.redirect(c, shiftsPath, middleware.FlashSuccess, msg)
			return
		}
	}
	h.renderForm(c, err, "turno_form", h.shiftFormPage(c, id, form))
}

// DeleteShift removes a shift
func (h *HRHandler) DeleteShift(c *gin.Context) {
	if err := h.schedule.DeleteShift(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, shiftsPath)
		return
	}
	h.redirect(c, shiftsPath, middleware.FlashSuccess, "Turno eliminado")
}

// Attendance renders the attendance settings form
func (h *HRHandler) Attendance(c *gin.Context) {
	cfg, err := h.schedule.AttendanceConfig(c.Request.Context())
	if err != nil {
		h.failPage(c, err)
		return
	}
	p := h.formPage(c, "Configuración de asistencia", "rrhh")
	p.Form = AttendanceForm{
		ToleranciaMinutos:         cfg.ToleranciaMinutos,
		HorasJornada:              cfg.HorasJornada,
		DescansoMinutos:           cfg.DescansoMinutos,
		RequiereGeolocalizacion:   cfg.RequiereGeolocalizacion,
		MarcacionAutomaticaSalida: cfg.MarcacionAutomaticaSalida,
	}
	p.Data = cfg
	h.render(c, http.StatusOK, "asistencia", p)
}

// UpdateAttendance saves the attendance settings
func (h *HRHandler) UpdateAttendance(c *gin.Context) {
	var form AttendanceForm
	err := c.ShouldBind(&form)
	if err == nil {
		_, err = h.schedule.UpdateAttendanceConfig(c.Request.Context(), hr.AttendanceConfig{
			ToleranciaMinutos:         form.ToleranciaMinutos,
			HorasJornada:              form.HorasJornada,
			DescansoMinutos:           form.DescansoMinutos,
			RequiereGeolocalizacion:   form.RequiereGeolocalizacion,
			MarcacionAutomaticaSalida: form.MarcacionAutomaticaSalida,
		})
		if err == nil {
			h.redirect(c, attendancePath, middleware.FlashSuccess, "Configuración guardada")
			return
		}
	}
	p := h.formPage(c, "Configuración de asistencia", "rrhh")
	p.Form = form
	p.Data = &hr.AttendanceConfig{}
	h.renderForm(c, err, "asistencia", p)
}

// Overtime lists the requests awaiting a decision
func (h *HRHandler) Overtime(c *gin.Context) {
	requests, err := h.overtime.Pending(c.Request.Context())
	if err != nil {
		h.failPage(c, err)
		return
	}
	m := modal.New("overtime-modal", "Decidir horas extra", "ot-comment", "ot-approve", "ot-reject", "ot-cancel")
	m.FormToken = h.issueFormToken(c, formOvertime)

	p := h.page(c, "Horas extra pendientes", "rrhh")
	p.Data = overtimeData{Requests: requests, Decide: m}
	h.render(c, http.StatusOK, "horas_extra", p)
}

// DecideOvertime approves or rejects the checked requests in one batch
func (h *HRHandler) DecideOvertime(c *gin.Context) {
	ids := postedIDs(c, "ids")
	if len(ids) == 0 {
		h.fail(c, shared.ErrEmptySelection, overtimePath)
		return
	}
	if err := h.consumeFormToken(c, formOvertime); err != nil {
		h.fail(c, err, overtimePath)
		return
	}
	approve := c.PostForm("decision") == "approve"
	res, err := h.overtime.Decide(c.Request.Context(), ids, approve, c.PostForm("comentario"))
	if err != nil {
		h.fail(c, err, overtimePath)
		return
	}

	verb := "aprobadas"
	if !approve {
		verb = "rechazadas"
	}
	msg := fmt.Sprintf("%d solicitudes %s", res.Procesadas, verb)
	kind := middleware.FlashSuccess
	if len(res.Fallidas) > 0 {
		msg += fmt.Sprintf(", %d no se pudieron procesar", len(res.Fallidas))
		kind = middleware.FlashInfo
	}
	h.redirect(c, overtimePath, kind, msg)
}

func (h *HRHandler) shiftFormPage(c *gin.Context, id string, form ShiftForm) *web.Page {
	title, action := "Nuevo turno", shiftsPath
	if id != "" {
		title, action = "Editar turno", shiftsPath+"/"+id+"/edit"
	}
	p := h.formPage(c, title, "rrhh")
	p.Form = form
	p.Data = shiftFormData{Action: action, ID: id, Weekdays: hr.Weekdays}
	return p
}
