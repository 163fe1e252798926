package handler

import (
	"net/http"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/application/dashboard"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// DashboardHandler renders the home page
type DashboardHandler struct {
	*BaseHandler
	overview *dashboard.OverviewService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(base *BaseHandler, overview *dashboard.OverviewService) *DashboardHandler {
	return &DashboardHandler{BaseHandler: base, overview: overview}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("dashboard", "/").GET("", h.Index)
}

// Index loads every dashboard widget before rendering; any failed part
// fails the whole page
func (h *DashboardHandler) Index(c *gin.Context) {
	ov, err := h.overview.Overview(c.Request.Context())
	if err != nil {
		h.failPage(c, err)
		return
	}
	p := h.page(c, "Inicio", "inicio")
	p.Data = ov
	h.render(c, http.StatusOK, "dashboard", p)
}
