package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "/", r.prefix)
	assert.Empty(t, r.registrars)
}

func TestRouterRegister(t *testing.T) {
	r := NewRouter(gin.New())
	r.Register(NewDomainGroup("ventas", "/ventas"), NewDomainGroup("rrhh", "/rrhh"))

	assert.Len(t, r.registrars, 2)
}

func TestRouterSetup_RootMount(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("finanzas", "/finanzas")
	group.GET("/periodos", func(c *gin.Context) {
		c.String(http.StatusOK, "periodos")
	})

	NewRouter(engine).Register(group).Setup()

	w := serve(engine, http.MethodGet, "/finanzas/periodos")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "periodos", w.Body.String())
}

func TestRouterSetup_PrefixAndMiddleware(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("options", "/options")
	group.GET("/:source", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("guard")+":"+c.Param("source"))
	})

	NewRouter(engine,
		WithPrefix("/ui"),
		WithMiddleware(func(c *gin.Context) {
			c.Set("guard", "checked")
			c.Next()
		}),
	).Register(group).Setup()

	w := serve(engine, http.MethodGet, "/ui/options/modelos")
	assert.Equal(t, "checked:modelos", w.Body.String())
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/options/modelos").Code)
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("contratos", "/contratos")
		assert.Equal(t, "contratos", g.Name())
		assert.Equal(t, "/contratos", g.Prefix())
	})

	t.Run("form pairs page and submit", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("metas", "/metas")
		method := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
		guard := func(c *gin.Context) {
			c.Header("X-Guard", "1")
			c.Next()
		}
		g.Form("/:id/edit", method, guard, method)
		g.RegisterRoutes(&engine.RouterGroup)

		w := serve(engine, http.MethodGet, "/metas/42/edit")
		assert.Equal(t, "GET", w.Body.String())
		assert.Empty(t, w.Header().Get("X-Guard"))

		w = serve(engine, http.MethodPost, "/metas/42/edit")
		assert.Equal(t, "POST", w.Body.String())
		assert.Equal(t, "1", w.Header().Get("X-Guard"))

		assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodPut, "/metas/42/edit").Code)
	})

	t.Run("applies group middleware to subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("rrhh", "/rrhh").Use(func(c *gin.Context) {
			c.Header("X-Area", "rrhh")
			c.Next()
		})
		g.Group("turnos", "/turnos").GET("", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		g.RegisterRoutes(&engine.RouterGroup)

		w := serve(engine, http.MethodGet, "/rrhh/turnos")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "rrhh", w.Header().Get("X-Area"))
	})
}
