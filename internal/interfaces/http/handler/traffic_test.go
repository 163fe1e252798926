package handler

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/modelo"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/traffic"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTraffic(t *testing.T) (*testEnv, *MockTrafficGateway, *MockModeloGateway) {
	env := newTestEnv(t)
	gw := new(MockTrafficGateway)
	modelos := new(MockModeloGateway)
	bogota := time.FixedZone("COT", -5*3600)
	env.mount(NewTrafficHandler(env.base, gw, modelos, bogota).Routes())
	return env, gw, modelos
}

func validCampaign() url.Values {
	return url.Values{
		"modeloId":    {"m-1"},
		"nombre":      {"Reddit marzo"},
		"plataforma":  {"reddit"},
		"presupuesto": {"1.500,00"},
		"moneda":      {"USD"},
		"fechaInicio": {"2024-03-01"},
		"fechaFin":    {"2024-03-31"},
		"estado":      {"ACTIVA"},
	}
}

func TestTrafficHandler_List(t *testing.T) {
	env, gw, _ := setupTraffic(t)
	_, cookie := env.login()
	gw.On("List", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["estado"] == "ACTIVA"
	})).Return([]traffic.Campaign{{
		ID: "tc-1", Nombre: "Reddit marzo", ModeloNombre: "Laura Ríos", Plataforma: "REDDIT",
		Presupuesto: decimal.NewFromInt(1500), Moneda: valueobject.USD, Estado: traffic.EstadoActiva,
		FechaInicio: time.Now().Add(-24 * time.Hour),
	}}, nil)

	w := env.get(campaignsPath+"?estado=activa", cookie)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Reddit marzo")
	assert.Contains(t, body, "En curso")
}

func TestTrafficHandler_List_UnknownEstadoIgnored(t *testing.T) {
	env, gw, _ := setupTraffic(t)
	_, cookie := env.login()
	gw.On("List", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		_, ok := f.Filters["estado"]
		return !ok
	})).Return([]traffic.Campaign{}, nil)

	w := env.get(campaignsPath+"?estado=BORRADA", cookie)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No hay campañas.")
}

func TestTrafficHandler_Create(t *testing.T) {
	t.Run("dates are read in the configured zone", func(t *testing.T) {
		env, gw, _ := setupTraffic(t)
		_, cookie := env.login()
		gw.On("Create", mock.Anything, mock.MatchedBy(func(in traffic.Input) bool {
			_, offset := in.FechaInicio.Zone()
			return in.Plataforma == "REDDIT" && offset == -5*3600 &&
				in.Presupuesto.Equal(decimal.NewFromInt(1500)) && in.FechaFin != nil
		})).Return(&traffic.Campaign{ID: "tc-2"}, nil)

		w := env.post(campaignsPath, validCampaign(), cookie)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, campaignsPath, w.Header().Get("Location"))
		assert.Equal(t, "Campaña guardada", flashOf(t, w).Message)
	})

	t.Run("rejections re-render the form", func(t *testing.T) {
		tests := []struct {
			name    string
			field   string
			value   string
			message string
		}{
			{name: "platform", field: "plataforma", value: "MYSPACE", message: "Plataforma no soportada"},
			{name: "currency", field: "moneda", value: "BTC", message: "Moneda no soportada"},
			{name: "end before start", field: "fechaFin", value: "2024-02-01", message: "La fecha de fin debe ser posterior a la de inicio"},
			{name: "estado", field: "estado", value: "BORRADA", message: "Debe ser uno de: PLANIFICADA, ACTIVA"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				env, gw, modelos := setupTraffic(t)
				_, cookie := env.login()
				modelos.On("List", mock.Anything, mock.Anything).
					Return(shared.NewPaginated([]modelo.Modelo{{ID: "m-1", NombreCompleto: "Laura Ríos"}}, 1, 1, maxPageSize), nil)
				form := validCampaign()
				form.Set(tt.field, tt.value)

				w := env.post(campaignsPath, form, cookie)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				body := w.Body.String()
				assert.Contains(t, body, tt.message)
				assert.Contains(t, body, `value="Reddit marzo"`)
				gw.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestTrafficHandler_Edit(t *testing.T) {
	env, gw, modelos := setupTraffic(t)
	_, cookie := env.login()
	modelos.On("List", mock.Anything, mock.Anything).Return(shared.Paginated[modelo.Modelo]{}, nil)
	inicio := time.Date(2024, 3, 1, 5, 0, 0, 0, time.UTC)
	gw.On("Get", mock.Anything, "tc-1").Return(&traffic.Campaign{
		ID: "tc-1", Nombre: "Reddit marzo", Plataforma: "REDDIT",
		Presupuesto: decimal.NewFromInt(1500), Moneda: valueobject.USD,
		FechaInicio: inicio, Estado: traffic.EstadoPausada,
	}, nil)

	w := env.get(campaignsPath+"/tc-1/edit", cookie)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `value="2024-03-01"`)
	assert.Contains(t, body, `action="/trafico/campanas/tc-1/edit"`)
}
