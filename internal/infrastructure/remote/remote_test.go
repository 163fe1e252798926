package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/contract"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/finance"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/hr"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/identity"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/modelo"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/sales"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   map[string]any
}

// fakeBackend answers with canned bodies and records every request.
type fakeBackend struct {
	mu       sync.Mutex
	requests []recorded
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
}

func newFakeBackend(t *testing.T) (*fakeBackend, *apiclient.Client) {
	t.Helper()
	fb := &fakeBackend{routes: map[string]func(w http.ResponseWriter, r *http.Request){}}
	srv := httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(srv.Close)
	client, err := apiclient.New(apiclient.Config{BaseURL: srv.URL}, apiclient.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return fb, client
}

func (fb *fakeBackend) handle(method, path string, status int, body string) {
	fb.routes[method+" "+path] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	rec := recorded{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Auth: r.Header.Get("Authorization")}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &rec.Body)
	}
	fb.mu.Lock()
	fb.requests = append(fb.requests, rec)
	route, ok := fb.routes[r.Method+" "+r.URL.Path]
	fb.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Cannot `+r.Method+` `+r.URL.Path+`"}`)
		return
	}
	route(w, r)
}

func (fb *fakeBackend) calls() []recorded {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]recorded(nil), fb.requests...)
}

func authed() context.Context {
	return apiclient.WithToken(context.Background(), "jwt")
}

func TestAuthGateway_Login(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.handle(http.MethodPost, "/auth/login", http.StatusOK,
		`{"access_token":"abc","user":{"_id":"u1","username":"ana","roles":["ADMIN"]}}`)

	res, err := NewAuthGateway(client).Login(context.Background(), identity.Credentials{Username: "ana", Password: "x", RememberMe: true})
	require.NoError(t, err)

	assert.Equal(t, "abc", res.Token)
	require.NotNil(t, res.User)
	assert.Equal(t, "u1", res.User.ID)
	assert.True(t, res.User.HasRole("ADMIN"))

	calls := fb.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "ana", calls[0].Body["username"])
	assert.NotContains(t, calls[0].Body, "RememberMe")
	assert.Empty(t, calls[0].Auth)
}

func TestAuthGateway_LoginEnvelopedToken(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.handle(http.MethodPost, "/auth/login", http.StatusOK, `{"success":true,"data":{"token":"t2"}}`)

	res, err := NewAuthGateway(client).Login(context.Background(), identity.Credentials{Username: "a", Password: "b"})
	require.NoError(t, err)
	assert.Equal(t, "t2", res.Token)
	assert.Nil(t, res.User)
}

func TestAuthGateway_LoginRejected(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.handle(http.MethodPost, "/auth/login", http.StatusUnauthorized, `{"message":"Credenciales inválidas"}`)

	_, err := NewAuthGateway(client).Login(context.Background(), identity.Credentials{Username: "a", Password: "b"})
	require.Error(t, err)
	assert.Equal(t, "Credenciales inválidas", err.Error())
	assert.True(t, apiclient.IsUnauthorized(err))
}

func TestAuthGateway_Me(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.handle(http.MethodGet, "/auth/me", http.StatusOK, `{"user":{"id":"u9","username":"root","fullName":"Root Admin"}}`)

	user, err := NewAuthGateway(client).Me(authed())
	require.NoError(t, err)
	assert.Equal(t, "u9", user.ID)
	assert.Equal(t, "Root Admin", user.Name())
	assert.Equal(t, "Bearer jwt", fb.calls()[0].Auth)
}

func TestModeloGateway_List(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.handle(http.MethodGet, "/api/rrhh/modelos", http.StatusOK,
		`{"success":true,"data":[{"_id":"m1","nombreCompleto":"Ana","estado":"ACTIVA","promedioFacturacionMensual":"1500.50"}],"meta":{"total":41}}`)

	filter := shared.DefaultFilter().With("estado", "ACTIVA")
	filter.Search = "an"
	page, err := NewModeloGateway(client).List(authed(), filter)
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, modelo.EstadoActiva, page.Items[0].Estado)
	assert.Equal(t, "1500.5", page.Items[0].PromedioFacturacionMensual.String())
	assert.Equal(t, int64(41), page.Total)
	assert.Equal(t, 3, page.TotalPages)

	q := fb.calls()[0].Query
	assert.Contains(t, q, "estado=ACTIVA")
	assert.Contains(t, q, "search=an")
}

func TestModeloGateway_GetNotFound(t *testing.T) {
	_, client := newFakeBackend(t)

	_, err := NewModeloGateway(client).Get(authed(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Contains(t, err.Error(), "Cannot GET")
}

func TestModeloGateway_BlankID(t *testing.T) {
	fb, client := newFakeBackend(t)
	err := NewModeloGateway(client).Delete(authed(), " ")
	assert.Error(t, err)
	assert.Empty(t, fb.calls())
}

func TestContractGateway_ChangeStatus(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.handle(http.MethodPatch, "/api/contratos-modelo/c1/estado", http.StatusOK, `{"_id":"c1","estado":"FIRMADO"}`)

	c, err := NewContractGateway(client).ChangeStatus(authed(), "c1", contract.EstadoFirmado, "ok")
	require.NoError(t, err)
	assert.Equal(t, contract.EstadoFirmado, c.Estado)

	body := fb.calls()[0].Body
	assert.Equal(t, "FIRMADO", body["estado"])
	assert.Equal(t, "ok", body["motivo"])
}

func TestContractGateway_ChangeStatusUnknown(t *testing.T) {
	fb, client := newFakeBackend(t)
	_, err := NewContractGateway(client).ChangeStatus(authed(), "c1", contract.Estado("X"), "")
	assert.Error(t, err)
	assert.Empty(t, fb.calls())
}

func TestFinanceGateway_FixedExpenses(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.handle(http.MethodGet, "/api/finanzas/gastos-fijos", http.StatusOK,
		`[{"_id":"g1","concepto":"Arriendo","categoria":"ADMINISTRATIVOS","monto":2500000,"moneda":"COP"}]`)
	fb.handle(http.MethodGet, "/api/finanzas/gastos-fijos/resumen", http.StatusOK,
		`{"data":{"total":2500000,"moneda":"COP","porCategoria":[{"categoria":"ADMINISTRATIVOS","total":2500000,"cantidad":1}],"totalGastos":1}}`)

	g := NewFinanceGateway(client)
	p := finance.Periodo{Anio: 2025, Mes: 12, Quincena: finance.QuincenaSegunda}

	items, err := g.ListFixedExpenses(authed(), p)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "$ 2.500.000,00 COP", items[0].Money().String())

	summary, err := g.FixedExpenseSummary(authed(), p)
	require.NoError(t, err)
	assert.Equal(t, p, summary.Periodo)
	assert.Equal(t, 1, summary.TotalGastos)

	assert.Equal(t, "anio=2025&mes=12&quincena=SEGUNDA_QUINCENA", fb.calls()[0].Query)
}

func TestFinanceGateway_InvalidPeriodo(t *testing.T) {
	fb, client := newFakeBackend(t)
	_, err := NewFinanceGateway(client).ListFixedExpenses(authed(), finance.Periodo{Anio: 2025, Mes: 13, Quincena: finance.QuincenaPrimera})
	assert.Error(t, err)
	assert.Empty(t, fb.calls())
}

func TestFinanceGateway_Consolidate(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.handle(http.MethodPost, "/api/finanzas/periodos/p1/consolidar", http.StatusConflict, `{"message":"El periodo ya está cerrado"}`)

	_, err := NewFinanceGateway(client).ConsolidatePeriod(authed(), "p1")
	require.Error(t, err)
	assert.Equal(t, "El periodo ya está cerrado", err.Error())
	assert.Equal(t, http.StatusConflict, apiclient.StatusOf(err))
}

func TestSalesGateway_ApproveIsOneRequest(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.handle(http.MethodPost, "/api/chatter/sales/commissions/approve", http.StatusOK, `{"modifiedCount":3}`)

	n, err := NewSalesGateway(client).ApproveCommissions(authed(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	calls := fb.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []any{"a", "b", "c"}, calls[0].Body["commissionIds"])
}

func TestSalesGateway_EmptyBatch(t *testing.T) {
	fb, client := newFakeBackend(t)
	_, err := NewSalesGateway(client).PayCommissions(authed(), nil)
	assert.ErrorIs(t, err, shared.ErrEmptySelection)
	assert.Empty(t, fb.calls())
}

func TestSalesGateway_CommissionFilter(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.handle(http.MethodGet, "/api/chatter/sales/commissions", http.StatusOK, `{"items":[],"total":0}`)

	from := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	_, err := NewSalesGateway(client).ListCommissions(authed(), sales.CommissionFilter{
		FechaInicio: &from,
		FechaFin:    &to,
		Estado:      sales.CommissionPending,
	})
	require.NoError(t, err)
	assert.Equal(t, "estado=PENDING&fechaFin=2025-12-15&fechaInicio=2025-12-01", fb.calls()[0].Query)
}

func TestSalesGateway_GenerateRejectsInvertedRange(t *testing.T) {
	fb, client := newFakeBackend(t)
	now := time.Now()
	_, err := NewSalesGateway(client).GenerateCommissions(authed(), sales.GenerateRequest{FechaInicio: now, FechaFin: now.Add(-time.Hour)})
	assert.Error(t, err)
	assert.Empty(t, fb.calls())
}

func TestSalesGateway_GenerateSendsDays(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.handle(http.MethodPost, "/api/chatter/sales/commissions/generate", http.StatusCreated, `{"comisiones":[{"_id":"c1"},{"_id":"c2"}]}`)

	bogota := time.FixedZone("COT", -5*60*60)
	res, err := NewSalesGateway(client).GenerateCommissions(authed(), sales.GenerateRequest{
		FechaInicio: time.Date(2026, 10, 1, 0, 0, 0, 0, bogota),
		FechaFin:    time.Date(2026, 10, 15, 0, 0, 0, 0, bogota),
		ModeloID:    "m-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Generadas)

	calls := fb.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]any{
		"fechaInicio": "2026-10-01",
		"fechaFin":    "2026-10-15",
		"modeloId":    "m-1",
	}, calls[0].Body)
}

func TestHRGateway_DecideOvertime(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.handle(http.MethodPost, "/api/rrhh/horas-extra/aprobar-lote", http.StatusOK, `{"procesadas":2}`)

	d, err := hr.NewOvertimeDecision([]string{"h1", "h2", "h1"}, true, "")
	require.NoError(t, err)

	res, err := NewHRGateway(client).DecideOvertime(authed(), d)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Procesadas)

	calls := fb.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []any{"h1", "h2"}, calls[0].Body["ids"])
	assert.Equal(t, "APROBADA", calls[0].Body["estado"])
}

func TestHRGateway_DecideOvertimeFailureIsSurfaced(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.handle(http.MethodPost, "/api/rrhh/horas-extra/aprobar-lote", http.StatusUnprocessableEntity, `{"message":"Solicitud h2 ya procesada"}`)

	_, err := NewHRGateway(client).DecideOvertime(authed(), hr.OvertimeDecision{IDs: []string{"h1", "h2"}, Estado: hr.OvertimeAprobada})
	require.Error(t, err)
	assert.Equal(t, "Solicitud h2 ya procesada", err.Error())
	assert.Len(t, fb.calls(), 1)
}

func TestHRGateway_PendingOvertime(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.handle(http.MethodGet, "/api/rrhh/horas-extra", http.StatusOK, `[{"_id":"h1","horas":"2.5","tipo":"NOCTURNA","estado":"PENDIENTE"}]`)

	items, err := NewHRGateway(client).ListPendingOvertime(authed())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, hr.OvertimeNocturna, items[0].Tipo)
	assert.Equal(t, "estado=PENDIENTE", fb.calls()[0].Query)
}

func TestTrafficGateway_CRUD(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.handle(http.MethodGet, "/api/traffic/campaigns", http.StatusOK, `{"data":[{"_id":"k1","nombre":"Reddit diciembre","estado":"ACTIVA"}]}`)
	fb.handle(http.MethodDelete, "/api/traffic/campaigns/k1", http.StatusNoContent, ``)

	g := NewTrafficGateway(client)
	items, err := g.List(authed(), shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Reddit diciembre", items[0].Nombre)

	require.NoError(t, g.Delete(authed(), "k1"))
}
