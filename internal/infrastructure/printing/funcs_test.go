package printing

import (
	"bytes"
	"html/template"
	"testing"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, text string, data any) string {
	t.Helper()
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	tmpl, err := template.New("t").Funcs(FuncMap(bogota)).Parse(text)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, data))
	return buf.String()
}

func TestFuncMap_Money(t *testing.T) {
	data := map[string]any{
		"Amount": decimal.RequireFromString("3000000.25"),
		"COP":    valueobject.COP,
		"USD":    "USD",
	}

	assert.Equal(t, "$ 3.000.000,25 COP", render(t, `{{money .Amount .COP}}`, data))
	assert.Equal(t, "$ 3,000,000.25", render(t, `{{money .Amount .USD}}`, data))
	assert.Equal(t, "3.000.000,25 COP", render(t, `{{moneyStyle .Amount .COP "code"}}`, data))
	assert.Equal(t, "3.000.000,25", render(t, `{{amount .Amount .COP}}`, data))
	assert.Equal(t, "$ 0,00 COP", render(t, `{{money .Missing "XYZ"}}`, data))
}

func TestFuncMap_Dates(t *testing.T) {
	// 02:00 UTC is still the previous day in Bogotá
	ts := time.Date(2025, 12, 16, 2, 0, 0, 0, time.UTC)
	data := map[string]any{"T": ts, "Nil": (*time.Time)(nil)}

	assert.Equal(t, "15/12/2025", render(t, `{{formatDate .T}}`, data))
	assert.Equal(t, "15 de diciembre de 2025", render(t, `{{formatDateLong .T}}`, data))
	assert.Equal(t, "15/12/2025 21:00", render(t, `{{formatDateTime .T}}`, data))
	assert.Equal(t, "2025-12-15", render(t, `{{inputDate .T}}`, data))
	assert.Equal(t, "", render(t, `{{formatDate .Nil}}`, data))
}

func TestFuncMap_Helpers(t *testing.T) {
	assert.Equal(t, "12,5 %", render(t, `{{formatPercent 12.5 1}}`, nil))
	assert.Equal(t, "María José", render(t, `{{title "MARÍA JOSÉ"}}`, nil))
	assert.Equal(t, "Lorem…", render(t, `{{truncate "Lorem ipsum" 6}}`, nil))
	assert.Equal(t, "123", render(t, `{{range seq 3}}{{.}}{{end}}`, nil))
	assert.Equal(t, "true", render(t, `{{in "b" .}}`, []string{"a", "b"}))
	assert.Equal(t, "n/a", render(t, `{{default .X "n/a"}}`, map[string]any{"X": ""}))
	assert.Equal(t, "x=1", render(t, `{{with dict "k" 1}}x={{.k}}{{end}}`, nil))
}

func TestMerge(t *testing.T) {
	base := template.FuncMap{"a": 1, "b": 2}
	out := Merge(base, template.FuncMap{"b": 3})
	assert.Equal(t, 3, out["b"])
	assert.Equal(t, 2, base["b"])
}
