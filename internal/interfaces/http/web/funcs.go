package web

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/printing"
)

var statusClasses = map[string]string{
	"ACTIVA": "ok", "ACTIVO": "ok", "FIRMADO": "ok", "APPROVED": "ok", "APROBADA": "ok", "APROBADO": "ok", "COMPLETADA": "ok",
	"PENDIENTE": "warn", "PENDING": "warn", "PENDIENTE_FIRMA": "warn", "EN_REVISION": "warn", "PLANIFICADA": "warn", "BORRADOR": "warn", "PAUSADA": "warn",
	"RECHAZADO": "bad", "RECHAZADA": "bad", "CANCELLED": "bad", "CANCELADA": "bad", "VENCIDA": "bad", "SUSPENDIDA": "bad",
	"PAID": "done", "PAGADO": "done", "CERRADO": "done", "FINALIZADA": "done", "TERMINADO": "done", "TERMINADA": "done", "INACTIVA": "done",
}

// FuncMap is the printing helpers plus the page-only ones
func FuncMap(loc *time.Location) template.FuncMap {
	return printing.Merge(printing.FuncMap(loc), template.FuncMap{
		"statusClass": statusClass,
		"pageURL":     pageURL,
		"withQuery":   withQuery,
		"selected":    func(a, b any) template.HTMLAttr { return boolAttr(fmt.Sprint(a) == fmt.Sprint(b), "selected") },
		"checked":     func(on bool) template.HTMLAttr { return boolAttr(on, "checked") },
		"checkedIn":   func(v, list any) template.HTMLAttr { return boolAttr(inList(v, list), "checked") },
		"currencies":  valueobject.Currencies,
	})
}

func statusClass(v any) string {
	if c, ok := statusClasses[strings.ToUpper(fmt.Sprint(v))]; ok {
		return "badge badge-" + c
	}
	return "badge"
}

// pageURL links to page n of a listing, keeping the other filters
func pageURL(base string, q url.Values, n int) string {
	out := url.Values{}
	for k, v := range q {
		out[k] = v
	}
	out.Set("page", strconv.Itoa(n))
	return base + "?" + out.Encode()
}

// withQuery appends the encoded filters to base
func withQuery(base string, q url.Values) string {
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}

func boolAttr(on bool, name string) template.HTMLAttr {
	if on {
		return template.HTMLAttr(name)
	}
	return ""
}

func inList(v, list any) bool {
	want := fmt.Sprint(v)
	switch l := list.(type) {
	case []string:
		for _, s := range l {
			if s == want {
				return true
			}
		}
	case []any:
		for _, s := range l {
			if fmt.Sprint(s) == want {
				return true
			}
		}
	}
	return false
}
