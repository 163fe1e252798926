package handler

import (
	"strconv"
	"strings"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxPageSize = 100

// listFilter reads page, limit and q from the query string
func listFilter(c *gin.Context) shared.Filter {
	f := shared.DefaultFilter()
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		f.Page = page
	}
	if size, err := strconv.Atoi(c.Query("limit")); err == nil && size > 0 {
		f.PageSize = min(size, maxPageSize)
	}
	f.Search = strings.TrimSpace(c.Query("q"))
	return f
}

// postedIDs collects the checked ids of a batch form. Both repeated fields
// and a comma separated value are accepted.
func postedIDs(c *gin.Context, field string) []string {
	var ids []string
	for _, v := range c.PostFormArray(field) {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// backTo is the page a form post returns to: the posted "next" when it is
// local, else fallback
func backTo(c *gin.Context, fallback string) string {
	return middleware.SafeNext(c.PostForm("next"), fallback)
}

// validationFailed reports whether err carries field errors and returns them
func validationFailed(err error) (map[string]string, bool) {
	fields := middleware.FieldErrors(err)
	return fields, len(fields) > 0
}

func isChecked(c *gin.Context, field string) bool {
	switch c.PostForm(field) {
	case "on", "true", "1":
		return true
	}
	return false
}

// titleLabel turns an enum value like "TECNOLOGIA" into "Tecnologia"
func titleLabel(s string) string {
	return cases.Title(language.Spanish).String(strings.ToLower(strings.ReplaceAll(s, "_", " ")))
}

// attachment sets the Content-Disposition of a download
func attachment(c *gin.Context, filename string, inline bool) {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	c.Header("Content-Disposition", disposition+`; filename="`+strings.ReplaceAll(filename, `"`, "")+`"`)
}
