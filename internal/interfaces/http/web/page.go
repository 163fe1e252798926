package web

import (
	"net/url"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/identity"
)

// Flash is the notice rendered at the top of a page
type Flash struct {
	Kind    string
	Message string
}

// Page is the value every template receives
type Page struct {
	Title     string
	Active    string // highlighted navigation section
	User      *identity.User
	Theme     string
	Flash     *Flash
	RequestID string
	Path      string // request URI, for forms that return here
	FormToken string // one-shot token posted by the page's mutation forms

	// Data is the page model; Form echoes submitted values on validation failure
	Data   any
	Form   any
	Errors map[string]string
	Query  url.Values
}

// Error returns the validation message for a field
func (p *Page) Error(field string) string {
	return p.Errors[field]
}

// HasErrors reports whether any field failed validation
func (p *Page) HasErrors() bool {
	return len(p.Errors) > 0
}

// Q returns a query parameter of the current request
func (p *Page) Q(key string) string {
	return p.Query.Get(key)
}

// Can reports whether the signed-in user holds the permission
func (p *Page) Can(permission string) bool {
	return p.User != nil && p.User.HasPermission(permission)
}
