// Package modal holds the view model of server-rendered dialogs.
package modal

import (
	"fmt"
	"html/template"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web/focustrap"
)

// Modal is one dialog on a page. Open dialogs are rendered visible with
// their focus trap wired through data attributes.
type Modal struct {
	ID        string
	Title     string
	Open      bool
	FormToken string // one-shot token for the dialog's form
	Trap      *focustrap.Trap

	restore string
}

// New creates a closed modal whose focusable elements are ids, in tab order.
// Escape closes it.
func New(id, title string, ids ...string) *Modal {
	m := &Modal{ID: id, Title: title}
	m.Trap = focustrap.New(ids, func() { m.Close() })
	return m
}

// Show opens the modal and returns the element to focus first
func (m *Modal) Show(previous string) string {
	m.Open = true
	return m.Trap.Activate(previous)
}

// Close hides the modal and returns the element to give focus back to
func (m *Modal) Close() string {
	m.Open = false
	if prev := m.Trap.Deactivate(); prev != "" {
		m.restore = prev
	}
	return m.restore
}

// Restore is the element focused before the modal was last opened
func (m *Modal) Restore() string {
	return m.restore
}

// FirstFocus is the element that receives focus when the modal opens
func (m *Modal) FirstFocus() string {
	if ids := m.Trap.IDs(); len(ids) > 0 {
		return ids[0]
	}
	return ""
}

// TitleID is the id of the heading referenced by aria-labelledby
func (m *Modal) TitleID() string {
	return m.ID + "-title"
}

// Attrs renders the trap attributes for the element id
func (m *Modal) Attrs(id string) template.HTMLAttr {
	a := m.Trap.Attributes(id)
	return template.HTMLAttr(fmt.Sprintf(`data-trap-next="%s" data-trap-prev="%s"`,
		template.HTMLEscapeString(a.Next), template.HTMLEscapeString(a.Prev)))
}

// DialogAttrs renders the attributes of the dialog container
func (m *Modal) DialogAttrs() template.HTMLAttr {
	hidden := ""
	if !m.Open {
		hidden = " hidden"
	}
	return template.HTMLAttr(fmt.Sprintf(`id="%s" role="dialog" aria-modal="true" aria-labelledby="%s" data-trap-first="%s"%s`,
		template.HTMLEscapeString(m.ID), template.HTMLEscapeString(m.TitleID()),
		template.HTMLEscapeString(m.FirstFocus()), hidden))
}
