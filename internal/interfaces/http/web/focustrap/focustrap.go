// Package focustrap models keyboard focus confinement inside a modal.
//
// The server renders the cycle computed here into data attributes; the
// static script only moves focus to the element they name.
package focustrap

import "sync"

// Keys handled by the trap
const (
	KeyTab    = "Tab"
	KeyEscape = "Escape"
)

// Trap confines Tab and Shift+Tab to an ordered set of focusable ids
type Trap struct {
	mu       sync.Mutex
	ids      []string
	onEscape func()
	active   bool
	previous string
}

// New creates an inactive trap over ids in tab order. Blank ids are skipped.
// onEscape may be nil.
func New(ids []string, onEscape func()) *Trap {
	clean := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			clean = append(clean, id)
		}
	}
	return &Trap{ids: clean, onEscape: onEscape}
}

// Activate starts trapping, remembering the element focused before.
// It returns the id that should receive focus first, or "" when the trap is empty.
func (t *Trap) Activate(previous string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		t.previous = previous
	}
	t.active = true
	if len(t.ids) == 0 {
		return ""
	}
	return t.ids[0]
}

// Active reports whether keys are being handled
func (t *Trap) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// HandleKey returns the id to focus after key is pressed on current.
// "" means focus does not move. Escape runs the callback once per call.
func (t *Trap) HandleKey(current, key string, shift bool) string {
	t.mu.Lock()
	if !t.active {
		t.mu.Unlock()
		return ""
	}

	switch key {
	case KeyEscape:
		cb := t.onEscape
		t.mu.Unlock()
		// outside the lock: the callback usually deactivates the trap
		if cb != nil {
			cb()
		}
		return ""
	case KeyTab:
		defer t.mu.Unlock()
		return t.step(current, shift)
	default:
		t.mu.Unlock()
		return ""
	}
}

// step moves one position, wrapping at both ends. Focus outside the trap
// re-enters at the first (or, backwards, the last) element.
func (t *Trap) step(current string, backwards bool) string {
	n := len(t.ids)
	if n == 0 {
		return ""
	}
	i := t.indexOf(current)
	switch {
	case i < 0 && backwards:
		return t.ids[n-1]
	case i < 0:
		return t.ids[0]
	case backwards:
		return t.ids[(i-1+n)%n]
	default:
		return t.ids[(i+1)%n]
	}
}

func (t *Trap) indexOf(id string) int {
	for i, v := range t.ids {
		if v == id {
			return i
		}
	}
	return -1
}

// Deactivate stops trapping and returns the element to restore focus to.
// A second call returns "".
func (t *Trap) Deactivate() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return ""
	}
	prev := t.previous
	t.active = false
	t.previous = ""
	return prev
}

// Attr holds the tab neighbours of one element
type Attr struct {
	Next string
	Prev string
}

// Attributes returns the neighbours of id for the data-trap-next and
// data-trap-prev attributes. Unknown ids get the trap's entry points.
func (t *Trap) Attributes(id string) Attr {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Attr{Next: t.step(id, false), Prev: t.step(id, true)}
}

// IDs returns the focusable ids in tab order
func (t *Trap) IDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.ids...)
}
