package focustrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrap_TabCycles(t *testing.T) {
	trap := New([]string{"comment", "approve", "cancel"}, nil)
	assert.Equal(t, "comment", trap.Activate("open-btn"))

	assert.Equal(t, "approve", trap.HandleKey("comment", KeyTab, false))
	assert.Equal(t, "comment", trap.HandleKey("cancel", KeyTab, false), "Tab from last goes to first")
	assert.Equal(t, "cancel", trap.HandleKey("comment", KeyTab, true), "Shift+Tab from first goes to last")
	assert.Equal(t, "comment", trap.HandleKey("approve", KeyTab, true))
}

func TestTrap_FocusOutsideReenters(t *testing.T) {
	trap := New([]string{"a", "b"}, nil)
	trap.Activate("")

	assert.Equal(t, "a", trap.HandleKey("body", KeyTab, false))
	assert.Equal(t, "b", trap.HandleKey("body", KeyTab, true))
}

func TestTrap_EscapeCallsCallbackOncePerPress(t *testing.T) {
	calls := 0
	trap := New([]string{"a"}, func() { calls++ })
	trap.Activate("")

	assert.Equal(t, "", trap.HandleKey("a", KeyEscape, false))
	assert.Equal(t, 1, calls)
	trap.HandleKey("a", KeyEscape, false)
	assert.Equal(t, 2, calls)
}

func TestTrap_EscapeCallbackMayDeactivate(t *testing.T) {
	var trap *Trap
	restored := ""
	trap = New([]string{"a"}, func() { restored = trap.Deactivate() })
	trap.Activate("open-btn")

	trap.HandleKey("a", KeyEscape, false)
	assert.Equal(t, "open-btn", restored)
	assert.False(t, trap.Active())
}

func TestTrap_InactiveIgnoresKeys(t *testing.T) {
	calls := 0
	trap := New([]string{"a", "b"}, func() { calls++ })

	assert.Equal(t, "", trap.HandleKey("a", KeyTab, false))
	assert.Equal(t, "", trap.HandleKey("a", KeyEscape, false))
	assert.Equal(t, 0, calls)
}

func TestTrap_OtherKeysDoNotMoveFocus(t *testing.T) {
	trap := New([]string{"a", "b"}, nil)
	trap.Activate("")
	assert.Equal(t, "", trap.HandleKey("a", "Enter", false))
}

func TestTrap_Deactivate(t *testing.T) {
	trap := New([]string{"a"}, nil)
	trap.Activate("open-btn")
	// re-activation keeps the first captured element
	trap.Activate("a")

	assert.Equal(t, "open-btn", trap.Deactivate())
	assert.Equal(t, "", trap.Deactivate())
}

func TestTrap_Empty(t *testing.T) {
	trap := New([]string{"", ""}, nil)
	assert.Equal(t, "", trap.Activate("x"))
	assert.Equal(t, "", trap.HandleKey("x", KeyTab, false))
	assert.Empty(t, trap.IDs())
}

func TestTrap_Attributes(t *testing.T) {
	trap := New([]string{"a", "b", "c"}, nil)

	assert.Equal(t, Attr{Next: "b", Prev: "c"}, trap.Attributes("a"))
	assert.Equal(t, Attr{Next: "a", Prev: "b"}, trap.Attributes("c"))
	assert.Equal(t, Attr{Next: "a", Prev: "c"}, trap.Attributes("zzz"))
}
