package modal

import (
	"testing"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web/focustrap"
	"github.com/stretchr/testify/assert"
)

func TestModal_ShowAndEscape(t *testing.T) {
	m := New("overtime", "Aprobar horas extra", "ot-comment", "ot-approve", "ot-cancel")
	assert.False(t, m.Open)

	assert.Equal(t, "ot-comment", m.Show("open-overtime"))
	assert.True(t, m.Open)
	assert.Equal(t, "ot-comment", m.Trap.HandleKey("ot-cancel", focustrap.KeyTab, false))

	m.Trap.HandleKey("ot-comment", focustrap.KeyEscape, false)
	assert.False(t, m.Open)
	assert.Equal(t, "open-overtime", m.Restore())
	assert.False(t, m.Trap.Active())
}

func TestModal_CloseTwice(t *testing.T) {
	m := New("x", "X", "a")
	m.Show("btn")
	assert.Equal(t, "btn", m.Close())
	assert.Equal(t, "btn", m.Close())
}

func TestModal_Attrs(t *testing.T) {
	m := New("gen", "Generar", "gen-periodo", "gen-submit")

	assert.Equal(t, `data-trap-next="gen-submit" data-trap-prev="gen-submit"`, string(m.Attrs("gen-periodo")))
	assert.Equal(t, `id="gen" role="dialog" aria-modal="true" aria-labelledby="gen-title" data-trap-first="gen-periodo" hidden`, string(m.DialogAttrs()))

	m.Show("")
	assert.NotContains(t, string(m.DialogAttrs()), "hidden")
}
