package sales

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGoalProgress(t *testing.T) {
	t.Run("uses backend percentage", func(t *testing.T) {
		g := Goal{PorcentajeCumplimiento: decimal.NewFromFloat(42.25)}
		assert.Equal(t, "42.3", g.Progress().String())
	})

	t.Run("derives from amounts when missing", func(t *testing.T) {
		g := Goal{MontoObjetivo: decimal.NewFromInt(200), MontoActual: decimal.NewFromInt(50)}
		assert.True(t, g.Progress().Equal(decimal.NewFromInt(25)))
	})

	t.Run("clamps above target", func(t *testing.T) {
		g := Goal{PorcentajeCumplimiento: decimal.NewFromInt(130)}
		assert.True(t, g.Progress().Equal(decimal.NewFromInt(100)))
	})

	t.Run("zero target", func(t *testing.T) {
		assert.True(t, Goal{}.Progress().IsZero())
	})
}

func TestGoalRemainingAndDaysLeft(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	g := Goal{
		MontoObjetivo: decimal.NewFromInt(100),
		MontoActual:   decimal.NewFromInt(120),
		FechaFin:      now.Add(72 * time.Hour),
	}
	assert.True(t, g.Remaining().IsZero())
	assert.Equal(t, 3, g.DaysLeft(now))
	assert.Equal(t, 0, g.DaysLeft(now.Add(100*time.Hour)))
}
