package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickDelta(t *testing.T) {
	t0 := time.Unix(50, 0)

	assert.InDelta(t, 1.0, tickDelta(time.Time{}, t0, 60), 1e-9, "first tick")
	assert.InDelta(t, 1.0, tickDelta(t0, t0, 60), 1e-9, "no time passed")
	assert.InDelta(t, 1.0, tickDelta(t0, t0.Add(-time.Second), 60), 1e-9, "clock went back")

	assert.InDelta(t, 2.0, tickDelta(t0, t0.Add(time.Second/30), 60), 1e-6)
	assert.InDelta(t, 1.0, tickDelta(t0, t0.Add(time.Second/30), 30), 1e-6)
	assert.InDelta(t, 0.5, tickDelta(t0, t0.Add(time.Second/120), 0), 1e-6, "zero rate means 60")
}

func TestTickGenUnique(t *testing.T) {
	a, b := nextTickGen(), nextTickGen()
	assert.NotEqual(t, a, b)
}
