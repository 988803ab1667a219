// Package tui provides the Bubble Tea integration for the shooter.
// It handles the terminal UI loop, input mapping, menus and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Gen identifies the tick loop that scheduled it, so a loop left behind by
// a finished game never drives the next one.
type TickMsg struct {
	Time time.Time
	Gen  int64
}

var tickGen atomic.Int64

// nextTickGen returns a fresh tick loop identifier.
func nextTickGen() int64 {
	return tickGen.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, gen int64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}

// tickDelta converts the wall time between two ticks into nominal ticks.
// The first tick, and any clock going backwards, count as one tick.
func tickDelta(prev, now time.Time, tickRate int) float64 {
	if prev.IsZero() || !now.After(prev) {
		return 1
	}
	if tickRate <= 0 {
		tickRate = 60
	}
	nominal := time.Second / time.Duration(tickRate)
	return float64(now.Sub(prev)) / float64(nominal)
}
