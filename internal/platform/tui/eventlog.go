package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// EventLogger writes gameplay events to a logger at debug level.
type EventLogger struct {
	logger *log.Logger
}

// NewEventLogger creates an event sink backed by logger.
func NewEventLogger(logger *log.Logger) *EventLogger {
	return &EventLogger{logger: orDiscard(logger)}
}

// OnEvent implements core.EventSink.
func (l *EventLogger) OnEvent(ev core.Event) {
	l.logger.Debug("event",
		"kind", ev.Kind,
		"tick", ev.Tick,
		"score", ev.Score,
		"lives", ev.Lives,
	)
}

// orDiscard returns logger, or a logger that drops everything when nil.
func orDiscard(logger *log.Logger) *log.Logger {
	if logger != nil {
		return logger
	}
	return log.New(io.Discard)
}
