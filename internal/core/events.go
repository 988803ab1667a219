package core

// EventKind identifies a discrete simulation event.
type EventKind int

const (
	EventShotFired EventKind = iota
	EventEnemyKilled
	EventPlayerHit
	EventEnemyEscaped
	EventRunEnded
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventShotFired:
		return "ShotFired"
	case EventEnemyKilled:
		return "EnemyKilled"
	case EventPlayerHit:
		return "PlayerHit"
	case EventEnemyEscaped:
		return "EnemyEscaped"
	case EventRunEnded:
		return "RunEnded"
	default:
		return "Unknown"
	}
}

// Event is a notification emitted by a simulation step.
// Score and Lives are the values after the event was applied.
type Event struct {
	Kind  EventKind
	Tick  int
	Score int
	Lives int
}

// EventSink consumes simulation events (audio, telemetry, logging).
// Sinks are called on the simulation goroutine after a step completes.
type EventSink interface {
	OnEvent(ev Event)
}

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(ev Event)

// OnEvent calls f(ev).
func (f EventSinkFunc) OnEvent(ev Event) {
	f(ev)
}

// MultiSink fans events out to several sinks in order. Nil sinks are skipped.
type MultiSink []EventSink

// OnEvent forwards ev to every sink.
func (m MultiSink) OnEvent(ev Event) {
	for _, s := range m {
		if s != nil {
			s.OnEvent(ev)
		}
	}
}

// Dispatch delivers a batch of events to a sink. A nil sink drops them.
func Dispatch(sink EventSink, events []Event) {
	if sink == nil {
		return
	}
	for _, ev := range events {
		sink.OnEvent(ev)
	}
}
