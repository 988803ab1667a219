package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

func TestToneStreamsWithinRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	tone := NewTone(rate, Cue{Freq: 440, Sweep: -1000, Duration: 50 * time.Millisecond, Volume: 0.5})

	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := tone.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -0.5 || buf[i][0] > 0.5 {
				t.Fatalf("sample %d out of range: %f", total+i, buf[i][0])
			}
			if buf[i][0] != buf[i][1] {
				t.Fatalf("sample %d is not mono", total+i)
			}
		}
		total += n
		if !ok {
			break
		}
	}

	if expected := rate.N(50 * time.Millisecond); total != expected {
		t.Errorf("streamed %d samples, expected %d", total, expected)
	}
	if tone.Err() != nil {
		t.Errorf("unexpected error: %v", tone.Err())
	}
}

func TestStreamerLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	for kind := core.EventShotFired; kind <= core.EventRunEnded; kind++ {
		c, ok := CueFor(kind)
		if !ok {
			continue
		}
		s := Streamer(rate, c)
		total := 0
		buf := make([][2]float64, 1024)
		for {
			n, ok := s.Stream(buf)
			total += n
			if !ok || n == 0 {
				break
			}
		}
		if expected := rate.N(c.Duration); total != expected {
			t.Errorf("%s: streamed %d samples, expected %d", kind, total, expected)
		}
	}
}

func TestCueCoverage(t *testing.T) {
	for _, kind := range []core.EventKind{core.EventShotFired, core.EventEnemyKilled, core.EventPlayerHit} {
		if _, ok := CueFor(kind); !ok {
			t.Errorf("expected a cue for %s", kind)
		}
	}
	if _, ok := CueFor(core.EventEnemyEscaped); ok {
		t.Error("escapes are silent")
	}
}

func TestSinkIgnoresEventsBeforeInitialize(t *testing.T) {
	s := NewSink()
	// Must not touch the speaker
	s.OnEvent(core.Event{Kind: core.EventShotFired})
	s.Close()
}
