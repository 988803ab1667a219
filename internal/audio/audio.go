// Package audio turns simulation events into short synthesized tones.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Cue describes the tone played for one event kind.
type Cue struct {
	Freq     float64       // start frequency, Hz
	Sweep    float64       // frequency change per second, Hz
	Duration time.Duration // tone length
	Volume   float64       // peak amplitude in [0, 1]
}

var cues = map[core.EventKind]Cue{
	core.EventShotFired:   {Freq: 880, Duration: 40 * time.Millisecond, Volume: 0.15},
	core.EventEnemyKilled: {Freq: 440, Sweep: -1200, Duration: 120 * time.Millisecond, Volume: 0.3},
	core.EventPlayerHit:   {Freq: 140, Sweep: -200, Duration: 250 * time.Millisecond, Volume: 0.4},
	core.EventRunEnded:    {Freq: 330, Sweep: -400, Duration: 500 * time.Millisecond, Volume: 0.3},
}

// CueFor returns the cue for an event kind, if it has one.
func CueFor(kind core.EventKind) (Cue, bool) {
	c, ok := cues[kind]
	return c, ok
}

// Tone is a sine with a linear frequency sweep and a decaying envelope.
type Tone struct {
	sr     beep.SampleRate
	freq   float64
	sweep  float64
	volume float64
	pos    int
	total  int
	phase  float64
}

// NewTone creates a tone streamer for c.
func NewTone(sr beep.SampleRate, c Cue) *Tone {
	return &Tone{
		sr:     sr,
		freq:   c.Freq,
		sweep:  c.Sweep,
		volume: c.Volume,
		total:  sr.N(c.Duration),
	}
}

// Stream fills samples until the tone is exhausted.
func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		sec := float64(t.pos) / float64(t.sr)
		freq := math.Max(t.freq+t.sweep*sec, 20)
		t.phase += 2 * math.Pi * freq / float64(t.sr)

		envelope := 1 - float64(t.pos)/float64(t.total)
		v := t.volume * envelope * math.Sin(t.phase)

		samples[i][0] = v
		samples[i][1] = v
		t.pos++
	}
	return len(samples), true
}

// Err always returns nil.
func (t *Tone) Err() error {
	return nil
}

// Streamer builds the streamer for a cue. Flat cues use a plain sine.
func Streamer(sr beep.SampleRate, c Cue) beep.Streamer {
	if c.Sweep == 0 {
		if sine, err := generators.SineTone(sr, c.Freq); err == nil {
			return beep.Take(sr.N(c.Duration), &effects.Gain{Streamer: sine, Gain: c.Volume - 1})
		}
	}
	return NewTone(sr, c)
}

// Sink plays a cue for each event it receives.
// It implements core.EventSink and does nothing until Initialize succeeds.
type Sink struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSink creates an uninitialized sink.
func NewSink() *Sink {
	return &Sink{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker. Failing here is not fatal: the game runs
// silently.
func (s *Sink) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// OnEvent queues the cue for ev, if any.
func (s *Sink) OnEvent(ev core.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	c, ok := CueFor(ev.Kind)
	if !ok {
		return
	}

	speaker.Lock()
	s.mixer.Add(Streamer(sampleRate, c))
	speaker.Unlock()
}

// Close stops all sounds.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	s.initialized = false
}

var _ core.EventSink = (*Sink)(nil)
