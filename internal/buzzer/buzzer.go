// Package buzzer plays the board's short square-wave cues on the host speaker.
package buzzer

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue identifies a sound the board can emit.
type Cue int

const (
	CueBounce Cue = iota
	CueCollision
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueBounce:
		return "bounce"
	case CueCollision:
		return "collision"
	case CueGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Buzzer emits cues. Implementations must not block the caller.
type Buzzer interface {
	Play(c Cue)
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(Cue) {}

// Speaker plays cues on the default audio device.
type Speaker struct {
	mu     sync.Mutex
	closed bool
}

// NewSpeaker initializes the audio device.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/30)); err != nil {
		return nil, err
	}
	return &Speaker{}, nil
}

// Play queues the tone sequence for c.
func (s *Speaker) Play(c Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Play(Tone(c))
}

// Close shuts down the audio device. Later cues are dropped.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		speaker.Close()
		s.closed = true
	}
}

// Tone returns the streamer for a cue.
func Tone(c Cue) beep.Streamer {
	switch c {
	case CueBounce:
		return squareWave(440, 30*time.Millisecond)
	case CueCollision:
		return squareWave(880, 20*time.Millisecond)
	case CueGameOver:
		// Descending
		return beep.Seq(
			squareWave(660, 100*time.Millisecond),
			squareWave(440, 100*time.Millisecond),
			squareWave(330, 150*time.Millisecond),
		)
	default:
		return beep.Silence(0)
	}
}

func squareWave(freq float64, duration time.Duration) beep.Streamer {
	numSamples := sampleRate.N(duration)
	phase := 0.0
	phaseStep := freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, false
			}
			val := 0.2
			if math.Mod(phase, 1.0) > 0.5 {
				val = -val
			}
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			numSamples--
		}
		return len(samples), true
	})
}

// Recorder keeps the cues it is asked to play.
type Recorder struct {
	mu   sync.Mutex
	cues []Cue
}

func (r *Recorder) Play(c Cue) {
	r.mu.Lock()
	r.cues = append(r.cues, c)
	r.mu.Unlock()
}

// Cues returns a copy of the recorded cues.
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.cues...)
}
