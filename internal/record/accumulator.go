// Package record accumulates audio frames while the push-to-talk chord is
// held and finalizes them into a single 16-bit PCM clip.
package record

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNoAudio means the session ended before any frame arrived.
	ErrNoAudio = errors.New("no audio captured")
	// ErrClipTooShort means the session produced fewer samples than the
	// configured minimum. Dropped silently: the backend cannot transcribe it.
	ErrClipTooShort = errors.New("clip below minimum duration")
)

// Clip is one finalized, contiguous recording from a single chord hold.
type Clip struct {
	ID         string
	Samples    []int16
	SampleRate int
}

// Duration returns the clip length in wall-clock time.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.SampleRate)
}

// Accumulator buffers audio frames for the active recording session.
// Begin/End are driven by chord transitions on the keyboard hook goroutine;
// Frame is invoked by the audio input callback on its own goroutine.
type Accumulator struct {
	sampleRate int
	minSamples int
	debug      bool

	recording atomic.Bool

	mu      sync.Mutex
	id      string
	frames  [][]float32
	samples int
}

// NewAccumulator creates an accumulator for mono audio at the given rate.
// Clips shorter than minSamples are rejected by End.
func NewAccumulator(sampleRate, minSamples int, debug bool) *Accumulator {
	return &Accumulator{sampleRate: sampleRate, minSamples: minSamples, debug: debug}
}

// Recording reports whether a session is currently open.
func (a *Accumulator) Recording() bool {
	return a.recording.Load()
}

// Begin opens a fresh session, discarding any frames from a stale one.
func (a *Accumulator) Begin() {
	a.mu.Lock()
	a.id = sessionID()
	a.frames = nil
	a.samples = 0
	a.recording.Store(true)
	a.mu.Unlock()

	if a.debug {
		fmt.Printf("[record] session %s started\n", a.id)
	}
}

// Frame appends one block of samples to the open session, in arrival order.
// Frames delivered while no session is open are discarded. The block is
// copied; callers may reuse the backing buffer.
func (a *Accumulator) Frame(block []float32) {
	if !a.recording.Load() || len(block) == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	// The session may have ended between the lock-free check and here.
	if !a.recording.Load() {
		return
	}
	cp := make([]float32, len(block))
	copy(cp, block)
	a.frames = append(a.frames, cp)
	a.samples += len(cp)
}

// End closes the session and returns the finalized clip, or ErrNoAudio /
// ErrClipTooShort when the captured audio is unusable. Calling End without
// an open session returns ErrNoAudio.
func (a *Accumulator) End() (*Clip, error) {
	a.mu.Lock()
	a.recording.Store(false)
	id := a.id
	frames := a.frames
	samples := a.samples
	a.frames = nil
	a.samples = 0
	a.mu.Unlock()

	if samples == 0 {
		return nil, ErrNoAudio
	}
	if samples < a.minSamples {
		if a.debug {
			fmt.Printf("[record] session %s dropped: %d samples < %d\n", id, samples, a.minSamples)
		}
		return nil, ErrClipTooShort
	}

	clip := &Clip{ID: id, Samples: quantize(frames, samples), SampleRate: a.sampleRate}
	if a.debug {
		fmt.Printf("[record] session %s finalized: %d samples (%v)\n", id, samples, clip.Duration())
	}
	return clip, nil
}

// quantize concatenates the frames and scales float samples to full-scale
// 16-bit signed PCM, clamping out-of-range input.
func quantize(frames [][]float32, samples int) []int16 {
	out := make([]int16, 0, samples)
	for _, f := range frames {
		for _, s := range f {
			if s > 1 {
				s = 1
			} else if s < -1 {
				s = -1
			}
			out = append(out, int16(s*32767))
		}
	}
	return out
}

func sessionID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
}
