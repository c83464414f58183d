package record

import (
	"context"
	"errors"
	"testing"
	"time"
)

func frame(vals ...float32) []float32 { return vals }

func TestFramesWhileIdleAreDiscarded(t *testing.T) {
	a := NewAccumulator(16000, 4, false)

	a.Frame(frame(0.1, 0.2))
	a.Begin()
	a.Frame(frame(0.3, 0.4))
	a.Frame(frame(0.5, 0.6))
	clip, err := a.End()
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if len(clip.Samples) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(clip.Samples))
	}
	// frames after the session ended must not leak into the next one
	a.Frame(frame(0.7))
	a.Begin()
	if _, err := a.End(); !errors.Is(err, ErrNoAudio) {
		t.Fatalf("expected ErrNoAudio, got %v", err)
	}
}

func TestFrameOrderPreserved(t *testing.T) {
	a := NewAccumulator(16000, 1, false)
	a.Begin()
	a.Frame(frame(0.0))
	a.Frame(frame(0.5))
	a.Frame(frame(1.0))
	clip, err := a.End()
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	want := []int16{0, 16383, 32767}
	for i, w := range want {
		if clip.Samples[i] != w {
			t.Fatalf("sample %d: expected %d, got %d", i, w, clip.Samples[i])
		}
	}
}

func TestShortClipDropped(t *testing.T) {
	a := NewAccumulator(16000, 8000, false)
	a.Begin()
	a.Frame(make([]float32, 1024))
	if _, err := a.End(); !errors.Is(err, ErrClipTooShort) {
		t.Fatalf("expected ErrClipTooShort, got %v", err)
	}
}

func TestEmptySession(t *testing.T) {
	a := NewAccumulator(16000, 8000, false)
	a.Begin()
	if _, err := a.End(); !errors.Is(err, ErrNoAudio) {
		t.Fatalf("expected ErrNoAudio, got %v", err)
	}
}

func TestBeginReplacesStaleSession(t *testing.T) {
	a := NewAccumulator(16000, 1, false)
	a.Begin()
	a.Frame(frame(0.9, 0.9, 0.9))
	// new engagement without End: prior frames must not bleed over
	a.Begin()
	a.Frame(frame(0.25))
	clip, err := a.End()
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if len(clip.Samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(clip.Samples))
	}
}

func TestQuantizeClamps(t *testing.T) {
	a := NewAccumulator(16000, 1, false)
	a.Begin()
	a.Frame(frame(2.0, -2.0))
	clip, err := a.End()
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if clip.Samples[0] != 32767 {
		t.Fatalf("expected clamp to 32767, got %d", clip.Samples[0])
	}
	if clip.Samples[1] != -32767 {
		t.Fatalf("expected clamp to -32767, got %d", clip.Samples[1])
	}
}

func TestFrameBufferIsCopied(t *testing.T) {
	a := NewAccumulator(16000, 1, false)
	a.Begin()
	buf := frame(1.0)
	a.Frame(buf)
	buf[0] = -1.0 // caller reuses the buffer
	clip, err := a.End()
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if clip.Samples[0] != 32767 {
		t.Fatalf("accumulator must copy frames; got %d", clip.Samples[0])
	}
}

func TestClipDuration(t *testing.T) {
	c := &Clip{Samples: make([]int16, 8000), SampleRate: 16000}
	if c.Duration() != 500*time.Millisecond {
		t.Fatalf("expected 500ms, got %v", c.Duration())
	}
}

func TestSlotSerializes(t *testing.T) {
	s := NewSlot("recording.wav")
	if s.Path() != "recording.wav" {
		t.Fatalf("unexpected path %q", s.Path())
	}
	if err := s.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := s.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded while slot held, got %v", err)
	}

	s.Release()
	if err := s.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire after Release failed: %v", err)
	}
	s.Release()
}
