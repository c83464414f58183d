// Package capture owns the PortAudio input stream. The stream stays open
// for the lifetime of the process and every audio block is handed to a
// callback; whether a block is kept is decided downstream, so push-to-talk
// start never pays the device-open latency.
package capture

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// FrameFunc receives each captured block of mono float32 samples. The
// slice is reused between reads; implementations must copy what they keep.
type FrameFunc func(block []float32)

// Stream is a continuously running default-device input stream.
type Stream struct {
	stream  *portaudio.Stream
	in      []float32
	onFrame FrameFunc
	debug   bool

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// Open initializes PortAudio, opens the default input device at the given
// rate, starts it, and begins delivering frames to onFrame from a
// background goroutine.
func Open(sampleRate, framesPerBuffer int, onFrame FrameFunc, debug bool) (*Stream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init failed: %w", err)
	}

	in := make([]float32, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), len(in), in)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("open stream failed: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("start stream failed: %w", err)
	}

	s := &Stream{
		stream:  stream,
		in:      in,
		onFrame: onFrame,
		debug:   debug,
		done:    make(chan struct{}),
	}
	if s.debug {
		fmt.Printf("[record] capture stream open: %d Hz, %d frames per buffer\n", sampleRate, framesPerBuffer)
	}

	go s.readLoop()
	return s, nil
}

func (s *Stream) readLoop() {
	defer close(s.done)
	for {
		if s.isClosed() {
			return
		}
		if err := s.stream.Read(); err != nil {
			if s.isClosed() {
				return
			}
			if s.debug {
				fmt.Printf("[record] stream read error: %v\n", err)
			}
			continue
		}
		s.onFrame(s.in)
	}
}

func (s *Stream) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close stops the stream, waits for the read loop to exit, and tears
// down PortAudio.
func (s *Stream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	// Stop unblocks the pending Read in the loop.
	err := s.stream.Stop()
	<-s.done

	if cerr := s.stream.Close(); err == nil {
		err = cerr
	}
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}
