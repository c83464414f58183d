package record

import "context"

// Slot is the single reused clip file shared between finalization and the
// in-flight transcription request. Acquire transfers ownership of the path
// to one caller at a time, so the file is never overwritten while the
// backend may still be reading it.
type Slot struct {
	path string
	sem  chan struct{}
}

// NewSlot creates a slot for the given file path.
func NewSlot(path string) *Slot {
	return &Slot{path: path, sem: make(chan struct{}, 1)}
}

// Acquire blocks until the slot is free or ctx is done.
func (s *Slot) Acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns the slot. Must follow a successful Acquire.
func (s *Slot) Release() {
	<-s.sem
}

// Path returns the slot's file path.
func (s *Slot) Path() string {
	return s.path
}
