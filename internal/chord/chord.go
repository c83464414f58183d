// Package chord detects the push-to-talk chord: two designated keys that
// must be held simultaneously to start a recording session.
package chord

import "sync"

// Edge is a chord state transition produced by a key event.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeEngaged
	EdgeReleased
)

func (e Edge) String() string {
	switch e {
	case EdgeEngaged:
		return "engaged"
	case EdgeReleased:
		return "released"
	default:
		return "none"
	}
}

// Detector tracks press/release of the two designated keys. Keys are
// identified by the raw keycode reported by the keyboard hook. Events for
// any other key are ignored.
type Detector struct {
	mu sync.Mutex

	first  uint16
	second uint16

	firstHeld  bool
	secondHeld bool

	// engaged stays true from chord-engaged until the first release of
	// either key, so that exactly one released edge fires per engagement.
	engaged bool
}

// NewDetector creates a detector for the given designated keys.
func NewDetector(first, second uint16) *Detector {
	return &Detector{first: first, second: second}
}

// Handle processes one key event and returns the resulting edge.
// Repeated presses of an already-held key (key repeat) do not re-emit
// EdgeEngaged; a release for a key never seen as pressed is a no-op.
func (d *Detector) Handle(key uint16, pressed bool) Edge {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch key {
	case d.first:
		d.firstHeld = pressed
	case d.second:
		d.secondHeld = pressed
	default:
		return EdgeNone
	}

	if pressed {
		if d.firstHeld && d.secondHeld && !d.engaged {
			d.engaged = true
			return EdgeEngaged
		}
		return EdgeNone
	}

	// Release of either designated key ends the engagement.
	if d.engaged {
		d.engaged = false
		return EdgeReleased
	}
	return EdgeNone
}

// Engaged reports whether the chord is currently engaged.
func (d *Detector) Engaged() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.engaged
}
