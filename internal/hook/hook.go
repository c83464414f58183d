// Package hook listens to the system-wide keyboard and reports press and
// release transitions by raw keycode. Key repeat events collapse into the
// initial press so downstream state machines only see real transitions.
package hook

import (
	"fmt"

	hook "github.com/robotn/gohook"
)

// KeyFunc receives every key transition. pressed is true on key down and
// false on key up. It runs on the hook goroutine and must not block.
type KeyFunc func(rawcode uint16, pressed bool)

// Listener drains the global keyboard event stream.
type Listener struct {
	onKey KeyFunc
	debug bool
	done  chan struct{}
}

// Start installs the global hook and begins delivering transitions to
// onKey from a background goroutine.
func Start(onKey KeyFunc, debug bool) *Listener {
	l := &Listener{onKey: onKey, debug: debug, done: make(chan struct{})}
	events := hook.Start()
	go l.loop(events)
	return l
}

func (l *Listener) loop(events chan hook.Event) {
	defer close(l.done)

	// Rawcodes currently held down, to drop OS key-repeat events.
	held := make(map[uint16]bool)

	for ev := range events {
		switch ev.Kind {
		case hook.KeyDown, hook.KeyHold:
			if held[ev.Rawcode] {
				continue
			}
			held[ev.Rawcode] = true
			if l.debug {
				fmt.Printf("[hook] key down rawcode=0x%X\n", ev.Rawcode)
			}
			l.onKey(ev.Rawcode, true)
		case hook.KeyUp:
			if !held[ev.Rawcode] {
				continue
			}
			delete(held, ev.Rawcode)
			if l.debug {
				fmt.Printf("[hook] key up rawcode=0x%X\n", ev.Rawcode)
			}
			l.onKey(ev.Rawcode, false)
		}
	}
}

// Stop uninstalls the hook and waits for the event loop to drain.
func (l *Listener) Stop() {
	hook.End()
	<-l.done
}
