// Package output delivers recognized text into the focused application.
// Text is staged on the clipboard and pasted with the platform shortcut,
// which is far faster and more reliable than synthesizing one keystroke
// per character. The previous clipboard contents are restored afterwards.
package output

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/micmonay/keybd_event"
)

// Sink types text into whatever window currently has focus.
type Sink struct{}

// NewSink creates a clipboard-paste sink.
func NewSink() *Sink {
	return &Sink{}
}

// Type pastes text into the focused window. Empty text is a no-op so a
// suppressed macro result never disturbs the clipboard.
func (s *Sink) Type(text string) error {
	if text == "" {
		return nil
	}

	orig, _ := clipboard.ReadAll()
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard write failed: %w", err)
	}
	// small sleep to allow clipboard to be ready
	time.Sleep(80 * time.Millisecond)

	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return fmt.Errorf("keyboard init failed: %w", err)
	}
	setPasteModifier(&kb)
	kb.SetKeys(keybd_event.VK_V)
	if err := kb.Launching(); err != nil {
		return fmt.Errorf("paste keystroke failed: %w", err)
	}

	// restore clipboard after slight delay
	time.Sleep(120 * time.Millisecond)
	_ = clipboard.WriteAll(orig)
	return nil
}
