//go:build !darwin

package output

import "github.com/micmonay/keybd_event"

// setPasteModifier holds control, the paste modifier outside macOS.
func setPasteModifier(kb *keybd_event.KeyBonding) {
	kb.HasCTRL(true)
}
