//go:build darwin

package output

import "github.com/micmonay/keybd_event"

// setPasteModifier holds command, the paste modifier on macOS.
func setPasteModifier(kb *keybd_event.KeyBonding) {
	kb.HasSuper(true)
}
