//go:build !darwin

package macro

import "github.com/micmonay/keybd_event"

// setShortcutModifier holds the control key for shortcut actions.
func setShortcutModifier(kb *keybd_event.KeyBonding) {
	kb.HasCTRL(true)
}
