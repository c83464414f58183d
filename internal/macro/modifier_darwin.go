//go:build darwin

package macro

import "github.com/micmonay/keybd_event"

// setShortcutModifier holds the command key for shortcut actions.
func setShortcutModifier(kb *keybd_event.KeyBonding) {
	kb.HasSuper(true)
}
