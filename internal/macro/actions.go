package macro

import (
	"fmt"

	"github.com/micmonay/keybd_event"
)

// builtinActions maps action names usable in the macro file to key
// sequences sent to the focused window.
var builtinActions = map[string]Action{
	"enter":     keystroke(keybd_event.VK_ENTER, false),
	"tab":       keystroke(keybd_event.VK_TAB, false),
	"escape":    keystroke(keybd_event.VK_ESC, false),
	"up":        keystroke(keybd_event.VK_UP, false),
	"down":      keystroke(keybd_event.VK_DOWN, false),
	"left":      keystroke(keybd_event.VK_LEFT, false),
	"right":     keystroke(keybd_event.VK_RIGHT, false),
	"undo":      keystroke(keybd_event.VK_Z, true),
	"redo":      keystroke(keybd_event.VK_Y, true),
	"selectall": keystroke(keybd_event.VK_A, true),
}

// LookupAction returns the built-in action registered under name.
func LookupAction(name string) (Action, error) {
	fn, ok := builtinActions[name]
	if !ok {
		return nil, fmt.Errorf("unknown action '%s'", name)
	}
	return fn, nil
}

// keystroke builds an action that presses a single key, optionally with
// the platform shortcut modifier held.
func keystroke(vk int, withCtrl bool) Action {
	return func() error {
		kb, err := keybd_event.NewKeyBonding()
		if err != nil {
			return fmt.Errorf("keyboard init failed: %w", err)
		}
		kb.SetKeys(vk)
		if withCtrl {
			setShortcutModifier(&kb)
		}
		if err := kb.Launching(); err != nil {
			return fmt.Errorf("keystroke failed: %w", err)
		}
		return nil
	}
}
