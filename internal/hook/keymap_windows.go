//go:build windows

package hook

// Virtual-key codes for the modifier keys, as delivered in Event.Rawcode.
var keymap = map[string]uint16{
	"leftshift":  0xA0,
	"rightshift": 0xA1,
	"leftctrl":   0xA2,
	"rightctrl":  0xA3,
	"leftalt":    0xA4,
	"rightalt":   0xA5,
	"leftsuper":  0x5B,
	"rightsuper": 0x5C,
}
