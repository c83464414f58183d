//go:build linux

package hook

// X11 keysyms for the modifier keys, as delivered in Event.Rawcode.
var keymap = map[string]uint16{
	"leftshift":  0xFFE1,
	"rightshift": 0xFFE2,
	"leftctrl":   0xFFE3,
	"rightctrl":  0xFFE4,
	"leftalt":    0xFFE9,
	"rightalt":   0xFFEA,
	"leftsuper":  0xFFEB,
	"rightsuper": 0xFFEC,
}
