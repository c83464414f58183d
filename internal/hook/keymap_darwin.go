//go:build darwin

package hook

// Carbon virtual keycodes for the modifier keys, as delivered in
// Event.Rawcode.
var keymap = map[string]uint16{
	"leftshift":  0x38,
	"rightshift": 0x3C,
	"leftctrl":   0x3B,
	"rightctrl":  0x3E,
	"leftalt":    0x3A,
	"rightalt":   0x3D,
	"leftsuper":  0x37,
	"rightsuper": 0x36,
}
