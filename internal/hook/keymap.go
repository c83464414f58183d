package hook

import (
	"fmt"
	"sort"
	"strings"
)

// LookupKey resolves a configured key name like "rightctrl" to the raw
// keycode the OS reports for it. Names are matched case-insensitively.
func LookupKey(name string) (uint16, error) {
	code, ok := keymap[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown key name '%s' (known: %s)", name, strings.Join(KnownKeys(), ", "))
	}
	return code, nil
}

// KnownKeys returns the configurable key names, sorted.
func KnownKeys() []string {
	names := make([]string, 0, len(keymap))
	for name := range keymap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
