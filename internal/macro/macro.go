// Package macro rewrites recognized text or triggers actions instead of
// typing. A match is decided on the normalized form of the whole utterance,
// so only single-word or concatenated-word commands ever match; natural
// sentences fall through to literal typing.
package macro

import (
	"fmt"
	"strings"
	"unicode"
)

// Action is a zero-argument side effect triggered by a matching macro.
type Action func() error

// Entry is one macro: a normalized trigger mapped to either a replacement
// string or an action.
type Entry struct {
	Match   string // normalized trigger
	Replace string // used when Invoke is nil
	Invoke  Action
	Name    string // action name, for logs
}

// Table is an ordered, immutable-after-load macro table. Lookup is first
// match wins, in insertion order.
type Table struct {
	entries []Entry
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// AddReplace appends a text-replacement macro.
func (t *Table) AddReplace(match, replacement string) {
	t.entries = append(t.entries, Entry{Match: Normalize(match), Replace: replacement})
}

// AddAction appends an action macro.
func (t *Table) AddAction(match, name string, fn Action) {
	t.entries = append(t.entries, Entry{Match: Normalize(match), Invoke: fn, Name: name})
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Normalize lowercases s and strips every non-alphanumeric rune.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Dispatcher resolves recognized text against a table.
type Dispatcher struct {
	table *Table
	raw   bool
	debug bool
}

// NewDispatcher creates a dispatcher. With raw enabled, Dispatch always
// returns the input unchanged and the table is never consulted.
func NewDispatcher(table *Table, raw, debug bool) *Dispatcher {
	if table == nil {
		table = NewTable()
	}
	return &Dispatcher{table: table, raw: raw, debug: debug}
}

// Dispatch returns the text to type for the given recognized text. First
// match wins: a replacement macro yields its replacement, an action macro
// runs the action and yields an empty string (nothing typed). An action
// failure (error or panic) is contained here and returned to the caller;
// it never propagates into the capture loop.
func (d *Dispatcher) Dispatch(text string) (string, error) {
	if d.raw {
		return text, nil
	}

	key := Normalize(text)
	for _, e := range d.table.entries {
		if key != e.Match {
			continue
		}
		if e.Invoke == nil {
			if d.debug {
				fmt.Printf("[macro] matched '%s' -> replacing with '%s'\n", e.Match, e.Replace)
			}
			return e.Replace, nil
		}
		if d.debug {
			fmt.Printf("[macro] matched '%s' -> executing action '%s'\n", e.Match, e.Name)
		}
		if err := runIsolated(e.Invoke); err != nil {
			return "", fmt.Errorf("macro action '%s' failed: %w", e.Name, err)
		}
		return "", nil
	}
	return text, nil
}

// runIsolated executes an action, converting a panic into an error.
func runIsolated(fn Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
