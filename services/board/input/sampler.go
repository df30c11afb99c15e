// Package input samples the board's active-low push-buttons.
//
// A Table maps switches to values in a fixed priority order. Sample reads the
// pins in that order and returns the value of the first pressed switch, or the
// table's None value when nothing is held. Every call is a pure level sample:
// there is no debouncing and no edge detection.
package input

import (
	"ubmp4-tones/errcode"
	"ubmp4-tones/services/board/internal/core"
)

type Entry[V comparable] struct {
	Name  string // e.g. "SW2"
	Pin   core.GPIOHandle
	Value V
}

type Table[V comparable] struct {
	entries []Entry[V]
	none    V
}

// NewTable builds a table. Entry order is the scan (and tie-break) order.
func NewTable[V comparable](none V, entries ...Entry[V]) (*Table[V], error) {
	if len(entries) == 0 {
		return nil, errcode.Wrap(errcode.InvalidParams, "input", "empty table")
	}
	seen := make(map[int]bool, len(entries))
	for _, e := range entries {
		if e.Pin == nil {
			return nil, errcode.Wrap(errcode.InvalidParams, "input", "nil pin for "+e.Name)
		}
		if seen[e.Pin.Number()] {
			return nil, errcode.Wrap(errcode.InvalidParams, "input", "duplicate pin for "+e.Name)
		}
		if e.Value == none {
			return nil, errcode.Wrap(errcode.InvalidParams, "input", "value of "+e.Name+" collides with none")
		}
		seen[e.Pin.Number()] = true
	}
	return &Table[V]{entries: append([]Entry[V](nil), entries...), none: none}, nil
}

func (t *Table[V]) None() V { return t.none }

// Pressed reports whether an active-low switch is held.
func Pressed(pin core.GPIOHandle) bool { return !pin.Get() }

// Lookup returns the first pressed entry in scan order.
func (t *Table[V]) Lookup() (Entry[V], bool) {
	for _, e := range t.entries {
		if Pressed(e.Pin) {
			return e, true
		}
	}
	return Entry[V]{}, false
}

// Sample returns the first pressed entry's value, or None.
func (t *Table[V]) Sample() V {
	if e, ok := t.Lookup(); ok {
		return e.Value
	}
	return t.none
}
