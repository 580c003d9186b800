// Package normalization maps loosely written configuration values onto
// typed enumerations.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Enum normalises raw strings into values of T. Matching ignores case and
// surrounding whitespace.
type Enum[T comparable] struct {
	name   string
	values map[string]T
	def    T
	keys   []string
}

// NewEnum creates an enum named name (used in warnings) with a fallback
// value for unknown input.
func NewEnum[T comparable](name string, values map[string]T, def T) *Enum[T] {
	e := &Enum[T]{name: name, values: make(map[string]T, len(values)), def: def}
	for k, v := range values {
		key := clean(k)
		e.values[key] = v
		e.keys = append(e.keys, key)
	}
	sort.Strings(e.keys)
	return e
}

// Lookup returns the value for raw and whether it was recognised.
func (e *Enum[T]) Lookup(raw string) (T, bool) {
	v, ok := e.values[clean(raw)]
	return v, ok
}

// Normalize returns the value for raw, or the fallback.
func (e *Enum[T]) Normalize(raw string) T {
	if v, ok := e.Lookup(raw); ok {
		return v
	}
	return e.def
}

// Keys returns the accepted spellings in sorted order.
func (e *Enum[T]) Keys() []string {
	return append([]string(nil), e.keys...)
}

// Result describes how a raw value was resolved.
type Result[T comparable] struct {
	Value   T
	Known   bool
	Changed bool   // raw differed from its canonical spelling
	Warning string // set when Changed or !Known
}

// Resolve normalises the value of field and explains any adjustment.
func (e *Enum[T]) Resolve(field, raw string) Result[T] {
	v, ok := e.Lookup(raw)
	if !ok {
		return Result[T]{
			Value:   e.def,
			Changed: true,
			Warning: fmt.Sprintf("unknown %s %q for %s, using %v (valid: %s)", e.name, raw, field, e.def, strings.Join(e.keys, ", ")),
		}
	}
	r := Result[T]{Value: v, Known: true}
	if c := clean(raw); c != raw {
		r.Changed = true
		r.Warning = fmt.Sprintf("normalized %s from %q to %q", field, raw, c)
	}
	return r
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
