// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package optional implements a value that may or may not be set.
// Queue family discovery needs to distinguish "family zero" from
// "no family found", which a bare integer cannot express.
package optional

// Optional holds a value of type T and remembers whether it was set.
// The zero value is empty.
type Optional[T any] struct {
	value T
	set   bool
}

// Of returns an Optional holding v.
func Of[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Set stores v.
func (o *Optional[T]) Set(v T) {
	o.value = v
	o.set = true
}

// HasValue reports whether a value was stored.
func (o Optional[T]) HasValue() bool {
	return o.set
}

// Get returns the stored value. It panics when no value was set,
// which indicates a programming error on the caller's side.
func (o Optional[T]) Get() T {
	if !o.set {
		panic("optional: Get on empty Optional")
	}
	return o.value
}
