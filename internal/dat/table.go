// Package dat implements a direct address table: an array-backed map whose
// keys are dense integers computed from the stored value itself.
package dat

import (
	"fmt"
	"iter"
)

// KeyFunc computes the dense key of a value. It must be a bijection onto
// [0, capacity) for the values stored in one table.
type KeyFunc[T any] func(*T) int

// Table stores at most one value per key in O(1).
type Table[T any] struct {
	slots []*T
	key   KeyFunc[T]
	size  int
}

// New creates a table for keys in [0, capacity).
func New[T any](capacity int, key KeyFunc[T]) *Table[T] {
	if capacity < 0 {
		panic(fmt.Sprintf("dat: negative capacity %d", capacity))
	}
	return &Table[T]{
		slots: make([]*T, capacity),
		key:   key,
	}
}

// Cap returns the number of addressable keys.
func (t *Table[T]) Cap() int {
	return len(t.slots)
}

// Len returns the number of stored values.
func (t *Table[T]) Len() int {
	return t.size
}

// Get returns the value stored under key, or nil.
func (t *Table[T]) Get(key int) *T {
	t.check(key)
	return t.slots[key]
}

// Insert stores v under its own key, replacing any previous value.
func (t *Table[T]) Insert(v *T) {
	k := t.key(v)
	t.check(k)
	if t.slots[k] == nil {
		t.size++
	}
	t.slots[k] = v
}

// Delete removes the value sharing v's key.
func (t *Table[T]) Delete(v *T) {
	k := t.key(v)
	t.check(k)
	if t.slots[k] != nil {
		t.size--
	}
	t.slots[k] = nil
}

// All yields the stored values in key order.
func (t *Table[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for k, v := range t.slots {
			if v == nil {
				continue
			}
			if !yield(k, v) {
				return
			}
		}
	}
}

func (t *Table[T]) check(key int) {
	if key < 0 || key >= len(t.slots) {
		panic(fmt.Sprintf("dat: key %d out of range [0, %d)", key, len(t.slots)))
	}
}
