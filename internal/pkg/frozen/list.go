// Package frozen provides an immutable list used for the array-valued fields of
// normalized entities. A List copies its input on construction and hands out
// copies on the way out, so two entities never share a mutable backing array.
package frozen

import (
	"encoding/json"
	"iter"
	"slices"
)

type List[T any] struct {
	items []T
}

// Of builds a List holding a copy of items.
func Of[T any](items ...T) List[T] {
	if len(items) == 0 {
		return List[T]{}
	}
	return List[T]{items: slices.Clone(items)}
}

func (l List[T]) Len() int { return len(l.items) }

// At returns the i-th element. It panics when i is out of range, like a slice index.
func (l List[T]) At(i int) T { return l.items[i] }

// Slice returns a fresh copy of the elements. Mutating it does not affect l.
func (l List[T]) Slice() []T {
	if l.items == nil {
		return []T{}
	}
	return slices.Clone(l.items)
}

func (l List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range l.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// With returns a new List with v appended. l is left untouched.
func (l List[T]) With(v ...T) List[T] {
	out := make([]T, 0, len(l.items)+len(v))
	out = append(out, l.items...)
	out = append(out, v...)
	return List[T]{items: out}
}

func (l List[T]) MarshalJSON() ([]byte, error) {
	if l.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}

func (l *List[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	l.items = items
	return nil
}

// Contains reports whether v is in l.
func Contains[T comparable](l List[T], v T) bool {
	return slices.Contains(l.items, v)
}

// Equal reports whether a and b hold the same elements in the same order.
func Equal[T comparable](a, b List[T]) bool {
	return slices.Equal(a.items, b.items)
}
