package types

import "math"

// Entry is one memoized value plus the number of lookups it has served
// since it was (re)inserted.
type Entry[V any] struct {
	Value      V
	UsageCount uint64
}

// NewEntry returns an entry with a fresh usage count.
func NewEntry[V any](value V) *Entry[V] {
	return &Entry[V]{Value: value}
}

// Touch records one successful lookup. The counter saturates instead of wrapping.
func (e *Entry[V]) Touch() {
	if e.UsageCount < math.MaxUint64 {
		e.UsageCount++
	}
}
