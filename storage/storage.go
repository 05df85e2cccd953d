package storage

import "sync"

/*
This file defines the smallest building block of the cache: a value guarded by a mutex.

Every other component (keyed caches, the registry) keeps its state inside a Storage
and only touches it through a callback. While the callback runs, nobody else can
read or write the value.

Storage is NOT reentrant. Calling back into the same Storage from inside a callback
deadlocks. Callbacks must be short: they run on the hot path of every cache call.
*/

// Storage owns exactly one value of type T and serializes all access to it.
type Storage[T any] struct {

	// mu serializes readers and writers alike.
	// Reads on the cache mutate usage counters, so a RWMutex would buy nothing.
	mu sync.Mutex

	value T
}

// New wraps value in a Storage.
func New[T any](value T) *Storage[T] {
	return &Storage[T]{value: value}
}

// Update grants exclusive, mutable access to the stored value for the duration of fn.
// Changes made through the pointer are kept.
func (s *Storage[T]) Update(fn func(value *T)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.value)
}

// With is Update with a result. fn may mutate the value.
func With[T, R any](s *Storage[T], fn func(value *T) R) R {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(&s.value)
}

// View computes a derived value from a copy of the stored value.
// Reference types inside T (maps, slices) are shared with the stored value,
// so fn must treat them as read-only.
func View[T, R any](s *Storage[T], fn func(value T) R) R {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.value)
}
