package cache

import (
	"hash/maphash"

	"github.com/programming086/calendar-unit-cache/eviction"
	"github.com/programming086/calendar-unit-cache/storage"
)

// initialCapacity pre-sizes every keyed cache; most of them grow to this
// size before the first global purge.
const initialCapacity = 1024

/*
Key pairs a calendar unit with the value it is related to: another unit, a stride,
an element or an index.

Two keys are equal when both halves are equal. Complement is declared (and hashed)
first and Unit last: consecutive units of one calendar tend to have clustered
hashes, and mixing the complement in first spreads them out.
*/
type Key[U, C comparable] struct {
	Complement C
	Unit       U
}

// NewKey builds the key for unit paired with complement.
func NewKey[U, C comparable](unit U, complement C) Key[U, C] {
	return Key[U, C]{Complement: complement, Unit: unit}
}

// Hash combines the hashes of both halves, complement first.
// The built-in map already hashes Key this way; Hash exists for callers that
// need a stable per-seed fingerprint.
func (k Key[U, C]) Hash(seed maphash.Seed) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	maphash.WriteComparable(&h, k.Complement)
	maphash.WriteComparable(&h, k.Unit)
	return h.Sum64()
}

/*
KeyedCache is one memoized relation of one unit type, e.g. "distance between two
days". It is a PurgingMap behind its own mutex.

Each KeyedCache is an independent lock domain: the distance and advance caches of
the same unit type never contend with each other.
*/
type KeyedCache[U, C comparable, V any] struct {
	store *storage.Storage[eviction.PurgingMap[Key[U, C], V]]
}

// NewKeyedCache creates an empty keyed cache.
func NewKeyedCache[U, C comparable, V any]() *KeyedCache[U, C, V] {
	return &KeyedCache[U, C, V]{
		store: storage.New(eviction.NewPurgingMap[Key[U, C], V](initialCapacity)),
	}
}

// Get returns the value cached for (unit, complement) and counts the hit.
func (c *KeyedCache[U, C, V]) Get(unit U, complement C) (V, bool) {
	key := NewKey(unit, complement)

	var (
		value V
		ok    bool
	)
	c.store.Update(func(m *eviction.PurgingMap[Key[U, C], V]) {
		value, ok = m.Get(key)
	})
	return value, ok
}

// Set stores value for (unit, complement) with a fresh usage count.
func (c *KeyedCache[U, C, V]) Set(unit U, complement C, value V) {
	key := NewKey(unit, complement)
	c.store.Update(func(m *eviction.PurgingMap[Key[U, C], V]) {
		m.Set(key, value)
	})
}

// Remove drops (unit, complement) if present.
func (c *KeyedCache[U, C, V]) Remove(unit U, complement C) {
	key := NewKey(unit, complement)
	c.store.Update(func(m *eviction.PurgingMap[Key[U, C], V]) {
		m.Delete(key)
	})
}

// Len returns the number of cached entries.
func (c *KeyedCache[U, C, V]) Len() int {
	return storage.With(c.store, func(m *eviction.PurgingMap[Key[U, C], V]) int {
		return m.Len()
	})
}

// Purge drops rarely used entries; see eviction.PurgingMap.Purge.
func (c *KeyedCache[U, C, V]) Purge(factor float64) int {
	return storage.With(c.store, func(m *eviction.PurgingMap[Key[U, C], V]) int {
		return m.Purge(factor)
	})
}
