// This file implements frequency-based purging.

package eviction

import (
	"math"

	"github.com/programming086/calendar-unit-cache/types"
)

/*
PurgingMap is a plain key → value map where every entry counts how many times it was read.

It never evicts on its own. Eviction happens only when someone calls Purge, which drops
every entry used noticeably less than the hottest one:

	threshold = floor(maxUsage * factor)
	keep entry  ⇔  entry.UsageCount >= threshold

Only frequency matters. Recency is ignored, so an entry that was hot long
ago survives until a purge finds something hotter.

PurgingMap is NOT safe for concurrent use. Wrap it in a storage.Storage.
*/
type PurgingMap[K comparable, V any] struct {
	entries map[K]*types.Entry[V]
}

// NewPurgingMap creates an empty map. sizeHint pre-sizes the underlying map.
func NewPurgingMap[K comparable, V any](sizeHint int) PurgingMap[K, V] {
	return PurgingMap[K, V]{entries: make(map[K]*types.Entry[V], sizeHint)}
}

// Get returns the value for key and counts the lookup.
func (m *PurgingMap[K, V]) Get(key K) (V, bool) {
	ent, ok := m.entries[key]
	if !ok {
		var zero V
		return zero, false
	}

	ent.Touch()
	return ent.Value, true
}

// Set inserts or overwrites key. The usage count always restarts at zero.
func (m *PurgingMap[K, V]) Set(key K, value V) {
	if m.entries == nil {
		m.entries = make(map[K]*types.Entry[V])
	}
	m.entries[key] = types.NewEntry(value)
}

// Delete removes key. Deleting an absent key is a no-op.
func (m *PurgingMap[K, V]) Delete(key K) {
	delete(m.entries, key)
}

// Len returns the number of live entries.
func (m *PurgingMap[K, V]) Len() int {
	return len(m.entries)
}

// UsageCount exposes the counter of key without touching it.
func (m *PurgingMap[K, V]) UsageCount(key K) (uint64, bool) {
	ent, ok := m.entries[key]
	if !ok {
		return 0, false
	}
	return ent.UsageCount, true
}

/*
Purge drops entries whose usage is below floor(maxUsage * factor) and returns how many
were dropped.

  - Empty map: nothing happens.
  - factor is clamped to [0, 1].
  - Survivors keep their counters untouched.
  - The hottest entry always survives, because maxUsage >= threshold.
*/
func (m *PurgingMap[K, V]) Purge(factor float64) int {
	if len(m.entries) == 0 {
		return 0
	}

	var maxUsage uint64
	for _, ent := range m.entries {
		if ent.UsageCount > maxUsage {
			maxUsage = ent.UsageCount
		}
	}

	threshold := Threshold(maxUsage, factor)
	if threshold == 0 {
		return 0
	}

	removed := 0
	for key, ent := range m.entries {
		if ent.UsageCount < threshold {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// Threshold computes floor(maxUsage * factor) with factor clamped to [0, 1].
func Threshold(maxUsage uint64, factor float64) uint64 {
	switch {
	case math.IsNaN(factor) || factor <= 0:
		return 0
	case factor >= 1:
		return maxUsage
	}
	t := math.Floor(float64(maxUsage) * factor)
	if t >= float64(maxUsage) {
		// float64 rounding near MaxUint64
		return maxUsage
	}
	return uint64(t)
}
