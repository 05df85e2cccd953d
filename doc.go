/*
Package cache memoizes calendar-unit arithmetic.

Computing "how many weeks between these two weeks" or "which day is the 3rd of this
week" is expensive compared to a map lookup, and calendar views ask the same
questions over and over. This package remembers the answers.

Layers, leaf first:
  - storage.Storage: a value behind a mutex, accessed through callbacks
  - eviction.PurgingMap: a map that counts reads and can drop rarely read entries
  - KeyedCache: one PurgingMap behind one Storage, keyed by (unit, complement)
  - UnitCache / CompoundCache: the keyed caches of one unit type
  - Registry: one unit cache per unit type plus the global size budget

The cache is never the source of truth. Any entry may disappear on a purge, and a
lookup that misses just means "recompute". A lookup that hits always returns the
value recorded for exactly that key.

# Usage

	days := cache.Shared[calunit.Day, int]()
	if d, ok := days.DistanceBetween(a, b); ok {
		return d
	}
	d := computeDistance(a, b)
	days.RecordDistance(a, d, b)

Memo wraps that pattern around a types.Arithmetic.

# Concurrency

Every method is safe for concurrent use. Each keyed cache has its own lock, so the
two halves of a record call are written one after the other; readers in between
see a miss, never a wrong value.

# Memory

After every record call the registry compares the summed entry count of all unit
types with config.Config.SizeThreshold and, when exceeded, purges every keyed cache
of every unit type. Hosts can turn that off and schedule purges themselves (see
package idle).
*/
package cache
