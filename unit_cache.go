package cache

import (
	"github.com/programming086/calendar-unit-cache/api"
	"github.com/programming086/calendar-unit-cache/types"
)

var (
	_ api.DistanceCache[int, int] = (*UnitCache[int, int])(nil)
	_ api.Purgeable               = (*UnitCache[int, int])(nil)
)

/*
UnitCache holds the memoized arithmetic of one unit type U with stride S.

It owns exactly two keyed caches that describe one relation from both sides:

	distances: (a, b) → d
	advances:  (a, d) → b

Every record call writes both and then lets the owning registry decide whether the
global budget is exceeded.

Consistency:
------------
The two keyed caches are locked independently. A reader on another goroutine may
see the distance before the advance (or the other way round). That reader just
misses and recomputes; it can never read a wrong value, because every entry that
exists was recorded for exactly its key.

Obtain a UnitCache through UnitCacheFor; there is exactly one per unit type and registry.
*/
type UnitCache[U comparable, S types.Stride] struct {
	distances *KeyedCache[U, U, S]
	advances  *KeyedCache[U, S, U]

	// owner is notified after every record call.
	owner *Registry
}

func newUnitCache[U comparable, S types.Stride](owner *Registry) *UnitCache[U, S] {
	return &UnitCache[U, S]{
		distances: NewKeyedCache[U, U, S](),
		advances:  NewKeyedCache[U, S, U](),
		owner:     owner,
	}
}

// DistanceBetween returns the cached distance from a to b. No computation happens here.
func (c *UnitCache[U, S]) DistanceBetween(a, b U) (S, bool) {
	d, ok := c.distances.Get(a, b)
	c.owner.engine.OnLookup(ok)
	return d, ok
}

// RecordDistance stores that b is d units after a, in both directions.
func (c *UnitCache[U, S]) RecordDistance(a U, d S, b U) {
	c.distances.Set(a, b, d)
	c.advances.Set(a, d, b)
	c.owner.afterRecord()
}

// AdvancedUnit returns the cached unit `by` steps after a.
func (c *UnitCache[U, S]) AdvancedUnit(a U, by S) (U, bool) {
	u, ok := c.advances.Get(a, by)
	c.owner.engine.OnLookup(ok)
	return u, ok
}

// RecordAdvance stores that a advanced by `by` is b. Same fact as RecordDistance(a, by, b).
func (c *UnitCache[U, S]) RecordAdvance(a, b U, by S) {
	c.advances.Set(a, by, b)
	c.distances.Set(a, b, by)
	c.owner.afterRecord()
}

// TotalEntryCount returns the number of entries in both keyed caches.
func (c *UnitCache[U, S]) TotalEntryCount() int {
	return c.distances.Len() + c.advances.Len()
}

// PurgeAll purges both keyed caches with factor.
func (c *UnitCache[U, S]) PurgeAll(factor float64) int {
	return c.distances.Purge(factor) + c.advances.Purge(factor)
}
