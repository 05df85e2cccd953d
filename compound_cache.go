package cache

import (
	"github.com/programming086/calendar-unit-cache/api"
	"github.com/programming086/calendar-unit-cache/types"
)

var (
	_ api.DistanceCache[int, int]     = (*CompoundCache[int, int, int, int])(nil)
	_ api.ElementCache[int, int, int] = (*CompoundCache[int, int, int, int])(nil)
	_ api.Purgeable                   = (*CompoundCache[int, int, int, int])(nil)
)

/*
CompoundCache is the UnitCache of a compound unit type: a unit that contains an
ordered sequence of smaller element units (a week of days).

On top of distances and advances it memoizes

	elements: (unit, index)   → element
	indexes:  (unit, element) → index

with the same dual-write rule.
*/
type CompoundCache[U comparable, S types.Stride, E, I comparable] struct {
	*UnitCache[U, S]

	elements *KeyedCache[U, I, E]
	indexes  *KeyedCache[U, E, I]
}

func newCompoundCache[U comparable, S types.Stride, E, I comparable](base *UnitCache[U, S]) *CompoundCache[U, S, E, I] {
	return &CompoundCache[U, S, E, I]{
		UnitCache: base,
		elements:  NewKeyedCache[U, I, E](),
		indexes:   NewKeyedCache[U, E, I](),
	}
}

// ElementAt returns the cached element of unit at index.
func (c *CompoundCache[U, S, E, I]) ElementAt(unit U, index I) (E, bool) {
	e, ok := c.elements.Get(unit, index)
	c.owner.engine.OnLookup(ok)
	return e, ok
}

// RecordElement stores that element sits at index inside unit, in both directions.
func (c *CompoundCache[U, S, E, I]) RecordElement(unit U, index I, element E) {
	c.elements.Set(unit, index, element)
	c.indexes.Set(unit, element, index)
	c.owner.afterRecord()
}

// IndexOf returns the cached index of element inside unit.
func (c *CompoundCache[U, S, E, I]) IndexOf(unit U, element E) (I, bool) {
	i, ok := c.indexes.Get(unit, element)
	c.owner.engine.OnLookup(ok)
	return i, ok
}

// RecordIndex is RecordElement seen from the index side.
func (c *CompoundCache[U, S, E, I]) RecordIndex(unit U, element E, index I) {
	c.indexes.Set(unit, element, index)
	c.elements.Set(unit, index, element)
	c.owner.afterRecord()
}

// TotalEntryCount returns the number of entries in all four keyed caches.
func (c *CompoundCache[U, S, E, I]) TotalEntryCount() int {
	return c.UnitCache.TotalEntryCount() + c.elements.Len() + c.indexes.Len()
}

// PurgeAll purges all four keyed caches with factor.
func (c *CompoundCache[U, S, E, I]) PurgeAll(factor float64) int {
	return c.UnitCache.PurgeAll(factor) + c.elements.Purge(factor) + c.indexes.Purge(factor)
}

// base exposes the embedded unit cache to the registry.
func (c *CompoundCache[U, S, E, I]) base() any {
	return c.UnitCache
}
