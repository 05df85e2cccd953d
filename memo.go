package cache

import (
	"github.com/programming086/calendar-unit-cache/api"
	"github.com/programming086/calendar-unit-cache/types"
)

/*
Memo is the read-through face of a unit cache: it answers distance/advance
questions from the cache and falls back to the calendar arithmetic on a miss.

Flow of Distance(a, b):
-----------------------
 1. Look up the cache → hit: return it
 2. Miss: ask the Arithmetic
 3. Record the answer (which also fills the advance side)
 4. Return the computed value

Concurrent misses on the same key compute independently; the arithmetic is
deterministic, so the last write simply stores the same answer again.
*/
type Memo[U comparable, S types.Stride] struct {
	cache api.DistanceCache[U, S]
	arith types.Arithmetic[U, S]
}

// NewMemo binds a distance cache to the arithmetic that backs it.
func NewMemo[U comparable, S types.Stride](cache api.DistanceCache[U, S], arith types.Arithmetic[U, S]) *Memo[U, S] {
	return &Memo[U, S]{cache: cache, arith: arith}
}

// Distance returns b - a in units of U.
func (m *Memo[U, S]) Distance(a, b U) S {
	if d, ok := m.cache.DistanceBetween(a, b); ok {
		return d
	}

	d := m.arith.Distance(a, b)
	m.cache.RecordDistance(a, d, b)
	return d
}

// Advance returns the unit `by` steps after a.
func (m *Memo[U, S]) Advance(a U, by S) U {
	if u, ok := m.cache.AdvancedUnit(a, by); ok {
		return u
	}

	u := m.arith.Advance(a, by)
	m.cache.RecordAdvance(a, u, by)
	return u
}

// CompoundMemo adds element/index memoization to Memo.
type CompoundMemo[U comparable, S types.Stride, E, I comparable] struct {
	*Memo[U, S]

	elements api.ElementCache[U, E, I]
	arith    types.CompoundArithmetic[U, E, I]
}

// NewCompoundMemo binds a compound cache to both arithmetics of its unit type.
func NewCompoundMemo[U comparable, S types.Stride, E, I comparable](
	cache *CompoundCache[U, S, E, I],
	arith types.Arithmetic[U, S],
	compound types.CompoundArithmetic[U, E, I],
) *CompoundMemo[U, S, E, I] {
	return &CompoundMemo[U, S, E, I]{
		Memo:     NewMemo[U, S](cache, arith),
		elements: cache,
		arith:    compound,
	}
}

// ElementAt returns the element of unit at index.
func (m *CompoundMemo[U, S, E, I]) ElementAt(unit U, index I) E {
	if e, ok := m.elements.ElementAt(unit, index); ok {
		return e
	}

	e := m.arith.ElementAt(unit, index)
	m.elements.RecordElement(unit, index, e)
	return e
}

// IndexOf returns the index of element inside unit.
// "Not contained" is passed through and never cached.
func (m *CompoundMemo[U, S, E, I]) IndexOf(unit U, element E) (I, bool) {
	if i, ok := m.elements.IndexOf(unit, element); ok {
		return i, true
	}

	i, ok := m.arith.IndexOf(unit, element)
	if !ok {
		return i, false
	}
	m.elements.RecordIndex(unit, element, i)
	return i, true
}
