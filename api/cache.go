package api

/*
This file defines the PUBLIC contract between the calendar layer and the unit cache.
The calendar layer only ever talks to these interfaces; how entries are stored,
locked, counted and purged stays hidden behind them.

A lookup either returns a value or reports "not present". Neither is an error:
"not present" simply means "recompute".
*/

/*
DistanceCache memoizes the distance/advance relation of one unit type.

BEHAVIOR:
---------
  - RecordDistance(a, d, b) and RecordAdvance(a, b, d) are the same fact seen from two
    sides. Both populate DistanceBetween(a, b) and AdvancedUnit(a, d).
  - A value returned by a lookup is always one that was recorded for exactly that key.
  - A lookup may miss at any time (purged, or the other side not written yet).
*/
type DistanceCache[U comparable, S any] interface {

	// DistanceBetween returns the cached distance from a to b.
	DistanceBetween(a, b U) (S, bool)

	// RecordDistance stores that b is d units after a.
	RecordDistance(a U, d S, b U)

	// AdvancedUnit returns the cached unit `by` steps after a.
	AdvancedUnit(a U, by S) (U, bool)

	// RecordAdvance stores that advancing a by `by` yields b.
	RecordAdvance(a, b U, by S)
}

/*
ElementCache memoizes the element/index relation of a compound unit type
(a unit that contains an ordered sequence of smaller units).

RecordElement and RecordIndex are, like their distance counterparts, two views of
one fact and populate both lookups.
*/
type ElementCache[U, E, I comparable] interface {
	ElementAt(unit U, index I) (E, bool)
	RecordElement(unit U, index I, element E)
	IndexOf(unit U, element E) (I, bool)
	RecordIndex(unit U, element E, index I)
}

/*
Purgeable is what the registry needs from every per-type cache to keep the global
memory budget: how big it is, and a way to shrink it.
*/
type Purgeable interface {

	// TotalEntryCount sums the entries of every keyed cache owned by the unit cache.
	TotalEntryCount() int

	// PurgeAll purges every owned keyed cache with factor and returns how many
	// entries were dropped.
	PurgeAll(factor float64) int
}
