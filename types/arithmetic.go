package types

import "golang.org/x/exp/constraints"

// Stride is a signed distance between two calendar units of the same type.
type Stride interface {
	constraints.Signed
}

/*
Arithmetic is the contract between the cache and the calendar layer that owns the
real computation.

The cache never knows what "the next day" is. When a lookup misses, the memo asks
the Arithmetic, records the answer, and returns it:
 1. Memo checks the unit cache → miss
 2. Memo calls Distance(a, b)
 3. The calendar layer computes the answer
 4. Memo records it (distance AND advance, they are inverses)
 5. Memo returns the value

Implementations must be deterministic. Units must be stable values: a unit that is
recomputed later must compare equal to the one that was cached.
*/
type Arithmetic[U comparable, S Stride] interface {

	// Distance returns how many units of U lie between a and b (b - a).
	Distance(a, b U) S

	// Advance returns the unit `by` steps after a (before a when negative).
	Advance(a U, by S) U
}

/*
CompoundArithmetic is implemented by calendar layers whose units contain an
ordered sequence of smaller units (a week contains days).

IndexOf reports false when the element does not belong to the unit. That answer is
never cached: the cache's own "not present" already means "unknown".
*/
type CompoundArithmetic[U, E, I comparable] interface {
	ElementAt(unit U, index I) E
	IndexOf(unit U, element E) (I, bool)
}
