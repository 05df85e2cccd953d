package types

// This file defines how the cache reports what it is doing.

/*
Metrics is an interface that defines what the cache wants to measure.
Each method represents an event in the cache lifecycle. The cache will call these methods whenever something happens.
*/
type Metrics interface {

	// Hit is called when a lookup returns a memoized value.
	Hit()

	// Miss is called when a lookup finds nothing and the caller has to recompute.
	Miss()

	// Record is called once per record call (one dual write).
	Record()

	// Purge is called after a global purge with the number of entries it dropped.
	Purge(removed int)

	// Size is called with the aggregate entry count whenever it is computed.
	Size(entries int)
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

Callers that do not care about metrics still get a working cache without
nil checks on the hot path.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()      {}
func (NoopMetrics) Miss()     {}
func (NoopMetrics) Record()   {}
func (NoopMetrics) Purge(int) {}
func (NoopMetrics) Size(int)  {}
