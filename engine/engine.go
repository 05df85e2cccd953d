package engine

import (
	"go.uber.org/zap"

	"github.com/programming086/calendar-unit-cache/config"
	"github.com/programming086/calendar-unit-cache/types"
)

/*
CacheEngine is the "brain" of the unit cache.
It is responsible for the "behavior" of the cache, NOT storage.
This acts as the policy layer.

It decides:
- When the aggregate size warrants a global purge
- Which purge factor to apply
- Whether record calls trigger the check
- How lookups, records and purges are reported (metrics, logs)

It does NOT:
- Store entries
- Lock anything
- Decide which entries survive a purge (that is the purging map's job)
*/
type CacheEngine struct {

	// SizeThreshold is the aggregate entry count above which a purge runs.
	SizeThreshold int

	// PurgeFactor is handed to every keyed cache on purge.
	PurgeFactor float64

	// PurgeOnWrite makes record calls run the threshold check.
	PurgeOnWrite bool

	// Metrics receives hit/miss/record/purge events. Never nil.
	Metrics types.Metrics

	// Logger reports purges and registrations. Never nil.
	Logger *zap.Logger
}

/*
NewCacheEngine creates a CacheEngine from a validated config.
*/
func NewCacheEngine(cfg config.Config, metrics types.Metrics, logger *zap.Logger) *CacheEngine {

	// Ensure metrics and logger are always non-nil
	// This avoids nil checks on the hot path
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CacheEngine{
		SizeThreshold: cfg.SizeThreshold,
		PurgeFactor:   cfg.PurgeFactor,
		PurgeOnWrite:  cfg.PurgeOnWrite,
		Metrics:       metrics,
		Logger:        logger,
	}
}

/*
ShouldPurge reports whether an aggregate of `entries` exceeds the threshold.
The size is also published, since computing it is the expensive part.
*/
func (e *CacheEngine) ShouldPurge(entries int) bool {
	e.Metrics.Size(entries)
	return entries > e.SizeThreshold
}

// OnLookup is called after every lookup on any unit cache.
func (e *CacheEngine) OnLookup(hit bool) {
	if hit {
		e.Metrics.Hit()
	} else {
		e.Metrics.Miss()
	}
}

// OnRecord is called once per dual write.
func (e *CacheEngine) OnRecord() {
	e.Metrics.Record()
}

/*
OnPurge is called after a purge with the aggregate size before it ran and the
number of entries it dropped.
*/
func (e *CacheEngine) OnPurge(before, removed int, factor float64) {
	e.Metrics.Purge(removed)
	e.Metrics.Size(before - removed)

	e.Logger.Info("calendar unit cache purged",
		zap.Int("entries_before", before),
		zap.Int("removed", removed),
		zap.Float64("factor", factor),
		zap.Int("threshold", e.SizeThreshold),
	)
}

// OnRegister is called when a unit type gets its cache.
func (e *CacheEngine) OnRegister(unitType string, compound bool) {
	e.Logger.Debug("calendar unit cache registered",
		zap.String("unit_type", unitType),
		zap.Bool("compound", compound),
	)
}
