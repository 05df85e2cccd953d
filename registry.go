package cache

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/programming086/calendar-unit-cache/api"
	"github.com/programming086/calendar-unit-cache/config"
	"github.com/programming086/calendar-unit-cache/engine"
	"github.com/programming086/calendar-unit-cache/storage"
	"github.com/programming086/calendar-unit-cache/types"
)

// purgeFlight is the single singleflight key every global purge runs under.
const purgeFlight = "purge"

/*
Registry owns one unit cache per unit type and keeps the sum of all of them under
the configured size threshold.

Unit caches are created lazily, on the first UnitCacheFor / CompoundCacheFor call for
their type, and are never removed. The registry lock is held only while looking up
or inserting a cache, never while a cache is used, so unrelated unit types never
serialize against each other.

Most programs use the process-wide instance returned by Default. Separate registries
are useful in tests and for hosts that want isolated budgets.
*/
type Registry struct {

	// engine holds the purge policy, metrics and logger.
	engine *engine.CacheEngine

	// caches maps the reflect.Type of a unit to its *UnitCache or *CompoundCache.
	caches *storage.Storage[map[reflect.Type]api.Purgeable]

	// sf collapses purges triggered concurrently by many writers into one.
	sf singleflight.Group
}

// Option configures a Registry.
type Option func(*registryOptions)

type registryOptions struct {
	cfg     config.Config
	metrics types.Metrics
	logger  *zap.Logger
}

// WithConfig replaces the default tuning constants.
func WithConfig(cfg config.Config) Option {
	return func(o *registryOptions) {
		o.cfg = cfg
	}
}

// WithMetrics reports cache activity to m. A nil m is ignored.
func WithMetrics(m types.Metrics) Option {
	return func(o *registryOptions) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithLogger sets the logger used for purge and registration events.
func WithLogger(l *zap.Logger) Option {
	return func(o *registryOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewRegistry creates an empty registry. It fails only on an invalid config.
func NewRegistry(opts ...Option) (*Registry, error) {
	o := registryOptions{cfg: config.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new unit cache registry: %w", err)
	}

	return &Registry{
		engine: engine.NewCacheEngine(o.cfg, o.metrics, o.logger),
		caches: storage.New(make(map[reflect.Type]api.Purgeable)),
	}, nil
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
})

/*
Default returns the process-wide registry.

It is created on first use with config.Default() and lives until the process exits.
There is no way to reset or reconfigure it: cached entries are only ever dropped by
purges. Code that needs different tuning creates its own Registry.
*/
func Default() *Registry {
	return defaultRegistry()
}

/*
UnitCacheFor returns the unit cache of U in r, creating it on first use.

Every call for the same U returns the same instance. If U was registered as a
compound unit, the compound cache's distance/advance part is returned, so both
views share state.

Registering U with two different stride types is a programming error and panics.
*/
func UnitCacheFor[U comparable, S types.Stride](r *Registry) *UnitCache[U, S] {
	t := reflect.TypeFor[U]()

	created := false
	c := storage.With(r.caches, func(caches *map[reflect.Type]api.Purgeable) *UnitCache[U, S] {
		switch existing := (*caches)[t].(type) {
		case nil:
			uc := newUnitCache[U, S](r)
			(*caches)[t] = uc
			created = true
			return uc
		case *UnitCache[U, S]:
			return existing
		case interface{ base() any }:
			if uc, ok := existing.base().(*UnitCache[U, S]); ok {
				return uc
			}
		}
		panic(shapeMismatch(t, (*caches)[t], reflect.TypeFor[*UnitCache[U, S]]()))
	})

	if created {
		r.engine.OnRegister(t.String(), false)
	}
	return c
}

/*
CompoundCacheFor returns the compound cache of U in r, creating it on first use.

If U already has a plain unit cache, the slot is upgraded in place: the new compound
cache reuses the existing distance/advance state, and later UnitCacheFor calls keep
returning that same state.
*/
func CompoundCacheFor[U comparable, S types.Stride, E, I comparable](r *Registry) *CompoundCache[U, S, E, I] {
	t := reflect.TypeFor[U]()

	created := false
	c := storage.With(r.caches, func(caches *map[reflect.Type]api.Purgeable) *CompoundCache[U, S, E, I] {
		switch existing := (*caches)[t].(type) {
		case nil:
			cc := newCompoundCache[U, S, E, I](newUnitCache[U, S](r))
			(*caches)[t] = cc
			created = true
			return cc
		case *CompoundCache[U, S, E, I]:
			return existing
		case *UnitCache[U, S]:
			cc := newCompoundCache[U, S, E, I](existing)
			(*caches)[t] = cc
			created = true
			return cc
		}
		panic(shapeMismatch(t, (*caches)[t], reflect.TypeFor[*CompoundCache[U, S, E, I]]()))
	})

	if created {
		r.engine.OnRegister(t.String(), true)
	}
	return c
}

// Shared is UnitCacheFor on the Default registry.
func Shared[U comparable, S types.Stride]() *UnitCache[U, S] {
	return UnitCacheFor[U, S](Default())
}

// SharedCompound is CompoundCacheFor on the Default registry.
func SharedCompound[U comparable, S types.Stride, E, I comparable]() *CompoundCache[U, S, E, I] {
	return CompoundCacheFor[U, S, E, I](Default())
}

func shapeMismatch(unit reflect.Type, existing any, requested reflect.Type) string {
	return fmt.Sprintf("calendar unit cache: %v is registered as %T, requested %v", unit, existing, requested)
}

// UnitTypes returns how many unit types have a cache.
func (r *Registry) UnitTypes() int {
	return storage.View(r.caches, func(caches map[reflect.Type]api.Purgeable) int {
		return len(caches)
	})
}

// members snapshots the registered caches so they can be used without the registry lock.
func (r *Registry) members() []api.Purgeable {
	return storage.View(r.caches, func(caches map[reflect.Type]api.Purgeable) []api.Purgeable {
		out := make([]api.Purgeable, 0, len(caches))
		for _, c := range caches {
			out = append(out, c)
		}
		return out
	})
}

/*
AggregateSize sums the entry counts of every registered cache.

It is recomputed on every call. Caches keep changing while it runs, so the result is
a close estimate, which is all the purge check needs.
*/
func (r *Registry) AggregateSize() int {
	total := 0
	for _, c := range r.members() {
		total += c.TotalEntryCount()
	}
	return total
}

// PurgeAll purges every registered cache with factor and returns the number of dropped entries.
func (r *Registry) PurgeAll(factor float64) int {
	removed := 0
	for _, c := range r.members() {
		removed += c.PurgeAll(factor)
	}
	return removed
}

/*
PurgeIfNeeded purges every registered cache with the configured factor when the
aggregate size exceeds the configured threshold. It reports whether a purge ran.

Writers calling it concurrently share one purge. The check is not exact: a few
entries may be added past the threshold before the purge runs.
*/
func (r *Registry) PurgeIfNeeded() bool {
	if !r.engine.ShouldPurge(r.AggregateSize()) {
		return false
	}

	purged, _, _ := r.sf.Do(purgeFlight, func() (any, error) {
		// another flight may have purged between the check and here
		before := r.AggregateSize()
		if !r.engine.ShouldPurge(before) {
			return false, nil
		}

		factor := r.engine.PurgeFactor
		removed := r.PurgeAll(factor)
		r.engine.OnPurge(before, removed, factor)
		return true, nil
	})
	return purged.(bool)
}

// afterRecord runs after every dual write of any unit cache owned by r.
func (r *Registry) afterRecord() {
	r.engine.OnRecord()
	if r.engine.PurgeOnWrite {
		r.PurgeIfNeeded()
	}
}
