package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cache "github.com/programming086/calendar-unit-cache"
	"github.com/programming086/calendar-unit-cache/internal/calunit"
)

//
// ================= DISTANCE / ADVANCE =================
//

func TestRecordDistanceFillsBothDirections(t *testing.T) {
	days := cache.UnitCacheFor[calunit.Day, int](newTestRegistry(t))
	a := calunit.Date(2024, time.February, 27)
	b := calunit.Date(2024, time.March, 2)

	_, ok := days.DistanceBetween(a, b)
	assert.False(t, ok)

	days.RecordDistance(a, 4, b)

	d, ok := days.DistanceBetween(a, b)
	require.True(t, ok)
	assert.Equal(t, 4, d)

	u, ok := days.AdvancedUnit(a, 4)
	require.True(t, ok)
	assert.Equal(t, b, u)

	// the reverse relation was never recorded
	_, ok = days.DistanceBetween(b, a)
	assert.False(t, ok)
}

func TestRecordAdvanceFillsBothDirections(t *testing.T) {
	days := cache.UnitCacheFor[calunit.Day, int](newTestRegistry(t))
	a := calunit.Date(2024, time.December, 30)
	b := calunit.Date(2025, time.January, 2)

	days.RecordAdvance(a, b, 3)

	d, ok := days.DistanceBetween(a, b)
	require.True(t, ok)
	assert.Equal(t, 3, d)

	u, ok := days.AdvancedUnit(a, 3)
	require.True(t, ok)
	assert.Equal(t, b, u)
}

func TestNegativeDistance(t *testing.T) {
	days := cache.UnitCacheFor[calunit.Day, int](newTestRegistry(t))
	a := calunit.Date(2024, time.March, 2)
	b := calunit.Date(2024, time.February, 27)

	days.RecordDistance(a, -4, b)

	u, ok := days.AdvancedUnit(a, -4)
	require.True(t, ok)
	assert.Equal(t, b, u)
}

func TestUnitCacheEntryCount(t *testing.T) {
	days := cache.UnitCacheFor[calunit.Day, int](newTestRegistry(t))
	a := calunit.Date(2024, time.January, 1)

	assert.Zero(t, days.TotalEntryCount())

	days.RecordDistance(a, 1, calunit.DayArithmetic{}.Advance(a, 1))
	assert.Equal(t, 2, days.TotalEntryCount())

	// same fact again overwrites instead of adding
	days.RecordAdvance(a, calunit.DayArithmetic{}.Advance(a, 1), 1)
	assert.Equal(t, 2, days.TotalEntryCount())
}

func TestUnitCachePurgeAll(t *testing.T) {
	days := cache.UnitCacheFor[int, int](newTestRegistry(t))
	days.RecordDistance(0, 1, 1)
	days.RecordDistance(0, 2, 2)

	for i := 0; i < 4; i++ {
		days.DistanceBetween(0, 1)
	}

	// only the distance side was read, so only its cold entry goes
	assert.Equal(t, 1, days.PurgeAll(0.5))
	assert.Equal(t, 3, days.TotalEntryCount())

	_, ok := days.DistanceBetween(0, 2)
	assert.False(t, ok)
	_, ok = days.AdvancedUnit(0, 2)
	assert.True(t, ok)
}

//
// ================= COMPOUND UNITS =================
//

func TestRecordElementFillsBothDirections(t *testing.T) {
	weeks := cache.CompoundCacheFor[calunit.Week, int, calunit.Day, int](newTestRegistry(t))
	w := calunit.WeekOf(calunit.Date(2018, time.March, 14))
	friday := calunit.Date(2018, time.March, 16)

	_, ok := weeks.ElementAt(w, 4)
	assert.False(t, ok)

	weeks.RecordElement(w, 4, friday)

	e, ok := weeks.ElementAt(w, 4)
	require.True(t, ok)
	assert.Equal(t, friday, e)

	i, ok := weeks.IndexOf(w, friday)
	require.True(t, ok)
	assert.Equal(t, 4, i)
}

func TestRecordIndexFillsBothDirections(t *testing.T) {
	weeks := cache.CompoundCacheFor[calunit.Week, int, calunit.Day, int](newTestRegistry(t))
	w := calunit.WeekOf(calunit.Date(2018, time.March, 14))
	monday := w.Start()

	weeks.RecordIndex(w, monday, 0)

	e, ok := weeks.ElementAt(w, 0)
	require.True(t, ok)
	assert.Equal(t, monday, e)
}

func TestCompoundCacheCountsAllFourCaches(t *testing.T) {
	weeks := cache.CompoundCacheFor[calunit.Week, int, calunit.Day, int](newTestRegistry(t))
	var arith calunit.WeekArithmetic
	w := calunit.WeekOf(calunit.Date(2018, time.March, 14))

	weeks.RecordDistance(w, 1, arith.Advance(w, 1))
	weeks.RecordElement(w, 2, arith.ElementAt(w, 2))

	assert.Equal(t, 4, weeks.TotalEntryCount())
	assert.Zero(t, weeks.PurgeAll(0.5))
}
