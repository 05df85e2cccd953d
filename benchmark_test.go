package cache_test

import (
	"sync"
	"testing"

	cache "github.com/programming086/calendar-unit-cache"
	"github.com/programming086/calendar-unit-cache/config"
	"github.com/programming086/calendar-unit-cache/internal/calunit"
)

func newBenchmarkDays(b *testing.B, threshold int) *cache.UnitCache[calunit.Day, int] {
	cfg := config.Default()
	cfg.SizeThreshold = threshold

	r, err := cache.NewRegistry(cache.WithConfig(cfg))
	if err != nil {
		b.Fatal(err)
	}
	return cache.UnitCacheFor[calunit.Day, int](r)
}

//
// ================= SINGLE THREAD BENCH =================
//

func BenchmarkDistanceHit(b *testing.B) {
	days := newBenchmarkDays(b, config.DefaultSizeThreshold)
	var arith calunit.DayArithmetic
	epoch := calunit.Date(2024, 1, 1)

	days.RecordDistance(epoch, 30, arith.Advance(epoch, 30))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		days.DistanceBetween(epoch, arith.Advance(epoch, 30))
	}
}

func BenchmarkDistanceMiss(b *testing.B) {
	days := newBenchmarkDays(b, config.DefaultSizeThreshold)
	var arith calunit.DayArithmetic
	epoch := calunit.Date(2024, 1, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		days.DistanceBetween(epoch, arith.Advance(epoch, i))
	}
}

//
// ================= WRITE BENCH =================
//

// Every record past the threshold runs the global check; this measures purge overhead.
func BenchmarkRecordDistance(b *testing.B) {
	days := newBenchmarkDays(b, 4096)
	var arith calunit.DayArithmetic
	epoch := calunit.Date(2024, 1, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		days.RecordDistance(epoch, i, arith.Advance(epoch, i))
	}
}

//
// ================= PARALLEL BENCH =================
//

func BenchmarkParallelMemo(b *testing.B) {
	days := cache.NewMemo[calunit.Day, int](newBenchmarkDays(b, config.DefaultSizeThreshold), calunit.DayArithmetic{})
	epoch := calunit.Date(2024, 1, 1)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			days.Advance(epoch, i%365)
			i++
		}
	})
}

//
// ================= HIGH CONCURRENCY TEST =================
//

func BenchmarkHighConcurrency(b *testing.B) {
	days := cache.NewMemo[calunit.Day, int](newBenchmarkDays(b, config.DefaultSizeThreshold), calunit.DayArithmetic{})
	epoch := calunit.Date(2024, 1, 1)

	b.ResetTimer()

	wg := sync.WaitGroup{}
	for g := 0; g < 100; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < b.N/100; j++ {
				days.Distance(epoch, calunit.DayArithmetic{}.Advance(epoch, (id+j)%1000))
			}
		}(g)
	}
	wg.Wait()
}
