package main

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	cache "github.com/programming086/calendar-unit-cache"
	"github.com/programming086/calendar-unit-cache/config"
	"github.com/programming086/calendar-unit-cache/internal/calunit"
)

// ================= BENCHMARK =================

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	fmt.Println("\n================ UNIT CACHE LOAD BENCHMARK =================")

	// ---------------- Cache Config ----------------
	const (
		preloadDays = 5000
		goroutines  = 200
		opsPerG     = 5000
	)
	cfg := config.Default()

	fmt.Println("CONFIG")
	fmt.Println("---------------------------------")
	fmt.Println("Size Threshold:", cfg.SizeThreshold)
	fmt.Println("Purge Factor  :", cfg.PurgeFactor)
	fmt.Println("Preload Days  :", preloadDays)
	fmt.Println("Goroutines    :", goroutines)
	fmt.Println("Ops/Goroutine :", opsPerG)
	fmt.Println("---------------------------------")

	// ---------------- Registry ----------------
	r, err := cache.NewRegistry(cache.WithConfig(cfg), cache.WithLogger(logger))
	if err != nil {
		logger.Fatal("create registry", zap.Error(err))
	}
	days := cache.NewMemo[calunit.Day, int](cache.UnitCacheFor[calunit.Day, int](r), calunit.DayArithmetic{})
	epoch := calunit.Date(2000, time.January, 1)

	// ---------------- Preload Cache ----------------
	fmt.Println("Preloading cache...")
	for i := 0; i < preloadDays; i++ {
		days.Advance(epoch, i)
	}
	fmt.Println("Preload complete. Entries:", r.AggregateSize())

	// ---------------- Load Test ----------------
	fmt.Println("Running concurrency benchmark...")

	start := time.Now()

	wg := sync.WaitGroup{}
	wg.Add(goroutines)

	for g := 0; g < goroutines; g++ {
		go func(id int) {
			defer wg.Done()
			// twice the preloaded range, so half of the lookups miss and record
			for j := 0; j < opsPerG; j++ {
				days.Advance(epoch, (id*opsPerG+j)%(2*preloadDays))
			}
		}(g)
	}

	wg.Wait()

	duration := time.Since(start)
	totalOps := goroutines * opsPerG

	fmt.Println("\n================ RESULTS =================")
	fmt.Printf("Total Operations : %d\n", totalOps)
	fmt.Printf("Total Time       : %v\n", duration)
	fmt.Printf("Throughput       : %.2f ops/sec\n", float64(totalOps)/duration.Seconds())
	fmt.Printf("Entries          : %d\n", r.AggregateSize())
	fmt.Println("=========================================")
}
