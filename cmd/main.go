package main

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	cache "github.com/programming086/calendar-unit-cache"
	"github.com/programming086/calendar-unit-cache/config"
	"github.com/programming086/calendar-unit-cache/idle"
	"github.com/programming086/calendar-unit-cache/internal/calunit"
	"github.com/programming086/calendar-unit-cache/metrics"
)

// ================= METRICS =================

func printMetrics(reg *prometheus.Registry) {
	fmt.Println("\n==================== METRICS ====================")

	families, err := reg.Gather()
	if err != nil {
		fmt.Println("gather failed:", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			value := m.GetCounter().GetValue()
			if m.GetGauge() != nil {
				value = m.GetGauge().GetValue()
			}
			fmt.Printf("%-34s: %.0f\n", mf.GetName(), value)
		}
	}
}

// ================= MAIN =================

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// ---------------- System Config ----------------
	cfg := config.Default()
	cfg.SizeThreshold = 40
	if len(os.Args) > 1 {
		if cfg, err = config.Load(os.Args[1]); err != nil {
			logger.Fatal("load config", zap.Error(err))
		}
	}

	fmt.Println("\n==================== SYSTEM BOOT ====================")
	fmt.Println("SIZE THRESHOLD :", cfg.SizeThreshold)
	fmt.Println("PURGE FACTOR   :", cfg.PurgeFactor)
	fmt.Println("PURGE ON WRITE :", cfg.PurgeOnWrite)
	fmt.Println("IDLE INTERVAL  :", cfg.IdleInterval)

	// ---------------- Metrics ----------------
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg, "demo")
	if err != nil {
		logger.Fatal("register metrics", zap.Error(err))
	}

	// ---------------- Registry ----------------
	r, err := cache.NewRegistry(
		cache.WithConfig(cfg),
		cache.WithMetrics(m),
		cache.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal("create registry", zap.Error(err))
	}

	days := cache.NewMemo[calunit.Day, int](cache.UnitCacheFor[calunit.Day, int](r), calunit.DayArithmetic{})
	weekCache := cache.CompoundCacheFor[calunit.Week, int, calunit.Day, int](r)
	weeks := cache.NewCompoundMemo(weekCache, calunit.WeekArithmetic{}, calunit.WeekArithmetic{})

	today := calunit.DayOf(time.Now())
	dayCache := cache.UnitCacheFor[calunit.Day, int](r)

	// ====================================================
	fmt.Println("\n==================== 1) CACHE MISS ====================")
	_, ok := dayCache.DistanceBetween(today, calunit.Date(2030, time.January, 1))
	fmt.Println("CACHE  → distance cached:", ok)
	d := days.Distance(today, calunit.Date(2030, time.January, 1))
	fmt.Println("ARITH  → days until 2030-01-01 =", d)

	// ====================================================
	fmt.Println("\n==================== 2) CACHE HIT ====================")
	d, ok = dayCache.DistanceBetween(today, calunit.Date(2030, time.January, 1))
	fmt.Println("CACHE  → distance =", d, "cached:", ok)

	// ====================================================
	fmt.Println("\n==================== 3) INVERSE RELATION ====================")
	u, ok := dayCache.AdvancedUnit(today, d)
	fmt.Println("CACHE  → today +", d, "days =", u, "cached:", ok)

	// ====================================================
	fmt.Println("\n==================== 4) COMPOUND UNIT ====================")
	w := calunit.WeekOf(today)
	friday := weeks.ElementAt(w, 4)
	fmt.Println("ARITH  → friday of", w, "=", friday)
	i, ok := weekCache.IndexOf(w, friday)
	fmt.Println("CACHE  → index of", friday, "=", i, "cached:", ok)

	// ====================================================
	fmt.Println("\n==================== 5) GLOBAL PURGE ====================")
	for n := 0; n < 5; n++ {
		days.Distance(today, calunit.Date(2030, time.January, 1))
	}
	for n := 1; n <= 20; n++ {
		days.Advance(today, n)
	}
	fmt.Println("ENTRIES AFTER LOAD :", r.AggregateSize())
	_, ok = dayCache.DistanceBetween(today, calunit.Date(2030, time.January, 1))
	fmt.Println("HOT ENTRY SURVIVED :", ok)

	// ====================================================
	fmt.Println("\n==================== 6) IDLE PURGE ====================")
	purger := idle.NewPurger(r, cfg.IdleInterval, logger)
	purger.Idle()
	purger.Close()
	fmt.Println("ENTRIES AFTER IDLE :", r.AggregateSize())
	fmt.Println("UNIT TYPES         :", r.UnitTypes())

	printMetrics(reg)
}
