package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"shoutd/internal/providers"
	"shoutd/internal/services"
	"shoutd/internal/statistic"
	"shoutd/internal/structures"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	numWorkers   = 50
	testDuration = 5 * time.Second
	numActors    = 500
)

type result struct {
	op      string
	status  string
	latency time.Duration
	err     bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
	statuses  map[string]int64
}

type quietLogger struct{}

func (quietLogger) Errorf(_ providers.TypeEnum, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
func (quietLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (quietLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (quietLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (quietLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (quietLogger) Close()                                                  {}

func main() {
	dir, err := os.MkdirTemp("", "shoutd-load")
	if err != nil {
		fmt.Println("FAILED:", err)
		return
	}
	defer os.RemoveAll(dir)

	svc, cleanup, err := buildService(dir)
	if err != nil {
		fmt.Println("FAILED:", err)
		return
	}
	defer cleanup()

	fmt.Println("=== shoutd Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Actors: %d\n", numWorkers, testDuration, numActors)
	fmt.Printf("Log dir: %s\n\n", dir)

	// simulated clock so cooldowns pass at load-test speed
	var clock atomic.Int64
	clock.Store(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).UnixNano())
	tick := func() time.Time {
		return time.Unix(0, clock.Add(int64(50*time.Millisecond))).UTC()
	}

	fmt.Println("--- Phase 1: Submissions only ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doSubmit(svc, rng, tick())
	})

	fmt.Println("\n--- Phase 2: Mixed load (60% submit, 30% recent, 10% stats) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.60:
			return doSubmit(svc, rng, tick())
		case r < 0.90:
			return doRecent(svc, rng)
		default:
			return doStats(svc)
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (10% submit, 90% recent) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.10 {
			return doSubmit(svc, rng, tick())
		}
		return doRecent(svc, rng)
	})

	view := svc.Stats()
	fmt.Printf("\nRecorded %d shoutouts, top actors %v, peak hours %v\n", view.TotalCount, view.TopActors, view.PeakHours)
	if err := svc.Save(); err != nil {
		fmt.Println("Save FAILED:", err)
	}
}

func buildService(dir string) (*services.ShoutoutService, func(), error) {
	conf := &structures.Config{
		Shoutout: structures.ShoutoutConfig{CooldownSeconds: 60, MaxMessageLength: 200, MaxEventsPerDay: 10},
		Log: structures.LogConfig{
			Path:           filepath.Join(dir, "shoutouts.log"),
			Format:         "json",
			RotationSizeMB: 1,
			MaxLogFiles:    5,
			Timezone:       "UTC",
		},
		Persistence: structures.Persistence{FilePath: filepath.Join(dir, "stats.dat"), SaveInterval: time.Minute},
		Cache:       structures.CacheConfig{Enabled: true, Size: 8},
	}

	logger := quietLogger{}
	stats, err := services.NewStatsStore(conf)
	if err != nil {
		return nil, nil, err
	}
	metrics := providers.NewMetricsProvider(conf, stats)
	journal, err := statistic.NewRotatingLogFromConfig(conf, metrics, logger)
	if err != nil {
		return nil, nil, err
	}
	compressor, err := statistic.NewSnapshotCompressor()
	if err != nil {
		return nil, nil, err
	}
	files := statistic.NewFileManager(compressor, stats, metrics, logger)
	cache := providers.NewInstrumentedCacheProvider(conf, logger, metrics)

	svc := services.NewShoutoutService(conf, stats, journal, files, cache, metrics, providers.NewSettingsProvider(conf), logger)
	return svc, func() {
		_ = journal.Close()
		compressor.Close()
	}, nil
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.op]
			if !ok {
				s = &stats{statuses: make(map[string]int64)}
				allResults[r.op] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			if r.status != "" {
				s.statuses[r.status]++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	ops := make([]string, 0, len(allResults))
	for op := range allResults {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	fmt.Printf("\n  %-10s %8s %6s %10s %10s %10s %10s\n",
		"Op", "Calls", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 76))

	for _, op := range ops {
		s := allResults[op]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-10s %8d %6d %10s %10s %10s %10s\n",
			op, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))

		if len(s.statuses) > 0 {
			names := make([]string, 0, len(s.statuses))
			for name := range s.statuses {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("    %-20s %8d\n", name, s.statuses[name])
			}
		}
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 76))
	fmt.Printf("  Total: %d calls | Errors: %d (%.1f%%) | Ops/s: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func doSubmit(svc *services.ShoutoutService, rng *rand.Rand, now time.Time) result {
	actor := fmt.Sprintf("player_%d", rng.Intn(numActors))
	text := fmt.Sprintf("hello from %s, roll %d", actor, rng.Intn(100))

	start := time.Now()
	res := svc.Submit(actor, text, now)
	return result{"submit", res.Status.String(), time.Since(start), res.Err != nil}
}

func doRecent(svc *services.ShoutoutService, rng *rand.Rand) result {
	start := time.Now()
	_, err := svc.Recent(rng.Intn(50) + 1)
	return result{"recent", "", time.Since(start), err != nil}
}

func doStats(svc *services.ShoutoutService) result {
	start := time.Now()
	_ = svc.Stats()
	return result{"stats", "", time.Since(start), false}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
