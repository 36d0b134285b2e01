package score

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const maxMetricWorkers = 8

// RunMetrics computes all eight metrics against a shared, read-only metadata
// snapshot using a bounded worker group. A metric that panics (contract
// violation) is logged and replaced with its fallback value; the remaining
// metrics are unaffected. The returned map always contains all eight names.
func RunMetrics(ctx context.Context, md Metadata) map[string]Result {
	return runSet(ctx, md, Metrics[:])
}

func runSet(ctx context.Context, md Metadata, set []Metric) map[string]Result {
	results := make([]Result, len(set))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(metricWorkers())

	for i, m := range set {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("metric computation failed", "metric", m.Name, "panic", r)
					results[i] = m.Fallback()
				}
			}()
			results[i] = m.Compute(md)
			return nil
		})
	}

	// Workers never return errors; Wait is the fan-in barrier.
	_ = g.Wait()

	out := make(map[string]Result, len(set))
	for i, m := range set {
		out[m.Name] = results[i]
	}
	return out
}

func metricWorkers() int {
	n := 2 * runtime.NumCPU()
	if n > maxMetricWorkers {
		return maxMetricWorkers
	}
	if n < 1 {
		return 1
	}
	return n
}
