package score

import (
	"log/slog"
	"time"
)

// netWeights is the canonical weight table. Weights sum to 1.0.
var netWeights = map[string]float64{
	MetricRampUpTime:          0.20,
	MetricLicense:             0.20,
	MetricDatasetAndCodeScore: 0.15,
	MetricSizeScore:           0.10,
	MetricBusFactor:           0.10,
	MetricDatasetQuality:      0.10,
	MetricCodeQuality:         0.10,
	MetricPerformanceClaims:   0.05,
}

// NetScore combines the eight metric values into one bounded scalar.
// size_score is reduced to the average of its hardware-class values before
// weighting (1.0 when the map is empty). The returned latency covers the
// aggregation only, not the metric computations.
func NetScore(results map[string]Result) (float64, int64) {
	start := time.Now()

	net := 0.0
	for name, w := range netWeights {
		net += w * reduceValue(name, results)
	}
	net = clamp01(net)

	return net, elapsedMS(start)
}

func reduceValue(name string, results map[string]Result) float64 {
	r, ok := results[name]
	if !ok {
		slog.Error("metric missing from results, using 0", "metric", name)
		return 0
	}

	if name != MetricSizeScore {
		return r.Value.Scalar
	}

	if len(r.Value.Sizes) == 0 {
		return 1
	}
	sum := 0.0
	for _, v := range r.Value.Sizes {
		sum += v
	}
	return sum / float64(len(r.Value.Sizes))
}
