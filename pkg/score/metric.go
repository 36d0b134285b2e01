// Package score implements the metric computation and aggregation pipeline
// that turns repository metadata into a single trustworthiness score per
// model.
package score

import (
	"math"
	"time"
)

// Metric names, matching the NDJSON output fields.
const (
	MetricRampUpTime          = "ramp_up_time"
	MetricBusFactor           = "bus_factor"
	MetricPerformanceClaims   = "performance_claims"
	MetricLicense             = "license"
	MetricSizeScore           = "size_score"
	MetricDatasetAndCodeScore = "dataset_and_code_score"
	MetricDatasetQuality      = "dataset_quality"
	MetricCodeQuality         = "code_quality"
)

// Value is the result of one metric: a scalar in [0,1] or, for size_score
// only, a per-hardware-class map of scalars in [0,1].
type Value struct {
	Scalar float64
	Sizes  map[string]float64
}

// Result pairs a metric value with the wall-clock time the computation took,
// rounded to whole milliseconds.
type Result struct {
	Value     Value
	LatencyMS int64
}

// Metric is one member of the fixed set of eight scoring functions. The set
// is closed: metrics are not registered dynamically.
type Metric struct {
	Name     string
	compute  func(Metadata) Value
	fallback func() Value
}

// Compute runs the metric against md, timing the computation. The compute
// functions are pure and never panic on missing data; panic recovery for
// contract violations lives in the executor.
func (m Metric) Compute(md Metadata) Result {
	start := time.Now()
	v := m.compute(md)
	return Result{Value: v, LatencyMS: elapsedMS(start)}
}

// Fallback returns the metric's substitute value: 0.0, or the unknown-size
// map for size_score. Latency is 0.
func (m Metric) Fallback() Result {
	return Result{Value: m.fallback()}
}

// Metrics is the complete, ordered set of scoring functions.
var Metrics = [...]Metric{
	{Name: MetricRampUpTime, compute: rampUpTime, fallback: zeroScalar},
	{Name: MetricBusFactor, compute: busFactor, fallback: zeroScalar},
	{Name: MetricPerformanceClaims, compute: performanceClaims, fallback: zeroScalar},
	{Name: MetricLicense, compute: licenseScore, fallback: zeroScalar},
	{Name: MetricSizeScore, compute: sizeScore, fallback: unknownSizes},
	{Name: MetricDatasetAndCodeScore, compute: datasetAndCodeScore, fallback: zeroScalar},
	{Name: MetricDatasetQuality, compute: datasetQuality, fallback: zeroScalar},
	{Name: MetricCodeQuality, compute: codeQuality, fallback: zeroScalar},
}

func zeroScalar() Value {
	return Value{}
}

func scalar(v float64) Value {
	return Value{Scalar: clamp01(v)}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func elapsedMS(start time.Time) int64 {
	ms := int64(math.Round(float64(time.Since(start)) / float64(time.Millisecond)))
	if ms < 0 {
		return 0
	}
	return ms
}
