package score

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMetrics_AllPresent(t *testing.T) {
	results := RunMetrics(context.Background(), Metadata{})

	require.Len(t, results, len(Metrics))
	for _, m := range Metrics {
		res, ok := results[m.Name]
		require.True(t, ok, "missing %s", m.Name)
		assertInRange(t, res)
		assert.GreaterOrEqual(t, res.LatencyMS, int64(0))
	}
}

func TestRunMetrics_DeterministicValues(t *testing.T) {
	md := Metadata{
		KeyReadme:       "Quickstart with benchmark accuracy results",
		KeyLicense:      "apache-2.0",
		KeyContributors: 4,
		KeyHasTests:     true,
	}

	a := RunMetrics(context.Background(), md)
	b := RunMetrics(context.Background(), md)

	for _, m := range Metrics {
		assert.Equal(t, a[m.Name].Value, b[m.Name].Value, "metric %s", m.Name)
	}
}

func TestRunSet_PanicSubstitutesFallback(t *testing.T) {
	set := []Metric{
		{
			Name:     "exploding",
			compute:  func(Metadata) Value { panic("contract violation") },
			fallback: zeroScalar,
		},
		{
			Name:     "exploding_sizes",
			compute:  func(Metadata) Value { panic("contract violation") },
			fallback: unknownSizes,
		},
		Metrics[0], // healthy metric still computes
	}

	results := runSet(context.Background(), Metadata{}, set)

	require.Len(t, results, 3)
	assert.Equal(t, 0.0, results["exploding"].Value.Scalar)
	assert.Equal(t, int64(0), results["exploding"].LatencyMS)
	assert.Equal(t, unknownSizes().Sizes, results["exploding_sizes"].Value.Sizes)
	assertInRange(t, results[Metrics[0].Name])
}

func TestMetricWorkers_Bounded(t *testing.T) {
	n := metricWorkers()
	assert.GreaterOrEqual(t, n, 1)
	assert.LessOrEqual(t, n, maxMetricWorkers)
}
