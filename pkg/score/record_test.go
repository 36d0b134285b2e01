package score

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recordKeyOrder = []string{
	"name", "category", "net_score", "net_score_latency",
	"ramp_up_time", "ramp_up_time_latency",
	"bus_factor", "bus_factor_latency",
	"performance_claims", "performance_claims_latency",
	"license", "license_latency",
	"size_score", "size_score_latency",
	"dataset_and_code_score", "dataset_and_code_score_latency",
	"dataset_quality", "dataset_quality_latency",
	"code_quality", "code_quality_latency",
}

func testRecord(t *testing.T) Record {
	t.Helper()
	results := allResults(0.5, map[string]float64{
		HardwareRaspberryPi: 0, HardwareJetsonNano: 0,
		HardwareDesktopPC: 1, HardwareAWSServer: 1,
	})
	net, latency := NetScore(results)
	return NewRecord("google/gemma-2b", results, net, latency)
}

func TestRecordNDJSON_KeyOrderAndShape(t *testing.T) {
	line, err := testRecord(t).NDJSON()
	require.NoError(t, err)

	// single compact line
	assert.NotContains(t, line, "\n")
	assert.NotContains(t, line, ": ")
	assert.NotContains(t, line, ", ")

	// fixed key order
	prev := -1
	for _, key := range recordKeyOrder {
		idx := strings.Index(line, `"`+key+`"`)
		require.GreaterOrEqual(t, idx, 0, "missing key %s", key)
		assert.Greater(t, idx, prev, "key %s out of order", key)
		prev = idx
	}
}

func TestRecordNDJSON_RoundTrip(t *testing.T) {
	line, err := testRecord(t).NDJSON()
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &parsed))
	require.Len(t, parsed, len(recordKeyOrder))

	assert.Equal(t, "google/gemma-2b", parsed["name"])
	assert.Equal(t, "MODEL", parsed["category"])

	sizes, ok := parsed["size_score"].(map[string]any)
	require.True(t, ok)
	require.Len(t, sizes, 4)
	for class, v := range sizes {
		f, ok := v.(float64)
		require.True(t, ok, "class %s", class)
		assert.GreaterOrEqual(t, f, 0.0)
		assert.LessOrEqual(t, f, 1.0)
	}

	for _, key := range recordKeyOrder {
		if key == "name" || key == "category" || key == "size_score" {
			continue
		}
		f, ok := parsed[key].(float64)
		require.True(t, ok, "key %s", key)

		if strings.HasSuffix(key, "_latency") {
			assert.Equal(t, f, float64(int64(f)), "latency %s must be integral", key)
			assert.GreaterOrEqual(t, f, 0.0)
			continue
		}
		assert.GreaterOrEqual(t, f, 0.0, "key %s", key)
		assert.LessOrEqual(t, f, 1.0, "key %s", key)
	}
}

func TestNewRecord_RoundsScalars(t *testing.T) {
	results := allResults(1.0/3.0, nil)
	rec := NewRecord("m", results, 1.0/3.0, 0)

	assert.Equal(t, 0.333, rec.NetScore)
	assert.Equal(t, 0.333, rec.RampUpTime)
	assert.Equal(t, 0.333, rec.CodeQuality)
}

func TestNewRecord_NilSizesBecomesEmptyMap(t *testing.T) {
	rec := NewRecord("m", allResults(0, nil), 0, 0)
	require.NotNil(t, rec.SizeScore)
	assert.Empty(t, rec.SizeScore)

	line, err := rec.NDJSON()
	require.NoError(t, err)
	assert.Contains(t, line, `"size_score":{}`)
}
