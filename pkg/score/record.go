package score

import (
	"encoding/json"
	"fmt"
	"math"
)

// Record is the immutable scoring result for one MODEL URL. Field order
// matches the required NDJSON key order; encoding/json emits struct fields
// in declaration order.
type Record struct {
	Name                       string             `json:"name"`
	Category                   string             `json:"category"`
	NetScore                   float64            `json:"net_score"`
	NetScoreLatency            int64              `json:"net_score_latency"`
	RampUpTime                 float64            `json:"ramp_up_time"`
	RampUpTimeLatency          int64              `json:"ramp_up_time_latency"`
	BusFactor                  float64            `json:"bus_factor"`
	BusFactorLatency           int64              `json:"bus_factor_latency"`
	PerformanceClaims          float64            `json:"performance_claims"`
	PerformanceClaimsLatency   int64              `json:"performance_claims_latency"`
	License                    float64            `json:"license"`
	LicenseLatency             int64              `json:"license_latency"`
	SizeScore                  map[string]float64 `json:"size_score"`
	SizeScoreLatency           int64              `json:"size_score_latency"`
	DatasetAndCodeScore        float64            `json:"dataset_and_code_score"`
	DatasetAndCodeScoreLatency int64              `json:"dataset_and_code_score_latency"`
	DatasetQuality             float64            `json:"dataset_quality"`
	DatasetQualityLatency      int64              `json:"dataset_quality_latency"`
	CodeQuality                float64            `json:"code_quality"`
	CodeQualityLatency         int64              `json:"code_quality_latency"`
}

// NewRecord assembles a Record from the executor's result map plus the
// aggregate score. Scalar scores are rounded to 3 decimals here, once; the
// size_score map is carried unrounded.
func NewRecord(name string, results map[string]Result, netScore float64, netLatency int64) Record {
	sizes := results[MetricSizeScore].Value.Sizes
	if sizes == nil {
		sizes = map[string]float64{}
	}

	return Record{
		Name:                       name,
		Category:                   "MODEL",
		NetScore:                   round3(netScore),
		NetScoreLatency:            netLatency,
		RampUpTime:                 round3(results[MetricRampUpTime].Value.Scalar),
		RampUpTimeLatency:          results[MetricRampUpTime].LatencyMS,
		BusFactor:                  round3(results[MetricBusFactor].Value.Scalar),
		BusFactorLatency:           results[MetricBusFactor].LatencyMS,
		PerformanceClaims:          round3(results[MetricPerformanceClaims].Value.Scalar),
		PerformanceClaimsLatency:   results[MetricPerformanceClaims].LatencyMS,
		License:                    round3(results[MetricLicense].Value.Scalar),
		LicenseLatency:             results[MetricLicense].LatencyMS,
		SizeScore:                  sizes,
		SizeScoreLatency:           results[MetricSizeScore].LatencyMS,
		DatasetAndCodeScore:        round3(results[MetricDatasetAndCodeScore].Value.Scalar),
		DatasetAndCodeScoreLatency: results[MetricDatasetAndCodeScore].LatencyMS,
		DatasetQuality:             round3(results[MetricDatasetQuality].Value.Scalar),
		DatasetQualityLatency:      results[MetricDatasetQuality].LatencyMS,
		CodeQuality:                round3(results[MetricCodeQuality].Value.Scalar),
		CodeQualityLatency:         results[MetricCodeQuality].LatencyMS,
	}
}

// NDJSON serializes the record as one compact JSON object with the fixed key
// order. No trailing newline; the caller separates records.
func (r Record) NDJSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshaling record for %s: %w", r.Name, err)
	}
	return string(b), nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
