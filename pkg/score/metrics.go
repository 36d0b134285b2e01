package score

import (
	"math"
	"strings"
)

// Hardware classes for size_score, keyed by representative deployment target.
const (
	HardwareRaspberryPi = "raspberry_pi"
	HardwareJetsonNano  = "jetson_nano"
	HardwareDesktopPC   = "desktop_pc"
	HardwareAWSServer   = "aws_server"
)

const (
	readmeFullScoreWords = 300
	busFactorFullScore   = 5
	downloadLogDivisor   = 10

	mib = int64(1) << 20
	gib = int64(1) << 30
)

// sizeThresholds is the max weight size at which a hardware class scores 1.0.
// Beyond the threshold the score decays linearly, reaching 0 at 11x.
var sizeThresholds = map[string]int64{
	HardwareRaspberryPi: 50 * mib,
	HardwareJetsonNano:  700 * mib,
	HardwareDesktopPC:   8 * gib,
	HardwareAWSServer:   100 * gib,
}

// permissiveLicenses matched as case-insensitive substrings.
var permissiveLicenses = []string{"lgpl", "mit", "apache", "bsd"}

// rampUpTime blends documentation length with the presence of an example or
// quickstart section.
func rampUpTime(md Metadata) Value {
	readme := md.Str(KeyReadme)

	length := math.Min(1, float64(len(strings.Fields(readme)))/readmeFullScoreWords)

	examples := 0.0
	lower := strings.ToLower(readme)
	if strings.Contains(lower, "example") || strings.Contains(lower, "quickstart") {
		examples = 1.0
	}

	return scalar(0.5*length + 0.5*examples)
}

// busFactor ramps linearly from 1 to 5 contributors; a single maintainer
// still gets a floor of 0.1.
func busFactor(md Metadata) Value {
	contributors := md.Int(KeyContributors, 1)
	if contributors <= 1 {
		return scalar(0.1)
	}
	return scalar(math.Min(1, float64(contributors)/busFactorFullScore))
}

// performanceClaims is binary: any mention of benchmarks, accuracy, or
// evaluation in the README counts as a claim.
func performanceClaims(md Metadata) Value {
	readme := strings.ToLower(md.Str(KeyReadme))
	if strings.Contains(readme, "benchmark") ||
		strings.Contains(readme, "accuracy") ||
		strings.Contains(readme, "eval") {
		return scalar(1)
	}
	return scalar(0)
}

// licenseScore ranks license clarity: explicit permissive license, license
// mentioned in the README, some other license, none.
func licenseScore(md Metadata) Value {
	lic := strings.ToLower(md.Str(KeyLicense))

	if lic == "" {
		if strings.Contains(strings.ToLower(md.Str(KeyReadme)), "license") {
			return scalar(0.5)
		}
		return scalar(0)
	}

	for _, p := range permissiveLicenses {
		if strings.Contains(lic, p) {
			return scalar(1)
		}
	}
	return scalar(0.2)
}

// sizeScore rates the model weight size against each hardware class
// independently. Unknown size assumes the model fits larger hardware only.
func sizeScore(md Metadata) Value {
	total, known := md.Bytes(KeyWeightsBytes)
	if !known {
		return unknownSizes()
	}

	sizes := make(map[string]float64, len(sizeThresholds))
	for class, threshold := range sizeThresholds {
		if total <= threshold {
			sizes[class] = 1
			continue
		}
		decay := 1 - float64(total-threshold)/(float64(threshold)*10)
		sizes[class] = clamp01(decay)
	}
	return Value{Sizes: sizes}
}

func unknownSizes() Value {
	return Value{Sizes: map[string]float64{
		HardwareRaspberryPi: 0,
		HardwareJetsonNano:  0,
		HardwareDesktopPC:   1,
		HardwareAWSServer:   1,
	}}
}

// datasetAndCodeScore checks for a linked training dataset and example code.
func datasetAndCodeScore(md Metadata) Value {
	hasDataset := md.Str(KeyDatasetLink) != ""
	hasCode := md.Bool(KeyExampleCode)

	switch {
	case hasDataset && hasCode:
		return scalar(1)
	case hasDataset || hasCode:
		return scalar(0.5)
	default:
		return scalar(0)
	}
}

// datasetQuality normalizes the dataset download count on a natural-log
// scale. Zero downloads still scores 0.2 rather than 0.
func datasetQuality(md Metadata) Value {
	downloads := md.Int(KeyDatasetDownloads, 0)
	if downloads <= 0 {
		return scalar(0.2)
	}
	return scalar(math.Min(1, math.Log1p(float64(downloads))/downloadLogDivisor))
}

// codeQuality weights tests, CI, and lint state.
func codeQuality(md Metadata) Value {
	v := 0.0
	if md.Bool(KeyHasTests) {
		v += 0.4
	}
	if md.Bool(KeyHasCI) {
		v += 0.3
	}
	switch md.Lint() {
	case LintOK:
		v += 0.3
	case LintWarn:
		v += 0.15
	}
	return scalar(v)
}
