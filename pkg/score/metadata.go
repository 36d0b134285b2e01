package score

// Metadata attribute keys populated by providers. Every key is optional;
// accessors supply the documented default when a key is absent or has an
// unexpected type.
const (
	KeyReadme           = "readme_text"
	KeyLicense          = "license"
	KeyContributors     = "contributor_count"
	KeyWeightsBytes     = "weights_total_bytes"
	KeyHasTests         = "has_tests"
	KeyHasCI            = "has_ci"
	KeyLintStatus       = "lint_status"
	KeyDatasetLink      = "dataset_link"
	KeyExampleCode      = "example_code_present"
	KeyDatasetDownloads = "dataset_download_count"
)

// LintStatus is the reported lint state of a code repository.
type LintStatus string

const (
	LintOK   LintStatus = "ok"
	LintWarn LintStatus = "warn"
	LintNone LintStatus = "none"
)

// Metadata is the loosely-typed attribute bag a provider assembles for one
// URL. Values are strings, numbers, bools, or byte counts.
type Metadata map[string]any

// Str returns the string value for key, or "" when absent.
func (m Metadata) Str(key string) string {
	if m == nil {
		return ""
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// Int returns the integer value for key, or def when absent. Numeric
// values stored as int, int64, or float64 are all accepted.
func (m Metadata) Int(key string, def int64) int64 {
	if m == nil {
		return def
	}
	switch v := m[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return def
	}
}

// Bool returns the bool value for key, or false when absent.
func (m Metadata) Bool(key string) bool {
	if m == nil {
		return false
	}
	if b, ok := m[key].(bool); ok {
		return b
	}
	return false
}

// Bytes returns the byte-count value for key and whether it was present.
// Absence means "unknown size" and is a valid state, not an error.
func (m Metadata) Bytes(key string) (int64, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// Lint returns the lint status for the repository, LintNone when unset.
func (m Metadata) Lint() LintStatus {
	switch LintStatus(m.Str(KeyLintStatus)) {
	case LintOK:
		return LintOK
	case LintWarn:
		return LintWarn
	default:
		return LintNone
	}
}

// Merge returns a copy of m with every entry of other layered on top.
// Neither input is mutated, so a merged snapshot is safe to share with
// concurrently running metrics.
func (m Metadata) Merge(other Metadata) Metadata {
	out := make(Metadata, len(m)+len(other))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
