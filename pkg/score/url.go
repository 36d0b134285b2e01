package score

import (
	"strings"
)

// Category classifies what a URL points at.
type Category string

const (
	CategoryModel   Category = "MODEL"
	CategoryDataset Category = "DATASET"
	CategoryCode    Category = "CODE"
	CategoryUnknown Category = "UNKNOWN"
)

const (
	modelHubDomain = "huggingface.co"
	codeHostDomain = "github.com"
)

// Path segments that carry no identity (branch browsing UI).
var boilerplateSegments = map[string]bool{
	"tree": true,
	"main": true,
	"blob": true,
}

// ParsedURL is the result of classifying one input URL.
type ParsedURL struct {
	Raw      string
	Category Category
	Name     string
}

// ParseURL classifies a URL and extracts its display name. Classification is
// purely syntactic; no network access.
//
// Priority: model-hub dataset path, code host, model hub, unknown.
func ParseURL(raw string) ParsedURL {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)

	switch {
	case strings.Contains(lower, modelHubDomain+"/datasets/"):
		return ParsedURL{Raw: s, Category: CategoryDataset, Name: datasetName(s)}
	case strings.Contains(lower, codeHostDomain):
		return ParsedURL{Raw: s, Category: CategoryCode, Name: ownerRepoName(s, codeHostDomain)}
	case strings.Contains(lower, modelHubDomain):
		return ParsedURL{Raw: s, Category: CategoryModel, Name: modelName(s)}
	default:
		return ParsedURL{Raw: s, Category: CategoryUnknown, Name: lastSegment(s)}
	}
}

// datasetName takes just the first path segment after "datasets/".
func datasetName(s string) string {
	_, tail, ok := strings.Cut(s, "/datasets/")
	if !ok {
		return s
	}
	name, _, _ := strings.Cut(tail, "/")
	if name == "" {
		return s
	}
	return name
}

// modelName joins the first two non-boilerplate path segments after the hub
// domain, so ".../owner/model/tree/main" still names "owner/model".
func modelName(s string) string {
	_, tail, ok := strings.Cut(s, modelHubDomain+"/")
	if !ok {
		return lastSegment(s)
	}

	parts := make([]string, 0, 2)
	for _, p := range strings.Split(tail, "/") {
		if p == "" || boilerplateSegments[strings.ToLower(p)] {
			continue
		}
		parts = append(parts, p)
		if len(parts) == 2 {
			break
		}
	}

	if len(parts) == 0 {
		return s
	}
	return strings.Join(parts, "/")
}

// ownerRepoName extracts "owner/repo" after the given domain.
func ownerRepoName(s, domain string) string {
	_, tail, ok := strings.Cut(s, domain+"/")
	if !ok {
		return lastSegment(s)
	}

	parts := make([]string, 0, 2)
	for _, p := range strings.Split(tail, "/") {
		if p == "" {
			continue
		}
		parts = append(parts, strings.TrimSuffix(p, ".git"))
		if len(parts) == 2 {
			break
		}
	}

	if len(parts) == 0 {
		return s
	}
	return strings.Join(parts, "/")
}

func lastSegment(s string) string {
	trimmed := strings.TrimRight(s, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 && i+1 < len(trimmed) {
		return trimmed[i+1:]
	}
	return s
}
