// Package meta fetches repository metadata for model URLs from the Hugging
// Face Hub and GitHub. It runs strictly before the metric stage: metrics see
// only the resolved attribute bag.
package meta

import (
	"context"
	"log/slog"
	"strings"

	"github.com/modeltrust/mtrust/pkg/score"
)

const (
	hubBaseURLDefault = "https://huggingface.co"

	modelHubDomain = "huggingface.co"
	codeHostDomain = "github.com"
)

// Provider assembles the metadata bag for a URL. It never returns an error:
// on any fetch failure the bag carries the documented defaults plus whatever
// partial fields were populated.
type Provider struct {
	hubBaseURL  string
	hubToken    string
	gitHubToken string
}

// Option configures a Provider.
type Option func(*Provider)

// WithHubBaseURL overrides the Hugging Face API base URL (used by tests).
func WithHubBaseURL(url string) Option {
	return func(p *Provider) {
		if url != "" {
			p.hubBaseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithHubToken sets the Hugging Face API token.
func WithHubToken(token string) Option {
	return func(p *Provider) {
		p.hubToken = token
	}
}

// WithGitHubToken sets the GitHub API token.
func WithGitHubToken(token string) Option {
	return func(p *Provider) {
		p.gitHubToken = token
	}
}

func NewProvider(opts ...Option) *Provider {
	p := &Provider{hubBaseURL: hubBaseURLDefault}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch returns the metadata bag for url. Absent attributes are simply not
// set; the score package accessors supply defaults.
func (p *Provider) Fetch(ctx context.Context, url string) score.Metadata {
	md := score.Metadata{}

	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, modelHubDomain):
		p.fetchHub(ctx, url, md)
	case strings.Contains(lower, codeHostDomain):
		p.fetchGitHub(ctx, url, md)
	default:
		slog.Debug("no provider for url, returning defaults", "url", url)
	}

	return md
}
