package meta

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/go-github/v83/github"

	"github.com/modeltrust/mtrust/pkg/net"
	"github.com/modeltrust/mtrust/pkg/score"
)

const contributorsPageSize = 100

// fetchGitHub populates md from the GitHub API: license, README text,
// contributor count, and tests/CI/weight-file signals from the repo tree.
func (p *Provider) fetchGitHub(ctx context.Context, url string, md score.Metadata) {
	owner, repo, ok := ownerRepo(url)
	if !ok {
		slog.Debug("could not extract owner/repo", "url", url)
		return
	}

	hc := net.GetHTTPClient()
	if p.gitHubToken != "" {
		hc = net.GetOAuthClient(ctx, p.gitHubToken)
	}
	client := github.NewClient(hc)

	r, resp, err := client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		slog.Info("github repo fetch failed", "owner", owner, "repo", repo, "error", err)
		return
	}
	logRate(resp)

	if r.License != nil && r.License.GetSPDXID() != "" {
		md[score.KeyLicense] = r.License.GetSPDXID()
	}

	if readme, _, err := client.Repositories.GetReadme(ctx, owner, repo, nil); err == nil {
		if content, cerr := readme.GetContent(); cerr == nil && content != "" {
			md[score.KeyReadme] = content
		}
	}

	if n, ok := contributorCount(ctx, client, owner, repo); ok {
		md[score.KeyContributors] = n
	}

	scanTree(ctx, client, owner, repo, r.GetDefaultBranch(), md)
}

// contributorCount counts distinct contributors, capped at one API page.
func contributorCount(ctx context.Context, client *github.Client, owner, repo string) (int64, bool) {
	opts := &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: contributorsPageSize},
	}
	list, resp, err := client.Repositories.ListContributors(ctx, owner, repo, opts)
	if err != nil {
		slog.Debug("listing contributors failed", "owner", owner, "repo", repo, "error", err)
		return 0, false
	}
	logRate(resp)
	return int64(len(list)), true
}

// scanTree walks the repository file listing once to detect tests, CI
// config, weight artifacts, and example code.
func scanTree(ctx context.Context, client *github.Client, owner, repo, branch string, md score.Metadata) {
	if branch == "" {
		branch = "HEAD"
	}

	tree, resp, err := client.Git.GetTree(ctx, owner, repo, branch, true)
	if err != nil {
		slog.Debug("getting repo tree failed", "owner", owner, "repo", repo, "error", err)
		return
	}
	logRate(resp)

	var (
		hasTests    bool
		hasCI       bool
		hasExamples bool
		weights     int64
		weightKnown bool
	)

	for _, e := range tree.Entries {
		path := strings.ToLower(e.GetPath())
		base := path
		if i := strings.LastIndex(path, "/"); i >= 0 {
			base = path[i+1:]
		}

		if strings.HasPrefix(base, "test_") || strings.HasSuffix(base, "_test.go") ||
			strings.HasSuffix(base, "_test.py") || strings.Contains(path, "tests/") {
			hasTests = true
		}
		if strings.HasPrefix(path, ".github/workflows/") &&
			(strings.HasSuffix(path, ".yml") || strings.HasSuffix(path, ".yaml")) {
			hasCI = true
		}
		if strings.Contains(path, "example") || strings.Contains(path, "notebook") {
			hasExamples = true
		}
		if isWeightFile(base) && e.Size != nil {
			weights += int64(e.GetSize())
			weightKnown = true
		}
	}

	md[score.KeyHasTests] = hasTests
	md[score.KeyHasCI] = hasCI
	if hasExamples {
		md[score.KeyExampleCode] = true
	}
	if weightKnown {
		md[score.KeyWeightsBytes] = weights
	}
}

func ownerRepo(url string) (owner, repo string, ok bool) {
	_, tail, found := strings.Cut(url, codeHostDomain+"/")
	if !found {
		return "", "", false
	}

	parts := make([]string, 0, 2)
	for _, seg := range strings.Split(tail, "/") {
		if seg == "" {
			continue
		}
		parts = append(parts, strings.TrimSuffix(seg, ".git"))
		if len(parts) == 2 {
			break
		}
	}
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func logRate(resp *github.Response) {
	if resp == nil {
		return
	}
	slog.Debug("github rate", "remaining", resp.Rate.Remaining, "limit", resp.Rate.Limit)
}
