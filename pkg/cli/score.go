package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/modeltrust/mtrust/pkg/auth"
	"github.com/modeltrust/mtrust/pkg/data"
	"github.com/modeltrust/mtrust/pkg/meta"
	"github.com/modeltrust/mtrust/pkg/score"
)

var (
	cachedFlag = &cli.BoolFlag{
		Name:  "cached",
		Usage: "Reuse records scored within the last 24h instead of rescoring",
	}

	scoreCmd = &cli.Command{
		Name:            "score",
		HideHelpCommand: true,
		Usage:           "Score the MODEL URLs in a file, one NDJSON record per model on stdout",
		ArgsUsage:       "URL_FILE",
		Action:          cmdScore,
		Flags: []cli.Flag{
			cachedFlag,
		},
	}
)

func cmdScore(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return errors.New("URL_FILE argument is required")
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("URL_FILE must be an absolute path: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("URL_FILE not accessible: %w", err)
	}

	urls, err := readURLFile(path)
	if err != nil {
		return fmt.Errorf("reading URL file: %w", err)
	}

	cfg := getConfig(c)
	pipe := newPipeline(cfg, c.Bool(cachedFlag.Name))

	if _, err := pipe.Run(c.Context, urls, os.Stdout); err != nil {
		return fmt.Errorf("processing URLs: %w", err)
	}
	return nil
}

// newPipeline assembles the provider and cache for this invocation. Records
// are always persisted; reuse of fresh ones is opt-in.
func newPipeline(cfg *appConfig, reuseCached bool) *score.Pipeline {
	provider := meta.NewProvider(
		meta.WithHubBaseURL(cfg.Conf.HubBaseURL),
		meta.WithHubToken(auth.ResolveToken(cfg.HomeDir, auth.HubToken)),
		meta.WithGitHubToken(auth.ResolveToken(cfg.HomeDir, auth.GitHubToken)),
	)

	return score.NewPipeline(provider,
		score.WithCache(data.NewCache(cfg.DB, reuseCached)),
	)
}

// readURLFile loads one URL per line, skipping blanks.
func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	urls := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}

	return urls, nil
}
