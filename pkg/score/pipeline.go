package score

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Provider supplies the metadata bag for a URL. Implementations must not
// return an error: on any internal failure they return whatever partial
// fields they managed to populate (possibly an empty bag).
type Provider interface {
	Fetch(ctx context.Context, url string) Metadata
}

// rollingContext carries the most recently seen DATASET and CODE URLs
// forward so they can inform the scoring of subsequent models. It is only
// mutated by the sequential URL walker.
type rollingContext struct {
	datasetLink string
	codeLink    string
	exampleCode bool
}

// metadata converts the context to a bag overlay. Unset fields are omitted
// so they never mask values the provider populated.
func (c *rollingContext) metadata() Metadata {
	md := Metadata{}
	if c.datasetLink != "" {
		md[KeyDatasetLink] = c.datasetLink
	}
	if c.codeLink != "" {
		md["code_link"] = c.codeLink
	}
	if c.exampleCode {
		md[KeyExampleCode] = true
	}
	return md
}

// RecordCache supplies previously computed records and stores new ones.
// Freshness policy is the implementation's concern.
type RecordCache interface {
	Get(name string) (Record, bool)
	Put(url string, rec Record)
}

// Pipeline walks an ordered URL list, scoring MODEL URLs and emitting one
// NDJSON line each, in input order.
type Pipeline struct {
	provider Provider
	cache    RecordCache
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithCache reuses cached records instead of rescoring and stores new ones.
func WithCache(c RecordCache) PipelineOption {
	return func(p *Pipeline) {
		p.cache = c
	}
}

func NewPipeline(p Provider, opts ...PipelineOption) *Pipeline {
	pipe := &Pipeline{provider: p}
	for _, opt := range opts {
		opt(pipe)
	}
	return pipe
}

// Run processes urls in order. DATASET and CODE URLs update the rolling
// context; MODEL URLs are scored and written to w as NDJSON. A failure on
// one URL is logged and skipped, never aborting the batch. The returned
// records mirror the emitted lines.
func (p *Pipeline) Run(ctx context.Context, urls []string, w io.Writer) ([]Record, error) {
	records := make([]Record, 0, len(urls))
	roll := &rollingContext{}

	for _, url := range urls {
		parsed := ParseURL(url)
		slog.Debug("classified url", "url", url, "category", parsed.Category, "name", parsed.Name)

		switch parsed.Category {
		case CategoryDataset:
			roll.datasetLink = parsed.Raw
			slog.Info("rolling context updated with dataset", "url", parsed.Raw)

		case CategoryCode:
			roll.codeLink = parsed.Raw
			roll.exampleCode = true
			slog.Info("rolling context updated with code", "url", parsed.Raw)

		case CategoryModel:
			rec, cached := p.cachedRecord(parsed.Name)
			if !cached {
				var err error
				rec, err = p.scoreOne(ctx, parsed, roll)
				if err != nil {
					slog.Error("skipping model", "url", url, "error", err)
					continue
				}
				if p.cache != nil {
					p.cache.Put(parsed.Raw, rec)
				}
			}

			line, err := rec.NDJSON()
			if err != nil {
				slog.Error("skipping model", "url", url, "error", err)
				continue
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return records, fmt.Errorf("writing record for %s: %w", rec.Name, err)
			}
			records = append(records, rec)

		default:
			slog.Debug("ignoring unknown url", "url", url)
		}
	}

	slog.Info("url list processed", "urls", len(urls), "models", len(records))
	return records, nil
}

func (p *Pipeline) cachedRecord(name string) (Record, bool) {
	if p.cache == nil {
		return Record{}, false
	}
	rec, ok := p.cache.Get(name)
	if ok {
		slog.Info("using cached record", "name", name)
	}
	return rec, ok
}

// scoreOne fetches metadata, merges the rolling context snapshot, runs the
// metric set, and aggregates the net score.
func (p *Pipeline) scoreOne(ctx context.Context, parsed ParsedURL, roll *rollingContext) (rec Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scoring %s: %v", parsed.Raw, r)
		}
	}()

	slog.Info("scoring model", "name", parsed.Name)

	md := p.provider.Fetch(ctx, parsed.Raw).Merge(roll.metadata())

	results := RunMetrics(ctx, md)
	net, netLatency := NetScore(results)

	slog.Info("model scored", "name", parsed.Name, "net_score", net)
	return NewRecord(parsed.Name, results, net, netLatency), nil
}
