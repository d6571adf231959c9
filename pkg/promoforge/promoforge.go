// Package promoforge harvests promotional codes from web pages, infers
// the character-class templates behind them, and synthesizes new
// clearly-marked sample codes from those templates.
package promoforge

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/cognicore/promoforge/pkg/promoforge/collect"
	"github.com/cognicore/promoforge/pkg/promoforge/config"
	"github.com/cognicore/promoforge/pkg/promoforge/export"
	"github.com/cognicore/promoforge/pkg/promoforge/extract"
	"github.com/cognicore/promoforge/pkg/promoforge/gen"
	"github.com/cognicore/promoforge/pkg/promoforge/infer"
	"github.com/cognicore/promoforge/pkg/promoforge/store"
)

// Fetcher retrieves page markup. internal/fetch provides the production
// implementation; tests can stub it.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// Forge is the harvesting and generation facade.
type Forge struct {
	store     store.Store
	fetcher   Fetcher
	collector *collect.Collector
	rules     extract.Rules
	inf       infer.Inferencer
	gen       *gen.Generator
	cfg       config.Config
}

// Options configures a Forge instance.
type Options struct {
	Store   store.Store
	Fetcher Fetcher

	// Config is the pipeline configuration; nil means config.Default().
	Config *config.Config

	// Rand seeds generation; nil means a time-seeded source.
	Rand *rand.Rand
}

// New creates a Forge with the given dependencies.
func New(opts Options) *Forge {
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	inferencer := infer.New()
	if cfg.TopTemplates > 0 {
		inferencer.TopTemplates = cfg.TopTemplates
	}
	if cfg.TopAffixes > 0 {
		inferencer.TopAffixes = cfg.TopAffixes
	}

	return &Forge{
		store:     opts.Store,
		fetcher:   opts.Fetcher,
		collector: collect.New(cfg.HintWords),
		rules:     extract.DefaultRules(),
		inf:       inferencer,
		gen:       gen.New(rng),
		cfg:       cfg,
	}
}

// Close cleanly shuts down the Forge instance.
func (f *Forge) Close() error {
	return f.store.Close()
}

// Marker returns the effective marker appended to generated codes.
func (f *Forge) Marker() string {
	if f.cfg.Marker == "" {
		return gen.DefaultMarker
	}
	return f.cfg.Marker
}

// HarvestURLs fetches each URL, collects candidate fragments, extracts
// tokens and persists them with provenance. A politeness delay runs
// between consecutive fetches. Failing URLs are skipped; their errors
// come back joined alongside whatever was harvested, so a non-nil error
// can accompany non-empty results.
func (f *Forge) HarvestURLs(ctx context.Context, urls []string) ([]store.Found, error) {
	type hit struct{ code, url string }
	seen := make(map[hit]struct{})
	var hits []hit
	var errs []error

	for i, url := range urls {
		if i > 0 && f.cfg.Delay > 0 {
			select {
			case <-time.After(f.cfg.Delay.Std()):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		page, err := f.fetcher.Get(ctx, url)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		fragments, err := f.collector.Fragments(page)
		if err != nil {
			errs = append(errs, fmt.Errorf("collect %s: %w", url, err))
			continue
		}

		for _, tok := range f.rules.Extract(fragments) {
			h := hit{code: tok, url: url}
			if _, ok := seen[h]; !ok {
				seen[h] = struct{}{}
				hits = append(hits, h)
			}
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].code != hits[j].code {
			return hits[i].code < hits[j].code
		}
		return hits[i].url < hits[j].url
	})

	now := time.Now().UTC()
	recs := make([]store.Found, 0, len(hits))
	for _, h := range hits {
		recs = append(recs, store.Found{
			Code:         h.code,
			SourceURL:    h.url,
			DiscoveredAt: now,
		})
	}

	if len(recs) > 0 {
		if err := f.store.InsertFound(ctx, recs); err != nil {
			return nil, err
		}
	}
	return recs, errors.Join(errs...)
}

// InferTemplates ranks templates and affixes over every code harvested
// so far. An empty store yields empty rankings.
func (f *Forge) InferTemplates(ctx context.Context) (infer.Result, error) {
	found, err := f.store.ListFound(ctx)
	if err != nil {
		return infer.Result{}, err
	}

	codes := make([]string, 0, len(found))
	seen := make(map[string]struct{}, len(found))
	for _, r := range found {
		if _, ok := seen[r.Code]; ok {
			continue
		}
		seen[r.Code] = struct{}{}
		codes = append(codes, r.Code)
	}

	return f.inf.Infer(codes), nil
}

// GenerateCodes synthesizes n codes from the template and persists them
// with template, marker and timestamp provenance. n <= 0 falls back to
// the configured batch size. Prefix and suffix arguments override the
// configured fixed affixes; pass "" to use those.
func (f *Forge) GenerateCodes(ctx context.Context, template string, n int, prefix, suffix string) ([]store.Generated, error) {
	if n <= 0 {
		n = f.cfg.GenerateCount
	}
	if prefix == "" {
		prefix = f.cfg.Prefix
	}
	if suffix == "" {
		suffix = f.cfg.Suffix
	}

	codes, err := f.gen.GenerateBatch(template, n, gen.Options{
		Prefix:  prefix,
		Suffix:  suffix,
		Marker:  f.cfg.Marker,
		Symbols: f.cfg.Symbols,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	recs := make([]store.Generated, 0, len(codes))
	for _, code := range codes {
		recs = append(recs, store.Generated{
			Code:        code,
			Template:    template,
			Marker:      f.Marker(),
			GeneratedAt: now,
		})
	}

	if err := f.store.InsertGenerated(ctx, recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Export writes the current store contents to path; format selection
// and file layout follow export.ToFile.
func (f *Forge) Export(ctx context.Context, path string) error {
	return export.ToFile(ctx, f.store, path)
}
