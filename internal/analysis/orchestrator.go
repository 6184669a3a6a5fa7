package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"flavorscout/internal/ai"
	"flavorscout/internal/catalog"
	"flavorscout/internal/model"
	"flavorscout/internal/normalize"
	"flavorscout/internal/source"
	"flavorscout/internal/storage"
)

// FallbackCache is the last-known-good store consulted when any stage fails.
type FallbackCache interface {
	Put(result model.AnalysisResult)
	Get(reason string) *model.AnalysisResult
}

// Orchestrator sequences one analysis cycle: credentials check, fetch,
// normalize, model call, parse, golden-candidate selection, cache write.
// Stages run strictly sequentially; each external call is attempted exactly
// once per run — resilience comes from serving the last good result, not
// from retrying.
type Orchestrator struct {
	Sources    []source.Source
	Analyzer   ai.Analyzer
	Cache      FallbackCache
	Store      storage.FetchCache
	Catalog    catalog.Catalog
	CharBudget int
	// Missing reports absent required credentials (env-style names).
	Missing func() []string

	now func() time.Time
}

func New(sources []source.Source, analyzer ai.Analyzer, cache FallbackCache, store storage.FetchCache, cat catalog.Catalog, charBudget int, missing func() []string) *Orchestrator {
	if charBudget <= 0 {
		charBudget = 25000
	}
	return &Orchestrator{
		Sources:    sources,
		Analyzer:   analyzer,
		Cache:      cache,
		Store:      store,
		Catalog:    cat,
		CharBudget: charBudget,
		Missing:    missing,
		now:        time.Now,
	}
}

// fetchAll aggregates all sources. Individual source failures are tolerated
// as long as something was fetched; zero items is a fetch failure whose
// message carries the first source error when there is one.
func (o *Orchestrator) fetchAll(ctx context.Context, forceRefresh bool) (items []model.ContentItem, excerpts []model.ContentExcerpt, usedCache bool, ageSeconds int, err error) {
	var firstErr error
	for _, src := range o.Sources {
		res, ferr := src.Fetch(ctx, forceRefresh)
		if ferr != nil {
			slog.Error("orchestrator: source fetch failed", "source", src.Name(), "error", ferr)
			if firstErr == nil {
				firstErr = fmt.Errorf("%s error: %w", src.Name(), ferr)
			}
			continue
		}
		items = append(items, res.Items...)
		excerpts = append(excerpts, res.Excerpts...)
		if res.FromCache {
			usedCache = true
			if res.AgeSeconds > ageSeconds {
				ageSeconds = res.AgeSeconds
			}
		}
	}
	if len(items) == 0 {
		if firstErr != nil {
			return nil, nil, false, 0, firstErr
		}
		return nil, nil, false, 0, fmt.Errorf("no content items found")
	}
	return items, excerpts, usedCache, ageSeconds, nil
}

// FetchContent exposes the fetch+dedup stage for diagnostics.
func (o *Orchestrator) FetchContent(ctx context.Context, forceRefresh bool) ([]model.ContentItem, []model.ContentExcerpt, error) {
	items, excerpts, _, _, err := o.fetchAll(ctx, forceRefresh)
	if err != nil {
		return nil, nil, err
	}
	return normalize.Dedup(items), excerpts, nil
}

// Run executes one full analysis cycle. On any stage failure it serves the
// last cached result when one exists; otherwise it returns a PipelineError.
// A returned result with IsFallback set means the failure was swallowed.
func (o *Orchestrator) Run(ctx context.Context, forceRefresh bool) (*model.AnalysisResult, *PipelineError) {
	// CHECK_CREDENTIALS — a configuration problem, not transient.
	if missing := o.Missing(); len(missing) > 0 {
		reason := "Missing credentials: " + strings.Join(missing, ", ")
		if cached := o.Cache.Get(reason); cached != nil {
			slog.Warn("orchestrator: serving fallback", "reason", reason)
			return cached, nil
		}
		return nil, &PipelineError{
			Kind:        KindConfiguration,
			Message:     "Please configure the following environment variables: " + strings.Join(missing, ", "),
			MissingVars: missing,
		}
	}

	// FETCHING
	slog.Info("orchestrator: fetching content", "force_refresh", forceRefresh)
	items, excerpts, usedCache, ageSeconds, err := o.fetchAll(ctx, forceRefresh)
	if err != nil {
		if cached := o.Cache.Get(err.Error()); cached != nil {
			slog.Warn("orchestrator: serving fallback", "reason", err)
			return cached, nil
		}
		return nil, &PipelineError{Kind: KindFetch, Message: err.Error(), Err: err}
	}

	// NORMALIZING — total, cannot fail.
	content := normalize.Normalize(items, excerpts, o.CharBudget)
	rawCount := len(normalize.Dedup(items))
	slog.Info("orchestrator: content prepared", "items", rawCount, "chars", len(content))

	// CALLING_MODEL
	raw, err := o.Analyzer.AnalyzeContent(ctx, ai.BuildPrompt(o.Catalog, content))
	if err == nil {
		// PARSING — a non-JSON reply counts as a model failure; everything
		// past that point is total defaulting.
		var parsed model.ModelAnalysis
		parsed, err = ai.ParseAnalysis(raw)
		if err == nil {
			return o.finish(ctx, parsed, rawCount, usedCache && !forceRefresh, ageSeconds), nil
		}
	}
	if cached := o.Cache.Get(err.Error()); cached != nil {
		slog.Warn("orchestrator: serving fallback", "reason", err)
		return cached, nil
	}
	return nil, &PipelineError{Kind: KindModel, Message: err.Error(), Err: err}
}

// finish runs SELECTING and DONE: derive the golden candidate and mention
// summary, assemble the result, and overwrite the fallback slot.
func (o *Orchestrator) finish(ctx context.Context, parsed model.ModelAnalysis, rawCount int, usedCache bool, ageSeconds int) *model.AnalysisResult {
	fetches, err := o.Store.Fetches(ctx)
	if err != nil {
		slog.Warn("orchestrator: fetch counter read failed", "error", err)
	}
	result := model.AnalysisResult{
		TrendKeywords:    parsed.TrendKeywords,
		FlavorMentions:   SummarizeMentions(parsed.TrendKeywords),
		Recommendations:  parsed.Recommendations,
		GoldenCandidate:  SelectGolden(parsed.GoldenCandidate, parsed.Recommendations),
		NegativeMentions: parsed.NegativeMentions,
		RawItemCount:     rawCount,
		AnalyzedAt:       o.now().UTC().Format(time.RFC3339),
		AnalysisInsights: parsed.AnalysisInsights,
		CacheInfo: model.CacheInfo{
			UsedCache:       usedCache,
			CacheAgeSeconds: ageSeconds,
			TotalAPIFetches: fetches,
			IsFallback:      false,
		},
	}
	o.Cache.Put(result)
	slog.Info("orchestrator: analysis complete",
		"keywords", len(result.TrendKeywords),
		"recommendations", len(result.Recommendations),
		"negative_mentions", len(result.NegativeMentions))
	return &result
}
