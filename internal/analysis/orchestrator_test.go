package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"flavorscout/internal/cache"
	"flavorscout/internal/catalog"
	"flavorscout/internal/model"
	"flavorscout/internal/source"
	"flavorscout/internal/storage"
)

type fakeSource struct {
	name string
	res  source.Result
	err  error
}

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) Fetch(ctx context.Context, forceRefresh bool) (source.Result, error) {
	return s.res, s.err
}

type fakeAnalyzer struct {
	reply string
	err   error
}

func (a *fakeAnalyzer) AnalyzeContent(ctx context.Context, prompt string) (string, error) {
	return a.reply, a.err
}

func okSource() *fakeSource {
	return &fakeSource{
		name: "news",
		res: source.Result{
			Items: []model.ContentItem{{ID: "1", Title: "Mango trend", Body: "b", OriginURL: "https://x/1", Engagement: 5}},
		},
	}
}

const okReply = `{"trendKeywords":[{"text":"Mango","value":3,"sentiment":"positive"}],"recommendations":[{"id":"rec-1","flavorName":"Mango Lassi","confidence":80,"status":"selected"}],"analysisInsights":"sunny"}`

func noMissing() []string { return nil }

func newOrchestrator(srcs []source.Source, an *fakeAnalyzer, c FallbackCache, missing func() []string) *Orchestrator {
	o := New(srcs, an, c, storage.NewMemoryStore(time.Minute), catalog.Catalog{Brands: []catalog.BrandEntry{{Name: "MuscleBlaze"}}}, 25000, missing)
	return o
}

func TestRunSuccess(t *testing.T) {
	c := cache.New()
	o := newOrchestrator([]source.Source{okSource()}, &fakeAnalyzer{reply: okReply}, c, noMissing)
	got, perr := o.Run(context.Background(), false)
	if perr != nil {
		t.Fatalf("Run error: %v", perr)
	}
	if got.CacheInfo.IsFallback {
		t.Errorf("fresh result must not be marked fallback")
	}
	if got.RawItemCount != 1 {
		t.Errorf("rawItemCount = %d, want 1", got.RawItemCount)
	}
	if got.GoldenCandidate == nil || got.GoldenCandidate.Recommendation.ID != "rec-1" {
		t.Errorf("golden candidate not derived: %+v", got.GoldenCandidate)
	}
	if got.AnalysisInsights != "sunny" {
		t.Errorf("insights not carried: %q", got.AnalysisInsights)
	}
	// Success must populate the fallback slot.
	if c.Get("probe") == nil {
		t.Errorf("successful run must write the fallback cache")
	}
}

func TestRunMissingCredentialsNoFallback(t *testing.T) {
	o := newOrchestrator([]source.Source{okSource()}, &fakeAnalyzer{reply: okReply}, cache.New(),
		func() []string { return []string{"NEWS_API_KEY", "GROQ_API_KEY"} })
	got, perr := o.Run(context.Background(), false)
	if got != nil || perr == nil {
		t.Fatalf("expected a configuration error, got result=%v err=%v", got, perr)
	}
	if perr.Kind != KindConfiguration {
		t.Errorf("kind = %v, want KindConfiguration", perr.Kind)
	}
	if len(perr.MissingVars) != 2 {
		t.Errorf("missing vars not carried: %v", perr.MissingVars)
	}
}

func TestRunMissingCredentialsWithFallback(t *testing.T) {
	c := cache.New()
	c.Put(model.AnalysisResult{AnalysisInsights: "old"})
	o := newOrchestrator([]source.Source{okSource()}, &fakeAnalyzer{reply: okReply}, c,
		func() []string { return []string{"GROQ_API_KEY"} })
	got, perr := o.Run(context.Background(), false)
	if perr != nil {
		t.Fatalf("fallback should swallow the configuration error: %v", perr)
	}
	if !got.CacheInfo.IsFallback {
		t.Errorf("fallback flag not set")
	}
	if !strings.Contains(got.CacheInfo.FallbackReason, "GROQ_API_KEY") {
		t.Errorf("reason should name the missing credential: %q", got.CacheInfo.FallbackReason)
	}
}

func TestRunFetchErrorFallbackPrecedence(t *testing.T) {
	bad := &fakeSource{name: "news", err: errors.New("upstream exploded")}

	// Empty cache: terminal fetch error.
	o := newOrchestrator([]source.Source{bad}, &fakeAnalyzer{reply: okReply}, cache.New(), noMissing)
	got, perr := o.Run(context.Background(), false)
	if got != nil || perr == nil || perr.Kind != KindFetch {
		t.Fatalf("expected a fetch error, got result=%v err=%+v", got, perr)
	}

	// Warm cache: fallback with the triggering error as reason.
	c := cache.New()
	c.Put(model.AnalysisResult{AnalysisInsights: "stale but served"})
	o = newOrchestrator([]source.Source{bad}, &fakeAnalyzer{reply: okReply}, c, noMissing)
	got, perr = o.Run(context.Background(), false)
	if perr != nil {
		t.Fatalf("warm cache must swallow the fetch error: %v", perr)
	}
	if !got.CacheInfo.IsFallback || !strings.Contains(got.CacheInfo.FallbackReason, "upstream exploded") {
		t.Errorf("fallback metadata wrong: %+v", got.CacheInfo)
	}
}

func TestRunZeroItemsIsFetchError(t *testing.T) {
	empty := &fakeSource{name: "news"}
	o := newOrchestrator([]source.Source{empty}, &fakeAnalyzer{reply: okReply}, cache.New(), noMissing)
	_, perr := o.Run(context.Background(), false)
	if perr == nil || perr.Kind != KindFetch {
		t.Fatalf("zero items must be a fetch error, got %+v", perr)
	}
}

func TestRunModelErrorFallbackPrecedence(t *testing.T) {
	an := &fakeAnalyzer{err: errors.New("groq: rate limit reached")}

	o := newOrchestrator([]source.Source{okSource()}, an, cache.New(), noMissing)
	got, perr := o.Run(context.Background(), false)
	if got != nil || perr == nil || perr.Kind != KindModel {
		t.Fatalf("expected a model error, got result=%v err=%+v", got, perr)
	}

	c := cache.New()
	c.Put(model.AnalysisResult{AnalysisInsights: "stale"})
	o = newOrchestrator([]source.Source{okSource()}, an, c, noMissing)
	got, perr = o.Run(context.Background(), false)
	if perr != nil {
		t.Fatalf("warm cache must swallow the model error: %v", perr)
	}
	if !strings.Contains(got.CacheInfo.FallbackReason, "rate limit") {
		t.Errorf("reason should carry the model error: %q", got.CacheInfo.FallbackReason)
	}
}

func TestRunNonJSONReplyIsModelError(t *testing.T) {
	an := &fakeAnalyzer{reply: "<html>service unavailable</html>"}
	o := newOrchestrator([]source.Source{okSource()}, an, cache.New(), noMissing)
	_, perr := o.Run(context.Background(), false)
	if perr == nil || perr.Kind != KindModel {
		t.Fatalf("non-JSON reply must be a model error, got %+v", perr)
	}
}

func TestRunPartialSourceFailureTolerated(t *testing.T) {
	bad := &fakeSource{name: "reddit", err: errors.New("auth failed")}
	o := newOrchestrator([]source.Source{okSource(), bad}, &fakeAnalyzer{reply: okReply}, cache.New(), noMissing)
	got, perr := o.Run(context.Background(), false)
	if perr != nil {
		t.Fatalf("one healthy source should be enough: %v", perr)
	}
	if got.RawItemCount != 1 {
		t.Errorf("items from the healthy source expected, got %d", got.RawItemCount)
	}
}

func TestClassifyModelError(t *testing.T) {
	cases := []struct {
		msg  string
		want ModelErrorClass
	}{
		{"invalid API key provided", ModelErrorAuth},
		{"401 Unauthorized", ModelErrorAuth},
		{"rate limit exceeded, slow down", ModelErrorRateLimit},
		{"too many requests", ModelErrorRateLimit},
		{"status 429", ModelErrorRateLimit},
		{"connection reset by peer", ModelErrorGeneric},
	}
	for _, tc := range cases {
		if got := ClassifyModelError(tc.msg); got != tc.want {
			t.Errorf("ClassifyModelError(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
}
