package cache

import (
	"testing"
	"time"

	"flavorscout/internal/model"
)

func TestGetEmpty(t *testing.T) {
	c := New()
	if got := c.Get("any reason"); got != nil {
		t.Fatalf("empty cache must return nil, got %+v", got)
	}
}

func TestGetOverridesCacheInfo(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	c := NewWithClock(func() time.Time { return now })

	c.Put(model.AnalysisResult{
		AnalysisInsights: "fresh",
		CacheInfo:        model.CacheInfo{IsFallback: false, TotalAPIFetches: 7},
	})

	now = base.Add(90 * time.Second)
	got := c.Get("upstream exploded")
	if got == nil {
		t.Fatalf("expected cached value")
	}
	if !got.CacheInfo.IsFallback || !got.CacheInfo.UsedCache {
		t.Errorf("fallback flags not set: %+v", got.CacheInfo)
	}
	if got.CacheInfo.FallbackReason != "upstream exploded" {
		t.Errorf("reason not carried: %q", got.CacheInfo.FallbackReason)
	}
	if got.CacheInfo.CacheAgeSeconds != 90 {
		t.Errorf("age = %d, want 90", got.CacheInfo.CacheAgeSeconds)
	}
	if got.CacheInfo.TotalAPIFetches != 7 {
		t.Errorf("totalApiFetches must be preserved from the stored value, got %d", got.CacheInfo.TotalAPIFetches)
	}
	if got.AnalysisInsights != "fresh" {
		t.Errorf("payload not carried: %q", got.AnalysisInsights)
	}
}

func TestPutOverwrites(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	c := NewWithClock(func() time.Time { return now })

	c.Put(model.AnalysisResult{AnalysisInsights: "first"})
	now = base.Add(10 * time.Minute)
	c.Put(model.AnalysisResult{AnalysisInsights: "second"})
	now = base.Add(10*time.Minute + 30*time.Second)

	got := c.Get("err")
	if got.AnalysisInsights != "second" {
		t.Errorf("expected second result, got %q", got.AnalysisInsights)
	}
	if got.CacheInfo.CacheAgeSeconds != 30 {
		t.Errorf("age must be relative to the second put, got %d", got.CacheInfo.CacheAgeSeconds)
	}
}

func TestGetDoesNotMutateSlot(t *testing.T) {
	c := New()
	c.Put(model.AnalysisResult{AnalysisInsights: "v"})
	first := c.Get("reason one")
	second := c.Get("reason two")
	if first.CacheInfo.FallbackReason != "reason one" {
		t.Errorf("first read reason changed: %q", first.CacheInfo.FallbackReason)
	}
	if second.CacheInfo.FallbackReason != "reason two" {
		t.Errorf("second read reason wrong: %q", second.CacheInfo.FallbackReason)
	}
}
