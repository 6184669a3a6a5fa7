package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"flavorscout/internal/ai"
	"flavorscout/internal/analysis"
	"flavorscout/internal/cache"
	"flavorscout/internal/catalog"
	"flavorscout/internal/config"
	"flavorscout/internal/newsapi"
	"flavorscout/internal/reddit"
	"flavorscout/internal/redisclient"
	"flavorscout/internal/source"
	"flavorscout/internal/storage"
)

// buildOrchestrator wires sources, stores, and the model client from
// configuration. The returned cleanup closes the redis connection when one
// was opened; it is safe to call unconditionally.
func buildOrchestrator(cfg config.Config) (*analysis.Orchestrator, func(), error) {
	ttl, err := time.ParseDuration(cfg.Analysis.FetchCacheTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid fetch_cache_ttl: %w", err)
	}

	cleanup := func() {}
	var store storage.FetchCache
	if cfg.Redis.Addr != "" {
		rdb := redisclient.New(cfg.Redis)
		cleanup = func() { _ = rdb.Close() }
		store = storage.NewRedisStore(rdb, ttl)
		slog.Info("fetch cache: redis", "addr", cfg.Redis.Addr, "ttl", ttl)
	} else {
		store = storage.NewMemoryStore(ttl)
		slog.Info("fetch cache: in-memory", "ttl", ttl)
	}

	var sources []source.Source
	news := newsapi.NewClient(cfg.NewsAPI.BaseURL, cfg.NewsAPI.APIKey, cfg.NewsAPI.PageSize, cfg.NewsAPI.Queries)
	sources = append(sources, source.NewCached(news, store))

	if cfg.Reddit.Enabled() {
		rc := reddit.NewClient(reddit.Credentials{
			ClientID:     cfg.Reddit.ClientID,
			ClientSecret: cfg.Reddit.ClientSecret,
			Username:     cfg.Reddit.Username,
			Password:     cfg.Reddit.Password,
		}, cfg.Reddit.Subreddits, cfg.Reddit.Keywords)
		sources = append(sources, source.NewCached(rc, store))
		slog.Info("reddit source enabled", "user", cfg.Reddit.Username)
	}

	cat, err := catalog.Load(cfg.Analysis.CatalogPath)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}

	analyzer := ai.NewGroq(ai.Config{
		APIKey:  cfg.Groq.APIKey,
		Model:   cfg.Groq.Model,
		BaseURL: cfg.Groq.BaseURL,
	})

	orch := analysis.New(sources, analyzer, cache.New(), store, cat, cfg.Analysis.CharBudget, cfg.MissingCredentials)
	return orch, cleanup, nil
}

// setupLogging installs the default slog handler at the configured level.
func setupLogging(cfg config.Config) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
