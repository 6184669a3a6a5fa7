package worker

import (
	"context"
	"log/slog"
	"time"

	"flavorscout/internal/analysis"
)

// Refresher periodically runs the analysis pipeline so the fallback cache
// stays warm and requests rarely pay the full fetch+model latency.
type Refresher struct {
	Orchestrator *analysis.Orchestrator
	Interval     time.Duration
}

func (w *Refresher) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 30 * time.Minute
	}
	t := time.NewTicker(w.Interval)
	defer t.Stop()

	// initial run
	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Refresher) runOnce(ctx context.Context) {
	start := time.Now()
	result, perr := w.Orchestrator.Run(ctx, false)
	if perr != nil {
		slog.Error("refresher: analysis run failed", "kind", perr.Kind, "error", perr.Message)
		return
	}
	slog.Info("refresher: analysis refreshed",
		"keywords", len(result.TrendKeywords),
		"recommendations", len(result.Recommendations),
		"fallback", result.CacheInfo.IsFallback,
		"elapsed", time.Since(start).Round(time.Millisecond))
}
