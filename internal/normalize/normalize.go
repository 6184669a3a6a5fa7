// Package normalize prepares fetched content for the model call: it dedupes
// items by origin URL, drops empty ones, ranks by engagement, and flattens
// everything into a single string bounded by a character budget.
package normalize

import (
	"fmt"
	"sort"
	"strings"

	"flavorscout/internal/model"
)

const (
	// MaxItems caps how many items make it into the prompt regardless of
	// how many were fetched.
	MaxItems = 40
	// MaxExcerpts caps the excerpt section.
	MaxExcerpts = 30

	itemBodyCeiling = 150
	excerptCeiling  = 200
	// excerptMargin is the headroom required before the excerpt section is
	// appended at all; it is never appended partially.
	excerptMargin = 5000

	// TruncationMarker terminates a hard-truncated output.
	TruncationMarker = "\n\n[Content truncated for analysis]"
)

// Dedup returns items with duplicate origin URLs removed, keeping the first
// occurrence in input order. Items lacking both a title and a body are
// dropped.
func Dedup(items []model.ContentItem) []model.ContentItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]model.ContentItem, 0, len(items))
	for _, it := range items {
		key := it.OriginURL
		if key == "" {
			key = it.ID
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if strings.TrimSpace(it.Title) == "" && strings.TrimSpace(it.Body) == "" {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Normalize builds the analysis text from items and excerpts. The result is
// guaranteed to be at most charBudget characters. It cannot fail: empty input
// yields a near-empty string.
func Normalize(items []model.ContentItem, excerpts []model.ContentExcerpt, charBudget int) string {
	items = Dedup(items)

	// Rank by engagement, stable so equal scores keep input order.
	ranked := make([]model.ContentItem, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Engagement > ranked[j].Engagement
	})
	if len(ranked) > MaxItems {
		ranked = ranked[:MaxItems]
	}

	topExcerpts := excerpts
	if len(topExcerpts) > MaxExcerpts {
		topExcerpts = topExcerpts[:MaxExcerpts]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== NEWS HEADLINES & SUMMARIES (%d articles) ===\n", len(ranked))
	for i, it := range ranked {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s] %s\n%s", it.SourceName, it.Title, truncate(it.Body, itemBodyCeiling))
	}
	out := b.String()

	// The excerpt section is all-or-nothing: appended only when it cannot
	// push us near the budget.
	if len(topExcerpts) > 0 && len(out) < charBudget-excerptMargin {
		var e strings.Builder
		e.WriteString("\n\n=== ARTICLE EXCERPTS ===\n")
		for i, ex := range topExcerpts {
			if i > 0 {
				e.WriteString("\n\n")
			}
			fmt.Fprintf(&e, "[%s] %s", ex.AuthorName, truncate(ex.Body, excerptCeiling))
		}
		out += e.String()
	}

	// Last-resort guarantee.
	if len(out) > charBudget {
		cut := charBudget - len(TruncationMarker)
		if cut < 0 {
			cut = 0
		}
		out = out[:cut] + TruncationMarker
		if len(out) > charBudget {
			out = out[:charBudget]
		}
	}
	return out
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
