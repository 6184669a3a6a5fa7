package normalize

import (
	"fmt"
	"strings"
	"testing"

	"flavorscout/internal/model"
)

func item(url, title, body string, score int) model.ContentItem {
	return model.ContentItem{
		ID:         url,
		Title:      title,
		Body:       body,
		SourceName: "Test Source",
		OriginURL:  url,
		Engagement: score,
	}
}

func TestDedupKeepsFirstSeen(t *testing.T) {
	items := []model.ContentItem{
		item("https://a.example/1", "first copy", "body one", 10),
		item("https://a.example/2", "other", "body two", 20),
		item("https://a.example/1", "second copy", "body three", 99),
	}
	got := Dedup(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", len(got))
	}
	if got[0].Title != "first copy" {
		t.Errorf("dedup kept the wrong duplicate: %q", got[0].Title)
	}
}

func TestDedupDropsEmptyItems(t *testing.T) {
	items := []model.ContentItem{
		item("https://a.example/1", "", "   ", 10),
		item("https://a.example/2", "has title", "", 5),
		item("https://a.example/3", "", "has body", 5),
	}
	got := Dedup(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
}

func TestNormalizeBudgetGuarantee(t *testing.T) {
	long := strings.Repeat("flavor talk ", 500)
	var items []model.ContentItem
	for i := 0; i < 200; i++ {
		items = append(items, item(fmt.Sprintf("https://a.example/%d", i), fmt.Sprintf("title %d", i), long, i))
	}
	var excerpts []model.ContentExcerpt
	for i := 0; i < 100; i++ {
		excerpts = append(excerpts, model.ContentExcerpt{ID: fmt.Sprintf("e%d", i), Body: long, AuthorName: "commenter"})
	}
	for _, budget := range []int{100, 1000, 5000, 25000} {
		out := Normalize(items, excerpts, budget)
		if len(out) > budget {
			t.Errorf("budget %d exceeded: got %d chars", budget, len(out))
		}
	}
}

func TestNormalizeTruncationMarker(t *testing.T) {
	long := strings.Repeat("x", 1000)
	items := []model.ContentItem{}
	for i := 0; i < 50; i++ {
		items = append(items, item(fmt.Sprintf("https://a.example/%d", i), "t", long, 1))
	}
	out := Normalize(items, nil, 2000)
	if !strings.HasSuffix(out, TruncationMarker) {
		t.Errorf("expected truncation marker suffix, got tail %q", out[len(out)-50:])
	}
}

func TestNormalizeOmitsExcerptsWhenTight(t *testing.T) {
	items := []model.ContentItem{item("https://a.example/1", "title", strings.Repeat("b", 140), 1)}
	excerpts := []model.ContentExcerpt{{ID: "e1", Body: "a comment", AuthorName: "someone"}}

	// Plenty of room: excerpt section present.
	roomy := Normalize(items, excerpts, 25000)
	if !strings.Contains(roomy, "ARTICLE EXCERPTS") {
		t.Errorf("expected excerpt section with a roomy budget")
	}
	// Tight budget: excerpt section omitted entirely, not partially.
	tight := Normalize(items, excerpts, excerptMargin+100)
	if strings.Contains(tight, "ARTICLE EXCERPTS") {
		t.Errorf("excerpt section should be omitted under a tight budget")
	}
	if strings.Contains(tight, "a comment") {
		t.Errorf("no partial excerpt content should leak in")
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	out := Normalize(nil, nil, 25000)
	if len(out) > 100 {
		t.Errorf("empty input should yield a near-empty string, got %d chars", len(out))
	}
}

func TestNormalizeRanksByEngagement(t *testing.T) {
	items := []model.ContentItem{
		item("https://a.example/low", "low scorer", "b", 1),
		item("https://a.example/high", "high scorer", "b", 100),
	}
	out := Normalize(items, nil, 25000)
	hi := strings.Index(out, "high scorer")
	lo := strings.Index(out, "low scorer")
	if hi == -1 || lo == -1 {
		t.Fatalf("both items should be present")
	}
	if hi > lo {
		t.Errorf("higher-engagement item should come first")
	}
}
