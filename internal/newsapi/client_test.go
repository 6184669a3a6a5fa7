package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchContentDedupesAndSkips(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{"source":{"name":"Fit News"},"title":"Mango protein is back","description":"Summer launch roundup for mango flavored whey.","url":"https://fit.example/mango","publishedAt":"2025-06-01T10:00:00Z","content":"Mango flavored whey is selling out across stores this summer season, retailers report strong demand. [+812 chars]"},
				{"source":{"name":"Fit News"},"title":"Duplicate","description":"same URL","url":"https://fit.example/mango","publishedAt":"2025-06-01T10:00:00Z"},
				{"source":{"name":"Fit News"},"title":"No body at all","url":"https://fit.example/empty","publishedAt":"2025-06-01T10:00:00Z"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 20, []string{"mango protein"})
	items, excerpts, err := c.FetchContent(context.Background())
	if err != nil {
		t.Fatalf("FetchContent: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item (dup and empty skipped), got %d", len(items))
	}
	if items[0].OriginURL != "https://fit.example/mango" {
		t.Errorf("wrong item kept: %+v", items[0])
	}
	if len(excerpts) != 2 {
		t.Fatalf("expected content + description excerpts, got %d", len(excerpts))
	}
	for _, ex := range excerpts {
		if strings.Contains(ex.Body, "chars]") {
			t.Errorf("truncation marker not stripped: %q", ex.Body)
		}
	}
}

func TestFetchContentInvalidKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","message":"Your API key is invalid"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-key", 20, []string{"q"})
	_, _, err := c.FetchContent(context.Background())
	if err == nil {
		t.Fatalf("expected error for 401")
	}
	if !strings.Contains(err.Error(), "invalid NewsAPI key") {
		t.Errorf("error should identify the bad key: %v", err)
	}
}

func TestFetchContentSkipsFailingQueries(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"status":"error","message":"boom"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok","articles":[{"source":{"name":"S"},"title":"ok","description":"fine","url":"https://x.example/1","publishedAt":"2025-06-01T10:00:00Z"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", 20, []string{"first", "second"})
	items, _, err := c.FetchContent(context.Background())
	if err != nil {
		t.Fatalf("per-query failure must not abort the fetch: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected results from the surviving query, got %d items", len(items))
	}
}
