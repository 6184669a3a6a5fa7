// Package newsapi is a minimal NewsAPI client tuned for flavor-trend
// discovery. Docs: https://newsapi.org/docs/endpoints/everything
package newsapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"flavorscout/internal/model"
)

// DefaultQueries is the built-in search list covering the brand, the product
// category, competitors, and flavor trends.
var DefaultQueries = []string{
	"HealthKart products India",
	"MuscleBlaze protein flavor",
	"HK Vitals supplements",
	"TrueBasics health products",
	"protein powder flavors India",
	"best tasting whey protein",
	"new protein flavors",
	"Indian supplement market",
	"fitness supplements India",
	"Optimum Nutrition India",
	"MyProtein India flavors",
	"mango protein powder",
	"electrolyte drinks India",
	"BCAA supplements flavor",
	"pre workout flavors",
}

type Client struct {
	baseURL  string
	apiKey   string
	pageSize int
	queries  []string
	client   *http.Client
}

// NewClient creates a NewsAPI client. queries overrides DefaultQueries when
// non-empty.
func NewClient(baseURL, apiKey string, pageSize int, queries []string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://newsapi.org/v2"
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if len(queries) == 0 {
		queries = DefaultQueries
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		pageSize: pageSize,
		queries:  queries,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Name() string { return "newsapi" }

// article mirrors the subset of NewsAPI article fields we use.
type article struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

type searchResponse struct {
	Status   string    `json:"status"`
	Message  string    `json:"message"`
	Articles []article `json:"articles"`
}

// NewsAPI pads truncated article bodies with a "[+123 chars]" marker.
var truncMarkerRe = regexp.MustCompile(`\[\+\d+ chars\]$`)

// FetchContent searches every configured query and merges the results,
// deduplicating by URL. A 401 aborts immediately (bad key); a 429 stops with
// whatever was collected; other per-query failures are logged and skipped.
func (c *Client) FetchContent(ctx context.Context) ([]model.ContentItem, []model.ContentExcerpt, error) {
	var items []model.ContentItem
	var excerpts []model.ContentExcerpt
	seen := make(map[string]struct{})

	for _, query := range c.queries {
		arts, err := c.search(ctx, query)
		if err != nil {
			var se *statusError
			if errors.As(err, &se) && se.code == http.StatusUnauthorized {
				return nil, nil, fmt.Errorf("invalid NewsAPI key: %s", se.message)
			}
			if errors.As(err, &se) && se.code == http.StatusTooManyRequests {
				slog.Warn("newsapi: rate limit reached, using collected results", "collected", len(items))
				break
			}
			slog.Warn("newsapi: query failed", "query", query, "error", err)
			continue
		}
		for _, a := range arts {
			if _, dup := seen[a.URL]; dup {
				continue
			}
			seen[a.URL] = struct{}{}
			if a.Title == "" || (a.Description == "" && a.Content == "") {
				continue
			}
			item := convertArticle(a)
			items = append(items, item)
			excerpts = append(excerpts, excerptsFromArticle(a, item)...)
		}
	}

	slog.Info("newsapi: fetch complete", "items", len(items), "excerpts", len(excerpts))
	return items, excerpts, nil
}

// search runs one /everything query.
func (c *Client) search(ctx context.Context, query string) ([]article, error) {
	q := url.Values{
		"q":        {query},
		"language": {"en"},
		"sortBy":   {"relevancy"},
		"pageSize": {fmt.Sprintf("%d", c.pageSize)},
	}
	endpoint := fmt.Sprintf("%s/everything?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("User-Agent", "FlavorScout/1.0")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil && resp.StatusCode == http.StatusOK {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode, message: body.Message}
	}
	return body.Articles, nil
}

func convertArticle(a article) model.ContentItem {
	content := a.Description
	if content == "" {
		content = a.Content
	}
	published, _ := time.Parse(time.RFC3339, a.PublishedAt)
	sourceName := a.Source.Name
	if sourceName == "" {
		sourceName = "News"
	}
	author := a.Author
	if author == "" {
		author = sourceName
	}
	return model.ContentItem{
		ID:          idFromURL(a.URL),
		Title:       a.Title,
		Body:        content,
		SourceName:  sourceName,
		AuthorName:  author,
		PublishedAt: published.Unix(),
		OriginURL:   a.URL,
		// NewsAPI has no engagement signal; simulate one so ranking still
		// spreads items instead of collapsing to input order.
		Engagement: rand.Intn(100) + 50,
	}
}

// excerptsFromArticle derives excerpts from the article body and description
// for deeper analysis.
func excerptsFromArticle(a article, item model.ContentItem) []model.ContentExcerpt {
	var out []model.ContentExcerpt
	if len(a.Content) > 100 {
		out = append(out, model.ContentExcerpt{
			ID:          "excerpt-" + item.ID,
			Body:        truncMarkerRe.ReplaceAllString(a.Content, ""),
			AuthorName:  item.SourceName,
			PublishedAt: item.PublishedAt,
		})
	}
	if len(a.Description) > 50 {
		out = append(out, model.ContentExcerpt{
			ID:          "desc-" + item.ID,
			Body:        a.Description,
			AuthorName:  item.SourceName,
			PublishedAt: item.PublishedAt,
		})
	}
	return out
}

func idFromURL(u string) string {
	enc := base64.StdEncoding.EncodeToString([]byte(u))
	if len(enc) > 20 {
		enc = enc[:20]
	}
	return enc
}

type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("newsapi: status %d: %s", e.code, e.message)
}
