// Package reddit is a minimal Reddit client using the script-app OAuth2
// password grant. Docs: https://www.reddit.com/dev/api
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flavorscout/internal/model"
)

// DefaultSubreddits are searched for flavor discussions.
var DefaultSubreddits = []string{
	"Supplements", "fitness", "indianfitness", "gainit", "nutrition", "bodybuilding",
}

// DefaultKeywords drive the search queries.
var DefaultKeywords = []string{
	"protein flavor", "best tasting", "worst flavor", "pre workout flavor", "electrolyte flavor",
}

const (
	authURL = "https://www.reddit.com/api/v1/access_token"
	apiURL  = "https://oauth.reddit.com"

	// commentPosts bounds how many posts get their comment trees fetched.
	commentPosts       = 5
	commentsPerPost    = 5
	minCommentBodySize = 10
)

type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

type Client struct {
	creds      Credentials
	subreddits []string
	keywords   []string
	client     *http.Client

	token       string
	tokenExpiry time.Time
}

func NewClient(creds Credentials, subreddits, keywords []string) *Client {
	if len(subreddits) == 0 {
		subreddits = DefaultSubreddits
	}
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	return &Client{
		creds:      creds,
		subreddits: subreddits,
		keywords:   keywords,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Name() string { return "reddit" }

func (c *Client) userAgent() string {
	return "FlavorScout/1.0 (by /u/" + c.creds.Username + ")"
}

// authenticate obtains (or reuses) an OAuth token via the password grant.
func (c *Client) authenticate(ctx context.Context) error {
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return nil
	}
	form := url.Values{
		"grant_type": {"password"},
		"username":   {c.creds.Username},
		"password":   {c.creds.Password},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent())
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reddit: auth status %d", resp.StatusCode)
	}
	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	if body.AccessToken == "" {
		return fmt.Errorf("reddit: auth returned no token")
	}
	c.token = body.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(body.ExpiresIn-60) * time.Second)
	return nil
}

// post mirrors the subset of Reddit post fields we use.
type post struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Subreddit   string  `json:"subreddit"`
	Author      string  `json:"author"`
	Score       int     `json:"score"`
	CreatedUTC  float64 `json:"created_utc"`
	NumComments int     `json:"num_comments"`
	Permalink   string  `json:"permalink"`
	URL         string  `json:"url"`
}

type comment struct {
	ID         string  `json:"id"`
	Body       string  `json:"body"`
	Author     string  `json:"author"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
}

// listing is Reddit's generic envelope.
type listing struct {
	Data struct {
		Children []struct {
			Data json.RawMessage `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// FetchContent searches the configured keywords across the subreddits and
// converts posts to items plus top comments of the first few posts to
// excerpts.
func (c *Client) FetchContent(ctx context.Context) ([]model.ContentItem, []model.ContentExcerpt, error) {
	if err := c.authenticate(ctx); err != nil {
		return nil, nil, err
	}

	var items []model.ContentItem
	var excerpts []model.ContentExcerpt
	seen := make(map[string]struct{})
	subs := strings.Join(c.subreddits, "+")

	for _, keyword := range c.keywords {
		posts, err := c.search(ctx, subs, keyword)
		if err != nil {
			slog.Warn("reddit: search failed", "keyword", keyword, "error", err)
			continue
		}
		for _, p := range posts {
			origin := "https://reddit.com" + p.Permalink
			if _, dup := seen[origin]; dup {
				continue
			}
			seen[origin] = struct{}{}
			items = append(items, model.ContentItem{
				ID:           p.ID,
				Title:        p.Title,
				Body:         p.Selftext,
				SourceName:   "r/" + p.Subreddit,
				AuthorName:   p.Author,
				PublishedAt:  int64(p.CreatedUTC),
				OriginURL:    origin,
				Engagement:   p.Score,
				CommentCount: p.NumComments,
			})
		}
	}

	// Top comments for the first few posts only; each tree is a round-trip.
	for i, it := range items {
		if i >= commentPosts {
			break
		}
		comments, err := c.topComments(ctx, it.ID)
		if err != nil {
			slog.Warn("reddit: comments fetch failed", "post", it.ID, "error", err)
			continue
		}
		excerpts = append(excerpts, comments...)
	}

	slog.Info("reddit: fetch complete", "items", len(items), "excerpts", len(excerpts))
	return items, excerpts, nil
}

// search runs one subreddit-restricted search.
func (c *Client) search(ctx context.Context, subreddits, query string) ([]post, error) {
	q := url.Values{
		"q":           {query},
		"sort":        {"relevance"},
		"t":           {"month"},
		"limit":       {"10"},
		"restrict_sr": {"1"},
	}
	endpoint := fmt.Sprintf("%s/r/%s/search?%s", apiURL, url.PathEscape(subreddits), q.Encode())
	var body listing
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return nil, err
	}
	posts := make([]post, 0, len(body.Data.Children))
	for _, child := range body.Data.Children {
		var p post
		if err := json.Unmarshal(child.Data, &p); err != nil {
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// topComments fetches the top comments of a post as excerpts.
func (c *Client) topComments(ctx context.Context, postID string) ([]model.ContentExcerpt, error) {
	endpoint := fmt.Sprintf("%s/comments/%s?limit=%d&sort=top", apiURL, url.PathEscape(postID), commentsPerPost*2)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent())
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit: comments status %d", resp.StatusCode)
	}
	// The comments endpoint returns [postListing, commentListing].
	var envelope []listing
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	if len(envelope) < 2 {
		return nil, nil
	}
	out := make([]model.ContentExcerpt, 0, commentsPerPost)
	for _, child := range envelope[1].Data.Children {
		if len(out) >= commentsPerPost {
			break
		}
		var cm comment
		if err := json.Unmarshal(child.Data, &cm); err != nil {
			continue
		}
		if len(cm.Body) < minCommentBodySize {
			continue
		}
		author := cm.Author
		if author == "" {
			author = "[deleted]"
		}
		out = append(out, model.ContentExcerpt{
			ID:          cm.ID,
			Body:        cm.Body,
			AuthorName:  author,
			PublishedAt: int64(cm.CreatedUTC),
		})
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent())
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reddit: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
