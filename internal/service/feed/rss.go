// Package feed pulls headlines from RSS/Atom sources and normalizes
// them into plain-text news documents.
package feed

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"BulletCatalyst/internal/domain/models"
	"BulletCatalyst/internal/domain/repository"
	"BulletCatalyst/pkg/logger"
	"BulletCatalyst/pkg/util"
)

var (
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
	hrefPattern = regexp.MustCompile(`href="([^"]+)"`)
)

// Client fetches a fixed list of feeds. One broken feed is logged and
// skipped; Fetch fails only when the context is done.
type Client struct {
	urls       []string
	delay      time.Duration
	userAgent  string
	maxPerFeed int
	parser     *gofeed.Parser
	http       *http.Client
	log        *logger.Logger
}

var _ repository.FeedSource = (*Client)(nil)

type Option func(*Client)

func WithDelay(d time.Duration) Option   { return func(c *Client) { c.delay = d } }
func WithUserAgent(ua string) Option     { return func(c *Client) { c.userAgent = ua } }
func WithMaxPerFeed(n int) Option        { return func(c *Client) { c.maxPerFeed = n } }
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.http.Timeout = d } }

func NewClient(urls []string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		urls:      urls,
		userAgent: "Mozilla/5.0",
		parser:    gofeed.NewParser(),
		http:      &http.Client{Timeout: 45 * time.Second},
		log:       log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads every configured feed in order, pausing between
// feeds so back-to-back hits on the same host stay polite.
func (c *Client) Fetch(ctx context.Context) ([]models.NewsDocument, error) {
	var docs []models.NewsDocument
	for i, feedURL := range c.urls {
		if i > 0 && c.delay > 0 {
			select {
			case <-time.After(c.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		items, err := c.fetchOne(ctx, feedURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.log.Warn("feed fetch failed",
				logger.String("url", feedURL),
				logger.Error(err),
			)
			continue
		}
		c.log.Info("feed fetched",
			logger.String("url", feedURL),
			logger.Int("items", len(items)),
		)
		docs = append(docs, items...)
	}
	return docs, nil
}

func (c *Client) fetchOne(ctx context.Context, feedURL string) ([]models.NewsDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	parsed, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := parsed.Items
	if c.maxPerFeed > 0 && len(items) > c.maxPerFeed {
		items = items[:c.maxPerFeed]
	}

	docs := make([]models.NewsDocument, 0, len(items))
	for _, item := range items {
		if d, ok := normalize(item); ok {
			docs = append(docs, d)
		}
	}
	return docs, nil
}

// normalize strips markup from one feed item. Google News items often
// carry the real link only inside the description HTML, so the first
// href is recovered when the link field is empty.
func normalize(item *gofeed.Item) (models.NewsDocument, bool) {
	link := strings.TrimSpace(item.Link)
	if link == "" {
		if m := hrefPattern.FindStringSubmatch(item.Description); m != nil {
			link = m[1]
		}
	}

	d := models.NewsDocument{
		Title:   stripHTML(item.Title),
		URL:     link,
		Source:  hostname(link),
		Snippet: stripHTML(item.Description),
	}
	if d.Title == "" && d.Snippet == "" {
		return models.NewsDocument{}, false
	}
	return d, true
}

func stripHTML(s string) string {
	return util.CleanSpaces(html.UnescapeString(tagPattern.ReplaceAllString(s, " ")))
}

func hostname(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
