// Package thanhnien fetches Thanh Niên RSS feeds and article pages.
package thanhnien

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// fallbackTitle matches the site's convention for untitled entries.
const fallbackTitle = "(Không tiêu đề)"

const (
	maxBodyBytes  = 10 << 20
	maxImageBytes = 8 << 20
)

// Article is one feed entry. Identity is the link; entries without a link
// cannot be displayed or opened and never reach the UI.
type Article struct {
	Title      string
	Link       string
	Categories []string
}

type Client struct {
	http         *http.Client
	parser       *gofeed.Parser
	userAgent    string
	imageWorkers int
}

func NewClient(httpClient *http.Client, userAgent string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{
		http:         httpClient,
		parser:       gofeed.NewParser(),
		userAgent:    userAgent,
		imageWorkers: defaultImageWorkers,
	}
}

// FetchFeed downloads url and returns its articles in document order. A
// transport failure or an unparseable document fails the whole call; no
// partial list is returned.
func (c *Client) FetchFeed(ctx context.Context, url string) ([]Article, error) {
	body, err := c.get(ctx, url, maxBodyBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	feed, err := c.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	articles := make([]Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}
		// Titles and categories are sometimes double-escaped in the feed.
		title := strings.TrimSpace(html.UnescapeString(item.Title))
		if title == "" {
			title = fallbackTitle
		}
		var categories []string
		for _, category := range item.Categories {
			category = strings.TrimSpace(html.UnescapeString(category))
			if category != "" {
				categories = append(categories, category)
			}
		}
		articles = append(articles, Article{Title: title, Link: link, Categories: categories})
	}
	return articles, nil
}

// get performs one GET and returns the body, treating any non-2xx status as
// a failure. The response is capped at limit bytes.
func (c *Client) get(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("request %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}
