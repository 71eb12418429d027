package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultHTTPTimeout = 20 * time.Second
	defaultUserAgent   = "Bao/1.0"
)

// Feed is one selectable RSS source.
type Feed struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Config holds runtime settings for the reader.
type Config struct {
	Feeds       []Feed
	HTTPTimeout time.Duration
	UserAgent   string
	LogFile     string
	LogLevel    string
}

func defaultFeeds() []Feed {
	return []Feed{
		{Name: "Tin mới", URL: "https://thanhnien.vn/rss/home.rss"},
		{Name: "Thời sự", URL: "https://thanhnien.vn/rss/thoi-su.rss"},
		{Name: "Thế giới", URL: "https://thanhnien.vn/rss/the-gioi.rss"},
		{Name: "Kinh doanh", URL: "https://thanhnien.vn/rss/kinh-doanh.rss"},
		{Name: "Văn hóa", URL: "https://thanhnien.vn/rss/van-hoa.rss"},
	}
}

// LoadFromEnv builds the configuration from the environment. BAO_FEEDS_FILE
// replaces the built-in feed set with a YAML list, BAO_FEED_URL prepends one
// ad-hoc feed, BAO_LOG_FILE/BAO_LOG_LEVEL control file logging.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		Feeds:       defaultFeeds(),
		HTTPTimeout: defaultHTTPTimeout,
		UserAgent:   defaultUserAgent,
		LogFile:     os.Getenv("BAO_LOG_FILE"),
		LogLevel:    os.Getenv("BAO_LOG_LEVEL"),
	}

	if path := os.Getenv("BAO_FEEDS_FILE"); path != "" {
		feeds, err := loadFeedsFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg.Feeds = feeds
	}

	if raw := os.Getenv("BAO_FEED_URL"); raw != "" {
		cfg.Feeds = append([]Feed{{Name: "Tùy chọn", URL: raw}}, cfg.Feeds...)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFeedsFile(path string) ([]Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds file: %w", err)
	}
	var feeds []Feed
	if err := yaml.Unmarshal(data, &feeds); err != nil {
		return nil, fmt.Errorf("parse feeds file %s: %w", path, err)
	}
	if len(feeds) == 0 {
		return nil, fmt.Errorf("feeds file %s lists no feeds", path)
	}
	return feeds, nil
}

func (c Config) Validate() error {
	if len(c.Feeds) == 0 {
		return errors.New("at least one feed is required")
	}
	for _, feed := range c.Feeds {
		if feed.Name == "" {
			return fmt.Errorf("feed %q has no name", feed.URL)
		}
		parsed, err := url.Parse(feed.URL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf("feed %q has an invalid URL: %s", feed.Name, feed.URL)
		}
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("HTTPTimeout must be positive")
	}
	return nil
}
