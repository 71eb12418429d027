// Package actions bridges background fetch results into the UI event loop.
// Each command submits one unit of work to the worker pool, waits on its
// one-shot handle inside the command goroutine, and returns exactly one
// typed message that bubbletea delivers to Update on the UI loop.
package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TiepCB-lab/Bao/internal/thanhnien"
	"github.com/TiepCB-lab/Bao/internal/worker"
)

// Fetcher is the slice of the Thanh Niên client the UI needs.
type Fetcher interface {
	FetchFeed(ctx context.Context, url string) ([]thanhnien.Article, error)
	FetchArticle(ctx context.Context, url string) (thanhnien.ArticleContent, error)
}

// Submitter is the slice of the worker pool the UI needs.
type Submitter interface {
	Submit(task worker.Task) (*worker.Handle, error)
}

type FeedLoadSuccessMsg struct {
	FeedURL  string
	Articles []thanhnien.Article
	Duration time.Duration
}

type FeedLoadErrorMsg struct {
	FeedURL  string
	Err      error
	Duration time.Duration
}

// Article messages carry the link they were issued for so Update can
// discard results that arrive after the selection has moved on.
type ArticleLoadSuccessMsg struct {
	Link    string
	Content thanhnien.ArticleContent
}

type ArticleLoadErrorMsg struct {
	Link string
	Err  error
}

type OpenURLSuccessMsg struct {
	Status string
}

type OpenURLErrorMsg struct {
	Err error
}

func LoadFeedCmd(pool Submitter, fetcher Fetcher, feedURL string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		handle, err := pool.Submit(func(ctx context.Context) (any, error) {
			return fetcher.FetchFeed(ctx, feedURL)
		})
		if err != nil {
			return FeedLoadErrorMsg{FeedURL: feedURL, Err: err, Duration: time.Since(start)}
		}
		res := <-handle.Done()
		if res.Err != nil {
			return FeedLoadErrorMsg{FeedURL: feedURL, Err: res.Err, Duration: time.Since(start)}
		}
		articles, _ := res.Value.([]thanhnien.Article)
		return FeedLoadSuccessMsg{FeedURL: feedURL, Articles: articles, Duration: time.Since(start)}
	}
}

func LoadArticleCmd(pool Submitter, fetcher Fetcher, link string) tea.Cmd {
	return func() tea.Msg {
		handle, err := pool.Submit(func(ctx context.Context) (any, error) {
			return fetcher.FetchArticle(ctx, link)
		})
		if err != nil {
			return ArticleLoadErrorMsg{Link: link, Err: err}
		}
		res := <-handle.Done()
		if res.Err != nil {
			return ArticleLoadErrorMsg{Link: link, Err: res.Err}
		}
		content, _ := res.Value.(thanhnien.ArticleContent)
		return ArticleLoadSuccessMsg{Link: link, Content: content}
	}
}

func OpenURLCmd(link string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(link); err == nil {
				return OpenURLSuccessMsg{Status: "Opened article in browser"}
			}
		}
		if copyFn != nil {
			if err := copyFn(link); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, link copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open link or copy it to clipboard")}
	}
}

func CopyURLCmd(link string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(link); err == nil {
				return OpenURLSuccessMsg{Status: "Link copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy link to clipboard")}
	}
}
