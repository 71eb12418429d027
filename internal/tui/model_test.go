package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TiepCB-lab/Bao/internal/config"
	"github.com/TiepCB-lab/Bao/internal/thanhnien"
	"github.com/TiepCB-lab/Bao/internal/tui/actions"
)

func testFeeds() []config.Feed {
	return []config.Feed{
		{Name: "Tin mới", URL: "https://thanhnien.vn/rss/home.rss"},
		{Name: "Thời sự", URL: "https://thanhnien.vn/rss/thoi-su.rss"},
	}
}

func testArticles() []thanhnien.Article {
	return []thanhnien.Article{
		{Title: "Bài một", Link: "https://thanhnien.vn/bai-1.html", Categories: []string{"Thời sự"}},
		{Title: "Bài hai", Link: "https://thanhnien.vn/bai-2.html"},
	}
}

func newTestModel() Model {
	return NewModel(nil, nil, testFeeds())
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T", updated)
	}
	return next, cmd
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func TestFeedLoadSuccessReplacesList(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, actions.FeedLoadSuccessMsg{
		FeedURL:  "https://thanhnien.vn/rss/home.rss",
		Articles: testArticles(),
	})
	if m.loading {
		t.Fatal("loading flag not cleared")
	}
	if len(m.articles) != 2 || m.cursor != 0 {
		t.Fatalf("article list not applied: %d articles, cursor %d", len(m.articles), m.cursor)
	}
}

func TestFeedLoadResultForAnotherFeedIsIgnored(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, actions.FeedLoadSuccessMsg{
		FeedURL:  "https://thanhnien.vn/rss/thoi-su.rss",
		Articles: testArticles(),
	})
	if len(m.articles) != 0 {
		t.Fatal("result for a non-current feed must be discarded")
	}
	if !m.loading {
		t.Fatal("loading state must be untouched by a stale result")
	}
}

func TestFeedLoadErrorSurfacesAndReenablesControls(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, actions.FeedLoadErrorMsg{
		FeedURL: "https://thanhnien.vn/rss/home.rss",
		Err:     errors.New("status 502"),
	})
	if m.err == nil {
		t.Fatal("error not surfaced")
	}
	if m.loading {
		t.Fatal("load controls must be re-enabled after a failure")
	}

	// Any key dismisses the notification; the UI stays usable.
	m, _ = update(t, m, keyMsg("x"))
	if m.err != nil {
		t.Fatal("error not dismissed by key press")
	}
	m.loading = false
	_, cmd := update(t, m, keyMsg("r"))
	if cmd == nil {
		t.Fatal("reload must be available after dismissing the error")
	}
}

func TestEnterOpensDetailAndStartsArticleLoad(t *testing.T) {
	m := newTestModel()
	m.loading = false
	m.articles = testArticles()
	m.cursor = 1

	m, cmd := update(t, m, keyMsg("enter"))
	if !m.inDetail || !m.articleLoading {
		t.Fatalf("detail state not entered: inDetail=%v loading=%v", m.inDetail, m.articleLoading)
	}
	if m.selectedLink != "https://thanhnien.vn/bai-2.html" {
		t.Fatalf("unexpected selection: %s", m.selectedLink)
	}
	if cmd == nil {
		t.Fatal("expected an article load command")
	}
}

func TestStaleArticleResultIsDiscarded(t *testing.T) {
	m := newTestModel()
	m.loading = false
	m.articles = testArticles()
	m, _ = update(t, m, keyMsg("enter")) // selects bai-1

	m, _ = update(t, m, actions.ArticleLoadSuccessMsg{
		Link:    "https://thanhnien.vn/bai-2.html",
		Content: thanhnien.ArticleContent{Paragraphs: []string{"cũ"}},
	})
	if m.content != nil {
		t.Fatal("late result for a superseded selection must be discarded")
	}
	if !m.articleLoading {
		t.Fatal("current load must remain pending")
	}
}

func TestMatchingArticleResultIsApplied(t *testing.T) {
	m := newTestModel()
	m.loading = false
	m.articles = testArticles()
	m, _ = update(t, m, keyMsg("enter"))

	m, _ = update(t, m, actions.ArticleLoadSuccessMsg{
		Link:    "https://thanhnien.vn/bai-1.html",
		Content: thanhnien.ArticleContent{Paragraphs: []string{"đoạn một"}},
	})
	if m.articleLoading {
		t.Fatal("loading flag not cleared")
	}
	if m.content == nil || len(m.content.Paragraphs) != 1 {
		t.Fatalf("content not applied: %+v", m.content)
	}
}

func TestArticleLoadErrorReturnsToList(t *testing.T) {
	m := newTestModel()
	m.loading = false
	m.articles = testArticles()
	m, _ = update(t, m, keyMsg("enter"))

	m, _ = update(t, m, actions.ArticleLoadErrorMsg{
		Link: "https://thanhnien.vn/bai-1.html",
		Err:  errors.New("status 500"),
	})
	if m.inDetail {
		t.Fatal("UI must return to a ready state")
	}
	if m.err == nil {
		t.Fatal("error not surfaced")
	}
}

func TestTabSwitchesFeedAndReloads(t *testing.T) {
	m := newTestModel()
	m.loading = false
	m.articles = testArticles()

	m, cmd := update(t, m, keyMsg("tab"))
	if m.feedIdx != 1 {
		t.Fatalf("feed index not advanced: %d", m.feedIdx)
	}
	if len(m.articles) != 0 || !m.loading {
		t.Fatal("feed switch must clear the list and start loading")
	}
	if cmd == nil {
		t.Fatal("expected a feed load command")
	}
}

func TestEscLeavesDetail(t *testing.T) {
	m := newTestModel()
	m.loading = false
	m.articles = testArticles()
	m, _ = update(t, m, keyMsg("enter"))

	m, _ = update(t, m, keyMsg("esc"))
	if m.inDetail {
		t.Fatal("esc must leave the detail view")
	}
	if m.selectedLink != "" || m.content != nil {
		t.Fatal("selection state must be reset")
	}
}

func TestViewRendersWithoutArticles(t *testing.T) {
	m := newTestModel()
	m.loading = false
	if out := m.View(); out == "" {
		t.Fatal("empty view")
	}
}
