package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TiepCB-lab/Bao/internal/config"
	"github.com/TiepCB-lab/Bao/internal/thanhnien"
	"github.com/TiepCB-lab/Bao/internal/tui/actions"
	"github.com/TiepCB-lab/Bao/internal/tui/platform"
	"github.com/TiepCB-lab/Bao/internal/tui/state"
	"github.com/TiepCB-lab/Bao/internal/tui/theme"
	"github.com/TiepCB-lab/Bao/internal/tui/view"
)

// Model owns all presentation state. bubbletea runs Update on a single
// goroutine, so every mutation below happens on the UI loop; background
// work only ever arrives here as one of the actions messages.
type Model struct {
	pool    actions.Submitter
	fetcher actions.Fetcher

	feeds   []config.Feed
	feedIdx int

	articles []thanhnien.Article
	cursor   int

	inDetail       bool
	detailTop      int
	selectedLink   string
	content        *thanhnien.ArticleContent
	articleLoading bool

	width    int
	height   int
	loading  bool
	showHelp bool
	status   string
	err      error

	theme     theme.Theme
	openURLFn func(string) error
	copyURLFn func(string) error
}

func NewModel(pool actions.Submitter, fetcher actions.Fetcher, feeds []config.Feed) Model {
	return Model{
		pool:      pool,
		fetcher:   fetcher,
		feeds:     feeds,
		loading:   len(feeds) > 0,
		theme:     theme.Default(),
		openURLFn: platform.OpenURLInBrowser,
		copyURLFn: platform.CopyURLToClipboard,
	}
}

func (m Model) Init() tea.Cmd {
	if len(m.feeds) == 0 {
		return nil
	}
	return actions.LoadFeedCmd(m.pool, m.fetcher, m.currentFeed().URL)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case actions.FeedLoadSuccessMsg:
		// A reload may race a feed switch; only the current feed's result
		// is applied.
		if msg.FeedURL != m.currentFeed().URL {
			return m, nil
		}
		m.loading = false
		m.err = nil
		m.articles = msg.Articles
		m.cursor = 0
		m.resetSelection()
		if len(msg.Articles) == 0 {
			m.status = "Không tìm thấy bài viết nào."
		} else {
			m.status = fmt.Sprintf("Loaded %d articles in %dms", len(msg.Articles), msg.Duration.Milliseconds())
		}
		return m, nil

	case actions.FeedLoadErrorMsg:
		if msg.FeedURL != m.currentFeed().URL {
			return m, nil
		}
		m.loading = false
		m.status = ""
		m.err = msg.Err
		return m, nil

	case actions.ArticleLoadSuccessMsg:
		// Late result for an article the user navigated away from.
		if msg.Link != m.selectedLink {
			return m, nil
		}
		m.articleLoading = false
		content := msg.Content
		m.content = &content
		return m, nil

	case actions.ArticleLoadErrorMsg:
		if msg.Link != m.selectedLink {
			return m, nil
		}
		m.articleLoading = false
		m.inDetail = false
		m.resetSelection()
		m.status = ""
		m.err = msg.Err
		return m, nil

	case actions.OpenURLSuccessMsg:
		m.status = msg.Status
		return m, nil

	case actions.OpenURLErrorMsg:
		m.status = ""
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// An error blocks interaction until dismissed.
	if m.err != nil {
		switch key {
		case "ctrl+c", "q":
			return m, tea.Quit
		default:
			m.err = nil
			return m, nil
		}
	}

	if key == "?" {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		switch key {
		case "esc", "?":
			m.showHelp = false
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.inDetail {
		return m.updateDetailKey(key)
	}
	return m.updateListKey(key)
}

func (m Model) updateDetailKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.inDetail = false
		m.resetSelection()
		return m, nil
	case "up", "k":
		if m.detailTop > 0 {
			m.detailTop--
		}
		return m, nil
	case "down", "j":
		maxTop := view.DetailMaxTop(len(m.detailLines()), m.detailBodyHeight())
		if m.detailTop < maxTop {
			m.detailTop++
		}
		return m, nil
	case "o":
		return m.openCurrentURL()
	case "y":
		return m.copyCurrentURL()
	}
	return m, nil
}

func (m Model) updateListKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor = state.ClampCursor(m.cursor-1, len(m.articles))
		return m, nil
	case "down", "j":
		m.cursor = state.ClampCursor(m.cursor+1, len(m.articles))
		return m, nil
	case "g":
		m.cursor = 0
		return m, nil
	case "G":
		m.cursor = state.ClampCursor(len(m.articles)-1, len(m.articles))
		return m, nil
	case "pgup", "ctrl+b":
		m.cursor = state.ClampCursor(m.cursor-state.PageStep(m.height, m.hasMessage()), len(m.articles))
		return m, nil
	case "pgdown", "ctrl+f":
		m.cursor = state.ClampCursor(m.cursor+state.PageStep(m.height, m.hasMessage()), len(m.articles))
		return m, nil
	case "enter":
		if m.loading || len(m.articles) == 0 {
			return m, nil
		}
		article := m.articles[m.cursor]
		m.inDetail = true
		m.detailTop = 0
		m.selectedLink = article.Link
		m.content = nil
		m.articleLoading = true
		m.status = ""
		return m, actions.LoadArticleCmd(m.pool, m.fetcher, article.Link)
	case "r":
		return m.reloadFeed()
	case "tab":
		return m.switchFeed(1)
	case "shift+tab":
		return m.switchFeed(-1)
	case "o":
		return m.openCurrentURL()
	case "y":
		return m.copyCurrentURL()
	}
	return m, nil
}

func (m Model) reloadFeed() (tea.Model, tea.Cmd) {
	if m.loading || len(m.feeds) == 0 {
		return m, nil
	}
	m.loading = true
	m.status = ""
	m.err = nil
	return m, actions.LoadFeedCmd(m.pool, m.fetcher, m.currentFeed().URL)
}

func (m Model) switchFeed(delta int) (tea.Model, tea.Cmd) {
	if len(m.feeds) < 2 {
		return m, nil
	}
	m.feedIdx = (m.feedIdx + delta + len(m.feeds)) % len(m.feeds)
	m.articles = nil
	m.cursor = 0
	m.resetSelection()
	m.inDetail = false
	m.loading = true
	m.status = ""
	m.err = nil
	return m, actions.LoadFeedCmd(m.pool, m.fetcher, m.currentFeed().URL)
}

func (m Model) openCurrentURL() (tea.Model, tea.Cmd) {
	if len(m.articles) == 0 {
		return m, nil
	}
	link, err := platform.ValidateArticleURL(m.articles[m.cursor].Link)
	if err != nil {
		m.err = err
		return m, nil
	}
	return m, actions.OpenURLCmd(link, m.openURLFn, m.copyURLFn)
}

func (m Model) copyCurrentURL() (tea.Model, tea.Cmd) {
	if len(m.articles) == 0 {
		return m, nil
	}
	link, err := platform.ValidateArticleURL(m.articles[m.cursor].Link)
	if err != nil {
		m.err = err
		return m, nil
	}
	return m, actions.CopyURLCmd(link, m.copyURLFn)
}

func (m *Model) resetSelection() {
	m.selectedLink = ""
	m.content = nil
	m.articleLoading = false
	m.detailTop = 0
}

func (m Model) currentFeed() config.Feed {
	if len(m.feeds) == 0 {
		return config.Feed{}
	}
	return m.feeds[m.feedIdx]
}

func (m Model) hasMessage() bool {
	return m.err != nil || m.status != "" || m.loading
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	width := m.width - 2
	if width < 20 {
		width = 20
	}
	return width
}

func (m Model) listBodyHeight() int {
	if m.height <= 0 {
		return 20
	}
	return state.PageStep(m.height, m.hasMessage())
}

func (m Model) detailBodyHeight() int {
	return m.listBodyHeight()
}

func (m Model) detailLines() []string {
	if len(m.articles) == 0 || m.cursor >= len(m.articles) || m.content == nil {
		return nil
	}
	return view.DetailLines(m.articles[m.cursor], *m.content, m.contentWidth(), m.theme)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Bao — Thanh Niên Reader"))
	b.WriteString("  ")
	b.WriteString(m.theme.FeedPill.Render(m.currentFeed().Name))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString("Help (? to close)\n\n")
		b.WriteString(m.helpView())
		b.WriteString("\n")
		b.WriteString(m.messagePanel())
		b.WriteString("\n")
		b.WriteString(m.footer())
		b.WriteString("\n")
		return b.String()
	}

	if m.inDetail {
		b.WriteString("j/k: scroll | o: open link | y: copy link | esc/backspace: back | ?: help | q: quit\n\n")
		b.WriteString(m.detailView())
		b.WriteString("\n")
		b.WriteString(m.messagePanel())
		b.WriteString("\n")
		b.WriteString(m.footer())
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("j/k/arrows: move | g/G: top/bottom | enter: read | tab: switch feed | o: open link | y: copy link | ?: help | r: reload | q: quit\n\n")

	switch {
	case m.loading:
		b.WriteString("Đang tải danh sách bài viết...\n")
	case len(m.articles) == 0:
		b.WriteString("Không tìm thấy bài viết nào.\n")
	default:
		start, end := state.CenteredWindow(len(m.articles), m.cursor, m.listBodyHeight())
		for _, line := range view.ListLines(m.articles, m.cursor, start, end, m.contentWidth(), m.theme) {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.messagePanel())
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	return b.String()
}

func (m Model) detailView() string {
	if len(m.articles) == 0 {
		return "No article selected.\n"
	}
	if m.articleLoading {
		return "Đang tải nội dung bài viết...\n"
	}
	lines := m.detailLines()
	if len(lines) == 0 {
		return "Không tìm thấy nội dung bài viết.\n"
	}
	return view.RenderDetailLines(lines, m.detailTop, m.detailBodyHeight())
}

func (m Model) messagePanel() string {
	switch {
	case m.err != nil:
		return m.theme.StateWarn.Render(fmt.Sprintf("Lỗi: %v (press any key to dismiss)", m.err))
	case m.loading || m.articleLoading:
		return m.theme.StateLoad.Render("Loading...")
	case m.status != "":
		return m.theme.StateIdle.Render(m.status)
	default:
		return ""
	}
}

func (m Model) footer() string {
	position := "-"
	if len(m.articles) > 0 {
		position = fmt.Sprintf("%d/%d", m.cursor+1, len(m.articles))
	}
	return m.theme.MetaLabel.Render("feed: ") + m.theme.MetaValue.Render(m.currentFeed().Name) +
		m.theme.MetaLabel.Render("  article: ") + m.theme.MetaValue.Render(position)
}

func (m Model) helpView() string {
	lines := []string{
		"j/k, arrows   move cursor",
		"g / G         jump to top / bottom",
		"pgup/pgdown   page jump",
		"enter         read selected article",
		"tab/shift+tab next / previous feed",
		"r             reload current feed",
		"o             open article link in browser",
		"y             copy article link",
		"esc           back / close",
		"q, ctrl+c     quit",
	}
	return strings.Join(lines, "\n")
}
