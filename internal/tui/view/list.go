package view

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/TiepCB-lab/Bao/internal/thanhnien"
	"github.com/TiepCB-lab/Bao/internal/tui/theme"
)

// ListLines renders the article rows between start and end, one line per
// article, with the cursor row highlighted.
func ListLines(articles []thanhnien.Article, cursor, start, end, width int, th theme.Theme) []string {
	if end > len(articles) {
		end = len(articles)
	}
	if start < 0 {
		start = 0
	}
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		article := articles[i]
		marker := "  "
		if i == cursor {
			marker = "> "
		}
		label := theme.CategoryLabel(article.Categories)
		line := fmt.Sprintf("%s%3d. %s", marker, i+1, article.Title)
		if label != "-" {
			line += "  " + th.Category.Render("["+label+"]")
		}
		line = TruncateLine(line, width)
		lines = append(lines, th.RenderActiveLine(i == cursor, line))
	}
	return lines
}

// TruncateLine cuts a line to width runes. Lines carrying ANSI styling are
// left alone rather than risk cutting an escape sequence in half.
func TruncateLine(line string, width int) string {
	if width <= 0 || strings.Contains(line, "\x1b") {
		return line
	}
	if utf8.RuneCountInString(line) <= width {
		return line
	}
	runes := []rune(line)
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
