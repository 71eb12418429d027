package view

import (
	"strings"

	"github.com/TiepCB-lab/Bao/internal/thanhnien"
	"github.com/TiepCB-lab/Bao/internal/tui/theme"
)

// DetailLines renders an article body for the detail view: title, meta
// lines, then paragraph i followed by image i while both sequences last,
// leftovers appended in their own order. The pairing is a best-effort
// visual interleave; the source document guarantees nothing about it.
func DetailLines(article thanhnien.Article, content thanhnien.ArticleContent, width int, th theme.Theme) []string {
	lines := make([]string, 0, 16)
	for _, titleLine := range WrapText(article.Title, width) {
		lines = append(lines, th.Title.Render(titleLine))
	}
	lines = append(lines,
		th.MetaLabel.Render("Danh mục: ")+th.MetaValue.Render(theme.CategoryLabel(article.Categories)),
		th.MetaLabel.Render("Liên kết: ")+th.Link.Render(article.Link),
		"",
	)

	for i, paragraph := range content.Paragraphs {
		lines = append(lines, WrapText(paragraph, width)...)
		lines = append(lines, "")
		if i < len(content.Images) {
			lines = append(lines, ImageLines(content.Images[i], width)...)
			lines = append(lines, "")
		}
	}
	if len(content.Images) > len(content.Paragraphs) {
		for _, img := range content.Images[len(content.Paragraphs):] {
			lines = append(lines, ImageLines(img, width)...)
			lines = append(lines, "")
		}
	}
	if len(content.Paragraphs) == 0 && len(content.Images) == 0 {
		lines = append(lines, "Không tìm thấy nội dung bài viết.")
	}
	return lines
}

// DetailMaxTop caps the scroll offset so the last page stays full.
func DetailMaxTop(linesLen, bodyHeight int) int {
	maxTop := linesLen - bodyHeight
	if maxTop < 0 {
		return 0
	}
	return maxTop
}

func RenderDetailLines(lines []string, top, maxLines int) string {
	if len(lines) == 0 {
		return ""
	}
	if top < 0 {
		top = 0
	}
	if top > len(lines)-1 {
		top = len(lines) - 1
	}
	end := len(lines)
	if maxLines > 0 && top+maxLines < end {
		end = top + maxLines
	}
	return strings.Join(lines[top:end], "\n") + "\n"
}

// WrapText greedily wraps text to width columns, splitting words longer
// than a full line.
func WrapText(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			for len([]rune(word)) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				runes := []rune(word)
				out = append(out, string(runes[:width]))
				word = string(runes[width:])
			}

			if line == "" {
				line = word
				continue
			}
			if len([]rune(line))+1+len([]rune(word)) <= width {
				line += " " + word
				continue
			}
			out = append(out, line)
			line = word
		}
		if line != "" {
			out = append(out, line)
		}
	}

	return out
}
