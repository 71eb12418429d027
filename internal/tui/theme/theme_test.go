package theme

import "testing"

func TestCategoryLabel(t *testing.T) {
	if got := CategoryLabel(nil); got != "-" {
		t.Fatalf("empty categories: got %q", got)
	}
	if got := CategoryLabel([]string{"Thời sự"}); got != "Thời sự" {
		t.Fatalf("single category: got %q", got)
	}
	if got := CategoryLabel([]string{"Thời sự", "Chính trị"}); got != "Thời sự, Chính trị" {
		t.Fatalf("joined categories: got %q", got)
	}
}

func TestRenderActiveLineLeavesInactiveUntouched(t *testing.T) {
	th := Default()
	if got := th.RenderActiveLine(false, "  1. Bài một"); got != "  1. Bài một" {
		t.Fatalf("inactive line changed: %q", got)
	}
}
