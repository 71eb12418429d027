package thanhnien

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Thanh Nien - Tin moi</title>
<item>
  <title>Đổi mới &amp;amp; hội nhập</title>
  <link>https://thanhnien.vn/bai-1.html</link>
  <category> Thời sự </category>
  <category>Kinh tế</category>
</item>
<item>
  <title>Bài không có liên kết</title>
</item>
<item>
  <link>https://thanhnien.vn/bai-2.html</link>
</item>
</channel>
</rss>`

func TestFetchFeed_ParsesEntriesInDocumentOrder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "Bao/test" {
			t.Fatalf("unexpected user agent: %s", got)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(feedXML))
	}))
	defer ts.Close()

	c := NewClient(ts.Client(), "Bao/test")
	articles, err := c.FetchFeed(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("FetchFeed returned error: %v", err)
	}

	// The entry without a link cannot be displayed or opened and is dropped.
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d: %+v", len(articles), articles)
	}
	if articles[0].Title != "Đổi mới & hội nhập" {
		t.Fatalf("title not entity-decoded: %q", articles[0].Title)
	}
	if articles[0].Link != "https://thanhnien.vn/bai-1.html" {
		t.Fatalf("unexpected link: %s", articles[0].Link)
	}
	if len(articles[0].Categories) != 2 || articles[0].Categories[0] != "Thời sự" || articles[0].Categories[1] != "Kinh tế" {
		t.Fatalf("categories not decoded and trimmed in order: %+v", articles[0].Categories)
	}
	if articles[1].Link != "https://thanhnien.vn/bai-2.html" {
		t.Fatalf("document order not preserved: %+v", articles[1])
	}
	if articles[1].Title != "(Không tiêu đề)" {
		t.Fatalf("expected placeholder title, got %q", articles[1].Title)
	}
}

func TestFetchFeed_NonSuccessStatusFailsWholeTask(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewClient(ts.Client(), "")
	articles, err := c.FetchFeed(context.Background(), ts.URL)
	if err == nil {
		t.Fatal("expected transport failure")
	}
	if !strings.Contains(err.Error(), "status 502") {
		t.Fatalf("unexpected error: %v", err)
	}
	if articles != nil {
		t.Fatalf("expected no partial list, got %+v", articles)
	}
}

func TestFetchFeed_MalformedDocumentFailsWholeTask(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is not a feed"))
	}))
	defer ts.Close()

	c := NewClient(ts.Client(), "")
	if _, err := c.FetchFeed(context.Background(), ts.URL); err == nil {
		t.Fatal("expected parse failure")
	}
}

func TestFetchFeed_UnreachableHost(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	c := NewClient(nil, "")
	if _, err := c.FetchFeed(context.Background(), url); err == nil {
		t.Fatal("expected connection failure")
	}
}
