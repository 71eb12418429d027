package thanhnien

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"net/url"
	"strings"

	// Inline article images arrive in these formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	nethtml "golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/TiepCB-lab/Bao/internal/logger"
)

const defaultImageWorkers = 4

// Image is one inline article image, decoded and normalized to NRGBA.
type Image struct {
	Src    string
	Bitmap *image.NRGBA
}

// ArticleContent holds an article body. Paragraphs and images each preserve
// document order among themselves; the two sequences carry no positional
// correlation to each other.
type ArticleContent struct {
	Paragraphs []string
	Images     []Image
}

// FetchArticle downloads an article page and extracts its paragraphs and
// inline images. A transport failure or unparseable page fails the whole
// call. A failed image download or decode drops that image only: article
// text is never lost because one embed is unreachable.
func (c *Client) FetchArticle(ctx context.Context, pageURL string) (ArticleContent, error) {
	body, err := c.get(ctx, pageURL, maxBodyBytes)
	if err != nil {
		return ArticleContent{}, fmt.Errorf("fetch article: %w", err)
	}

	doc, err := nethtml.Parse(bytes.NewReader(body))
	if err != nil {
		return ArticleContent{}, fmt.Errorf("parse article: %w", err)
	}

	paragraphs, srcs := extractBlocks(doc, pageURL)
	images := c.fetchImages(ctx, srcs)
	logger.Infof("article %s: %d paragraphs, %d/%d images", pageURL, len(paragraphs), len(images), len(srcs))
	return ArticleContent{Paragraphs: paragraphs, Images: images}, nil
}

// extractBlocks walks doc once, collecting trimmed non-empty <p> texts and
// usable <img> sources, each in document order.
func extractBlocks(doc *nethtml.Node, pageURL string) ([]string, []string) {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	var paragraphs []string
	var srcs []string
	var walk func(n *nethtml.Node)
	walk = func(n *nethtml.Node) {
		if n.Type == nethtml.ElementNode {
			switch {
			case strings.EqualFold(n.Data, "p"):
				if text := strings.TrimSpace(collectText(n)); text != "" {
					paragraphs = append(paragraphs, text)
				}
			case strings.EqualFold(n.Data, "img"):
				if src := resolveImageSrc(base, nodeAttr(n, "src")); src != "" {
					srcs = append(srcs, src)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return paragraphs, srcs
}

func collectText(n *nethtml.Node) string {
	if n.Type == nethtml.TextNode {
		return n.Data
	}
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(collectText(child))
	}
	return b.String()
}

func nodeAttr(n *nethtml.Node, name string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, name) {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

// resolveImageSrc returns an absolute http(s) URL for src, or "" when the
// attribute is missing or unusable.
func resolveImageSrc(base *url.URL, src string) string {
	if src == "" {
		return ""
	}
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if (ref.Scheme != "http" && ref.Scheme != "https") || ref.Host == "" {
		return ""
	}
	return ref.String()
}

// fetchImages downloads and decodes srcs with bounded concurrency, keeping
// document order via indexed slots. Per-image errors are swallowed.
func (c *Client) fetchImages(ctx context.Context, srcs []string) []Image {
	if len(srcs) == 0 {
		return nil
	}

	slots := make([]*Image, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.imageWorkers)
	for i, src := range srcs {
		g.Go(func() error {
			img, err := c.fetchImage(gctx, src)
			if err != nil {
				logger.Debugf("skipping image %s: %v", src, err)
				return nil
			}
			slots[i] = img
			return nil
		})
	}
	_ = g.Wait()

	images := make([]Image, 0, len(srcs))
	for _, img := range slots {
		if img != nil {
			images = append(images, *img)
		}
	}
	return images
}

func (c *Client) fetchImage(ctx context.Context, src string) (*Image, error) {
	data, err := c.get(ctx, src, maxImageBytes)
	if err != nil {
		return nil, err
	}
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	return &Image{Src: src, Bitmap: toNRGBA(decoded)}, nil
}

// toNRGBA re-draws a decoded image into the one color model the views
// assume, with its origin at (0,0).
func toNRGBA(src image.Image) *image.NRGBA {
	if nrgba, ok := src.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) {
		return nrgba
	}
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst
}
