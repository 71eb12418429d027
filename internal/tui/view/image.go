package view

import (
	"fmt"
	"image"
	"strings"

	"github.com/TiepCB-lab/Bao/internal/thanhnien"
)

const (
	maxImageCols = 56
	minImageCols = 8
)

// ImageLines renders a decoded inline image as truecolor half-block rows,
// one terminal cell per two vertical pixels, followed by a size caption.
// Images are downscaled by nearest-neighbour sampling and never upscaled.
func ImageLines(img thanhnien.Image, width int) []string {
	bitmap := img.Bitmap
	if bitmap == nil {
		return nil
	}
	srcW := bitmap.Rect.Dx()
	srcH := bitmap.Rect.Dy()
	if srcW <= 0 || srcH <= 0 {
		return nil
	}

	cols := width
	if cols > maxImageCols {
		cols = maxImageCols
	}
	if cols < minImageCols {
		cols = minImageCols
	}
	if cols > srcW {
		cols = srcW
	}

	pixelRows := srcH * cols / srcW
	if pixelRows < 1 {
		pixelRows = 1
	}

	lines := make([]string, 0, (pixelRows+1)/2+1)
	for row := 0; row < pixelRows; row += 2 {
		var b strings.Builder
		for col := 0; col < cols; col++ {
			tr, tg, tb := samplePixel(bitmap, cols, pixelRows, col, row)
			br, bg, bb := tr, tg, tb
			if row+1 < pixelRows {
				br, bg, bb = samplePixel(bitmap, cols, pixelRows, col, row+1)
			}
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb)
		}
		b.WriteString("\x1b[0m")
		lines = append(lines, b.String())
	}
	lines = append(lines, fmt.Sprintf("[ảnh %d×%d]", srcW, srcH))
	return lines
}

func samplePixel(bitmap *image.NRGBA, cols, pixelRows, col, row int) (uint8, uint8, uint8) {
	srcW := bitmap.Rect.Dx()
	srcH := bitmap.Rect.Dy()
	x := col * srcW / cols
	y := row * srcH / pixelRows
	if x >= srcW {
		x = srcW - 1
	}
	if y >= srcH {
		y = srcH - 1
	}
	c := bitmap.NRGBAAt(x, y)
	return c.R, c.G, c.B
}
