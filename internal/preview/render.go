package preview

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// halfBlock paints the top pixel as foreground and the bottom pixel as background
const halfBlock = "▀"

// Fit returns the pixel size that fits srcW x srcH into cols x rows cells
// while keeping the aspect ratio. Each cell holds two vertical pixels.
func Fit(srcW, srcH, cols, rows int) (int, int) {
	if srcW <= 0 || srcH <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	maxW, maxH := cols, rows*2

	w := maxW
	h := srcH * maxW / srcW
	if h > maxH {
		h = maxH
		w = srcW * maxH / srcH
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if h%2 == 1 && h < maxH {
		h++
	}
	return w, h
}

// Scale resizes img to w x h pixels
func Scale(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Render draws img into at most cols x rows terminal cells.
// The result has one line per cell row with no trailing newline.
func Render(img image.Image, cols, rows int) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), cols, rows)
	if w == 0 || h == 0 {
		return ""
	}
	px := Scale(img, w, h)

	var sb strings.Builder
	for y := 0; y < h; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			style := lipgloss.NewStyle().Foreground(hex(px.At(x, y)))
			if y+1 < h {
				style = style.Background(hex(px.At(x, y+1)))
			}
			sb.WriteString(style.Render(halfBlock))
		}
	}
	return sb.String()
}

func hex(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
