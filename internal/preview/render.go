package preview

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

const upperHalf = "▀"

// fit scales img to cols pixels wide. Terminal cells are about twice as tall
// as they are wide and each one shows two pixel rows, so pixels stay roughly
// square. The height is rounded up to an even number.
func fit(img *image.RGBA, cols int) *image.RGBA {
	b := img.Bounds()
	if cols <= 0 || b.Dx() <= 0 || b.Dy() <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	rows := max(2, (b.Dy()*cols+b.Dx()/2)/b.Dx())
	rows += rows % 2

	dst := image.NewRGBA(image.Rect(0, 0, cols, rows))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// halfBlocks renders img as rows of upper-half blocks, the top pixel as the
// foreground and the bottom one as the background. Runs of identical cells
// share one style.
func halfBlocks(img *image.RGBA) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		run := 0
		var top, bottom color.RGBA
		for x := b.Min.X; x < b.Max.X; x++ {
			t, bt := img.RGBAAt(x, y), img.RGBAAt(x, y+1)
			if run > 0 && (t != top || bt != bottom) {
				sb.WriteString(cell(top, bottom, run))
				run = 0
			}
			top, bottom = t, bt
			run++
		}
		if run > 0 {
			sb.WriteString(cell(top, bottom, run))
		}
	}
	return sb.String()
}

func cell(top, bottom color.RGBA, n int) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hex(top))).
		Background(lipgloss.Color(hex(bottom))).
		Render(strings.Repeat(upperHalf, n))
}

// hex formats a premultiplied pixel as it appears over a black terminal.
func hex(c color.RGBA) string {
	return colorful.Color{
		R: float64(c.R) / 0xff,
		G: float64(c.G) / 0xff,
		B: float64(c.B) / 0xff,
	}.Hex()
}
