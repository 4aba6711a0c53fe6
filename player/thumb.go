// SPDX-License-Identifier: GPL-2.0-or-later

package player

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"anicursor/frame"
	"anicursor/model"

	"github.com/charmbracelet/lipgloss"
)

// ThumbWidth is the widest thumbnail in terminal cells.
const ThumbWidth = 32

func hex(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

func transparent(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a < 0x8000
}

// Thumbnail draws a frame with half block cells, two pixel rows per line.
func Thumbnail(r model.Resized) string {
	if len(r.Data) == 0 {
		return ""
	}
	img, err := frame.Decode(r.Data)
	if err != nil {
		return ""
	}
	return render(img, ThumbWidth)
}

func render(img image.Image, width int) string {
	bd := img.Bounds()
	w, h := bd.Dx(), bd.Dy()
	if w == 0 || h == 0 {
		return ""
	}
	step := 1
	for w/step > width {
		step++
	}
	at := func(x, y int) color.Color {
		return img.At(bd.Min.X+x*step, bd.Min.Y+y*step)
	}
	cols, rows := w/step, h/step
	var b strings.Builder
	for y := 0; y < rows; y += 2 {
		for x := 0; x < cols; x++ {
			top := at(x, y)
			var bottom color.Color = color.Transparent
			if y+1 < rows {
				bottom = at(x, y+1)
			}
			switch {
			case transparent(top) && transparent(bottom):
				b.WriteByte(' ')
			case transparent(bottom):
				b.WriteString(lipgloss.NewStyle().Foreground(hex(top)).Render("▀"))
			case transparent(top):
				b.WriteString(lipgloss.NewStyle().Foreground(hex(bottom)).Render("▄"))
			default:
				b.WriteString(lipgloss.NewStyle().Foreground(hex(top)).Background(hex(bottom)).Render("▀"))
			}
		}
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}
