// SPDX-License-Identifier: GPL-2.0-or-later

package export

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"anicursor/anierr"
	"anicursor/frame"
	"anicursor/model"
)

// GIF writes d as an animated GIF in playback order. Delays are in
// hundredths of a second, at least one.
func GIF(w io.Writer, d *model.Descriptor) error {
	decoded := make(map[int]*image.Paletted)
	g := &gif.GIF{}
	for _, s := range d.Timeline {
		p, ok := decoded[s.FrameIndex]
		if !ok {
			img, ok := d.Image(s.FrameIndex)
			if !ok {
				return anierr.New(anierr.InvalidInput, "step refers to frame %d of %d", s.FrameIndex, len(d.Images))
			}
			src, err := frame.Decode(img.Data)
			if err != nil {
				return err
			}
			b := src.Bounds()
			p = image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
			draw.FloydSteinberg.Draw(p, p.Rect, src, b.Min)
			decoded[s.FrameIndex] = p
		}
		g.Image = append(g.Image, p)
		g.Delay = append(g.Delay, max(1, int(math.Round(s.DurationMS/10))))
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
		g.Config.Width = max(g.Config.Width, p.Rect.Dx())
		g.Config.Height = max(g.Config.Height, p.Rect.Dy())
	}
	if len(g.Image) == 0 {
		return anierr.New(anierr.NoFramesFound, "%s has no steps", d.Name)
	}
	return gif.EncodeAll(w, g)
}
