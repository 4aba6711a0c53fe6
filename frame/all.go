// SPDX-License-Identifier: GPL-2.0-or-later

package frame

import (
	"context"

	"anicursor/anierr"
	"anicursor/conlog"
	"anicursor/cur"
	"anicursor/image"
	"anicursor/model"

	"github.com/chewxy/math32"
	"golang.org/x/sync/errgroup"
)

// ResizeAll resizes every frame concurrently. The result is indexed like
// frames regardless of completion order. A frame that can not be decoded
// keeps its original blob, any other failure aborts the batch.
func ResizeAll(ctx context.Context, r Resizer, frames []model.Frame, w, h int) ([]model.Resized, error) {
	out := make([]model.Resized, len(frames))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := r.Resize(f.Data, w, h)
			if err != nil {
				if anierr.KindOf(err).Fatal() {
					return err
				}
				conlog.Printf("frame %d: %v, keeping the original image", f.Index, err)
				out[i] = Original(f)
				return nil
			}
			res := model.Resized{
				Index:  f.Index,
				Data:   data,
				MIME:   image.MIMEPNG,
				URL:    image.DataURL(image.MIMEPNG, data),
				Width:  w,
				Height: h,
			}
			res.HotspotX, res.HotspotY = scaledHotspot(f.Data, w, h)
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Original wraps an unresized frame blob.
func Original(f model.Frame) model.Resized {
	mime := image.Sniff(f.Data)
	res := model.Resized{
		Index:    f.Index,
		Data:     f.Data,
		MIME:     mime,
		URL:      image.DataURL(mime, f.Data),
		Fallback: true,
	}
	if _, e, err := cur.ReadDir(f.Data); err == nil {
		res.Width, res.Height = e.Dimensions()
	}
	res.HotspotX, res.HotspotY, _ = cur.Hotspot(f.Data)
	return res
}

func scaledHotspot(data []byte, w, h int) (int, int) {
	x, y, ok := cur.Hotspot(data)
	if !ok {
		return 0, 0
	}
	_, e, _ := cur.ReadDir(data)
	sw, sh := e.Dimensions()
	scale := func(v, to, from int) int {
		return int(math32.Floor(float32(v)*float32(to)/float32(from) + 0.5))
	}
	return scale(x, w, sw), scale(y, h, sh)
}
