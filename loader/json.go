// SPDX-License-Identifier: GPL-2.0-or-later

package loader

import (
	"context"
	"encoding/json"
	"math"

	"anicursor/anierr"
	"anicursor/crc"
	"anicursor/fetch"
	"anicursor/frame"
	"anicursor/image"
	"anicursor/keyframe"
	"anicursor/model"
)

// Input is precomputed frame data that skips the binary parser.
type Input struct {
	FrameInfos  []model.FrameInfo `json:"frameInfos"`
	FrameImages []string          `json:"frameImages"`
	CursorType  string            `json:"cursorType,omitempty"`
	Width       int               `json:"width,omitempty"`
	Height      int               `json:"height,omitempty"`
	Identifier  string            `json:"identifier,omitempty"`
}

// PrecomputedPrefix names inputs that carry no identifier.
const PrecomputedPrefix = "precomputed-"

// LoadJSON builds a descriptor from an encoded Input. Without an
// identifier the name is derived from a checksum of data.
func (l *Loader) LoadJSON(ctx context.Context, data []byte) (*model.Descriptor, error) {
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, anierr.Wrap(anierr.InvalidInput, err, "frame data")
	}
	id := in.Identifier
	if id == "" {
		id = PrecomputedPrefix + crc.Name(data)
	}
	return l.LoadInput(ctx, id, &in)
}

func (l *Loader) LoadInput(ctx context.Context, id string, in *Input) (*model.Descriptor, error) {
	if len(in.FrameInfos) == 0 {
		return nil, anierr.New(anierr.NoFramesFound, "%s: no frameInfos", id)
	}
	if len(in.FrameImages) == 0 {
		return nil, anierr.New(anierr.NoFramesFound, "%s: no frameImages", id)
	}
	for i, f := range in.FrameInfos {
		if math.IsNaN(f.DurationMS) || math.IsInf(f.DurationMS, 0) || f.DurationMS <= 0 {
			return nil, anierr.New(anierr.InvalidInput, "%s: step %d lasts %vms", id, i, f.DurationMS)
		}
	}
	return l.cache.GetOrBuild(ctx, Key(id), func(ctx context.Context) (*model.Descriptor, error) {
		imgs, err := l.inputImages(ctx, id, in)
		if err != nil {
			return nil, err
		}
		o := DefaultOptions()
		if in.CursorType != "" {
			o.CursorType = in.CursorType
		}
		return keyframe.Synthesize(id, in.FrameInfos, imgs, o.keyframes())
	})
}

// inputImages turns the image strings into frames. Embedded images are
// resized when the input asks for a size, URLs are used as they are.
func (l *Loader) inputImages(ctx context.Context, id string, in *Input) ([]model.Resized, error) {
	imgs := make([]model.Resized, len(in.FrameImages))
	var embedded []model.Frame
	for i, s := range in.FrameImages {
		switch {
		case fetch.IsURL(s):
			imgs[i] = model.Resized{Index: i, URL: s}
			continue
		case image.IsDataURL(s):
			mime, b, err := image.ParseDataURL(s)
			if err != nil {
				return nil, anierr.Wrap(anierr.InvalidInput, err, "%s: frame image %d", id, i)
			}
			imgs[i] = model.Resized{Index: i, Data: b, MIME: mime, URL: s}
		default:
			b, err := image.DecodeBase64(s)
			if err != nil {
				return nil, anierr.Wrap(anierr.InvalidInput, err, "%s: frame image %d", id, i)
			}
			mime := image.Sniff(b)
			imgs[i] = model.Resized{Index: i, Data: b, MIME: mime, URL: image.DataURL(mime, b)}
		}
		embedded = append(embedded, model.Frame{Index: i, Data: imgs[i].Data})
	}
	if in.Width <= 0 || in.Height <= 0 || len(embedded) == 0 {
		return imgs, nil
	}
	resized, err := frame.ResizeAll(ctx, l.resizer, embedded, in.Width, in.Height)
	if err != nil {
		return nil, err
	}
	for _, r := range resized {
		if r.Fallback {
			// keep the caller's MIME type and URL
			continue
		}
		imgs[r.Index] = r
	}
	return imgs, nil
}
