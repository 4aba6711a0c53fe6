// SPDX-License-Identifier: GPL-2.0-or-later

// Package loader runs a cursor source through the whole pipeline:
// fetch, decode, resize, synthesize and cache.
package loader

import (
	"context"

	"anicursor/anierr"
	"anicursor/cache"
	"anicursor/conlog"
	"anicursor/fetch"
	"anicursor/frame"
	"anicursor/keyframe"
	"anicursor/model"

	// formats known to Decode
	_ "anicursor/ani"
	_ "anicursor/cur"
)

type Options struct {
	CursorType string
	Width      int
	Height     int
	Closing    bool
	Hotspot    bool
}

func DefaultOptions() Options {
	return Options{
		CursorType: keyframe.DefaultType,
		Width:      32,
		Height:     32,
		Closing:    true,
	}
}

func (o Options) keyframes() keyframe.Options {
	return keyframe.Options{CursorType: o.CursorType, Closing: o.Closing, Hotspot: o.Hotspot}
}

type Loader struct {
	fetcher fetch.Fetcher
	resizer frame.Resizer
	cache   *cache.Cache
}

// New wires a loader. A nil resizer uses the canvas backend and a nil
// cache gets a private one.
func New(f fetch.Fetcher, r frame.Resizer, c *cache.Cache) *Loader {
	if r == nil {
		r = frame.Canvas{}
	}
	if c == nil {
		c = cache.New()
	}
	return &Loader{fetcher: f, resizer: r, cache: c}
}

func (l *Loader) Cache() *cache.Cache {
	return l.cache
}

// Key is the cache key of a source or identifier.
func Key(src string) string {
	return keyframe.ClassName(src)
}

// Load returns the descriptor of src. A cached descriptor is returned
// without fetching, the options of the first load stay in effect.
func (l *Loader) Load(ctx context.Context, src string, o Options) (*model.Descriptor, error) {
	return l.cache.GetOrBuild(ctx, Key(src), func(ctx context.Context) (*model.Descriptor, error) {
		if l.fetcher == nil {
			return nil, anierr.New(anierr.NetworkError, "no fetcher for %s", src)
		}
		data, err := l.fetcher.Fetch(ctx, src)
		if err != nil {
			if anierr.KindOf(err) == anierr.Unknown {
				err = anierr.Wrap(anierr.NetworkError, err, "fetch %s", src)
			}
			return nil, err
		}
		return l.build(ctx, src, data, o)
	})
}

// LoadBytes runs the pipeline on an in-memory source named id.
func (l *Loader) LoadBytes(ctx context.Context, id string, data []byte, o Options) (*model.Descriptor, error) {
	return l.cache.GetOrBuild(ctx, Key(id), func(ctx context.Context) (*model.Descriptor, error) {
		return l.build(ctx, id, data, o)
	})
}

// Decode parses data without resizing or caching. Sources are identified
// by their first four bytes, not by name.
func Decode(name string, data []byte) (*model.Animation, error) {
	return model.Decode(name, data)
}

func (l *Loader) build(ctx context.Context, id string, data []byte, o Options) (*model.Descriptor, error) {
	a, err := model.Decode(id, data)
	if err != nil {
		return nil, err
	}
	imgs, err := frame.ResizeAll(ctx, l.resizer, a.Frames, o.Width, o.Height)
	if err != nil {
		return nil, err
	}
	d, err := keyframe.Synthesize(id, a.Timeline, imgs, o.keyframes())
	if err != nil {
		return nil, err
	}
	if d.Degraded() {
		conlog.Printf("%s: some frames could not be resized", id)
	}
	conlog.Debugf("%s: %d frames, %d steps, %vms", id, len(a.Frames), len(a.Timeline), d.TotalMS)
	return d, nil
}
