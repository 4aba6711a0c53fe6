// SPDX-License-Identifier: GPL-2.0-or-later

// Package frame resizes decoded cursor frames.
package frame

import (
	"bytes"
	"image"
	"strings"

	"anicursor/anierr"
	aimage "anicursor/image"

	"github.com/fogleman/gg"
	"github.com/kovidgoyal/imaging"
)

// Resizer scales one frame blob to w×h and returns it as PNG.
type Resizer interface {
	Resize(data []byte, w, h int) ([]byte, error)
}

func checkSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return anierr.New(anierr.CanvasUnavailable, "no %dx%d drawing surface", w, h)
	}
	return nil
}

func source(data []byte) (image.Image, error) {
	src, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if src.Bounds().Empty() {
		return nil, anierr.New(anierr.ImageDecodeError, "empty image")
	}
	return src, nil
}

// Canvas draws the frame onto a gg context of the target size.
type Canvas struct{}

func (Canvas) Resize(data []byte, w, h int) ([]byte, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	src, err := source(data)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	dc := gg.NewContext(w, h)
	dc.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	dc.DrawImage(src, -b.Min.X, -b.Min.Y)
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Imaging resamples with a configurable filter. The zero value uses
// nearest neighbor.
type Imaging struct {
	Filter imaging.ResampleFilter
}

func (r Imaging) Resize(data []byte, w, h int) ([]byte, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	src, err := source(data)
	if err != nil {
		return nil, err
	}
	return aimage.EncodePNG(imaging.Resize(src, w, h, r.Filter))
}

var filters = map[string]imaging.ResampleFilter{
	"nearest":    imaging.NearestNeighbor,
	"box":        imaging.Box,
	"linear":     imaging.Linear,
	"catmullrom": imaging.CatmullRom,
	"lanczos":    imaging.Lanczos,
}

// New returns the resizer for a backend name, "canvas" or "imaging".
// The filter is only used by the imaging backend.
func New(backend, filter string) (Resizer, error) {
	switch strings.ToLower(backend) {
	case "", "canvas":
		return Canvas{}, nil
	case "imaging":
		if filter == "" {
			return Imaging{Filter: imaging.Lanczos}, nil
		}
		f, ok := filters[strings.ToLower(filter)]
		if !ok {
			return nil, anierr.New(anierr.InvalidInput, "unknown resample filter %q", filter)
		}
		return Imaging{Filter: f}, nil
	}
	return nil, anierr.New(anierr.InvalidInput, "unknown resize backend %q", backend)
}
