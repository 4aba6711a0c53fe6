// SPDX-License-Identifier: GPL-2.0-or-later

// Package anitest builds small synthetic ICO, CUR and ANI buffers.
package anitest

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
)

// PNG returns a w×h image filled with c.
func PNG(w, h int, c color.Color) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		panic(err)
	}
	return b.Bytes()
}

var red = color.NRGBA{R: 200, G: 40, B: 40, A: 255}

func icon(typ uint16, w, h int, hx, hy uint16, payload []byte) []byte {
	b := new(bytes.Buffer)
	binary.Write(b, binary.LittleEndian, uint16(0))
	binary.Write(b, binary.LittleEndian, typ)
	binary.Write(b, binary.LittleEndian, uint16(1))
	bw, bh := byte(w), byte(h)
	if w >= 256 {
		bw = 0
	}
	if h >= 256 {
		bh = 0
	}
	b.WriteByte(bw)
	b.WriteByte(bh)
	b.WriteByte(0)
	b.WriteByte(0)
	// planes/bitcount for icons, hotspot for cursors
	binary.Write(b, binary.LittleEndian, hx)
	binary.Write(b, binary.LittleEndian, hy)
	binary.Write(b, binary.LittleEndian, uint32(len(payload)))
	binary.Write(b, binary.LittleEndian, uint32(6+16))
	b.Write(payload)
	return b.Bytes()
}

// ICO returns a single image icon with a PNG payload.
func ICO(w, h int) []byte {
	return icon(1, w, h, 1, 32, PNG(w, h, red))
}

// CUR returns a single image cursor with the given hotspot.
func CUR(w, h int, hx, hy int) []byte {
	return icon(2, w, h, uint16(hx), uint16(hy), PNG(w, h, red))
}

// BMPCUR returns a single image cursor whose payload is a 32bpp DIB
// followed by an all-opaque AND mask.
func BMPCUR(w, h int, hx, hy int) []byte {
	return icon(2, w, h, uint16(hx), uint16(hy), DIB(w, h, red))
}

// DIB returns a bottom-up 32bpp BITMAPINFOHEADER bitmap filled with c, in
// the doubled height layout icons use for the XOR and AND planes.
func DIB(w, h int, c color.Color) []byte {
	maskRow := (w + 31) / 32 * 4
	b := new(bytes.Buffer)
	for _, v := range []any{
		uint32(40), int32(w), int32(2 * h), uint16(1), uint16(32),
		uint32(0), uint32(w*h*4 + maskRow*h), int32(0), int32(0), uint32(0), uint32(0),
	} {
		binary.Write(b, binary.LittleEndian, v)
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	for i := 0; i < w*h; i++ {
		b.Write([]byte{n.B, n.G, n.R, n.A})
	}
	b.Write(make([]byte, maskRow*h))
	return b.Bytes()
}

type ANI struct {
	Frames      [][]byte
	Steps       int // 0 means len(Frames)
	DisplayRate uint32
	Seq         []uint32
	Rate        []uint32
	Flat        bool // icon chunks without a LIST fram wrapper
	NoHeader    bool
	Form        string // defaults to ACON
}

func chunk(b *bytes.Buffer, id string, data []byte) {
	b.WriteString(id)
	binary.Write(b, binary.LittleEndian, uint32(len(data)))
	b.Write(data)
	if len(data)%2 != 0 {
		b.WriteByte(0)
	}
}

func u32s(v []uint32) []byte {
	b := new(bytes.Buffer)
	binary.Write(b, binary.LittleEndian, v)
	return b.Bytes()
}

func (a ANI) Bytes() []byte {
	steps := a.Steps
	if steps == 0 {
		steps = len(a.Frames)
	}
	body := new(bytes.Buffer)
	form := a.Form
	if form == "" {
		form = "ACON"
	}
	body.WriteString(form)
	if !a.NoHeader {
		chunk(body, "anih", u32s([]uint32{
			36, uint32(len(a.Frames)), uint32(steps), 0, 0, 0, 1, a.DisplayRate, 1,
		}))
	}
	if a.Seq != nil {
		chunk(body, "seq ", u32s(a.Seq))
	}
	if a.Rate != nil {
		chunk(body, "rate", u32s(a.Rate))
	}
	if a.Flat {
		for _, f := range a.Frames {
			chunk(body, "icon", f)
		}
	} else if len(a.Frames) > 0 {
		list := new(bytes.Buffer)
		list.WriteString("fram")
		for _, f := range a.Frames {
			chunk(list, "icon", f)
		}
		chunk(body, "LIST", list.Bytes())
	}
	out := new(bytes.Buffer)
	chunk(out, "RIFF", body.Bytes())
	return out.Bytes()
}

// Frames returns n ICO frames of size w×h.
func Frames(n, w, h int) [][]byte {
	r := make([][]byte, n)
	for i := range r {
		r[i] = ICO(w, h)
	}
	return r
}
