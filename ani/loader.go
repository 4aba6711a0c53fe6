// SPDX-License-Identifier: GPL-2.0-or-later

package ani

import (
	"anicursor/anierr"
	"anicursor/conlog"
	"anicursor/model"
	"anicursor/riff"
)

func init() {
	model.Register(Magic, Decode)
}

// layout abstracts over the strict tree and the linear scanner.
type layout interface {
	find(id string) ([]byte, bool)
	frames() [][]byte
}

type treeLayout struct {
	buf []byte
	t   *riff.Tree
}

func (l treeLayout) find(id string) ([]byte, bool) {
	n, ok := l.t.Find(id)
	if !ok {
		return nil, false
	}
	return n.Payload(l.buf), true
}

func (l treeLayout) frames() [][]byte {
	var r [][]byte
	for _, list := range l.t.Lists("fram") {
		for _, c := range list.Children {
			if c.ID == "icon" {
				r = append(r, c.Payload(l.buf))
			}
		}
	}
	if len(r) == 0 {
		for _, c := range l.t.FindAll("icon") {
			r = append(r, c.Payload(l.buf))
		}
	}
	return r
}

type scanLayout []byte

func (l scanLayout) find(id string) ([]byte, bool) {
	c, ok := riff.FindChunk(l, id, 0)
	if !ok {
		return nil, false
	}
	return c.Payload(l), true
}

func (l scanLayout) frames() [][]byte {
	var r [][]byte
	for _, list := range riff.FindListChunks(l) {
		if list.Type != "fram" {
			continue
		}
		for _, c := range list.Children {
			r = append(r, c.Payload(l))
		}
	}
	if len(r) == 0 {
		for _, c := range riff.FindAll(l, "icon") {
			r = append(r, c.Payload(l))
		}
	}
	return r
}

// Decode parses an ANI buffer into its timeline and raw frame blobs.
func Decode(name string, buf []byte) (*model.Animation, error) {
	var l layout
	if t, err := riff.Parse(buf); err != nil {
		conlog.Debugf("%s: strict RIFF parse failed (%v), scanning", name, err)
		l = scanLayout(buf)
	} else {
		l = treeLayout{buf, t}
	}

	hb, ok := l.find("anih")
	if !ok {
		return nil, anierr.New(anierr.MalformedHeader, "%s: anih chunk not found", name)
	}
	h, err := ParseHeader(hb)
	if err != nil {
		return nil, anierr.Wrap(anierr.MalformedHeader, err, "%s", name)
	}
	var seq, rate []uint32
	if b, ok := l.find("seq "); ok {
		seq = riff.Uint32s(b, h.playOrder())
	}
	if b, ok := l.find("rate"); ok {
		rate = riff.Uint32s(b, h.playOrder())
	}
	timeline := Timeline(h, seq, rate)

	frames, err := Extract(l.frames(), h.playOrder())
	if err != nil {
		return nil, anierr.Wrap(anierr.NoFramesFound, err, "%s", name)
	}
	timeline = resolve(name, timeline, len(frames))
	if len(timeline) == 0 {
		return nil, anierr.New(anierr.NoFramesFound, "%s: no timeline step refers to an extracted frame", name)
	}
	return &model.Animation{
		Name:     name,
		Width:    int(h.Width),
		Height:   int(h.Height),
		Timeline: timeline,
		Frames:   frames,
	}, nil
}

// resolve drops steps that point past the extracted frames.
func resolve(name string, t []model.FrameInfo, n int) []model.FrameInfo {
	r := make([]model.FrameInfo, 0, len(t))
	for i, f := range t {
		if f.FrameIndex < 0 || f.FrameIndex >= n {
			conlog.Printf("%s: step %d refers to frame %d of %d, dropped", name, i, f.FrameIndex, n)
			continue
		}
		r = append(r, f)
	}
	return r
}
