// SPDX-License-Identifier: GPL-2.0-or-later

package ani

import (
	"anicursor/model"
	"anicursor/riff"

	"github.com/pkg/errors"
)

var ErrNoFrames = errors.New("no frame chunks")

// ParseHeader reads the fixed anih layout.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < headerSize {
		return nil, errors.Errorf("anih chunk has %d bytes, want %d", len(data), headerSize)
	}
	h := &Header{}
	if err := riff.NewReader(data).Read(h); err != nil {
		return nil, err
	}
	if h.Frames == 0 {
		return nil, errors.New("anih declares zero frames")
	}
	if h.Frames > maxFrames || h.Steps > maxFrames {
		return nil, errors.Errorf("anih declares %d frames and %d steps", h.Frames, h.Steps)
	}
	return h, nil
}

func jiffies(n uint32) float64 {
	// multiply first so whole jiffy counts stay exact (6 -> 100ms)
	return float64(n) * 1000 / 60
}

// Timeline builds the playback steps. The sources are a strict cascade:
// seq+rate, seq with the header rate, then the identity order. A rate chunk
// without seq is ignored since its entries are indexed by play step.
func Timeline(h *Header, seq, rate []uint32) []model.FrameInfo {
	if seq == nil {
		r := make([]model.FrameInfo, h.Frames)
		for i := range r {
			r[i] = model.FrameInfo{FrameIndex: i, DurationMS: jiffies(h.DisplayRate)}
		}
		return r
	}
	r := make([]model.FrameInfo, len(seq))
	for i, s := range seq {
		d := h.DisplayRate
		if rate != nil && i < len(rate) {
			d = rate[i]
		}
		r[i] = model.FrameInfo{FrameIndex: int(s), DurationMS: jiffies(d)}
	}
	return r
}

// Extract turns frame chunk payloads into frames, in container order,
// keeping at most limit of them.
func Extract(chunks [][]byte, limit int) ([]model.Frame, error) {
	if len(chunks) == 0 {
		return nil, ErrNoFrames
	}
	n := min(limit, len(chunks))
	if n <= 0 {
		return nil, errors.Wrapf(ErrNoFrames, "play order is empty (%d chunks)", len(chunks))
	}
	r := make([]model.Frame, n)
	for i := range r {
		r[i] = model.Frame{Index: i, Data: chunks[i]}
	}
	return r, nil
}
