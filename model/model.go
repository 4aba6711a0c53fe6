// SPDX-License-Identifier: GPL-2.0-or-later

package model

const (
	// JiffyMS is the length of one ANI display rate unit (1/60 s).
	JiffyMS = 1000.0 / 60.0
)

// FrameInfo is one step of the playback timeline. Timeline order is
// playback order, FrameIndex points into Animation.Frames.
type FrameInfo struct {
	FrameIndex int     `json:"frameIndex"`
	DurationMS float64 `json:"framDuration"`
}

// Frame is one raw frame blob in container order.
type Frame struct {
	Index int
	Data  []byte
}

// Animation is a decoded source before any resizing happened.
type Animation struct {
	Name     string
	Width    int
	Height   int
	Timeline []FrameInfo
	Frames   []Frame
}

func (a *Animation) TotalMS() float64 {
	var t float64
	for _, f := range a.Timeline {
		t += f.DurationMS
	}
	return t
}

// Resized is a frame after the resize stage. Index matches Frame.Index.
type Resized struct {
	Index    int    `json:"index"`
	Data     []byte `json:"-"` // same bytes as URL, restored from it when loaded
	MIME     string `json:"mime"`
	URL      string `json:"url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	HotspotX int    `json:"hotspotX"`
	HotspotY int    `json:"hotspotY"`
	Fallback bool   `json:"fallback"` // resize failed, Data is the original blob
}

type Keyframe struct {
	Percent    float64 `json:"percent"`
	FrameIndex int     `json:"frameIndex"`
	URL        string  `json:"-"`
}

// Descriptor is the finished animation. It is shared through the cache
// and must not be modified after it is built.
type Descriptor struct {
	ID         string      `json:"id"`
	Name       string      `json:"animationName"` // @keyframes name
	ClassName  string      `json:"className"`
	CSS        string      `json:"keyframeCSS"` // the @keyframes block
	TotalMS    float64     `json:"totalDurationMs"`
	CursorType string      `json:"cursorType"`
	Keyframes  []Keyframe  `json:"keyframes"`
	Timeline   []FrameInfo `json:"frameInfos"`
	Images     []Resized   `json:"frameImages"`
}

// Degraded reports whether any frame fell back to its unresized blob.
func (d *Descriptor) Degraded() bool {
	for _, i := range d.Images {
		if i.Fallback {
			return true
		}
	}
	return false
}

// Image returns the resized frame for a timeline frame index.
func (d *Descriptor) Image(frameIndex int) (Resized, bool) {
	if frameIndex < 0 || frameIndex >= len(d.Images) {
		return Resized{}, false
	}
	return d.Images[frameIndex], true
}
