// SPDX-License-Identifier: GPL-2.0-or-later

// Package keyframe turns a playback timeline into a CSS @keyframes block.
package keyframe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"anicursor/anierr"
	"anicursor/model"
)

const (
	ClassPrefix     = "cursor-animation-"
	KeyframesSuffix = "-keyframes"
	DefaultType     = "auto"
)

var unsafeRun = regexp.MustCompile(`[^a-zA-Z0-9-]+`)

// Normalize replaces every run of characters outside [a-zA-Z0-9-] by "-".
func Normalize(id string) string {
	return unsafeRun.ReplaceAllString(id, "-")
}

func ClassName(id string) string {
	return ClassPrefix + Normalize(id)
}

func KeyframesName(id string) string {
	return ClassName(id) + KeyframesSuffix
}

type Options struct {
	CursorType string // fallback keyword after the url, "auto" when empty
	Closing    bool   // add a 100% step showing the first frame again
	Hotspot    bool   // emit the hotspot coordinates after each url
}

// Percent formats a keyframe offset.
func Percent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

// MS formats a duration for CSS.
func MS(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64) + "ms"
}

// urlEscaper escapes a URL for a double quoted CSS string.
var urlEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `, "\r", `\d `, "\f", `\c `)

// URL renders u as a quoted CSS url() token.
func URL(u string) string {
	return `url("` + urlEscaper.Replace(u) + `")`
}

func cursorValue(img model.Resized, typ string, hotspot bool) string {
	if hotspot && (img.HotspotX != 0 || img.HotspotY != 0) {
		return fmt.Sprintf("%s %d %d, %s", URL(img.URL), img.HotspotX, img.HotspotY, typ)
	}
	return fmt.Sprintf("%s, %s", URL(img.URL), typ)
}

// Synthesize builds the descriptor for id. Each step is emitted at the
// share of the total duration that precedes it, so the first step is at 0%
// and no step is at 100% unless o.Closing adds one.
func Synthesize(id string, timeline []model.FrameInfo, images []model.Resized, o Options) (*model.Descriptor, error) {
	if len(timeline) == 0 {
		return nil, anierr.New(anierr.NoFramesFound, "%s: empty timeline", id)
	}
	typ := o.CursorType
	if typ == "" {
		typ = DefaultType
	}
	steps := make([]model.FrameInfo, len(timeline))
	copy(steps, timeline)
	var total float64
	for _, s := range steps {
		total += s.DurationMS
	}
	if total <= 0 {
		// a zero rate would divide by zero, play one jiffy per step instead
		total = 0
		for i := range steps {
			steps[i].DurationMS = model.JiffyMS
			total += model.JiffyMS
		}
	}

	d := &model.Descriptor{
		ID:         Normalize(id),
		Name:       KeyframesName(id),
		ClassName:  ClassName(id),
		TotalMS:    total,
		CursorType: typ,
		Timeline:   steps,
		Images:     images,
	}
	var b strings.Builder
	fmt.Fprintf(&b, "@keyframes %s {\n", d.Name)
	emit := func(pos float64, frameIndex int) error {
		img, ok := d.Image(frameIndex)
		if !ok {
			return anierr.New(anierr.InvalidInput, "%s: step refers to frame %d of %d", id, frameIndex, len(images))
		}
		d.Keyframes = append(d.Keyframes, model.Keyframe{Percent: pos, FrameIndex: frameIndex, URL: img.URL})
		fmt.Fprintf(&b, "  %s { cursor: %s; }\n", Percent(pos), cursorValue(img, typ, o.Hotspot))
		return nil
	}
	var pos float64
	for _, s := range steps {
		if err := emit(pos, s.FrameIndex); err != nil {
			return nil, err
		}
		pos += s.DurationMS / total * 100
	}
	if o.Closing {
		if err := emit(100, steps[0].FrameIndex); err != nil {
			return nil, err
		}
	}
	b.WriteString("}\n")
	d.CSS = b.String()
	return d, nil
}

// Animation is the declaration binding d to an element.
func Animation(d *model.Descriptor) string {
	return fmt.Sprintf("animation: %s %s step-end infinite;", d.Name, MS(d.TotalMS))
}
