// SPDX-License-Identifier: GPL-2.0-or-later

package export

import (
	"bytes"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"anicursor/anitest"
	"anicursor/image"
	"anicursor/keyframe"
	"anicursor/model"
)

func descriptor(t *testing.T) *model.Descriptor {
	t.Helper()
	var imgs []model.Resized
	for i, c := range []int{8, 12} {
		data := anitest.PNG(c, c, color.NRGBA{R: uint8(100 * i), G: 50, B: 200, A: 255})
		imgs = append(imgs, model.Resized{Index: i, Data: data, MIME: image.MIMEPNG, URL: image.DataURL(image.MIMEPNG, data)})
	}
	d, err := keyframe.Synthesize("export me", []model.FrameInfo{{FrameIndex: 0, DurationMS: 100}, {FrameIndex: 1, DurationMS: 250}, {FrameIndex: 0, DurationMS: 5}}, imgs, keyframe.Options{Closing: true})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestHTML(t *testing.T) {
	d := descriptor(t)
	var b bytes.Buffer
	if err := HTML(&b, d); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{
		"<strong>Frames:</strong> 2",
		"<strong>Total duration:</strong> 355ms",
		"cursor-animation-export-me-keyframes",
		"<tr><td>1</td><td>1</td><td>250ms</td></tr>",
		`<img src="data:image/png;base64,`,
		"animation: cursor-animation-export-me-keyframes 355ms step-end infinite;",
		"@keyframes cursor-animation-export-me-keyframes {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report lacks %q", want)
		}
	}
	if strings.Contains(out, "ZgotmplZ") {
		t.Errorf("template rejected a value")
	}
}

func TestWriteFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.html")
	if err := WriteFile(name, descriptor(t)); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("<!DOCTYPE html>")) {
		t.Errorf("got %.40q", b)
	}
}

func TestGIF(t *testing.T) {
	var b bytes.Buffer
	if err := GIF(&b, descriptor(t)); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 3 {
		t.Fatalf("got %d frames", len(g.Image))
	}
	want := []int{10, 25, 1}
	for i, d := range g.Delay {
		if d != want[i] {
			t.Errorf("delay %d = %d, want %d", i, d, want[i])
		}
	}
	if g.Config.Width != 12 || g.Config.Height != 12 {
		t.Errorf("screen %dx%d", g.Config.Width, g.Config.Height)
	}
}
