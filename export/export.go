// SPDX-License-Identifier: GPL-2.0-or-later

// Package export renders finished animations into standalone files.
package export

import (
	_ "embed"
	"html/template"
	"io"
	"os"

	"anicursor/keyframe"
	"anicursor/model"

	"github.com/google/uuid"
)

// DefaultFilename is used when the caller names no output file.
const DefaultFilename = "ani-export.html"

//go:embed report.html
var reportHTML string

var report = template.Must(template.New("report").Funcs(template.FuncMap{
	"ms":  keyframe.MS,
	"url": func(s string) template.URL { return template.URL(s) },
}).Parse(reportHTML))

type step struct {
	Index      int
	FrameIndex int
	DurationMS float64
}

type thumb struct {
	Index    int
	URL      string
	Fallback bool
}

type page struct {
	DocID     string
	Name      string
	ClassName string
	Frames    int
	TotalMS   float64
	Animation template.CSS
	Keyframes template.CSS
	Code      string
	Steps     []step
	Thumbs    []thumb
}

// HTML writes the report for d: a summary, the timeline table, the
// keyframe CSS, a live preview and every frame image.
func HTML(w io.Writer, d *model.Descriptor) error {
	p := page{
		DocID:     uuid.NewString(),
		Name:      d.Name,
		ClassName: d.ClassName,
		Frames:    len(d.Images),
		TotalMS:   d.TotalMS,
		Animation: template.CSS(keyframe.Animation(d)),
		Keyframes: template.CSS(d.CSS),
		Code:      d.CSS,
	}
	for i, s := range d.Timeline {
		p.Steps = append(p.Steps, step{Index: i, FrameIndex: s.FrameIndex, DurationMS: s.DurationMS})
	}
	for _, img := range d.Images {
		p.Thumbs = append(p.Thumbs, thumb{Index: img.Index, URL: img.URL, Fallback: img.Fallback})
	}
	return report.Execute(w, p)
}

func WriteFile(name string, d *model.Descriptor) error {
	if name == "" {
		name = DefaultFilename
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := HTML(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
