// SPDX-License-Identifier: GPL-2.0-or-later

package cursorlib

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"anicursor/ani"
	"anicursor/cmd"
	"anicursor/cur"
	"anicursor/keyframe"
	"anicursor/model"
	"anicursor/riff"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func flagNames(f uint32) string {
	var r []string
	if f&ani.FlagIcon != 0 {
		r = append(r, "icon")
	}
	if f&ani.FlagSequence != 0 {
		r = append(r, "sequence")
	}
	if len(r) == 0 {
		return "none"
	}
	return strings.Join(r, ",")
}

// headerTable describes the container of data.
func headerTable(data []byte) string {
	if len(data) >= 4 {
		switch model.Magic([4]byte(data[:4])) {
		case cur.MagicIcon, cur.MagicCursor:
			_, e, err := cur.ReadDir(data)
			if err != nil {
				return err.Error()
			}
			w, h := e.Dimensions()
			t := newTable("field", "value").
				Row("format", "static icon").
				Row("size", fmt.Sprintf("%dx%d", w, h))
			if x, y, ok := cur.Hotspot(data); ok {
				t.Row("hotspot", fmt.Sprintf("%d,%d", x, y))
			}
			return t.Render()
		}
	}
	c, ok := riff.FindChunk(data, "anih", 0)
	if !ok {
		return "no anih chunk"
	}
	h, err := ani.ParseHeader(c.Payload(data))
	if err != nil {
		return err.Error()
	}
	return newTable("field", "value").
		Row("format", "animated cursor").
		Row("frames", strconv.Itoa(int(h.Frames))).
		Row("steps", strconv.Itoa(int(h.Steps))).
		Row("size", fmt.Sprintf("%dx%d", h.Width, h.Height)).
		Row("display rate", fmt.Sprintf("%d jiffies", h.DisplayRate)).
		Row("flags", flagNames(h.Flags)).
		Render()
}

func timelineTable(d *model.Descriptor) string {
	t := newTable("step", "frame", "ms", "size", "hotspot")
	for i, f := range d.Timeline {
		size, hot := "?", ""
		if img, ok := d.Image(f.FrameIndex); ok {
			size = fmt.Sprintf("%dx%d", img.Width, img.Height)
			hot = fmt.Sprintf("%d,%d", img.HotspotX, img.HotspotY)
			if img.Fallback {
				size += " (original)"
			}
		}
		t.Row(strconv.Itoa(i), strconv.Itoa(f.FrameIndex), keyframe.MS(f.DurationMS), size, hot)
	}
	return t.Render()
}

func keyframeTable(d *model.Descriptor) string {
	t := newTable("percent", "frame")
	for _, k := range d.Keyframes {
		t.Row(keyframe.Percent(k.Percent), strconv.Itoa(k.FrameIndex))
	}
	return t.Render()
}

func inspectCmd(ctx context.Context, a cmd.Arguments) error {
	src := a.Argv(1).String()
	if src == "" {
		return fmt.Errorf("no source given")
	}
	data, err := host.Fetch.Fetch(ctx, src)
	if err != nil {
		return err
	}
	d, err := host.Loader.LoadBytes(ctx, src, data, host.Options())
	if err != nil {
		return err
	}
	fmt.Fprintln(host.Out, headingStyle.Render(src))
	fmt.Fprintln(host.Out, headerTable(data))
	fmt.Fprintln(host.Out, headingStyle.Render(fmt.Sprintf("timeline, %s", keyframe.MS(d.TotalMS))))
	fmt.Fprintln(host.Out, timelineTable(d))
	fmt.Fprintln(host.Out, headingStyle.Render(d.Name))
	fmt.Fprintln(host.Out, keyframeTable(d))
	return nil
}
