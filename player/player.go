// SPDX-License-Identifier: GPL-2.0-or-later

// Package player steps through a cursor timeline in the terminal.
package player

import (
	"fmt"
	"strings"
	"time"

	"anicursor/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type keyMap struct {
	Pause key.Binding
	Next  key.Binding
	Prev  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next step"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "previous step"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Prev, k.Next, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#565f89")).
			Padding(0, 1)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#737aa2"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68"))
)

// tickMsg ends a step. Ticks of an older generation are stale.
type tickMsg struct {
	gen int
}

// Model plays a descriptor's timeline at its own step durations.
type Model struct {
	d        *model.Descriptor
	step     int
	elapsed  float64 // ms before the current step
	paused   bool
	gen      int
	keys     keyMap
	help     help.Model
	progress progress.Model
	// Preview renders frame thumbnails, nil disables them.
	Preview func(r model.Resized) string
}

func New(d *model.Descriptor) Model {
	return Model{
		d:        d,
		keys:     defaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		Preview:  Thumbnail,
	}
}

func (m Model) Step() int {
	return m.step
}

func (m Model) Paused() bool {
	return m.paused
}

func (m Model) duration() time.Duration {
	ms := m.d.Timeline[m.step].DurationMS
	if ms <= 0 {
		ms = model.JiffyMS
	}
	return time.Duration(ms * float64(time.Millisecond))
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.duration(), func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if len(m.d.Timeline) == 0 {
		return tea.Quit
	}
	return m.tick()
}

// seek moves to step i modulo the timeline length.
func (m Model) seek(i int) Model {
	n := len(m.d.Timeline)
	i = ((i % n) + n) % n
	m.elapsed = 0
	for _, f := range m.d.Timeline[:i] {
		m.elapsed += f.DurationMS
	}
	m.step = i
	m.gen++
	return m
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			m.gen++
			if m.paused {
				return m, nil
			}
			return m, m.tick()
		case key.Matches(msg, m.keys.Next):
			m = m.seek(m.step + 1)
		case key.Matches(msg, m.keys.Prev):
			m = m.seek(m.step - 1)
		default:
			return m, nil
		}
		if m.paused {
			return m, nil
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.progress.Width = max(10, min(60, msg.Width-8))
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if msg.gen != m.gen || m.paused {
			return m, nil
		}
		m = m.seek(m.step + 1)
		return m, m.tick()
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	f := m.d.Timeline[m.step]
	b.WriteString(titleStyle.Render(m.d.ClassName))
	b.WriteString("\n")
	fmt.Fprintf(&b, "step %d/%d  frame %d  %sms", m.step+1, len(m.d.Timeline), f.FrameIndex, formatMS(f.DurationMS))
	if m.paused {
		b.WriteString(warnStyle.Render("  paused"))
	}
	b.WriteString("\n")
	total := m.d.TotalMS
	pct := 0.0
	if total > 0 {
		pct = m.elapsed / total
	}
	b.WriteString(m.progress.ViewAs(pct))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render(fmt.Sprintf("%sms of %sms, %s", formatMS(m.elapsed), formatMS(total), m.d.CursorType)))
	if img, ok := m.d.Image(f.FrameIndex); ok {
		if img.Fallback {
			b.WriteString(warnStyle.Render("original frame, resize failed"))
			b.WriteString("\n")
		}
		if m.Preview != nil {
			if s := m.Preview(img); s != "" {
				b.WriteString(s)
				b.WriteString("\n")
			}
		}
	}
	return boxStyle.Render(strings.TrimSuffix(b.String(), "\n")) + "\n" + m.help.View(m.keys) + "\n"
}

func formatMS(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

// Run plays d until the user quits.
func Run(d *model.Descriptor) error {
	_, err := tea.NewProgram(New(d)).Run()
	return err
}
