// SPDX-License-Identifier: GPL-2.0-or-later

// Package style collects animated cursor rules into one style sheet.
package style

import (
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	"anicursor/keyframe"
	"anicursor/model"

	"github.com/google/uuid"
)

// Attr marks the style element owned by a Sheet.
const Attr = "data-ani-cursor"

// Sheet is the document style element. Keyframe blocks are added once per
// descriptor, selector rules are appended as they are applied.
type Sheet struct {
	ID uuid.UUID

	mu     sync.Mutex
	blocks []string
	seen   map[string]bool
	names  map[string]bool
}

func NewSheet() *Sheet {
	return &Sheet{
		ID:    uuid.New(),
		seen:  make(map[string]bool),
		names: make(map[string]bool),
	}
}

func (s *Sheet) add(block string) {
	if s.seen[block] {
		return
	}
	s.seen[block] = true
	s.blocks = append(s.blocks, block)
}

func (s *Sheet) define(d *model.Descriptor) {
	if s.names[d.Name] {
		return
	}
	s.names[d.Name] = true
	s.add(d.CSS)
	s.add(fmt.Sprintf(".%s { %s }\n", d.ClassName, keyframe.Animation(d)))
}

// Apply binds d to selectors and returns the class name that carries the
// animation. Applying the same descriptor again only adds new selector rules.
func (s *Sheet) Apply(d *model.Descriptor, selectors ...string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.define(d)
	var sel []string
	for _, x := range selectors {
		if x = strings.TrimSpace(x); x != "" {
			sel = append(sel, x)
		}
	}
	if len(sel) > 0 {
		s.add(fmt.Sprintf("%s { %s }\n", strings.Join(sel, ","), keyframe.Animation(d)))
	}
	return d.ClassName
}

// ApplyDefault only defines the keyframes and the class rule.
func (s *Sheet) ApplyDefault(d *model.Descriptor) string {
	return s.Apply(d)
}

// Len is the number of distinct animations in the sheet.
func (s *Sheet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.names)
}

func (s *Sheet) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = nil
	s.seen = make(map[string]bool)
	s.names = make(map[string]bool)
}

func (s *Sheet) CSS() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.blocks, "")
}

// HTML returns the sheet as a style element.
func (s *Sheet) HTML() string {
	return fmt.Sprintf("<style %s=\"%s\">\n%s</style>\n", Attr, html.EscapeString(s.ID.String()), s.CSS())
}

func (s *Sheet) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.CSS())
	return int64(n), err
}
