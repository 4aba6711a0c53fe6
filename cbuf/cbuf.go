// SPDX-License-Identifier: GPL-2.0-or-later

// Package cbuf buffers script text and runs it one command at a time.
package cbuf

import (
	"context"

	"anicursor/cmd"

	"github.com/pkg/errors"
)

// Efunc runs a command line. It reports false when it does not know the
// command so the next executor can try.
type Efunc func(ctx context.Context, a cmd.Arguments) (bool, error)

type CommandBuffer struct {
	text      string
	executors []Efunc
}

func New(e ...Efunc) *CommandBuffer {
	return &CommandBuffer{executors: e}
}

func (c *CommandBuffer) SetCommandExecutors(e []Efunc) {
	c.executors = e
}

func (c *CommandBuffer) AddText(text string) {
	c.text += text
}

// InsertText puts text before the pending commands.
func (c *CommandBuffer) InsertText(text string) {
	c.text = text + "\n" + c.text
}

func (c *CommandBuffer) Len() int {
	return len(c.text)
}

// next cuts the first command off the buffer. Commands end at a newline or
// at a ';' outside of quotes.
func (c *CommandBuffer) next() string {
	i := 0
	quote := false
LineLoop:
	for ; i < len(c.text); i++ {
		switch c.text[i] {
		case '"':
			quote = !quote
		case ';':
			if !quote {
				break LineLoop
			}
		case '\n':
			break LineLoop
		}
	}
	line := c.text[:i]
	if i < len(c.text) {
		i++
	}
	c.text = c.text[i:]
	return line
}

// Execute runs the buffered commands until the buffer is empty or a
// command fails. The failing command is consumed.
func (c *CommandBuffer) Execute(ctx context.Context) error {
	for len(c.text) != 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.execute(ctx, c.next()); err != nil {
			return err
		}
	}
	return nil
}

func (c *CommandBuffer) execute(ctx context.Context, line string) error {
	a, err := cmd.Parse(line)
	if err != nil {
		return err
	}
	args := a.Args()
	if len(args) == 0 {
		return nil
	}
	for _, e := range c.executors {
		if ok, err := e(ctx, a); err != nil {
			return err
		} else if ok {
			return nil
		}
	}
	return errors.Errorf("unknown command %q", args[0].String())
}
