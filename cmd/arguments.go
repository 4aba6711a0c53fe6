// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

type Arg struct {
	a string
}

func (a Arg) String() string {
	return a.a
}

func (a Arg) Int() int {
	r, err := strconv.ParseInt(a.a, 10, 0)
	if err != nil {
		return 0
	}
	return int(r)
}

func (a Arg) Float64() float64 {
	r, err := strconv.ParseFloat(a.a, 64)
	if err != nil {
		return 0
	}
	return r
}

func (a Arg) Bool() bool {
	switch strings.ToLower(a.a) {
	case "1", "t", "true", "on", "yes":
		return true
	default:
		return false
	}
}

// Arguments is one command invocation, the command name first.
type Arguments struct {
	args []Arg
	full string
}

func FromSlice(s []string) Arguments {
	a := Arguments{full: strings.Join(s, " ")}
	for _, v := range s {
		a.args = append(a.args, Arg{v})
	}
	return a
}

func (c *Arguments) Argv(i int) Arg {
	if i < 0 || i >= len(c.args) {
		return Arg{}
	}
	return c.args[i]
}

func (c *Arguments) Full() string {
	return c.full
}

func (c *Arguments) Args() []Arg {
	return c.args
}

// Rest returns the arguments after the command name.
func (c *Arguments) Rest() []string {
	if len(c.args) < 2 {
		return nil
	}
	r := make([]string, len(c.args)-1)
	for i, a := range c.args[1:] {
		r[i] = a.a
	}
	return r
}

// ArgumentString is the raw text after the command name.
func (c *Arguments) ArgumentString() string {
	if len(c.args) < 2 {
		return ""
	}
	r := strings.TrimPrefix(c.full, c.args[0].String())
	r = strings.TrimLeftFunc(r, unicode.IsSpace)
	if len(r) > 1 && r[0] == '"' {
		r = strings.Trim(r, "\"\t\n\v\f\r ")
	}
	return r
}

// Parse splits one script line. Double quotes group words, "//" starts a
// comment that runs to the end of the line.
func Parse(s string) (Arguments, error) {
	line, _, _ := strings.Cut(s, "\n")
	args := Arguments{full: strings.TrimFunc(line, unicode.IsSpace)}
	in := args.full
	for len(in) > 0 {
		in = strings.TrimLeft(in, " \t\r")
		switch {
		case in == "":
		case strings.HasPrefix(in, "//"):
			in = ""
		case in[0] == '"':
			end := strings.IndexByte(in[1:], '"')
			if end < 0 {
				return Arguments{}, errors.Errorf("unterminated string in %q", args.full)
			}
			args.args = append(args.args, Arg{in[1 : end+1]})
			in = in[end+2:]
		default:
			end := strings.IndexAny(in, " \t\r\"")
			if end < 0 {
				end = len(in)
			}
			args.args = append(args.args, Arg{in[:end]})
			in = in[end:]
		}
	}
	return args, nil
}
