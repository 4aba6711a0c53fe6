// SPDX-License-Identifier: GPL-2.0-or-later

// Package cmd is the registry of named commands.
package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

type Func func(ctx context.Context, args Arguments) error

type Command struct {
	Name  string
	Usage string // argument synopsis
	Short string // one line description
	Run   Func
}

type Commands map[string]*Command

func New() *Commands {
	c := make(Commands)
	return &c
}

func (c *Commands) Add(name, usage, short string, f Func) error {
	ln := strings.ToLower(name)
	if _, ok := (*c)[ln]; ok {
		return fmt.Errorf("command %s already defined", ln)
	}
	(*c)[ln] = &Command{Name: ln, Usage: usage, Short: short, Run: f}
	return nil
}

func (c *Commands) Exists(cmdName string) bool {
	_, ok := c.Get(cmdName)
	return ok
}

func (c *Commands) Get(cmdName string) (*Command, bool) {
	cmd, ok := (*c)[strings.ToLower(cmdName)]
	return cmd, ok
}

func (c *Commands) List() []string {
	cmds := make([]string, 0, len(*c))
	for cmd := range *c {
		cmds = append(cmds, cmd)
	}
	sort.Strings(cmds)
	return cmds
}

// Execute runs the command named by the first argument. It reports false
// when there is no such command.
func (c *Commands) Execute(ctx context.Context, a Arguments) (bool, error) {
	n := a.Args()
	if len(n) == 0 {
		return false, nil
	}
	cmd, ok := c.Get(n[0].String())
	if !ok {
		return false, nil
	}
	if err := cmd.Run(ctx, a); err != nil {
		return true, fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return true, nil
}

var (
	commands = make(Commands)
)

func Must(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func AddCommand(name, usage, short string, f Func) error {
	return commands.Add(name, usage, short, f)
}

func Exists(cmdName string) bool {
	return commands.Exists(cmdName)
}

func Execute(ctx context.Context, a Arguments) (bool, error) {
	return commands.Execute(ctx, a)
}

func List() []string {
	return commands.List()
}

func Get(cmdName string) (*Command, bool) {
	return commands.Get(cmdName)
}
