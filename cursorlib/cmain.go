// SPDX-License-Identifier: GPL-2.0-or-later

package cursorlib

import (
	"context"
	"fmt"

	"anicursor/cmd"
	"anicursor/commandline"
	"anicursor/config"
	"anicursor/conlog"
)

// Main runs the command in args with the configuration and global flags.
func Main(ctx context.Context, args []string) error {
	cfg, err := config.Load(commandline.ConfigFile())
	if err != nil {
		return err
	}
	commandline.Apply(&cfg)
	conlog.SetVerbose(commandline.Verbose())

	h, err := NewHost(cfg)
	if err != nil {
		return err
	}
	host = h
	defer func() {
		if err := h.Close(); err != nil {
			conlog.Printf("cache: %v", err)
		}
	}()

	if len(args) == 0 {
		fmt.Fprintln(h.Out, "usage: anicursor [flags] command [args]")
		cmd.PrintList(h.Out, "")
		return nil
	}
	return run(ctx, cmd.FromSlice(args))
}

func run(ctx context.Context, a cmd.Arguments) error {
	ok, err := cmd.Execute(ctx, a)
	if !ok {
		return fmt.Errorf("unknown command %q", a.Argv(0).String())
	}
	return err
}
