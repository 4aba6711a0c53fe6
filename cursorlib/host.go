// SPDX-License-Identifier: GPL-2.0-or-later

// Package cursorlib wires the configuration into the commands.
package cursorlib

import (
	"io"
	"os"

	"anicursor/cache"
	"anicursor/config"
	"anicursor/conlog"
	"anicursor/cssrules"
	"anicursor/fetch"
	"anicursor/filesystem"
	"anicursor/frame"
	"anicursor/loader"
	"anicursor/theme"
)

// Host is the state shared by the commands of one run.
type Host struct {
	Config config.Config
	Fetch  *fetch.Client
	Loader *loader.Loader
	Out    io.Writer
}

var host *Host

func NewHost(cfg config.Config) (*Host, error) {
	filesystem.UseBaseDir(cfg.BaseDir)
	for _, d := range cfg.ThemeDirs {
		filesystem.AddDir(d)
	}
	r, err := frame.New(cfg.Resize.Backend, cfg.Resize.Filter)
	if err != nil {
		return nil, err
	}
	c := cache.New()
	if cfg.CacheFile != "" {
		if err := c.Load(cfg.CacheFile); err != nil {
			conlog.Printf("cache %s: %v", cfg.CacheFile, err)
		} else {
			conlog.Debugf("cache %s: %d entries", cfg.CacheFile, c.Len())
		}
	}
	f := fetch.NewClient(cfg.Fetch.Timeout)
	if cfg.Fetch.UserAgent != "" {
		f.SetUserAgent(cfg.Fetch.UserAgent)
	}
	return &Host{
		Config: cfg,
		Fetch:  f,
		Loader: loader.New(f, r, c),
		Out:    os.Stdout,
	}, nil
}

func (h *Host) Options() loader.Options {
	return loader.Options{
		CursorType: h.Config.Cursor.Type,
		Width:      h.Config.Cursor.Width,
		Height:     h.Config.Cursor.Height,
		Closing:    h.Config.Cursor.Closing,
		Hotspot:    h.Config.Cursor.Hotspot,
	}
}

// Theme builds the configured theme, merged with the styles file if any.
func (h *Host) Theme() (*theme.Theme, error) {
	t := theme.Default()
	if h.Config.Theme.Dir != "" {
		t.Dir = h.Config.Theme.Dir
	}
	if h.Config.Theme.Ext != "" {
		t.Ext = h.Config.Theme.Ext
	}
	t.Parallel = h.Config.Theme.Parallel
	if h.Config.Theme.Styles != "" {
		g, err := cssrules.Load(h.Config.Theme.Styles)
		if err != nil {
			return nil, err
		}
		t.Merge(g)
	}
	return t, nil
}

// Close writes the cache back when a cache file is configured.
func (h *Host) Close() error {
	if h.Config.CacheFile == "" || h.Loader.Cache().Len() == 0 {
		return nil
	}
	return h.Loader.Cache().Save(h.Config.CacheFile)
}
