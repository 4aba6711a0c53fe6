// SPDX-License-Identifier: GPL-2.0-or-later

// Package config reads the anicursor TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

type Cursor struct {
	Type    string `toml:"type"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Closing bool   `toml:"closing"`
	Hotspot bool   `toml:"hotspot"`
}

type Resize struct {
	Backend string `toml:"backend"`
	Filter  string `toml:"filter"`
}

type Fetch struct {
	Timeout   time.Duration `toml:"-"`
	UserAgent string        `toml:"user_agent"`
}

type Theme struct {
	Dir      string `toml:"dir"`
	Ext      string `toml:"ext"`
	Styles   string `toml:"styles"` // cursor-styles.json merged into the roles
	Parallel int    `toml:"parallel"`
}

type Config struct {
	BaseDir   string   `toml:"base_dir"`
	ThemeDirs []string `toml:"theme_dirs"`
	CacheFile string   `toml:"cache_file"`
	Listen    string   `toml:"listen"`
	Cursor    Cursor   `toml:"cursor"`
	Resize    Resize   `toml:"resize"`
	Fetch     Fetch    `toml:"fetch"`
	Theme     Theme    `toml:"theme"`
}

const (
	defaultConfigPath = "~/.config/anicursor/config.toml"
	defaultListen     = "127.0.0.1:8357"
	defaultTimeout    = 10 * time.Second
)

func Default() Config {
	return Config{
		BaseDir: ".",
		Listen:  defaultListen,
		Cursor: Cursor{
			Type:    "auto",
			Width:   32,
			Height:  32,
			Closing: true,
		},
		Resize: Resize{Backend: "canvas", Filter: "lanczos"},
		Fetch:  Fetch{Timeout: defaultTimeout},
		Theme: Theme{
			Dir:      "mouse",
			Ext:      ".ani",
			Parallel: 4,
		},
	}
}

// Load reads the config at path, or the default location when path is
// empty. A missing file yields the defaults.
func Load(path string) (Config, error) {
	explicit := strings.TrimSpace(path) != ""
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}
	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// Parse decodes TOML over the defaults.
func Parse(r io.Reader) (Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	var raw struct {
		Fetch struct {
			Timeout string `toml:"timeout"`
		} `toml:"fetch"`
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := toml.Unmarshal(b, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if t := strings.TrimSpace(raw.Fetch.Timeout); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return Config{}, fmt.Errorf("parse fetch.timeout: %w", err)
		}
		cfg.Fetch.Timeout = d
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.Listen) == "" {
		c.Listen = defaultListen
	}
	if c.Cursor.Width < 0 || c.Cursor.Height < 0 {
		return fmt.Errorf("cursor size %dx%d is negative", c.Cursor.Width, c.Cursor.Height)
	}
	c.BaseDir = mustExpand(c.BaseDir)
	if c.CacheFile != "" {
		c.CacheFile = mustExpand(c.CacheFile)
	}
	if c.Theme.Styles != "" {
		c.Theme.Styles = mustExpand(c.Theme.Styles)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
