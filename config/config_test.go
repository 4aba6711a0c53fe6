// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	in := `
base_dir = "~/cursors"
theme_dirs = ["dark"]
listen = ":9000"

[cursor]
type = "pointer"
width = 48
hotspot = true

[resize]
backend = "imaging"

[fetch]
timeout = "3s"
user_agent = "test"

[theme]
styles = "cursor-styles.json"
`
	cfg, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if cfg.BaseDir != filepath.Join(home, "cursors") {
		t.Errorf("BaseDir = %q", cfg.BaseDir)
	}
	if cfg.Listen != ":9000" || len(cfg.ThemeDirs) != 1 {
		t.Errorf("got %+v", cfg)
	}
	// unset keys keep their defaults
	if cfg.Cursor.Type != "pointer" || cfg.Cursor.Width != 48 || cfg.Cursor.Height != 32 || !cfg.Cursor.Closing || !cfg.Cursor.Hotspot {
		t.Errorf("Cursor = %+v", cfg.Cursor)
	}
	if cfg.Resize.Backend != "imaging" || cfg.Resize.Filter != "lanczos" {
		t.Errorf("Resize = %+v", cfg.Resize)
	}
	if cfg.Fetch.Timeout != 3*time.Second || cfg.Fetch.UserAgent != "test" {
		t.Errorf("Fetch = %+v", cfg.Fetch)
	}
	if !filepath.IsAbs(cfg.Theme.Styles) || cfg.Theme.Dir != "mouse" {
		t.Errorf("Theme = %+v", cfg.Theme)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"listen = ",
		"[fetch]\ntimeout = \"soon\"",
		"[cursor]\nwidth = -1",
	} {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("Parse(%q) succeeded", in)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(name, []byte("[cursor]\nclosing = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(name)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cursor.Closing {
		t.Errorf("closing not applied")
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Errorf("missing explicit config accepted")
	}
}
