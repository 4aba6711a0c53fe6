// SPDX-License-Identifier: GPL-2.0-or-later

// Package commandline holds the global flags shared by every command.
package commandline

import (
	"flag"
	"time"

	"anicursor/config"
)

var (
	verbose bool
	closing bool
	hotspot bool

	height   int
	width    int
	parallel int

	timeout time.Duration

	baseDir    string
	backend    string
	cacheFile  string
	configFile string
	cursorType string
	filter     string
	listen     string
	styles     string
	themeDir   string
)

func init() {
	Register(flag.CommandLine)
}

// Register binds the global flags to fs.
func Register(fs *flag.FlagSet) {
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	fs.BoolVar(&closing, "closing", true, "repeat the first frame at 100%")
	fs.BoolVar(&hotspot, "hotspot", false, "emit cursor hotspots")

	fs.IntVar(&height, "height", 32, "frame height in pixels")
	fs.IntVar(&width, "width", 32, "frame width in pixels")
	fs.IntVar(&parallel, "parallel", 4, "theme cursors loaded at once")

	fs.DurationVar(&timeout, "timeout", 10*time.Second, "download timeout")

	fs.StringVar(&baseDir, "basedir", "", "directory relative sources are read from")
	fs.StringVar(&backend, "resize", "canvas", "resize backend: canvas or imaging")
	fs.StringVar(&cacheFile, "cache", "", "descriptor cache file")
	fs.StringVar(&configFile, "config", "", "config file (default ~/.config/anicursor/config.toml)")
	fs.StringVar(&cursorType, "type", "auto", "cursor keyword after each frame url")
	fs.StringVar(&filter, "filter", "lanczos", "resample filter of the imaging backend")
	fs.StringVar(&listen, "listen", "", "address of the HTTP server")
	fs.StringVar(&styles, "styles", "", "cursor-styles.json to merge into the theme")
	fs.StringVar(&themeDir, "theme", "", "directory or URL of the theme cursors")
}

func ConfigFile() string {
	return configFile
}

func Verbose() bool {
	return verbose
}

// Apply overrides cfg with the flags set on the command line.
func Apply(cfg *config.Config) {
	ApplyFlags(flag.CommandLine, cfg)
}

func ApplyFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "closing":
			cfg.Cursor.Closing = closing
		case "hotspot":
			cfg.Cursor.Hotspot = hotspot
		case "height":
			cfg.Cursor.Height = height
		case "width":
			cfg.Cursor.Width = width
		case "parallel":
			cfg.Theme.Parallel = parallel
		case "timeout":
			cfg.Fetch.Timeout = timeout
		case "basedir":
			cfg.BaseDir = baseDir
		case "resize":
			cfg.Resize.Backend = backend
		case "cache":
			cfg.CacheFile = cacheFile
		case "type":
			cfg.Cursor.Type = cursorType
		case "filter":
			cfg.Resize.Filter = filter
		case "listen":
			cfg.Listen = listen
		case "styles":
			cfg.Theme.Styles = styles
		case "theme":
			cfg.Theme.Dir = themeDir
		}
	})
}
