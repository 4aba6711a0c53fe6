// SPDX-License-Identifier: GPL-2.0-or-later

package cursorlib

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"anicursor/alias"
	"anicursor/anierr"
	"anicursor/cbuf"
	"anicursor/cmd"
	"anicursor/conlog"
	"anicursor/crc"
	"anicursor/cssrules"
	"anicursor/export"
	"anicursor/filesystem"
	"anicursor/frame"
	"anicursor/image"
	"anicursor/loader"
	"anicursor/player"
	"anicursor/server"
	"anicursor/style"
)

func init() {
	cmd.Must(cmd.AddCommand("build", "[-html] [-selector sel] src...", "print the keyframe css of cursors", buildCmd))
	cmd.Must(cmd.AddCommand("json", "file|-", "build a cursor from precomputed frame data", jsonCmd))
	cmd.Must(cmd.AddCommand("export", "[-o file] [-gif file] src", "write an html report or a gif", exportCmd))
	cmd.Must(cmd.AddCommand("inspect", "src", "show header, timeline and keyframes", inspectCmd))
	cmd.Must(cmd.AddCommand("extract", "[-dir dir] [-raw] src", "write the frames as png files", extractCmd))
	cmd.Must(cmd.AddCommand("play", "src", "play a cursor in the terminal", playCmd))
	cmd.Must(cmd.AddCommand("serve", "", "run the http server", serveCmd))
	cmd.Must(cmd.AddCommand("rules", "[-o file] css...", "collect cursor rules from stylesheets", rulesCmd))
	cmd.Must(cmd.AddCommand("theme", "[-html]", "print the css of the whole theme", themeCmd))
	cmd.Must(cmd.AddCommand("exec", "script", "run the commands of a script file", execCmd))
	cmd.Must(cmd.AddCommand("cmdlist", "[prefix]", "list commands", cmdListCmd))
	cmd.Must(aliases.Register(cmd.AddCommand))
}

var aliases = alias.New()

func flags(a cmd.Arguments) *flag.FlagSet {
	fs := flag.NewFlagSet(a.Argv(0).String(), flag.ContinueOnError)
	fs.SetOutput(host.Out)
	return fs
}

// one returns the single positional argument.
func one(fs *flag.FlagSet, what string) (string, error) {
	if fs.NArg() != 1 {
		return "", anierr.New(anierr.InvalidInput, "want one %s, got %d arguments", what, fs.NArg())
	}
	return fs.Arg(0), nil
}

func buildCmd(ctx context.Context, a cmd.Arguments) error {
	fs := flags(a)
	asHTML := fs.Bool("html", false, "wrap the css in a style element")
	selector := fs.String("selector", "", "elements showing the cursors")
	if err := fs.Parse(a.Rest()); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return anierr.New(anierr.InvalidInput, "no source given")
	}
	s := style.NewSheet()
	for _, src := range fs.Args() {
		d, err := host.Loader.Load(ctx, src, host.Options())
		if err != nil {
			return err
		}
		if *selector != "" {
			s.Apply(d, *selector)
		} else {
			s.ApplyDefault(d)
		}
	}
	return writeSheet(s, *asHTML)
}

func writeSheet(s *style.Sheet, asHTML bool) error {
	if asHTML {
		_, err := io.WriteString(host.Out, s.HTML())
		return err
	}
	_, err := s.WriteTo(host.Out)
	return err
}

func jsonCmd(ctx context.Context, a cmd.Arguments) error {
	name := a.Argv(1).String()
	var data []byte
	var err error
	switch name {
	case "":
		return anierr.New(anierr.InvalidInput, "no input file")
	case "-":
		data, err = io.ReadAll(os.Stdin)
	default:
		data, err = filesystem.ReadFile(name)
	}
	if err != nil {
		return err
	}
	d, err := host.Loader.LoadJSON(ctx, data)
	if err != nil {
		return err
	}
	s := style.NewSheet()
	s.ApplyDefault(d)
	return writeSheet(s, false)
}

func exportCmd(ctx context.Context, a cmd.Arguments) error {
	fs := flags(a)
	out := fs.String("o", export.DefaultFilename, "html report file")
	gif := fs.String("gif", "", "also write an animated gif")
	if err := fs.Parse(a.Rest()); err != nil {
		return err
	}
	src, err := one(fs, "source")
	if err != nil {
		return err
	}
	d, err := host.Loader.Load(ctx, src, host.Options())
	if err != nil {
		return err
	}
	if err := export.WriteFile(*out, d); err != nil {
		return err
	}
	fmt.Fprintf(host.Out, "wrote %s\n", *out)
	if *gif == "" {
		return nil
	}
	f, err := os.Create(*gif)
	if err != nil {
		return err
	}
	if err := export.GIF(f, d); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(host.Out, "wrote %s\n", *gif)
	return nil
}

func extractCmd(ctx context.Context, a cmd.Arguments) error {
	fs := flags(a)
	dir := fs.String("dir", ".", "output directory")
	raw := fs.Bool("raw", false, "keep the stored frame size")
	if err := fs.Parse(a.Rest()); err != nil {
		return err
	}
	src, err := one(fs, "source")
	if err != nil {
		return err
	}
	data, err := host.Fetch.Fetch(ctx, src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*dir, 0755); err != nil {
		return err
	}
	base := filesystem.StripExt(filepath.Base(src))
	out := func(i int, blob []byte) string {
		return filepath.Join(*dir, fmt.Sprintf("%s-%02d-%s.png", base, i, crc.Name(blob)))
	}
	if *raw {
		an, err := loader.Decode(src, data)
		if err != nil {
			return err
		}
		for _, f := range an.Frames {
			if err := writeFrame(out(f.Index, f.Data), f.Data); err != nil {
				conlog.Printf("%s: frame %d: %v", src, f.Index, err)
			}
		}
		return nil
	}
	d, err := host.Loader.LoadBytes(ctx, src, data, host.Options())
	if err != nil {
		return err
	}
	for _, img := range d.Images {
		if img.Fallback {
			err = writeFrame(out(img.Index, img.Data), img.Data)
		} else {
			err = writePNG(out(img.Index, img.Data), img.Data)
		}
		if err != nil {
			conlog.Printf("%s: frame %d: %v", src, img.Index, err)
		}
	}
	return nil
}

// writeFrame decodes an ICO, CUR or PNG blob and stores it as PNG.
func writeFrame(name string, blob []byte) error {
	img, err := frame.Decode(blob)
	if err != nil {
		return err
	}
	if err := image.Write(name, img); err != nil {
		return err
	}
	fmt.Fprintln(host.Out, name)
	return nil
}

func writePNG(name string, b []byte) error {
	if err := os.WriteFile(name, b, 0644); err != nil {
		return err
	}
	fmt.Fprintln(host.Out, name)
	return nil
}

func playCmd(ctx context.Context, a cmd.Arguments) error {
	src := a.Argv(1).String()
	if src == "" {
		return anierr.New(anierr.InvalidInput, "no source given")
	}
	d, err := host.Loader.Load(ctx, src, host.Options())
	if err != nil {
		return err
	}
	return player.Run(d)
}

func serveCmd(ctx context.Context, _ cmd.Arguments) error {
	t, err := host.Theme()
	if err != nil {
		return err
	}
	return server.New(host.Loader, t, host.Options()).ListenAndServe(ctx, host.Config.Listen)
}

func rulesCmd(_ context.Context, a cmd.Arguments) error {
	fs := flags(a)
	out := fs.String("o", "", "write cursor-styles.json instead of printing")
	if err := fs.Parse(a.Rest()); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return anierr.New(anierr.InvalidInput, "no stylesheet given")
	}
	var rules []cssrules.Rule
	for _, name := range fs.Args() {
		b, err := filesystem.ReadFile(name)
		if err != nil {
			return err
		}
		r, err := cssrules.Extract(bytes.NewReader(b), name)
		if err != nil {
			return err
		}
		rules = append(rules, r...)
	}
	groups := cssrules.GroupRules(rules)
	if *out == "" {
		return cssrules.WriteJSON(host.Out, groups)
	}
	if err := cssrules.Save(*out, groups); err != nil {
		return err
	}
	fmt.Fprintf(host.Out, "%d cursor groups written to %s\n", len(groups), *out)
	return nil
}

func themeCmd(ctx context.Context, a cmd.Arguments) error {
	fs := flags(a)
	asHTML := fs.Bool("html", false, "wrap the css in a style element")
	if err := fs.Parse(a.Rest()); err != nil {
		return err
	}
	t, err := host.Theme()
	if err != nil {
		return err
	}
	s := style.NewSheet()
	if err := t.Apply(ctx, host.Loader, s, host.Options()); err != nil {
		// the sheet still holds every role that loaded
		conlog.Printf("%v", err)
	}
	return writeSheet(s, *asHTML)
}

func execCmd(ctx context.Context, a cmd.Arguments) error {
	name := a.Argv(1).String()
	if name == "" {
		return anierr.New(anierr.InvalidInput, "no script given")
	}
	b, err := filesystem.ReadFile(name)
	if err != nil {
		return err
	}
	c := cbuf.New()
	c.SetCommandExecutors([]cbuf.Efunc{
		func(_ context.Context, l cmd.Arguments) (bool, error) {
			if strings.EqualFold(l.Argv(0).String(), "exec") {
				return true, fmt.Errorf("nested exec of %s", l.Argv(1).String())
			}
			return false, nil
		},
		cmd.Execute,
		aliases.Executor(c),
	})
	c.AddText(string(b))
	if err := c.Execute(ctx); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func cmdListCmd(_ context.Context, a cmd.Arguments) error {
	cmd.PrintList(host.Out, a.Argv(1).String())
	return nil
}
