// SPDX-License-Identifier: GPL-2.0-or-later

package theme

import (
	"context"
	"errors"
	"strings"
	"testing"

	"anicursor/anierr"
	"anicursor/anitest"
	"anicursor/cssrules"
	"anicursor/fetch"
	"anicursor/loader"
	"anicursor/style"
)

func TestDefaultRoles(t *testing.T) {
	th := Default()
	want := map[string]string{
		"default":      "mouse/NormalSelect.ani",
		"wait":         "mouse/Busy.ani",
		"zoom-in":      "mouse/Work.ani",
		"grabbing":     "mouse/Move.ani",
		"context-menu": "mouse/AlternateSelect.ani",
	}
	for name, src := range want {
		r, ok := th.Role(name)
		if !ok {
			t.Errorf("no role %q", name)
			continue
		}
		if got := th.Source(r); got != src {
			t.Errorf("Source(%s) = %q, want %q", name, got, src)
		}
	}
	if len(th.Roles) != 13 {
		t.Errorf("%d roles", len(th.Roles))
	}
	th.Dir = "https://cdn.example.com/mouse/"
	r, _ := th.Role("help")
	if got := th.Source(r); got != "https://cdn.example.com/mouse/HelpSelect.ani" {
		t.Errorf("Source = %q", got)
	}
}

func TestMerge(t *testing.T) {
	th := Default()
	th.Merge([]cssrules.Group{
		{Name: "wait", List: []string{".spinner"}},
		{Name: "default", List: []string{".card"}},
		{Name: "url(x.cur), auto", List: []string{".odd"}},
	})
	r, _ := th.Role("wait")
	if len(r.Selectors) != 1 || r.Selectors[0] != ".spinner" {
		t.Errorf("wait = %v", r.Selectors)
	}
	r, _ = th.Role("default")
	if len(r.Selectors) != 2 || r.Selectors[1] != ".card" {
		t.Errorf("default = %v", r.Selectors)
	}
}

func TestApplyCollectsFailures(t *testing.T) {
	good := anitest.ANI{Frames: anitest.Frames(2, 16, 16), DisplayRate: 6}.Bytes()
	f := fetch.Func(func(_ context.Context, src string) ([]byte, error) {
		if src == "mouse/Work.ani" {
			return nil, errors.New("not found")
		}
		return good, nil
	})
	th := Default()
	th.Parallel = 2
	s := style.NewSheet()
	err := th.Apply(context.Background(), loader.New(f, nil, nil), s, loader.DefaultOptions())
	var errs Errors
	if !errors.As(err, &errs) || len(errs) != 1 || errs[0].Role != "load" {
		t.Fatalf("got %v", err)
	}
	if !anierr.Is(errs[0], anierr.NetworkError) {
		t.Errorf("got kind %v", anierr.KindOf(errs[0]))
	}
	css := s.CSS()
	for _, sel := range []string{"body {", ".left-column,.Logo", "textarea,p,"} {
		if !strings.Contains(css, sel) {
			t.Errorf("sheet lacks %q", sel)
		}
	}
	if strings.Contains(css, ".el-loading-mask") {
		t.Errorf("failed role was applied")
	}
	if s.Len() != 3 {
		t.Errorf("%d animations", s.Len())
	}
}
