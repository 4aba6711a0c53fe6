// SPDX-License-Identifier: GPL-2.0-or-later

// Package theme maps CSS cursor roles to animated cursor files and applies
// a whole set of them to a style sheet.
package theme

import (
	"context"
	"fmt"
	"path"
	"strings"

	"anicursor/conlog"
	"anicursor/cssrules"
	"anicursor/loader"
	"anicursor/model"
	"anicursor/style"

	"golang.org/x/sync/errgroup"
)

// Role binds a CSS cursor keyword to the animation file that replaces it.
type Role struct {
	Name      string   // CSS cursor keyword
	File      string   // file name without extension
	Selectors []string // elements showing this cursor
}

type Theme struct {
	Dir   string // prefix for the role files, a directory or a base URL
	Ext   string
	Roles []Role
	// Parallel bounds concurrent loads, 0 means unbounded.
	Parallel int
}

// Default returns the stock roles and built-in selectors.
func Default() *Theme {
	return &Theme{
		Dir: "mouse",
		Ext: ".ani",
		Roles: []Role{
			{Name: "default", File: "NormalSelect", Selectors: []string{"body"}},
			{Name: "load", File: "Work", Selectors: []string{`img[lazy="loading"]`, ".el-loading-mask"}},
			{Name: "pointer", File: "AlternateSelect", Selectors: []string{".left-column,.Logo,.toolbar,.day-item,.icon-content"}},
			{Name: "text", File: "TextSelect", Selectors: []string{
				"textarea,p,h1,h2,h3,h4,h5,h6,.text,.el-range-input,.el-form-item__label,.el-input__wrapper .el-input__inner",
			}},
			{Name: "not-allowed", File: "Unavailable"},
			{Name: "move", File: "Move"},
			{Name: "grab", File: "LocationSelect"},
			{Name: "grabbing", File: "Move"},
			{Name: "help", File: "HelpSelect"},
			{Name: "wait", File: "Busy"},
			{Name: "crosshair", File: "PrecisionSelect"},
			{Name: "zoom-in", File: "Work"},
			{Name: "context-menu", File: "AlternateSelect"},
		},
	}
}

// Role returns the role for a cursor keyword.
func (t *Theme) Role(name string) (*Role, bool) {
	for i := range t.Roles {
		if t.Roles[i].Name == name {
			return &t.Roles[i], true
		}
	}
	return nil, false
}

// Source is the location of a role's animation file.
func (t *Theme) Source(r *Role) string {
	name := r.File + t.Ext
	if strings.Contains(t.Dir, "://") {
		return strings.TrimSuffix(t.Dir, "/") + "/" + name
	}
	return path.Join(t.Dir, name)
}

// Merge appends the selectors of extracted groups to the roles of the same
// name. Groups without a role are reported and skipped.
func (t *Theme) Merge(groups []cssrules.Group) {
	for _, g := range groups {
		r, ok := t.Role(g.Name)
		if !ok {
			conlog.Debugf("no cursor role for %q (%d selectors)", g.Name, len(g.List))
			continue
		}
		r.Selectors = append(r.Selectors, g.List...)
	}
}

// RoleError is the failure of a single role.
type RoleError struct {
	Role string
	Err  error
}

func (e *RoleError) Error() string {
	return fmt.Sprintf("cursor %s: %v", e.Role, e.Err)
}

func (e *RoleError) Unwrap() error {
	return e.Err
}

// Errors collects the roles that failed while the rest were applied.
type Errors []*RoleError

func (e Errors) Error() string {
	s := make([]string, len(e))
	for i, r := range e {
		s[i] = r.Error()
	}
	return strings.Join(s, "; ")
}

// Apply loads every role that has selectors and binds it to the sheet.
// Roles are loaded concurrently and applied in theme order. A failing role
// never stops the others, the failures are returned as Errors.
func (t *Theme) Apply(ctx context.Context, l *loader.Loader, s *style.Sheet, o loader.Options) error {
	descs := make([]*model.Descriptor, len(t.Roles))
	errs := make([]error, len(t.Roles))
	g := new(errgroup.Group)
	if t.Parallel > 0 {
		g.SetLimit(t.Parallel)
	}
	for i := range t.Roles {
		r := &t.Roles[i]
		if len(r.Selectors) == 0 {
			continue
		}
		g.Go(func() error {
			descs[i], errs[i] = l.Load(ctx, t.Source(r), o)
			return nil
		})
	}
	g.Wait()

	var failed Errors
	for i, d := range descs {
		if errs[i] != nil {
			conlog.Printf("cursor %s: %v", t.Roles[i].Name, errs[i])
			failed = append(failed, &RoleError{Role: t.Roles[i].Name, Err: errs[i]})
			continue
		}
		if d != nil {
			s.Apply(d, t.Roles[i].Selectors...)
		}
	}
	if len(failed) > 0 {
		return failed
	}
	return nil
}
