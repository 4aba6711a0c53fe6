// SPDX-License-Identifier: GPL-2.0-or-later

// Package cssrules collects the cursor declarations of style sheets and
// groups their selectors by cursor value.
package cssrules

import (
	"encoding/json"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/gorilla/css/scanner"
	"github.com/pkg/errors"
)

type Rule struct {
	Selector string `json:"selector"`
	Cursor   string `json:"cursor"`
	File     string `json:"file,omitempty"`
}

type block struct {
	selector string // empty for at-rule blocks
	skip     bool   // inside @keyframes or @font-face
}

// collapse joins whitespace runs into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Extract returns every cursor declaration of the CSS read from r, in
// source order. Rules nested in at-rules such as @media are included.
func Extract(r io.Reader, file string) ([]Rule, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var (
		rules []Rule
		stack []block
		text  strings.Builder
	)
	top := func() block {
		if len(stack) == 0 {
			return block{}
		}
		return stack[len(stack)-1]
	}
	decl := func() {
		d := text.String()
		text.Reset()
		cur := top()
		if cur.selector == "" || cur.skip {
			return
		}
		name, value, ok := strings.Cut(d, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "cursor") {
			return
		}
		value = collapse(value)
		if v, ok := strings.CutSuffix(value, "!important"); ok {
			value = strings.TrimSpace(v)
		}
		if value == "" {
			return
		}
		rules = append(rules, Rule{Selector: cur.selector, Cursor: value, File: file})
	}

	s := scanner.New(string(b))
	for {
		t := s.Next()
		switch t.Type {
		case scanner.TokenEOF:
			return rules, nil
		case scanner.TokenError:
			return nil, errors.Errorf("%s:%d:%d: %s", file, t.Line, t.Column, t.Value)
		case scanner.TokenComment, scanner.TokenCDO, scanner.TokenCDC, scanner.TokenBOM:
			continue
		case scanner.TokenS:
			text.WriteByte(' ')
			continue
		case scanner.TokenChar:
			switch t.Value {
			case "{":
				prelude := collapse(text.String())
				text.Reset()
				nb := block{skip: top().skip}
				if strings.HasPrefix(prelude, "@") {
					at := strings.ToLower(prelude)
					if strings.HasPrefix(at, "@keyframes") || strings.HasPrefix(at, "@-webkit-keyframes") || strings.HasPrefix(at, "@font-face") {
						nb.skip = true
					}
				} else {
					nb.selector = prelude
				}
				stack = append(stack, nb)
				continue
			case "}":
				decl()
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				continue
			case ";":
				if top().selector != "" {
					decl()
				} else {
					// end of a statement at-rule such as @import
					text.Reset()
				}
				continue
			}
		}
		text.WriteString(t.Value)
	}
}

type Group struct {
	Name string   `json:"name"`
	List []string `json:"list"`
}

// GroupRules keeps the last cursor value of each selector and groups the
// selectors by value. Groups are ordered by size, largest first, then by
// name. Selectors within a group are sorted.
func GroupRules(rules []Rule) []Group {
	last := make(map[string]string)
	for _, r := range rules {
		if c := strings.TrimSpace(r.Cursor); c != "" {
			last[r.Selector] = c
		}
	}
	bycursor := make(map[string][]string)
	for sel, c := range last {
		bycursor[c] = append(bycursor[c], sel)
	}
	groups := make([]Group, 0, len(bycursor))
	for c, list := range bycursor {
		slices.Sort(list)
		groups = append(groups, Group{Name: c, List: slices.Compact(list)})
	}
	slices.SortFunc(groups, func(a, b Group) int {
		if len(a.List) != len(b.List) {
			return len(b.List) - len(a.List)
		}
		return strings.Compare(a.Name, b.Name)
	})
	return groups
}

// Lookup returns the selectors of the group named name.
func Lookup(groups []Group, name string) []string {
	for _, g := range groups {
		if g.Name == name {
			return g.List
		}
	}
	return nil
}

func WriteJSON(w io.Writer, groups []Group) error {
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(groups)
}

func ReadJSON(r io.Reader) ([]Group, error) {
	var g []Group
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, errors.Wrap(err, "decode cursor groups")
	}
	return g, nil
}

// Load reads a cursor-styles.json file.
func Load(name string) ([]Group, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

func Save(name string, groups []Group) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := WriteJSON(f, groups); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
