// SPDX-License-Identifier: GPL-2.0-or-later

// Package alias holds named command lines for scripts.
package alias

import (
	"context"
	"sort"
	"strings"
	"sync"

	"anicursor/cbuf"
	"anicursor/cmd"
	"anicursor/conlog"

	"github.com/pkg/errors"
)

// maxExpansions bounds alias expansion in one buffer.
const maxExpansions = 64

type Aliases struct {
	mu sync.RWMutex
	m  map[string]string
}

func New() *Aliases {
	return &Aliases{m: make(map[string]string)}
}

// Register adds the alias, unalias and unaliasall commands through add.
func (al *Aliases) Register(add func(name, usage, short string, f cmd.Func) error) error {
	if err := add("alias", "[name [command...]]", "list, show or define aliases", al.alias); err != nil {
		return err
	}
	if err := add("unalias", "name", "delete an alias", al.unalias); err != nil {
		return err
	}
	return add("unaliasall", "", "delete every alias", al.unaliasAll)
}

func (al *Aliases) alias(_ context.Context, a cmd.Arguments) error {
	args := a.Args()[1:]
	switch len(args) {
	case 0:
		al.list()
	case 1:
		if v, ok := al.Get(args[0].String()); ok {
			conlog.Printf("  %s: %s", args[0].String(), v)
		}
	default:
		al.Set(args[0].String(), a.Rest()[1:])
	}
	return nil
}

func (al *Aliases) list() {
	al.mu.RLock()
	defer al.mu.RUnlock()
	if len(al.m) == 0 {
		conlog.Printf("no alias commands found")
		return
	}
	names := make([]string, 0, len(al.m))
	for k := range al.m {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		conlog.Printf("  %s: %s", k, al.m[k])
	}
	conlog.Printf("%v alias command(s)", len(al.m))
}

// Set binds name to the words of a command line.
func (al *Aliases) Set(name string, words []string) {
	al.mu.Lock()
	defer al.mu.Unlock()
	al.m[strings.ToLower(name)] = strings.TrimSpace(strings.Join(words, " "))
}

func (al *Aliases) Get(name string) (string, bool) {
	al.mu.RLock()
	defer al.mu.RUnlock()
	v, ok := al.m[strings.ToLower(name)]
	return v, ok
}

func (al *Aliases) unalias(_ context.Context, a cmd.Arguments) error {
	if len(a.Args()) != 2 {
		return errors.New("unalias <name> : delete alias")
	}
	name := strings.ToLower(a.Argv(1).String())
	al.mu.Lock()
	defer al.mu.Unlock()
	if _, ok := al.m[name]; !ok {
		return errors.Errorf("no alias named %s", name)
	}
	delete(al.m, name)
	return nil
}

func (al *Aliases) unaliasAll(context.Context, cmd.Arguments) error {
	al.mu.Lock()
	defer al.mu.Unlock()
	al.m = make(map[string]string)
	return nil
}

// Executor expands aliases by inserting their text into cb.
func (al *Aliases) Executor(cb *cbuf.CommandBuffer) cbuf.Efunc {
	n := 0
	return func(_ context.Context, a cmd.Arguments) (bool, error) {
		if len(a.Args()) == 0 {
			return false, nil
		}
		name := a.Argv(0).String()
		v, ok := al.Get(name)
		if !ok {
			return false, nil
		}
		if n++; n > maxExpansions {
			return true, errors.Errorf("alias %s expanded more than %d times", name, maxExpansions)
		}
		cb.InsertText(v)
		return true, nil
	}
}
