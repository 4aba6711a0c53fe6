// SPDX-License-Identifier: GPL-2.0-or-later

package vfs

import (
	"io"
	"os"
	"strings"
)

type BindMode int

const (
	BindReplace BindMode = iota
	BindBefore
	BindAfter
)

// NameSpace is an ordered union of file systems. Lookups try each member
// in order and the first one holding the name wins.
type NameSpace struct {
	mounts []FileSystem
}

// Bind adds fs to the name space. BindBefore gives it priority over the
// existing members, BindAfter only consults it when they all fail and
// BindReplace drops them.
func (ns *NameSpace) Bind(fs FileSystem, mode BindMode) {
	switch mode {
	case BindReplace:
		ns.mounts = []FileSystem{fs}
	case BindBefore:
		ns.mounts = append([]FileSystem{fs}, ns.mounts...)
	case BindAfter:
		ns.mounts = append(ns.mounts, fs)
	}
}

func (ns *NameSpace) Open(name string) (io.ReadSeekCloser, error) {
	var err error
	for _, m := range ns.mounts {
		r, err1 := m.Open(name)
		if err1 == nil {
			return r, nil
		}
		// a miss in an overlay must not hide a real error further down
		if err == nil || os.IsNotExist(err) {
			err = err1
		}
	}
	if err == nil {
		err = &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}
	return nil, err
}

func (ns *NameSpace) Stat(name string) (os.FileInfo, error) {
	var err error
	for _, m := range ns.mounts {
		fi, err1 := m.Stat(name)
		if err1 == nil {
			return fi, nil
		}
		if err == nil {
			err = err1
		}
	}
	if err == nil {
		err = &os.PathError{Op: "stat", Path: name, Err: os.ErrNotExist}
	}
	return nil, err
}

func (ns *NameSpace) String() string {
	s := make([]string, len(ns.mounts))
	for i, m := range ns.mounts {
		s[i] = m.String()
	}
	return "ns[" + strings.Join(s, " ") + "]"
}
