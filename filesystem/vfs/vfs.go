// SPDX-License-Identifier: GPL-2.0-or-later

// Package vfs layers directories into one lookup path.
package vfs

import (
	"io"
	"os"
	"path"
	"path/filepath"
)

type FileSystem interface {
	Open(name string) (io.ReadSeekCloser, error)
	Stat(name string) (os.FileInfo, error)
	String() string
}

// OS is a directory of the host file system. Names are resolved below it
// and can not escape it.
type OS string

func (root OS) resolve(name string) string {
	return filepath.Join(string(root), filepath.FromSlash(path.Clean("/"+name)))
}

func (root OS) Open(name string) (io.ReadSeekCloser, error) {
	f, err := os.Open(root.resolve(name))
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.IsDir() {
		f.Close()
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}
	return f, nil
}

func (root OS) Stat(name string) (os.FileInfo, error) {
	return os.Stat(root.resolve(name))
}

func (root OS) String() string {
	return "os(" + string(root) + ")"
}
