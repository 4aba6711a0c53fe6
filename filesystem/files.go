// SPDX-License-Identifier: GPL-2.0-or-later

// Package filesystem resolves cursor files relative to the base directory
// and any theme directories layered over it.
package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"anicursor/filesystem/vfs"
)

var (
	mutex   sync.RWMutex
	baseDir = "."
	ns      = newNameSpace(".")
)

func newNameSpace(root string) *vfs.NameSpace {
	n := &vfs.NameSpace{}
	n.Bind(vfs.OS(root), vfs.BindReplace)
	return n
}

func BaseDir() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return baseDir
}

// UseBaseDir resets the lookup path to dir alone.
func UseBaseDir(dir string) {
	mutex.Lock()
	defer mutex.Unlock()
	baseDir = dir
	ns = newNameSpace(dir)
}

// AddDir layers dir over the current lookup path. Relative dirs are taken
// relative to the base directory.
func AddDir(dir string) {
	mutex.Lock()
	defer mutex.Unlock()
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(baseDir, dir)
	}
	ns.Bind(vfs.OS(dir), vfs.BindBefore)
}

func Stat(name string) (os.FileInfo, error) {
	mutex.RLock()
	defer mutex.RUnlock()
	return ns.Stat(name)
}

func Open(name string) (io.ReadSeekCloser, error) {
	mutex.RLock()
	defer mutex.RUnlock()
	return ns.Open(name)
}

func ReadFile(name string) ([]byte, error) {
	f, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func isSep(c uint8) bool {
	return c == '/' || c == '\\'
}

// Ext returns the extension of the last path element, including the dot.
func Ext(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}

func StripExt(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}
