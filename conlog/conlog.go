// SPDX-License-Identifier: GPL-2.0-or-later

package conlog

import (
	"log"
	"sync"
)

var (
	mu      sync.RWMutex
	p       = log.Printf
	verbose bool
)

// SetPrintf replaces the sink used by Printf and Debugf. nil restores log.Printf.
func SetPrintf(f func(string, ...interface{})) {
	mu.Lock()
	defer mu.Unlock()
	if f == nil {
		f = log.Printf
	}
	p = f
}

func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

func Printf(format string, v ...interface{}) {
	mu.RLock()
	f := p
	mu.RUnlock()
	f(format, v...)
}

// Debugf only prints when verbose output is enabled.
func Debugf(format string, v ...interface{}) {
	mu.RLock()
	f, on := p, verbose
	mu.RUnlock()
	if on {
		f(format, v...)
	}
}
