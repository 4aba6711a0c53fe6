// SPDX-License-Identifier: GPL-2.0-or-later

package model

import (
	"encoding/binary"
	"sync"

	"anicursor/anierr"
)

type DecodeFunc func(name string, data []byte) (*Animation, error)

var (
	mu       sync.RWMutex
	decoders = make(map[uint32]DecodeFunc)
)

// Register binds a decoder to the little-endian uint32 at the start of a file.
func Register(magic uint32, f DecodeFunc) {
	mu.Lock()
	defer mu.Unlock()
	decoders[magic] = f
}

func Magic(b [4]byte) uint32 {
	return binary.LittleEndian.Uint32(b[:])
}

// Decode dispatches on the first four bytes of data.
func Decode(name string, data []byte) (*Animation, error) {
	if len(data) < 4 {
		return nil, anierr.New(anierr.MalformedHeader, "%s is too short (%d bytes)", name, len(data))
	}
	magic := binary.LittleEndian.Uint32(data)
	mu.RLock()
	f, ok := decoders[magic]
	mu.RUnlock()
	if !ok {
		return nil, anierr.New(anierr.MalformedHeader, "file %s has an unknown file format", name)
	}
	return f(name, data)
}
