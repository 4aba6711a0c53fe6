// SPDX-License-Identifier: GPL-2.0-or-later

package riff

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Reader reads little-endian values from an in-memory buffer.
type Reader struct {
	r *bytes.Reader
}

func NewReader(data []byte) *Reader {
	return &Reader{bytes.NewReader(data)}
}

func (q *Reader) ReadUint32() (uint32, error) {
	var r uint32
	err := binary.Read(q.r, binary.LittleEndian, &r)
	return r, err
}

func (q *Reader) ReadFourCC() (string, error) {
	var b [4]byte
	if _, err := io.ReadFull(q.r, b[:]); err != nil {
		return "", err
	}
	return string(b[:]), nil
}

// Read decodes a fixed-size struct.
func (q *Reader) Read(data interface{}) error {
	return binary.Read(q.r, binary.LittleEndian, data)
}

func (q *Reader) Skip(n int64) error {
	_, err := q.r.Seek(n, io.SeekCurrent)
	return err
}

func (q *Reader) Pos() int {
	return int(q.r.Size()) - q.r.Len()
}

func (q *Reader) Len() int {
	return q.r.Len()
}

// Uint32s reads up to n values from data, stopping early when data runs out.
func Uint32s(data []byte, n int) []uint32 {
	if m := len(data) / 4; m < n {
		n = m
	}
	r := make([]uint32, n)
	for i := range r {
		r[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return r
}
