// SPDX-License-Identifier: GPL-2.0-or-later

package riff

import (
	"encoding/binary"
)

const headerSize = 8

type Chunk struct {
	ID    string
	Start int // payload offset
	Size  int // payload length as declared
}

// End is the offset right after the payload and its pad byte.
func (c Chunk) End() int {
	e := c.Start + c.Size
	if c.Size%2 != 0 {
		e++
	}
	return e
}

// Payload returns the chunk data clamped to the buffer.
func (c Chunk) Payload(buf []byte) []byte {
	s := min(c.Start, len(buf))
	e := min(c.Start+c.Size, len(buf))
	return buf[s:e]
}

type List struct {
	Chunk
	Type     string
	Children []Chunk
}

// FindChunk scans buf byte by byte for the tag id starting at start.
// It never fails, a missing tag is reported through ok.
func FindChunk(buf []byte, id string, start int) (c Chunk, ok bool) {
	if len(id) != 4 {
		return Chunk{}, false
	}
	if start < 0 {
		start = 0
	}
	for i := start; i < len(buf)-headerSize; i++ {
		if buf[i] != id[0] || buf[i+1] != id[1] || buf[i+2] != id[2] || buf[i+3] != id[3] {
			continue
		}
		return Chunk{
			ID:    id,
			Start: i + headerSize,
			Size:  int(binary.LittleEndian.Uint32(buf[i+4:])),
		}, true
	}
	return Chunk{}, false
}

// findIn collects every chunk tagged id inside [start, end).
func findIn(buf []byte, id string, start, end int) []Chunk {
	var r []Chunk
	end = min(end, len(buf))
	pos := start
	for pos < end-headerSize {
		c, ok := FindChunk(buf[:end], id, pos)
		if !ok {
			break
		}
		r = append(r, c)
		// c.Start is already past the header, so a size 0 chunk still advances
		next := c.End()
		if next > end {
			break
		}
		pos = next
	}
	return r
}

// FindListChunks locates every LIST chunk and the frame children it wraps.
func FindListChunks(buf []byte) []List {
	var lists []List
	pos := 0
	for {
		c, ok := FindChunk(buf, "LIST", pos)
		if !ok {
			break
		}
		c.ID = "LIST"
		l := List{Chunk: c}
		if c.Start+4 <= len(buf) {
			l.Type = string(buf[c.Start : c.Start+4])
		}
		end := c.Start + c.Size
		if end > len(buf) || end < c.Start {
			end = len(buf)
		}
		l.Children = findIn(buf, "icon", c.Start+4, end)
		lists = append(lists, l)

		next := end
		if next <= c.Start {
			next = c.Start
		}
		pos = next
	}
	return lists
}

// FindAll returns every chunk tagged id in the whole buffer.
func FindAll(buf []byte, id string) []Chunk {
	return findIn(buf, id, 0, len(buf))
}
