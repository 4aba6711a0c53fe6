// SPDX-License-Identifier: GPL-2.0-or-later

package riff

import (
	"github.com/pkg/errors"
)

const (
	FormACON = "ACON"
)

type header struct {
	ID   [4]byte
	Size uint32
	Form [4]byte
}

// Node is a chunk of a strictly parsed tree. Only LIST nodes have children.
type Node struct {
	Chunk
	Type     string
	Children []*Node
}

type Tree struct {
	Form   string
	Size   int
	Chunks []*Node
}

var (
	ErrNotRIFF   = errors.New("not a RIFF file")
	ErrWrongForm = errors.New("RIFF form type is not ACON")
	ErrOverrun   = errors.New("chunk overruns its parent")
)

// Parse validates the RIFF/ACON signature and walks the chunk tree.
// Unlike the scanner functions it rejects anything that does not nest
// cleanly.
func Parse(buf []byte) (*Tree, error) {
	r := NewReader(buf)
	var h header
	if err := r.Read(&h); err != nil {
		return nil, errors.Wrap(ErrNotRIFF, err.Error())
	}
	if string(h.ID[:]) != "RIFF" {
		return nil, ErrNotRIFF
	}
	if string(h.Form[:]) != FormACON {
		return nil, errors.Wrapf(ErrWrongForm, "got %q", string(h.Form[:]))
	}
	end := len(buf)
	// the declared size counts the form type but not the 8 byte header
	if d := int(h.Size) + headerSize; d < end {
		end = d
	}
	chunks, err := parseChunks(buf, 12, end)
	if err != nil {
		return nil, err
	}
	return &Tree{
		Form:   FormACON,
		Size:   int(h.Size),
		Chunks: chunks,
	}, nil
}

func parseChunks(buf []byte, start, end int) ([]*Node, error) {
	var nodes []*Node
	r := NewReader(buf[:end])
	if err := r.Skip(int64(start)); err != nil {
		return nil, err
	}
	for r.Len() >= headerSize {
		pos := r.Pos()
		id, err := r.ReadFourCC()
		if err != nil {
			return nil, err
		}
		size, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		n := &Node{Chunk: Chunk{ID: id, Start: pos + headerSize, Size: int(size)}}
		if n.Start+n.Size > end {
			return nil, errors.Wrapf(ErrOverrun, "%q at %d (size %d, limit %d)", id, pos, size, end)
		}
		if id == "LIST" && n.Size >= 4 {
			n.Type = string(buf[n.Start : n.Start+4])
			n.Children, err = parseChunks(buf, n.Start+4, n.Start+n.Size)
			if err != nil {
				return nil, err
			}
		}
		nodes = append(nodes, n)
		skip := n.End() - r.Pos()
		if n.End() > end {
			// odd sized chunk at the very end without its pad byte
			skip = end - r.Pos()
		}
		if err := r.Skip(int64(skip)); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// Find returns the first chunk with the given id, searching depth first.
func (t *Tree) Find(id string) (*Node, bool) {
	return find(t.Chunks, id)
}

func find(nodes []*Node, id string) (*Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
		if f, ok := find(n.Children, id); ok {
			return f, true
		}
	}
	return nil, false
}

// FindAll returns every chunk with the given id in tree order.
func (t *Tree) FindAll(id string) []*Node {
	return findAll(nil, t.Chunks, id)
}

func findAll(r []*Node, nodes []*Node, id string) []*Node {
	for _, n := range nodes {
		if n.ID == id {
			r = append(r, n)
		}
		r = findAll(r, n.Children, id)
	}
	return r
}

// Lists returns the LIST nodes of the given list type.
func (t *Tree) Lists(typ string) []*Node {
	var r []*Node
	for _, n := range t.FindAll("LIST") {
		if n.Type == typ {
			r = append(r, n)
		}
	}
	return r
}
