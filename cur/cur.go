// SPDX-License-Identifier: GPL-2.0-or-later

// Package cur handles static Windows cursor and icon files.
package cur

import (
	"encoding/binary"

	"anicursor/anierr"
	"anicursor/model"
)

const (
	TypeIcon   = 1
	TypeCursor = 2

	// DefaultDurationMS is the length of the single step of a static cursor.
	DefaultDurationMS = 100

	dirSize   = 6
	entrySize = 16
)

var (
	MagicIcon   = magic(TypeIcon)
	MagicCursor = magic(TypeCursor)
)

func magic(typ uint16) uint32 {
	return model.Magic([4]byte{0, 0, byte(typ), byte(typ >> 8)})
}

func init() {
	model.Register(MagicIcon, Decode)
	model.Register(MagicCursor, Decode)
}

// Dir is the ICONDIR header.
type Dir struct {
	Reserved uint16
	Type     uint16
	Count    uint16
}

// Entry is one ICONDIRENTRY. For cursors Planes and BitCount hold the hotspot.
type Entry struct {
	Width    uint8
	Height   uint8
	Colors   uint8
	Reserved uint8
	Planes   uint16
	BitCount uint16
	Size     uint32
	Offset   uint32
}

// ReadDir returns the directory header and its first entry.
func ReadDir(data []byte) (Dir, Entry, error) {
	var d Dir
	var e Entry
	if len(data) < dirSize+entrySize {
		return d, e, anierr.New(anierr.ImageDecodeError, "icon directory truncated (%d bytes)", len(data))
	}
	d.Reserved = binary.LittleEndian.Uint16(data[0:])
	d.Type = binary.LittleEndian.Uint16(data[2:])
	d.Count = binary.LittleEndian.Uint16(data[4:])
	if d.Reserved != 0 || (d.Type != TypeIcon && d.Type != TypeCursor) || d.Count == 0 {
		return d, e, anierr.New(anierr.ImageDecodeError, "not an icon directory (type %d, %d images)", d.Type, d.Count)
	}
	b := data[dirSize:]
	e = Entry{
		Width:    b[0],
		Height:   b[1],
		Colors:   b[2],
		Reserved: b[3],
		Planes:   binary.LittleEndian.Uint16(b[4:]),
		BitCount: binary.LittleEndian.Uint16(b[6:]),
		Size:     binary.LittleEndian.Uint32(b[8:]),
		Offset:   binary.LittleEndian.Uint32(b[12:]),
	}
	return d, e, nil
}

// Dimensions of an entry, a stored 0 means 256.
func (e Entry) Dimensions() (int, int) {
	w, h := int(e.Width), int(e.Height)
	if w == 0 {
		w = 256
	}
	if h == 0 {
		h = 256
	}
	return w, h
}

// Image returns the payload of the first entry.
func Image(data []byte) ([]byte, error) {
	_, e, err := ReadDir(data)
	if err != nil {
		return nil, err
	}
	end := uint64(e.Offset) + uint64(e.Size)
	if e.Offset < dirSize+entrySize || end > uint64(len(data)) {
		return nil, anierr.New(anierr.ImageDecodeError, "image data at %d+%d outside of %d bytes", e.Offset, e.Size, len(data))
	}
	return data[e.Offset:end], nil
}

// Hotspot reads the hotspot of the first cursor entry.
func Hotspot(data []byte) (x, y int, ok bool) {
	d, e, err := ReadDir(data)
	if err != nil || d.Type != TypeCursor {
		return 0, 0, false
	}
	return int(e.Planes), int(e.BitCount), true
}

// Normalize returns data with a cursor directory rewritten to an icon one.
// The hotspot words are reset to planes 1, bitcount 0. Icons are returned
// as they are.
func Normalize(data []byte) []byte {
	d, _, err := ReadDir(data)
	if err != nil || d.Type != TypeCursor {
		return data
	}
	r := append([]byte(nil), data...)
	binary.LittleEndian.PutUint16(r[2:], TypeIcon)
	for i := 0; i < int(d.Count); i++ {
		o := dirSize + i*entrySize
		if o+entrySize > len(r) {
			break
		}
		binary.LittleEndian.PutUint16(r[o+4:], 1)
		binary.LittleEndian.PutUint16(r[o+6:], 0)
	}
	return r
}

// Decode wraps a static cursor or icon as a one step animation.
func Decode(name string, data []byte) (*model.Animation, error) {
	_, e, err := ReadDir(data)
	if err != nil {
		return nil, anierr.Wrap(anierr.MalformedHeader, err, "%s", name)
	}
	w, h := e.Dimensions()
	return &model.Animation{
		Name:     name,
		Width:    w,
		Height:   h,
		Timeline: []model.FrameInfo{{FrameIndex: 0, DurationMS: DefaultDurationMS}},
		Frames:   []model.Frame{{Index: 0, Data: data}},
	}, nil
}
