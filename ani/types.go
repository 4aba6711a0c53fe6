// SPDX-License-Identifier: GPL-2.0-or-later

package ani

const (
	Magic = 'R' | 'I'<<8 | 'F'<<16 | 'F'<<24

	headerSize = 36
	maxFrames  = 1 << 16
)

// AF_ flags of the anih header.
const (
	FlagIcon     = 1 << iota // frames are ICO/CUR data
	FlagSequence             // a seq chunk is present
)

// Header is the anih chunk payload.
type Header struct {
	Size        uint32
	Frames      uint32 // raw frames stored in the file
	Steps       uint32 // entries in the play order
	Width       uint32
	Height      uint32
	BitCount    uint32
	Planes      uint32
	DisplayRate uint32 // default jiffies per step
	Flags       uint32
}

// playOrder is the number of timeline steps when a seq chunk exists.
func (h *Header) playOrder() int {
	if h.Steps == 0 {
		return int(h.Frames)
	}
	return int(h.Steps)
}
