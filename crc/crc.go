// SPDX-License-Identifier: GPL-2.0-or-later

// Package crc implements CRC-16/CCITT-FALSE, used to derive stable names
// for content that carries no identifier of its own.
package crc

import "fmt"

const (
	poly    = 0x1021
	initial = 0xffff
)

var table = func() (t [256]uint16) {
	for i := range t {
		c := uint16(i) << 8
		for range 8 {
			if c&0x8000 != 0 {
				c = c<<1 ^ poly
			} else {
				c <<= 1
			}
		}
		t[i] = c
	}
	return t
}()

// Digest is a running checksum. The zero value is not ready, use New.
type Digest struct {
	crc uint16
}

func New() *Digest {
	return &Digest{crc: initial}
}

func (d *Digest) Write(p []byte) (int, error) {
	c := d.crc
	for _, v := range p {
		c = table[byte(c>>8)^v] ^ c<<8
	}
	d.crc = c
	return len(p), nil
}

func (d *Digest) Sum16() uint16 {
	return d.crc
}

// Checksum of p.
func Checksum(p []byte) uint16 {
	d := New()
	d.Write(p)
	return d.Sum16()
}

// Name formats the checksum of p as a four digit hex string.
func Name(p []byte) string {
	return fmt.Sprintf("%04x", Checksum(p))
}
