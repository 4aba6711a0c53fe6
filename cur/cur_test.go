// SPDX-License-Identifier: GPL-2.0-or-later

package cur

import (
	"bytes"
	"testing"

	"anicursor/anierr"
	"anicursor/anitest"
	"anicursor/model"
)

func TestDecodeRegistered(t *testing.T) {
	for _, data := range [][]byte{anitest.ICO(24, 24), anitest.CUR(24, 24, 3, 4)} {
		a, err := model.Decode("x", data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if len(a.Timeline) != 1 || a.Timeline[0].DurationMS != DefaultDurationMS {
			t.Errorf("timeline = %v", a.Timeline)
		}
		if a.Width != 24 || a.Height != 24 {
			t.Errorf("got %dx%d, want 24x24", a.Width, a.Height)
		}
	}
}

func TestHotspot(t *testing.T) {
	x, y, ok := Hotspot(anitest.CUR(32, 32, 5, 9))
	if !ok || x != 5 || y != 9 {
		t.Errorf("got %d,%d,%v want 5,9,true", x, y, ok)
	}
	if _, _, ok := Hotspot(anitest.ICO(32, 32)); ok {
		t.Errorf("icon reported a hotspot")
	}
}

func TestNormalize(t *testing.T) {
	c := anitest.CUR(16, 16, 2, 2)
	n := Normalize(c)
	d, e, err := ReadDir(n)
	if err != nil {
		t.Fatal(err)
	}
	if d.Type != TypeIcon || e.Planes != 1 || e.BitCount != 0 {
		t.Errorf("got type %d planes %d bitcount %d", d.Type, e.Planes, e.BitCount)
	}
	if c[2] != TypeCursor {
		t.Errorf("input was modified")
	}
	i := anitest.ICO(16, 16)
	if !bytes.Equal(Normalize(i), i) {
		t.Errorf("icon changed")
	}
}

func TestImage(t *testing.T) {
	img, err := Image(anitest.ICO(8, 8))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(img, []byte("\x89PNG")) {
		t.Errorf("payload is not the PNG")
	}
	bad := anitest.ICO(8, 8)
	bad[17] = 0x10 // size
	if _, err := Image(bad); !anierr.Is(err, anierr.ImageDecodeError) {
		t.Errorf("got %v, want ImageDecodeError", err)
	}
	if _, err := model.Decode("junk", []byte{0, 0, 2, 0, 0}); !anierr.Is(err, anierr.MalformedHeader) {
		t.Errorf("got %v, want MalformedHeader", err)
	}
}
