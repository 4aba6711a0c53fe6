// SPDX-License-Identifier: GPL-2.0-or-later

package ani

import (
	"bytes"
	"encoding/binary"
	"testing"

	"anicursor/anierr"
	"anicursor/anitest"
	"anicursor/model"

	"github.com/pkg/errors"
)

func TestDecodeFlatIcons(t *testing.T) {
	buf := anitest.ANI{Frames: anitest.Frames(2, 16, 16), DisplayRate: 6, Flat: true}.Bytes()
	a, err := model.Decode("flat.ani", buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []model.FrameInfo{{FrameIndex: 0, DurationMS: 100}, {FrameIndex: 1, DurationMS: 100}}
	if len(a.Timeline) != len(want) {
		t.Fatalf("timeline = %v, want %v", a.Timeline, want)
	}
	for i := range want {
		if a.Timeline[i] != want[i] {
			t.Errorf("step %d = %v, want %v", i, a.Timeline[i], want[i])
		}
	}
	if a.TotalMS() != 200 {
		t.Errorf("TotalMS = %v, want 200", a.TotalMS())
	}
	if len(a.Frames) != 2 {
		t.Fatalf("got %d frames", len(a.Frames))
	}
	for i, f := range a.Frames {
		if f.Index != i || !bytes.Equal(f.Data, anitest.ICO(16, 16)) {
			t.Errorf("frame %d mismatch", i)
		}
	}
}

func TestDecodeIdentityOrderWithoutSeq(t *testing.T) {
	buf := anitest.ANI{Frames: anitest.Frames(5, 16, 16), DisplayRate: 3}.Bytes()
	a, err := Decode("list.ani", buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(a.Timeline) != 5 {
		t.Fatalf("got %d steps", len(a.Timeline))
	}
	for i, f := range a.Timeline {
		if f.FrameIndex != i {
			t.Errorf("step %d has frame %d", i, f.FrameIndex)
		}
		if f.DurationMS != 50 {
			t.Errorf("step %d lasts %v", i, f.DurationMS)
		}
	}
}

func TestTimelineCascade(t *testing.T) {
	h := &Header{Frames: 2, Steps: 3, DisplayRate: 6}
	tests := []struct {
		name      string
		seq, rate []uint32
		want      []model.FrameInfo
	}{
		{"seq+rate", []uint32{1, 0, 1}, []uint32{3, 6, 12}, []model.FrameInfo{{FrameIndex: 1, DurationMS: 50}, {FrameIndex: 0, DurationMS: 100}, {FrameIndex: 1, DurationMS: 200}}},
		{"seq", []uint32{1, 0, 1}, nil, []model.FrameInfo{{FrameIndex: 1, DurationMS: 100}, {FrameIndex: 0, DurationMS: 100}, {FrameIndex: 1, DurationMS: 100}}},
		{"none", nil, nil, []model.FrameInfo{{FrameIndex: 0, DurationMS: 100}, {FrameIndex: 1, DurationMS: 100}}},
		// rate without seq is not applied
		{"rate", nil, []uint32{60, 60}, []model.FrameInfo{{FrameIndex: 0, DurationMS: 100}, {FrameIndex: 1, DurationMS: 100}}},
		// short rate falls back to the header rate
		{"short rate", []uint32{0, 1, 0}, []uint32{12}, []model.FrameInfo{{FrameIndex: 0, DurationMS: 200}, {FrameIndex: 1, DurationMS: 100}, {FrameIndex: 0, DurationMS: 100}}},
	}
	for _, tc := range tests {
		got := Timeline(h, tc.seq, tc.rate)
		if len(got) != len(tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s: step %d = %v, want %v", tc.name, i, got[i], tc.want[i])
			}
		}
	}
}

func TestDecodeSeqAndRate(t *testing.T) {
	buf := anitest.ANI{
		Frames:      anitest.Frames(2, 16, 16),
		Steps:       4,
		DisplayRate: 6,
		Seq:         []uint32{0, 1, 1, 0},
		Rate:        []uint32{6, 6, 12, 6},
	}.Bytes()
	a, err := Decode("seq.ani", buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(a.Frames) != 2 {
		t.Errorf("got %d frames, want 2", len(a.Frames))
	}
	want := []model.FrameInfo{{FrameIndex: 0, DurationMS: 100}, {FrameIndex: 1, DurationMS: 100}, {FrameIndex: 1, DurationMS: 200}, {FrameIndex: 0, DurationMS: 100}}
	for i := range want {
		if a.Timeline[i] != want[i] {
			t.Errorf("step %d = %v, want %v", i, a.Timeline[i], want[i])
		}
	}
}

func TestDecodeMissingHeader(t *testing.T) {
	buf := anitest.ANI{Frames: anitest.Frames(2, 16, 16), NoHeader: true}.Bytes()
	_, err := Decode("nohdr.ani", buf)
	if !anierr.Is(err, anierr.MalformedHeader) {
		t.Errorf("got %v, want MalformedHeader", err)
	}
}

func TestDecodeNoFrames(t *testing.T) {
	buf := anitest.ANI{DisplayRate: 6, Steps: 2}.Bytes()
	// the builder declares zero frames when none are given, patch a count in
	i := bytes.Index(buf, []byte("anih"))
	buf[i+8+4] = 2
	_, err := Decode("empty.ani", buf)
	if !anierr.Is(err, anierr.NoFramesFound) {
		t.Errorf("got %v, want NoFramesFound", err)
	}
}

func TestDecodeShortHeader(t *testing.T) {
	buf := []byte("RIFF\x14\x00\x00\x00ACONanih\x08\x00\x00\x00\x24\x00\x00\x00\x01\x00\x00\x00")
	_, err := Decode("short.ani", buf)
	if !anierr.Is(err, anierr.MalformedHeader) {
		t.Errorf("got %v, want MalformedHeader", err)
	}
}

func TestDecodeFallsBackToScanner(t *testing.T) {
	good := anitest.ANI{Frames: anitest.Frames(3, 16, 16), DisplayRate: 6}.Bytes()
	// wrong form type fails strict parsing but the chunks are still usable
	buf := append([]byte(nil), good...)
	copy(buf[8:12], "JUNK")
	a, err := Decode("junk.ani", buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(a.Frames) != 3 || len(a.Timeline) != 3 {
		t.Errorf("got %d frames %d steps, want 3 3", len(a.Frames), len(a.Timeline))
	}
}

func TestDecodeCapsAtPlayOrder(t *testing.T) {
	buf := anitest.ANI{Frames: anitest.Frames(4, 16, 16), Steps: 2, DisplayRate: 6, Seq: []uint32{0, 3}}.Bytes()
	a, err := Decode("cap.ani", buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(a.Frames) != 2 {
		t.Errorf("got %d frames, want 2", len(a.Frames))
	}
	// frame 3 was not extracted, so its step is dropped
	if len(a.Timeline) != 1 || a.Timeline[0].FrameIndex != 0 {
		t.Errorf("timeline = %v", a.Timeline)
	}
}

func TestExtract(t *testing.T) {
	if _, err := Extract(nil, 3); err != ErrNoFrames {
		t.Errorf("got %v, want ErrNoFrames", err)
	}
	f, err := Extract([][]byte{{1}, {2}, {3}}, 2)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(f) != 2 || f[1].Index != 1 || f[1].Data[0] != 2 {
		t.Errorf("got %v", f)
	}
}

func TestParseHeader(t *testing.T) {
	anih := func(frames, steps uint32) []byte {
		b := new(bytes.Buffer)
		for _, v := range []uint32{headerSize, frames, steps, 32, 32, 0, 1, 6, FlagIcon} {
			binary.Write(b, binary.LittleEndian, v)
		}
		return b.Bytes()
	}
	h, err := ParseHeader(anih(3, 5))
	if err != nil {
		t.Fatal(err)
	}
	if h.Frames != 3 || h.Steps != 5 || h.DisplayRate != 6 || h.Flags != FlagIcon {
		t.Errorf("header = %+v", h)
	}
	for _, tc := range []struct {
		name string
		data []byte
	}{
		{"short", anih(3, 5)[:20]},
		{"zero frames", anih(0, 5)},
		{"too many steps", anih(3, maxFrames+1)},
	} {
		_, err := ParseHeader(tc.data)
		if err == nil {
			t.Errorf("%s: no error", tc.name)
			continue
		}
		// errors carry the call stack like the rest of the decoder
		if _, ok := err.(interface{ StackTrace() errors.StackTrace }); !ok {
			t.Errorf("%s: %T has no stack trace", tc.name, err)
		}
	}
}
