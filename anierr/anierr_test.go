// SPDX-License-Identifier: GPL-2.0-or-later

package anierr

import (
	"fmt"
	"io"
	"testing"

	"github.com/pkg/errors"
)

func TestKindOfWrapped(t *testing.T) {
	err := New(NoFramesFound, "file %s", "a.ani")
	wrapped := fmt.Errorf("load: %w", err)
	if k := KindOf(wrapped); k != NoFramesFound {
		t.Errorf("KindOf = %v, want %v", k, NoFramesFound)
	}
	if !Is(wrapped, NoFramesFound) {
		t.Errorf("Is(NoFramesFound) = false")
	}
	if Is(wrapped, MalformedHeader) {
		t.Errorf("Is(MalformedHeader) = true")
	}
	if !errors.Is(wrapped, &Error{Kind: NoFramesFound}) {
		t.Errorf("errors.Is did not match on kind")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(NetworkError, io.ErrUnexpectedEOF, "fetch %s", "x")
	if errors.Cause(errors.Unwrap(err)) != io.ErrUnexpectedEOF {
		t.Errorf("cause lost: %v", err)
	}
	if Wrap(NetworkError, nil, "nothing") != nil {
		t.Errorf("Wrap(nil) should be nil")
	}
}

func TestFatal(t *testing.T) {
	tests := []struct {
		k     Kind
		fatal bool
	}{
		{MalformedHeader, true},
		{NoFramesFound, true},
		{NetworkError, true},
		{CanvasUnavailable, true},
		{ImageDecodeError, false},
	}
	for _, tc := range tests {
		if tc.k.Fatal() != tc.fatal {
			t.Errorf("%v.Fatal() = %v, want %v", tc.k, !tc.fatal, tc.fatal)
		}
	}
	if KindOf(io.EOF) != Unknown {
		t.Errorf("plain error should be Unknown")
	}
}
