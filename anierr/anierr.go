// SPDX-License-Identifier: GPL-2.0-or-later

// Package anierr holds the error kinds shared by the cursor pipeline.
// Callers tell "no animation" apart from "animation applied but degraded"
// by the Kind carried on the error.
package anierr

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind int

const (
	Unknown Kind = iota
	MalformedHeader
	NoFramesFound
	NetworkError
	ImageDecodeError
	CanvasUnavailable
	InvalidInput
)

var kindNames = [...]string{
	Unknown:           "unknown",
	MalformedHeader:   "malformed header",
	NoFramesFound:     "no frames found",
	NetworkError:      "network error",
	ImageDecodeError:  "image decode error",
	CanvasUnavailable: "canvas unavailable",
	InvalidInput:      "invalid input",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Fatal reports whether an error of this kind aborts a whole build.
// Only per-frame decode failures are recoverable.
func (k Kind) Fatal() bool {
	return k != ImageDecodeError
}

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, anierr.New(k, ""))
// style comparisons work through wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(k Kind, format string, args ...interface{}) error {
	return &Error{Kind: k, Err: errors.Errorf(format, args...)}
}

func Wrap(k Kind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: k, Err: errors.Wrapf(err, format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
