// SPDX-License-Identifier: GPL-2.0-or-later

package cbuf

import (
	"context"
	"errors"
	"testing"

	"anicursor/cmd"
)

func recorder(got *[]string) Efunc {
	return func(_ context.Context, a cmd.Arguments) (bool, error) {
		*got = append(*got, a.Full())
		return true, nil
	}
}

func TestExecuteSplits(t *testing.T) {
	var got []string
	c := New(recorder(&got))
	c.AddText("build a.ani; build b.ani\n")
	c.AddText(`theme "x;y"` + "\n\n// comment\n")
	c.InsertText("cmdlist")
	if err := c.Execute(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := []string{"cmdlist", "build a.ani", "build b.ani", `theme "x;y"`}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %q, want %q", i, got[i], want[i])
		}
	}
	if c.Len() != 0 {
		t.Errorf("%d bytes left", c.Len())
	}
}

func TestExecutorChain(t *testing.T) {
	var first, second int
	c := New(
		func(_ context.Context, a cmd.Arguments) (bool, error) {
			first++
			return a.Argv(0).String() == "one", nil
		},
		func(_ context.Context, a cmd.Arguments) (bool, error) {
			second++
			return a.Argv(0).String() == "two", nil
		},
	)
	c.AddText("one\ntwo\n")
	if err := c.Execute(context.Background()); err != nil {
		t.Fatal(err)
	}
	if first != 2 || second != 1 {
		t.Errorf("first=%d second=%d", first, second)
	}
	c.AddText("three\none\n")
	if err := c.Execute(context.Background()); err == nil {
		t.Error("unknown command did not fail")
	}
	// the rest of the buffer is kept
	if c.Len() == 0 {
		t.Error("buffer drained after a failure")
	}
}

func TestExecuteStops(t *testing.T) {
	boom := errors.New("boom")
	c := New(func(context.Context, cmd.Arguments) (bool, error) { return true, boom })
	c.AddText("x\ny\n")
	if err := c.Execute(context.Background()); err != boom {
		t.Errorf("got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Execute(ctx); err != context.Canceled {
		t.Errorf("got %v", err)
	}
}
