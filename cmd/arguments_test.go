// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import "testing"

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		in     string
		wantF  string
		wantAS string
		wantA  []Arg
	}{
		{
			in:     `build Busy.ani Work.ani`,
			wantF:  `build Busy.ani Work.ani`,
			wantAS: `Busy.ani Work.ani`,
			wantA:  []Arg{{"build"}, {"Busy.ani"}, {"Work.ani"}},
		},
		{
			in:     `export "my cursors/Busy.ani"`,
			wantF:  `export "my cursors/Busy.ani"`,
			wantAS: `my cursors/Busy.ani`,
			wantA:  []Arg{{"export"}, {"my cursors/Busy.ani"}},
		},
		{
			in:     ` inspect  a.ani // the busy one`,
			wantF:  `inspect  a.ani // the busy one`,
			wantAS: `a.ani // the busy one`,
			wantA:  []Arg{{"inspect"}, {"a.ani"}},
		},
		{
			in:    `// only a comment`,
			wantF: `// only a comment`,
		},
	} {
		arg, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if tc.wantF != arg.Full() {
			t.Errorf("Parse(%q).Full()=%q, want %q", tc.in, arg.Full(), tc.wantF)
		}
		if tc.wantAS != arg.ArgumentString() {
			t.Errorf("Parse(%q).ArgumentString()=%q, want %q", tc.in, arg.ArgumentString(), tc.wantAS)
		}
		as := arg.Args()
		if len(tc.wantA) != len(as) {
			t.Fatalf("Parse(%q).Args() has len(%d), want %d", tc.in, len(as), len(tc.wantA))
		}
		for i := range tc.wantA {
			if tc.wantA[i] != as[i] {
				t.Errorf("Arg[%d]=%q, want %q", i, as[i], tc.wantA[i])
			}
		}
	}
	if _, err := Parse(`export "open`); err == nil {
		t.Errorf("unterminated string accepted")
	}
}

func TestArg(t *testing.T) {
	a := FromSlice([]string{"extract", "32", "1.5", "on"})
	if a.Argv(1).Int() != 32 || a.Argv(2).Float64() != 1.5 || !a.Argv(3).Bool() {
		t.Errorf("conversions failed on %v", a.Args())
	}
	if a.Argv(9).String() != "" || a.Argv(0).Int() != 0 {
		t.Errorf("out of range Argv")
	}
	if r := a.Rest(); len(r) != 3 || r[0] != "32" {
		t.Errorf("Rest = %v", r)
	}
}
