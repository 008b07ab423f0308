// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"sort"
	"testing"
)

type dummy struct{ name string }

func (d *dummy) Name() string          { return d.name }
func (d *dummy) Init(b Booker) error   { return nil }
func (d *dummy) Analyze(e Event) error { return nil }
func (d *dummy) Finalize() error       { return nil }

func TestCounter(t *testing.T) {
	c := NewCounter("/ANA/_sumw")
	if got, want := c.Path(), "/ANA/_sumw"; got != want {
		t.Fatalf("invalid path: got=%q, want=%q", got, want)
	}

	for _, w := range []float64{1, 2, 0.5} {
		c.Fill(w)
	}
	if got, want := c.Entries(), int64(3); got != want {
		t.Fatalf("invalid entries: got=%d, want=%d", got, want)
	}
	if got, want := c.SumW(), 3.5; got != want {
		t.Fatalf("invalid sumw: got=%v, want=%v", got, want)
	}
	if got, want := c.SumW2(), 5.25; got != want {
		t.Fatalf("invalid sumw2: got=%v, want=%v", got, want)
	}

	c.Reset()
	if c.Entries() != 0 || c.SumW() != 0 || c.SumW2() != 0 {
		t.Fatalf("counter not reset: %+v", c)
	}
}

func TestRegistry(t *testing.T) {
	const (
		name  = "TEST_2026_I000001"
		alias = "TEST_2026_S000001"
	)
	Register(name, func() Analysis { return &dummy{name: name} }, alias)

	for _, k := range []string{name, alias} {
		ana, err := New(k)
		if err != nil {
			t.Fatalf("could not create analysis %q: %+v", k, err)
		}
		if got, want := ana.Name(), name; got != want {
			t.Fatalf("invalid name: got=%q, want=%q", got, want)
		}
		v, ok := Canonical(k)
		if !ok || v != name {
			t.Fatalf("invalid canonical name for %q: got=%q (ok=%v)", k, v, ok)
		}
	}

	a1, _ := New(name)
	a2, _ := New(name)
	if a1 == a2 {
		t.Fatalf("analyses should be distinct instances")
	}

	if _, err := New("NOT_THERE"); err == nil {
		t.Fatalf("expected an error")
	}
	if _, ok := Canonical("NOT_THERE"); ok {
		t.Fatalf("unknown analysis should not have a canonical name")
	}

	found := false
	for _, v := range Names() {
		if v == alias {
			t.Fatalf("aliases should not be listed: %q", Names())
		}
		if v == name {
			found = true
		}
	}
	if !found {
		t.Fatalf("analysis %q not listed in %q", name, Names())
	}

	for _, tc := range []struct {
		name    string
		f       Factory
		aliases []string
	}{
		{"dup-name", func() Analysis { return nil }, nil},
		{"dup-alias", func() Analysis { return nil }, []string{alias}},
		{"nil", nil, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if e := recover(); e == nil {
					t.Fatalf("expected a panic")
				}
			}()
			k := name
			if tc.name != "dup-name" {
				k = "TEST_2026_" + tc.name
			}
			Register(k, tc.f, tc.aliases...)
		})
	}

	if got := Names(); !sort.StringsAreSorted(got) {
		t.Fatalf("names not sorted: %q", got)
	}
}
