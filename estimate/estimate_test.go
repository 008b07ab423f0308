// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"go-hep.org/x/hep/hbook"
)

func newH1D(name string, edges []float64, fills ...[2]float64) *hbook.H1D {
	h := hbook.NewH1DFromEdges(edges)
	h.Annotation()["name"] = name
	for _, f := range fills {
		h.Fill(f[0], f[1])
	}
	return h
}

func TestNew(t *testing.T) {
	for _, tc := range []struct {
		name  string
		edges []float64
		err   bool
	}{
		{"ok", []float64{0, 1, 2}, false},
		{"single-bin", []float64{0, 1}, false},
		{"no-bins", []float64{0}, true},
		{"nil", nil, true},
		{"unsorted", []float64{0, 2, 1}, true},
		{"duplicate", []float64{0, 1, 1, 2}, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			est, err := New("/ANA/d01-x01-y01", tc.edges)
			switch {
			case err != nil && tc.err:
				return
			case err != nil:
				t.Fatalf("could not create estimate: %+v", err)
			case tc.err:
				t.Fatalf("expected an error")
			}
			if got, want := est.Len(), len(tc.edges)-1; got != want {
				t.Fatalf("invalid number of bins: got=%d, want=%d", got, want)
			}
			if got, want := est.Edges(), tc.edges; !reflect.DeepEqual(got, want) {
				t.Fatalf("invalid edges: got=%v, want=%v", got, want)
			}
			for i := 0; i < est.Len(); i++ {
				bin := est.Bin(i)
				if bin.XMin != tc.edges[i] || bin.XMax != tc.edges[i+1] {
					t.Fatalf("invalid bin %d: got=[%v, %v)", i, bin.XMin, bin.XMax)
				}
				if srcs := bin.Sources(); len(srcs) != 0 {
					t.Fatalf("invalid sources for bin %d: %v", i, srcs)
				}
			}
		})
	}
}

func TestBin(t *testing.T) {
	var bin Bin
	if _, ok := bin.Err("stat"); ok {
		t.Fatalf("empty bin should have no error source")
	}

	bin.SetVal(2)
	bin.SetErr("stat:b", Err{Down: 3, Up: 4})
	bin.SetErr("stat:a", Err{Down: 4, Up: 3})

	if got, want := bin.Val, 2.0; got != want {
		t.Fatalf("invalid value: got=%v, want=%v", got, want)
	}
	if got, want := bin.Sources(), []string{"stat:a", "stat:b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("invalid sources: got=%q, want=%q", got, want)
	}
	e, ok := bin.Err("stat:b")
	if !ok {
		t.Fatalf("missing error source")
	}
	if got, want := e, (Err{Down: 3, Up: 4}); got != want {
		t.Fatalf("invalid error: got=%+v, want=%+v", got, want)
	}
	if got, want := bin.TotalErr(), (Err{Down: 5, Up: 5}); got != want {
		t.Fatalf("invalid total error: got=%+v, want=%+v", got, want)
	}
}

func TestDivide(t *testing.T) {
	edges := []float64{0, 1, 2, 3}
	num := newH1D("pT_piminus", edges, [2]float64{0.5, 2}, [2]float64{1.5, 6}, [2]float64{2.5, 1})
	den := newH1D("pT_piplus", edges, [2]float64{0.5, 4}, [2]float64{1.5, 3})

	est, err := Divide("/ANA/ratio", num, den)
	if err != nil {
		t.Fatalf("could not divide: %+v", err)
	}

	if got, want := est.Path(), "/ANA/ratio"; got != want {
		t.Fatalf("invalid path: got=%q, want=%q", got, want)
	}
	if got, want := est.Edges(), edges; !reflect.DeepEqual(got, want) {
		t.Fatalf("invalid edges: got=%v, want=%v", got, want)
	}

	for i, want := range []struct {
		val    float64
		en, ed float64
	}{
		{val: 0.5, en: 0.5, ed: 0.5},
		{val: 2, en: 2, ed: 2},
	} {
		bin := est.Bin(i)
		if got := bin.Val; got != want.val {
			t.Fatalf("bin[%d]: invalid value: got=%v, want=%v", i, got, want.val)
		}
		if got, want := bin.Sources(), []string{"stat:pT_piminus", "stat:pT_piplus"}; !reflect.DeepEqual(got, want) {
			t.Fatalf("bin[%d]: invalid sources: got=%q, want=%q", i, got, want)
		}
		en, _ := bin.Err("stat:pT_piminus")
		if got := en; got != (Err{Down: want.en, Up: want.en}) {
			t.Fatalf("bin[%d]: invalid numerator error: got=%+v, want=%v", i, got, want.en)
		}
		ed, _ := bin.Err("stat:pT_piplus")
		if got := ed; got != (Err{Down: want.ed, Up: want.ed}) {
			t.Fatalf("bin[%d]: invalid denominator error: got=%+v, want=%v", i, got, want.ed)
		}
	}

	bin := est.Bin(2)
	if !math.IsNaN(bin.Val) {
		t.Fatalf("empty denominator should give NaN: got=%v", bin.Val)
	}
	if srcs := bin.Sources(); len(srcs) != 0 {
		t.Fatalf("empty denominator should give no error source: got=%q", srcs)
	}
}

func TestDivideExact(t *testing.T) {
	edges := []float64{0.3, 0.4, 0.5}
	var (
		a0, a1 = 0.7, 1.3
		b0, b1 = 0.3, 0.9
	)
	num := newH1D("a", edges, [2]float64{0.35, a0}, [2]float64{0.45, a1})
	den := newH1D("b", edges, [2]float64{0.35, b0}, [2]float64{0.45, b1})

	est, err := Divide("/ANA/a_b", num, den)
	if err != nil {
		t.Fatalf("could not divide: %+v", err)
	}
	if got, want := est.Bin(0).Val, a0/b0; got != want {
		t.Fatalf("invalid bin[0]: got=%v, want=%v", got, want)
	}
	if got, want := est.Bin(1).Val, a1/b1; got != want {
		t.Fatalf("invalid bin[1]: got=%v, want=%v", got, want)
	}
}

func TestDivideSameName(t *testing.T) {
	edges := []float64{0, 1}
	num := newH1D("", edges, [2]float64{0.5, 1})
	den := newH1D("", edges, [2]float64{0.5, 2})

	est, err := Divide("/ANA/ratio", num, den)
	if err != nil {
		t.Fatalf("could not divide: %+v", err)
	}
	if got, want := est.Bin(0).Sources(), []string{"stat:den", "stat:num"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("invalid sources: got=%q, want=%q", got, want)
	}

	num.Annotation()["name"] = "pT"
	den.Annotation()["name"] = "pT"
	est, err = Divide("/ANA/ratio", num, den)
	if err != nil {
		t.Fatalf("could not divide: %+v", err)
	}
	if got, want := est.Bin(0).Sources(), []string{"stat:pT:den", "stat:pT:num"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("invalid sources: got=%q, want=%q", got, want)
	}
}

func TestDivideBinning(t *testing.T) {
	for _, tc := range []struct {
		name     string
		num, den []float64
	}{
		{"nbins", []float64{0, 1, 2}, []float64{0, 1}},
		{"edges", []float64{0, 1, 2}, []float64{0, 1.5, 2}},
		{"range", []float64{0, 1, 2}, []float64{1, 2, 3}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			num := newH1D("num", tc.num)
			den := newH1D("den", tc.den)

			_, err := Divide("/ANA/ratio", num, den)
			if !errors.Is(err, ErrBinning) {
				t.Fatalf("invalid error: got=%+v, want=%+v", err, ErrBinning)
			}

			dst, err := New("/ANA/ratio", tc.num)
			if err != nil {
				t.Fatalf("could not create estimate: %+v", err)
			}
			err = DivideInto(dst, num, den)
			if !errors.Is(err, ErrBinning) {
				t.Fatalf("invalid error: got=%+v, want=%+v", err, ErrBinning)
			}
		})
	}
}

func TestDivideInto(t *testing.T) {
	edges := []float64{0, 1, 2}
	num := newH1D("num", edges, [2]float64{0.5, 3}, [2]float64{1.5, 1})
	den := newH1D("den", edges, [2]float64{0.5, 1}, [2]float64{1.5, 4})

	dst, err := New("/ANA/d23-x01-y02", edges)
	if err != nil {
		t.Fatalf("could not create estimate: %+v", err)
	}
	dst.Bin(0).SetErr("stale", Err{Down: 1, Up: 1})

	err = DivideInto(dst, num, den)
	if err != nil {
		t.Fatalf("could not divide: %+v", err)
	}
	if got, want := dst.Edges(), edges; !reflect.DeepEqual(got, want) {
		t.Fatalf("invalid edges: got=%v, want=%v", got, want)
	}
	if got, want := dst.Bin(0).Val, 3.0; got != want {
		t.Fatalf("invalid bin[0]: got=%v, want=%v", got, want)
	}
	if got, want := dst.Bin(1).Val, 0.25; got != want {
		t.Fatalf("invalid bin[1]: got=%v, want=%v", got, want)
	}
	if got, want := dst.Bin(0).Sources(), []string{"stat:den", "stat:num"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("invalid sources: got=%q, want=%q", got, want)
	}

	for _, tc := range []struct {
		name  string
		edges []float64
	}{
		{"fewer-bins", []float64{0, 1}},
		{"more-bins", []float64{0, 1, 2, 3}},
		{"shifted", []float64{10, 20, 30}},
		{"inner-edge", []float64{0, 1.5, 2}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dst, err := New("/ANA/"+tc.name, tc.edges)
			if err != nil {
				t.Fatalf("could not create estimate: %+v", err)
			}
			err = DivideInto(dst, num, den)
			if !errors.Is(err, ErrBinning) {
				t.Fatalf("invalid error: got=%+v, want=%+v", err, ErrBinning)
			}
			for i := 0; i < dst.Len(); i++ {
				if got := dst.Bin(i).Val; got != 0 {
					t.Fatalf("bin[%d] modified: got=%v", i, got)
				}
			}
		})
	}
}

func TestCopyFrom(t *testing.T) {
	src, err := New("/TMP/s_ratio", []float64{0, 1, 2})
	if err != nil {
		t.Fatalf("could not create estimate: %+v", err)
	}
	src.Bin(0).SetVal(1.5)
	src.Bin(0).SetErr("stat:num", Err{Down: 0.1, Up: 0.2})
	src.Bin(1).SetVal(math.NaN())

	dst, err := New("/ANA/d23-x01-y02", []float64{0, 1, 2})
	if err != nil {
		t.Fatalf("could not create estimate: %+v", err)
	}
	dst.Bin(1).SetErr("stale", Err{Down: 1, Up: 1})

	err = dst.CopyFrom(src)
	if err != nil {
		t.Fatalf("could not copy estimate: %+v", err)
	}

	if got, want := dst.Bin(0).Val, 1.5; got != want {
		t.Fatalf("invalid bin[0]: got=%v, want=%v", got, want)
	}
	e, ok := dst.Bin(0).Err("stat:num")
	if !ok || e != (Err{Down: 0.1, Up: 0.2}) {
		t.Fatalf("invalid bin[0] error: got=%+v (ok=%v)", e, ok)
	}
	if !math.IsNaN(dst.Bin(1).Val) {
		t.Fatalf("invalid bin[1]: got=%v, want=NaN", dst.Bin(1).Val)
	}
	if srcs := dst.Bin(1).Sources(); len(srcs) != 0 {
		t.Fatalf("invalid bin[1] sources: %q", srcs)
	}

	// modifying the copy must not modify the source.
	dst.Bin(0).SetErr("stat:num", Err{})
	if e, _ := src.Bin(0).Err("stat:num"); e != (Err{Down: 0.1, Up: 0.2}) {
		t.Fatalf("source was modified: %+v", e)
	}

	bad, err := New("/ANA/d24-x01-y02", []float64{0, 1})
	if err != nil {
		t.Fatalf("could not create estimate: %+v", err)
	}
	err = bad.CopyFrom(src)
	if !errors.Is(err, ErrBinning) {
		t.Fatalf("invalid error: got=%+v, want=%+v", err, ErrBinning)
	}
}

func TestS2D(t *testing.T) {
	est, err := New("/ANA/d23-x01-y02", []float64{0, 1, 3})
	if err != nil {
		t.Fatalf("could not create estimate: %+v", err)
	}
	est.Bin(0).SetVal(2)
	est.Bin(0).SetErr("stat:a", Err{Down: 3, Up: 0})
	est.Bin(0).SetErr("stat:b", Err{Down: 4, Up: 1})
	est.Bin(1).SetVal(1)

	s := est.S2D()
	if got, want := s.Len(), 2; got != want {
		t.Fatalf("invalid number of points: got=%d, want=%d", got, want)
	}
	if got, want := s.Annotation()["name"], "ANA/d23-x01-y02"; got != want {
		t.Fatalf("invalid name: got=%v, want=%v", got, want)
	}

	for i, want := range []hbook.Point2D{
		{X: 0.5, Y: 2, ErrX: hbook.Range{Min: 0.5, Max: 0.5}, ErrY: hbook.Range{Min: 5, Max: 1}},
		{X: 2, Y: 1, ErrX: hbook.Range{Min: 1, Max: 1}},
	} {
		if got := s.Point(i); got != want {
			t.Fatalf("invalid point %d:\ngot= %+v\nwant=%+v", i, got, want)
		}
	}
}

func TestEdgesOf(t *testing.T) {
	edges := []float64{0.3, 0.4, 0.5, 0.6, 0.8, 1.0}
	h := hbook.NewH1DFromEdges(edges)
	if got, want := EdgesOf(h), edges; !reflect.DeepEqual(got, want) {
		t.Fatalf("invalid edges: got=%v, want=%v", got, want)
	}

	if !SameEdges(edges, EdgesOf(h)) {
		t.Fatalf("edges should compare equal")
	}
	if SameEdges(edges, edges[1:]) {
		t.Fatalf("edges should differ")
	}
}
