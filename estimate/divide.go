// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/hbook"
)

// Divide returns the bin-by-bin ratio num/den.
//
// num and den must share exactly the same bin edges.
// The statistical errors of num and den are propagated independently,
// as the "stat:<name>" error sources of each bin, where <name> is the
// name of the corresponding histogram.
// Bins with an empty denominator hold a NaN value and no error source.
func Divide(path string, num, den *hbook.H1D) (*Binned, error) {
	edges := EdgesOf(num)
	if !SameEdges(edges, EdgesOf(den)) {
		return nil, fmt.Errorf(
			"%w: cannot divide %q by %q (edges: %v vs %v)",
			ErrBinning, num.Name(), den.Name(), edges, EdgesOf(den),
		)
	}

	est, err := New(path, edges)
	if err != nil {
		return nil, fmt.Errorf("estimate: could not create ratio %q: %w", path, err)
	}
	divide(est, num, den)
	return est, nil
}

// DivideInto stores the bin-by-bin ratio num/den into dst.
//
// num, den and dst must all share exactly the same bin edges.
func DivideInto(dst *Binned, num, den *hbook.H1D) error {
	edges := EdgesOf(num)
	if !SameEdges(edges, EdgesOf(den)) {
		return fmt.Errorf(
			"%w: cannot divide %q by %q (edges: %v vs %v)",
			ErrBinning, num.Name(), den.Name(), edges, EdgesOf(den),
		)
	}
	if !SameEdges(dst.edges, edges) {
		return fmt.Errorf(
			"%w: cannot store %q/%q into %q (edges: %v vs %v)",
			ErrBinning, num.Name(), den.Name(), dst.Path(), edges, dst.edges,
		)
	}

	for i := range dst.bins {
		dst.bins[i].errs = nil
	}
	divide(dst, num, den)
	return nil
}

func divide(dst *Binned, num, den *hbook.H1D) {
	nsrc, dsrc := sources(num, den)
	for i := range dst.bins {
		var (
			bin = &dst.bins[i]
			nb  = &num.Binning.Bins[i]
			db  = &den.Binning.Bins[i]
			n   = nb.SumW()
			d   = db.SumW()
		)
		if d == 0 {
			bin.SetVal(math.NaN())
			continue
		}

		var (
			en = math.Sqrt(nb.SumW2()) / math.Abs(d)
			ed = math.Abs(n) * math.Sqrt(db.SumW2()) / (d * d)
		)
		bin.SetVal(n / d)
		bin.SetErr(nsrc, Err{Down: en, Up: en})
		bin.SetErr(dsrc, Err{Down: ed, Up: ed})
	}
}

func sources(num, den *hbook.H1D) (string, string) {
	name := func(h *hbook.H1D, def string) string {
		if v := h.Name(); v != "" {
			return v
		}
		return def
	}

	var (
		nsrc = "stat:" + name(num, "num")
		dsrc = "stat:" + name(den, "den")
	)
	if nsrc == dsrc {
		nsrc += ":num"
		dsrc += ":den"
	}
	return nsrc, dsrc
}
