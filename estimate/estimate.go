// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package estimate holds binned derived quantities, such as ratios of
// histograms, with an arbitrary number of named error sources per bin.
package estimate // import "github.com/go-lpc/star/estimate"

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"go-hep.org/x/hep/hbook"
)

var (
	// ErrBinning is returned when combining objects with incompatible binnings.
	ErrBinning = errors.New("estimate: incompatible binnings")
)

// Err is an asymmetric error contribution.
// Down and Up are magnitudes.
type Err struct {
	Down, Up float64
}

// Bin is one entry of a binned estimate.
type Bin struct {
	XMin, XMax float64

	Val  float64
	errs map[string]Err
}

// SetVal sets the central value of the bin.
func (b *Bin) SetVal(v float64) {
	b.Val = v
}

// SetErr sets the error contribution of the named source.
func (b *Bin) SetErr(src string, e Err) {
	if b.errs == nil {
		b.errs = make(map[string]Err)
	}
	b.errs[src] = e
}

// Err returns the error contribution of the named source.
func (b *Bin) Err(src string) (Err, bool) {
	e, ok := b.errs[src]
	return e, ok
}

// Sources returns the sorted names of the error sources of the bin.
func (b *Bin) Sources() []string {
	srcs := make([]string, 0, len(b.errs))
	for k := range b.errs {
		srcs = append(srcs, k)
	}
	sort.Strings(srcs)
	return srcs
}

// TotalErr returns the quadrature sum of all error sources.
func (b *Bin) TotalErr() Err {
	var dn, up float64
	for _, e := range b.errs {
		dn += e.Down * e.Down
		up += e.Up * e.Up
	}
	return Err{Down: math.Sqrt(dn), Up: math.Sqrt(up)}
}

// Binned is a binned estimate.
type Binned struct {
	path  string
	edges []float64
	bins  []Bin
}

// New returns an empty estimate with the given path and bin edges.
func New(path string, edges []float64) (*Binned, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("estimate: %q needs at least 2 edges (got=%d)", path, len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i-1] < edges[i]) {
			return nil, fmt.Errorf("estimate: %q has unsorted edges %v", path, edges)
		}
	}

	est := &Binned{
		path:  path,
		edges: append([]float64(nil), edges...),
		bins:  make([]Bin, len(edges)-1),
	}
	for i := range est.bins {
		est.bins[i].XMin = edges[i]
		est.bins[i].XMax = edges[i+1]
	}
	return est, nil
}

// Path returns the full path of the estimate.
func (est *Binned) Path() string { return est.path }

// Len returns the number of bins.
func (est *Binned) Len() int { return len(est.bins) }

// Bin returns the i-th bin.
func (est *Binned) Bin(i int) *Bin { return &est.bins[i] }

// Edges returns a copy of the bin edges.
func (est *Binned) Edges() []float64 {
	return append([]float64(nil), est.edges...)
}

// CopyFrom copies values and error sources of every bin of src into est.
// Both estimates must have the same number of bins.
func (est *Binned) CopyFrom(src *Binned) error {
	if len(est.bins) != len(src.bins) {
		return fmt.Errorf(
			"%w: cannot copy %q (%d bins) into %q (%d bins)",
			ErrBinning, src.path, len(src.bins), est.path, len(est.bins),
		)
	}
	for i := range src.bins {
		var (
			sbin = &src.bins[i]
			dbin = &est.bins[i]
		)
		dbin.SetVal(sbin.Val)
		dbin.errs = nil
		for _, k := range sbin.Sources() {
			e, _ := sbin.Err(k)
			dbin.SetErr(k, e)
		}
	}
	return nil
}

// S2D converts est into a scatter, using the total error of each bin.
func (est *Binned) S2D() *hbook.S2D {
	pts := make([]hbook.Point2D, len(est.bins))
	for i := range est.bins {
		var (
			bin = &est.bins[i]
			mid = 0.5 * (bin.XMin + bin.XMax)
			tot = bin.TotalErr()
		)
		pts[i] = hbook.Point2D{
			X:    mid,
			Y:    bin.Val,
			ErrX: hbook.Range{Min: mid - bin.XMin, Max: bin.XMax - mid},
			ErrY: hbook.Range{Min: tot.Down, Max: tot.Up},
		}
	}
	s := hbook.NewS2D(pts...)
	s.Annotation()["name"] = strings.TrimPrefix(est.path, "/")
	return s
}

// EdgesOf returns the bin edges of h.
func EdgesOf(h *hbook.H1D) []float64 {
	bins := h.Binning.Bins
	edges := make([]float64, 0, len(bins)+1)
	for i := range bins {
		edges = append(edges, bins[i].XMin())
	}
	if len(bins) > 0 {
		edges = append(edges, bins[len(bins)-1].XMax())
	}
	return edges
}

// SameEdges returns whether a and b are exactly the same edge sets.
func SameEdges(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
