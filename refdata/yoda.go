// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refdata

import (
	"fmt"
	"io"

	"github.com/go-lpc/star/internal/mmap"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hbook/yodacnv"
)

// OpenYODA loads the reference data held in the named YODA file.
func OpenYODA(fname string) (Table, error) {
	h, err := mmap.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("refdata: could not open YODA file: %w", err)
	}
	defer h.Close()

	tbl, err := ReadYODA(h.Reader())
	if err != nil {
		return nil, fmt.Errorf("refdata: could not load %q: %w", fname, err)
	}
	return tbl, nil
}

// ReadYODA loads reference data from a YODA stream.
//
// Scatters are converted using their x-errors as bin half-widths.
// Histograms contribute their binning directly.
// Objects whose path does not follow the dNN-xNN-yNN convention are
// ignored.
func ReadYODA(r io.Reader) (Table, error) {
	objs, err := yodacnv.Read(r)
	if err != nil {
		return nil, fmt.Errorf("refdata: could not read YODA stream: %w", err)
	}

	tbl := make(Table)
	for _, obj := range objs {
		var (
			ann   hbook.Annotation
			edges []float64
			err   error
		)
		switch obj := any(obj).(type) {
		case *hbook.S2D:
			ann = obj.Annotation()
			edges, err = EdgesFromS2D(obj)
		case *hbook.H1D:
			ann = obj.Annotation()
			edges, err = EdgesFromH1D(obj)
		default:
			continue
		}

		ana, id, perr := splitPath(pathOf(ann))
		if perr != nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("refdata: invalid binning for %q: %w", RefPath(ana, id), err)
		}
		tbl.Add(ana, id, edges)
	}

	return tbl, nil
}

func pathOf(ann hbook.Annotation) string {
	for _, k := range []string{"path", "Path", "name"} {
		v, ok := ann[k]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// EdgesFromS2D returns the bin edges described by the points of s,
// using their x-errors as distances to the bin boundaries.
func EdgesFromS2D(s *hbook.S2D) ([]float64, error) {
	n := s.Len()
	var (
		lo = make([]float64, n)
		hi = make([]float64, n)
	)
	for i := 0; i < n; i++ {
		pt := s.Point(i)
		lo[i] = pt.X - pt.ErrX.Min
		hi[i] = pt.X + pt.ErrX.Max
	}
	return EdgesFrom(lo, hi)
}

// EdgesFromH1D returns the bin edges of h.
func EdgesFromH1D(h *hbook.H1D) ([]float64, error) {
	bins := h.Binning.Bins
	var (
		lo = make([]float64, len(bins))
		hi = make([]float64, len(bins))
	)
	for i := range bins {
		lo[i] = bins[i].XMin()
		hi[i] = bins[i].XMax()
	}
	return EdgesFrom(lo, hi)
}
