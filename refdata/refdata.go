// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refdata provides access to the binnings of published
// measurements, so analyses can book histograms compatible with them.
package refdata // import "github.com/go-lpc/star/refdata"

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a lookup has no data for a
	// requested dataset.
	ErrNotFound = errors.New("refdata: no such reference data")
)

// ID identifies a dataset of a publication: the d-th table,
// x-th x-axis and y-th y-axis.
type ID struct {
	D, X, Y int
}

func (id ID) String() string {
	return fmt.Sprintf("d%02d-x%02d-y%02d", id.D, id.X, id.Y)
}

// ParseID parses a dataset identifier of the form "d02-x01-y01".
func ParseID(s string) (ID, error) {
	var id ID
	_, err := fmt.Sscanf(s, "d%d-x%d-y%d", &id.D, &id.X, &id.Y)
	if err != nil {
		return id, fmt.Errorf("refdata: invalid dataset identifier %q: %w", s, err)
	}
	if id.String() != s && fmt.Sprintf("d%d-x%d-y%d", id.D, id.X, id.Y) != s {
		return id, fmt.Errorf("refdata: invalid dataset identifier %q", s)
	}
	return id, nil
}

// Path returns the path of the dataset id of analysis ana.
func Path(ana string, id ID) string {
	return "/" + ana + "/" + id.String()
}

// RefPath returns the path of the reference data for the dataset id
// of analysis ana.
func RefPath(ana string, id ID) string {
	return "/REF" + Path(ana, id)
}

// Lookup retrieves the bin edges of reference datasets.
type Lookup interface {
	// Edges returns the sorted bin edges of the dataset id of
	// analysis ana.
	Edges(ana string, id ID) ([]float64, error)
}

// Table is an in-memory reference data lookup, keyed by RefPath.
type Table map[string][]float64

// Add registers the edges for the dataset id of analysis ana.
func (tbl Table) Add(ana string, id ID, edges []float64) {
	tbl[RefPath(ana, id)] = edges
}

func (tbl Table) Edges(ana string, id ID) ([]float64, error) {
	edges, ok := tbl[RefPath(ana, id)]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrNotFound, RefPath(ana, id))
	}
	o := make([]float64, len(edges))
	copy(o, edges)
	return o, nil
}

// Keys returns the sorted list of dataset paths held by the table.
func (tbl Table) Keys() []string {
	keys := make([]string, 0, len(tbl))
	for k := range tbl {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Multi chains lookups. The first lookup holding a dataset wins.
type Multi []Lookup

func (m Multi) Edges(ana string, id ID) ([]float64, error) {
	for _, lookup := range m {
		edges, err := lookup.Edges(ana, id)
		switch {
		case err == nil:
			return edges, nil
		case errors.Is(err, ErrNotFound):
			continue
		default:
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w %q", ErrNotFound, RefPath(ana, id))
}

// EdgesFrom builds a sorted edge set from the [lo,hi) ranges of
// consecutive bins. Bins must be contiguous.
func EdgesFrom(lo, hi []float64) ([]float64, error) {
	if len(lo) != len(hi) {
		return nil, fmt.Errorf("refdata: inconsistent number of bin bounds (lo=%d, hi=%d)", len(lo), len(hi))
	}
	if len(lo) == 0 {
		return nil, fmt.Errorf("refdata: no bins")
	}

	edges := make([]float64, 0, len(lo)+1)
	for i := range lo {
		if !(lo[i] < hi[i]) {
			return nil, fmt.Errorf("refdata: invalid bin %d: [%v, %v)", i, lo[i], hi[i])
		}
		if i > 0 && !near(hi[i-1], lo[i]) {
			return nil, fmt.Errorf(
				"refdata: non-contiguous bins %d and %d: %v != %v",
				i-1, i, hi[i-1], lo[i],
			)
		}
		edges = append(edges, lo[i])
	}
	edges = append(edges, hi[len(hi)-1])
	return edges, nil
}

func near(a, b float64) bool {
	const eps = 1e-10
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// splitPath splits a reference path ("/REF/ANA/d01-x01-y01", with or
// without leading slash or REF prefix) into its analysis and dataset parts.
func splitPath(path string) (ana string, id ID, err error) {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimPrefix(path, "REF/")
	i := strings.LastIndex(path, "/")
	if i <= 0 {
		return "", id, fmt.Errorf("refdata: invalid reference path %q", path)
	}
	ana = path[:i]
	id, err = ParseID(path[i+1:])
	if err != nil {
		return "", id, err
	}
	return ana, id, nil
}

var (
	_ Lookup = (Table)(nil)
	_ Lookup = (Multi)(nil)
)
