// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runner

import (
	"fmt"
	"strings"

	"go-hep.org/x/hep/hbook"

	"github.com/go-lpc/star/analysis"
	"github.com/go-lpc/star/estimate"
	"github.com/go-lpc/star/event"
	"github.com/go-lpc/star/proj"
	"github.com/go-lpc/star/refdata"
)

// slot holds the state of one analysis and provides it with
// booking services.
type slot struct {
	host *Runner
	ana  analysis.Analysis
	name string

	projs *proj.Cache
	paths []string       // booked objects, in booking order
	objs  map[string]any // booked objects, by full path

	vetoed int64
}

func newSlot(host *Runner, ana analysis.Analysis) *slot {
	return &slot{
		host:  host,
		ana:   ana,
		name:  ana.Name(),
		projs: proj.NewCache(),
		objs:  make(map[string]any),
	}
}

func (s *slot) process(evt *event.Event) error {
	s.projs.Reset(evt)
	return s.ana.Analyze(view{evt: evt, projs: s.projs})
}

func (s *slot) path(name string) string {
	return "/" + s.name + "/" + strings.TrimPrefix(name, "/")
}

func (s *slot) book(path string, obj any) error {
	if s.host.state != uninitialized {
		return fmt.Errorf("%w: cannot book %q with %s runner", ErrState, path, s.host.state)
	}
	if _, dup := s.objs[path]; dup {
		return fmt.Errorf("runner: object %q already booked", path)
	}
	s.paths = append(s.paths, path)
	s.objs[path] = obj
	return nil
}

func (s *slot) Declare(name string, p proj.Projection) error {
	if s.host.state != uninitialized {
		return fmt.Errorf("%w: cannot declare projection %q with %s runner", ErrState, name, s.host.state)
	}
	return s.projs.Declare(name, p)
}

func (s *slot) RefEdges(id refdata.ID) ([]float64, error) {
	if s.host.ref == nil {
		return nil, fmt.Errorf("runner: no reference data for %s/%v: %w", s.name, id, refdata.ErrNotFound)
	}
	edges, err := s.host.ref.Edges(s.name, id)
	if err != nil {
		return nil, fmt.Errorf("runner: could not find reference data for %s/%v: %w", s.name, id, err)
	}
	return edges, nil
}

func (s *slot) BookH1D(id refdata.ID) (*hbook.H1D, error) {
	edges, err := s.RefEdges(id)
	if err != nil {
		return nil, err
	}
	return s.BookH1DEdges(id.String(), edges)
}

func (s *slot) BookH1DEdges(name string, edges []float64) (*hbook.H1D, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("runner: invalid binning for %q: %v", name, edges)
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i-1] < edges[i]) {
			return nil, fmt.Errorf("runner: invalid binning for %q: %v", name, edges)
		}
	}

	path := s.path(name)
	h := hbook.NewH1DFromEdges(edges)
	h.Annotation()["name"] = strings.TrimPrefix(path, "/")

	err := s.book(path, h)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (s *slot) BookEstimate(id refdata.ID) (*estimate.Binned, error) {
	edges, err := s.RefEdges(id)
	if err != nil {
		return nil, err
	}
	path := s.path(id.String())
	est, err := estimate.New(path, edges)
	if err != nil {
		return nil, fmt.Errorf("runner: could not create estimate %q: %w", path, err)
	}

	err = s.book(path, est)
	if err != nil {
		return nil, err
	}
	return est, nil
}

func (s *slot) BookCounter(name string) (*analysis.Counter, error) {
	path := s.path(name)
	c := analysis.NewCounter(path)

	err := s.book(path, c)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *slot) SumW() float64 {
	return s.host.sumw
}

// view is the per-event view of an analysis.
type view struct {
	evt   *event.Event
	projs *proj.Cache
}

func (v view) Weight() float64 { return v.evt.Weight }

func (v view) Apply(name string) ([]event.Particle, error) {
	return v.projs.Apply(name)
}

var (
	_ analysis.Booker = (*slot)(nil)
	_ analysis.Event  = (*view)(nil)
)
