// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analysis defines the contract between physics analyses and the
// host that drives them over a run.
//
// A host calls Init once, Analyze once per event and Finalize once at the
// end of the run. Analyses book their histograms, estimates and counters
// through the Booker passed to Init; the host owns those objects and
// writes them out after Finalize.
package analysis // import "github.com/go-lpc/star/analysis"

import (
	"errors"

	"go-hep.org/x/hep/hbook"

	"github.com/go-lpc/star/estimate"
	"github.com/go-lpc/star/event"
	"github.com/go-lpc/star/proj"
	"github.com/go-lpc/star/refdata"
)

var (
	// ErrVeto is returned by Analyze when an event is rejected.
	// A vetoed event must not modify any booked object.
	ErrVeto = errors.New("analysis: event vetoed")

	// ErrNoWeight is returned by Finalize when the normalization
	// weight of the run is zero.
	ErrNoWeight = errors.New("analysis: null sum of weights")
)

// Analysis is a physics analysis.
type Analysis interface {
	// Name returns the canonical name of the analysis.
	Name() string

	// Init declares projections and books output objects.
	Init(b Booker) error

	// Analyze processes one event.
	Analyze(evt Event) error

	// Finalize normalizes and derives the output objects.
	Finalize() error
}

// Booker is the set of services a host provides to an analysis.
type Booker interface {
	// Declare registers a projection under the given name.
	Declare(name string, p proj.Projection) error

	// RefEdges returns the bin edges of the reference data id
	// for the current analysis.
	RefEdges(id refdata.ID) ([]float64, error)

	// BookH1D books a histogram with the binning of the reference data id.
	BookH1D(id refdata.ID) (*hbook.H1D, error)

	// BookH1DEdges books a histogram with the given edges.
	// path is relative to the analysis, e.g. "TMP/pT_piplus".
	BookH1DEdges(path string, edges []float64) (*hbook.H1D, error)

	// BookEstimate books an estimate with the binning of the reference data id.
	BookEstimate(id refdata.ID) (*estimate.Binned, error)

	// BookCounter books a counter.
	BookCounter(path string) (*Counter, error)

	// SumW returns the sum of the weights of all events seen by the host.
	SumW() float64
}

// Event is the view of an event an analysis is given.
type Event interface {
	// Weight returns the weight of the event.
	Weight() float64

	// Apply returns the particles selected by the named projection.
	// Results are computed once per event.
	Apply(name string) ([]event.Particle, error)
}
