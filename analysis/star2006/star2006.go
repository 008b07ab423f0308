// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package star2006 implements the STAR identified hadron spectra analyses
// in pp collisions at 200 GeV (Phys. Lett. B637 (2006) 161).
//
// Two variants are provided:
//   - STAR_2006_I709170 (alias STAR_2006_S6500200) selects events with the
//     beam-beam-counter trigger and normalizes spectra to the selected
//     event weight,
//   - STAR_2006_I709170_TEST runs without trigger and normalizes spectra
//     to the total event weight of the run.
//
// Importing this package registers both analyses.
package star2006 // import "github.com/go-lpc/star/analysis/star2006"

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/hbook"

	"github.com/go-lpc/star/analysis"
	"github.com/go-lpc/star/estimate"
	"github.com/go-lpc/star/event"
	"github.com/go-lpc/star/refdata"
)

const (
	Name     = "STAR_2006_I709170"
	Alias    = "STAR_2006_S6500200"
	NameTest = "STAR_2006_I709170_TEST"
)

// reference data sets.
var (
	idPiPlus  = refdata.ID{D: 2, X: 1, Y: 1}
	idPiMinus = refdata.ID{D: 7, X: 1, Y: 1}
	idProton  = refdata.ID{D: 12, X: 1, Y: 1}
	idPBar    = refdata.ID{D: 17, X: 1, Y: 1}

	idPiMinusPiPlus = refdata.ID{D: 23, X: 1, Y: 2}
	idPBarProton    = refdata.ID{D: 24, X: 1, Y: 2}
	idProtonPiPlus  = refdata.ID{D: 25, X: 1, Y: 2}
	idPBarPiMinus   = refdata.ID{D: 26, X: 1, Y: 2}
)

// selection thresholds.
const (
	etaMax  = 2.5
	rapMax  = 0.5
	ptMinPi = 0.3 // GeV
	ptMinP  = 0.4 // GeV

	bbcEtaMin = 3.3
	bbcEtaMax = 5.0
)

func init() {
	analysis.Register(Name, func() analysis.Analysis { return New() }, Alias)
	analysis.Register(NameTest, func() analysis.Analysis { return NewTest() })
}

// spectra holds the permanent pT spectra of the identified hadrons.
type spectra struct {
	piplus  *hbook.H1D
	piminus *hbook.H1D
	proton  *hbook.H1D
	pbar    *hbook.H1D
}

func (s *spectra) book(b analysis.Booker) error {
	for _, v := range []struct {
		h  **hbook.H1D
		id refdata.ID
	}{
		{&s.piplus, idPiPlus},
		{&s.piminus, idPiMinus},
		{&s.proton, idProton},
		{&s.pbar, idPBar},
	} {
		h, err := b.BookH1D(v.id)
		if err != nil {
			return fmt.Errorf("star2006: could not book spectrum %v: %w", v.id, err)
		}
		*v.h = h
	}
	return nil
}

func (s *spectra) all() []*hbook.H1D {
	return []*hbook.H1D{s.piplus, s.piminus, s.proton, s.pbar}
}

// tmpPions holds the pion spectra booked with a proton binning.
type tmpPions struct {
	piplus  *hbook.H1D
	piminus *hbook.H1D
}

func (tmp *tmpPions) book(b analysis.Booker, plus, minus refdata.ID) error {
	for _, v := range []struct {
		h    **hbook.H1D
		path string
		id   refdata.ID
	}{
		{&tmp.piplus, "TMP/pT_piplus", plus},
		{&tmp.piminus, "TMP/pT_piminus", minus},
	} {
		edges, err := b.RefEdges(v.id)
		if err != nil {
			return fmt.Errorf("star2006: could not retrieve binning %v for %q: %w", v.id, v.path, err)
		}
		h, err := b.BookH1DEdges(v.path, edges)
		if err != nil {
			return fmt.Errorf("star2006: could not book %q: %w", v.path, err)
		}
		*v.h = h
	}
	return nil
}

// ratios holds the particle ratios.
type ratios struct {
	piminusPiplus *estimate.Binned
	pbarProton    *estimate.Binned
	protonPiplus  *estimate.Binned
	pbarPiminus   *estimate.Binned
}

func (r *ratios) book(b analysis.Booker) error {
	for _, v := range []struct {
		e  **estimate.Binned
		id refdata.ID
	}{
		{&r.piminusPiplus, idPiMinusPiPlus},
		{&r.pbarProton, idPBarProton},
		{&r.protonPiplus, idProtonPiPlus},
		{&r.pbarPiminus, idPBarPiMinus},
	} {
		e, err := b.BookEstimate(v.id)
		if err != nil {
			return fmt.Errorf("star2006: could not book ratio %v: %w", v.id, err)
		}
		*v.e = e
	}
	return nil
}

// fill fills the spectrum of the particle's charge sign with a 1/pT weight,
// turning the pT spectrum into the invariant yield.
func fill(pos, neg *hbook.H1D, p event.Particle, w float64) {
	pt := p.Pt()
	h := neg
	if p.PID > 0 {
		h = pos
	}
	h.Fill(pt, w/pt)
}

func normFactor(sumw float64) (float64, error) {
	if sumw == 0 {
		return 0, analysis.ErrNoWeight
	}
	return 1 / (2 * math.Pi) / sumw, nil
}
