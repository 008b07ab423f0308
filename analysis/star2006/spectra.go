// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package star2006

import (
	"fmt"

	"go-hep.org/x/hep/hbook"

	"github.com/go-lpc/star/analysis"
	"github.com/go-lpc/star/cuts"
	"github.com/go-lpc/star/estimate"
	"github.com/go-lpc/star/event"
	"github.com/go-lpc/star/proj"
)

// Spectra is the STAR_2006_I709170 analysis.
//
// Events must fire the beam-beam-counter trigger: at least one charged
// particle in each of the -5 < eta < -3.3 and 3.3 < eta < 5 side-bands.
type Spectra struct {
	h   spectra
	tmp tmpPions
	r   ratios

	sumw *analysis.Counter // selected event weight
}

// New returns a new STAR_2006_I709170 analysis.
func New() *Spectra {
	return &Spectra{}
}

func (*Spectra) Name() string { return Name }

func (ana *Spectra) Init(b analysis.Booker) error {
	var (
		bbc1 = proj.NewChargedFinalState(cuts.EtaIn(-bbcEtaMax, -bbcEtaMin))
		bbc2 = proj.NewChargedFinalState(cuts.EtaIn(+bbcEtaMin, +bbcEtaMax))

		pions = proj.NewIdentifiedFinalState(cuts.And(
			cuts.AbsEtaLess(etaMax), cuts.PtGreater(ptMinPi),
		))
		protons = proj.NewIdentifiedFinalState(cuts.And(
			cuts.AbsEtaLess(etaMax), cuts.PtGreater(ptMinP),
		))
	)
	pions.AcceptIDPair(event.PiPlus)
	protons.AcceptIDPair(event.Proton)

	for _, v := range []struct {
		name string
		proj proj.Projection
	}{
		{"BBC1", bbc1},
		{"BBC2", bbc2},
		{"PionFS", pions},
		{"ProtonFS", protons},
	} {
		err := b.Declare(v.name, v.proj)
		if err != nil {
			return fmt.Errorf("star2006: could not declare projection %q: %w", v.name, err)
		}
	}

	err := ana.h.book(b)
	if err != nil {
		return err
	}

	// pion spectra compatible with the more restricted proton binning.
	err = ana.tmp.book(b, idProton, idProton)
	if err != nil {
		return err
	}

	err = ana.r.book(b)
	if err != nil {
		return err
	}

	ana.sumw, err = b.BookCounter("_sumWeightSelected")
	if err != nil {
		return fmt.Errorf("star2006: could not book counter: %w", err)
	}

	return nil
}

func (ana *Spectra) Analyze(evt analysis.Event) error {
	var (
		names = []string{"BBC1", "BBC2", "PionFS", "ProtonFS"}
		parts = make([][]event.Particle, len(names))
	)
	for i, name := range names {
		ps, err := evt.Apply(name)
		if err != nil {
			return fmt.Errorf("star2006: could not apply projection %q: %w", name, err)
		}
		parts[i] = ps
	}

	var (
		bbc1    = parts[0]
		bbc2    = parts[1]
		pions   = parts[2]
		protons = parts[3]
	)
	if len(bbc1) < 1 || len(bbc2) < 1 {
		return fmt.Errorf("star2006: failed beam-beam-counter trigger: %w", analysis.ErrVeto)
	}

	w := evt.Weight()
	for _, p := range pions {
		if p.AbsRapidity() >= rapMax {
			continue
		}
		fill(ana.h.piplus, ana.h.piminus, p, w)
		fill(ana.tmp.piplus, ana.tmp.piminus, p, w)
	}

	for _, p := range protons {
		if p.AbsRapidity() >= rapMax {
			continue
		}
		fill(ana.h.proton, ana.h.pbar, p, w)
	}

	ana.sumw.Fill(w)
	return nil
}

func (ana *Spectra) Finalize() error {
	for _, v := range []struct {
		path     string
		num, den *hbook.H1D
		dst      *estimate.Binned
	}{
		{"/" + Name + "/TMP/s_piminus_piplus", ana.h.piminus, ana.h.piplus, ana.r.piminusPiplus},
		{"/" + Name + "/TMP/s_antipr_pr", ana.h.pbar, ana.h.proton, ana.r.pbarProton},
		{"/" + Name + "/TMP/s_pr_piplus", ana.h.proton, ana.tmp.piplus, ana.r.protonPiplus},
		{"/" + Name + "/TMP/s_antipr_piminus", ana.h.pbar, ana.tmp.piminus, ana.r.pbarPiminus},
	} {
		ratio, err := estimate.Divide(v.path, v.num, v.den)
		if err != nil {
			return fmt.Errorf("star2006: could not compute ratio %q: %w", v.path, err)
		}
		err = v.dst.CopyFrom(ratio)
		if err != nil {
			return fmt.Errorf("star2006: could not store ratio %q: %w", v.dst.Path(), err)
		}
	}

	factor, err := normFactor(ana.sumw.SumW())
	if err != nil {
		return fmt.Errorf("star2006: could not normalize spectra: %w", err)
	}
	for _, h := range ana.h.all() {
		h.Scale(factor)
	}

	return nil
}

var (
	_ analysis.Analysis = (*Spectra)(nil)
)
