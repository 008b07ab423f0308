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

// Untriggered is the STAR_2006_I709170_TEST analysis.
//
// It applies no event selection and normalizes the spectra to the
// total event weight seen by the host.
type Untriggered struct {
	b analysis.Booker

	h   spectra
	tmp tmpPions
	r   ratios

	central cuts.Cut
}

// NewTest returns a new STAR_2006_I709170_TEST analysis.
func NewTest() *Untriggered {
	return &Untriggered{
		central: cuts.AbsRapLess(rapMax),
	}
}

func (*Untriggered) Name() string { return NameTest }

func (ana *Untriggered) Init(b analysis.Booker) error {
	ana.b = b

	var (
		pions = proj.NewFinalState(cuts.And(
			cuts.AbsEtaLess(etaMax), cuts.PtGreater(ptMinPi), cuts.AbsPID(event.PiPlus),
		))
		protons = proj.NewFinalState(cuts.And(
			cuts.AbsEtaLess(etaMax), cuts.PtGreater(ptMinP), cuts.AbsPID(event.Proton),
		))
	)

	err := b.Declare("PionFS", pions)
	if err != nil {
		return fmt.Errorf("star2006: could not declare pion projection: %w", err)
	}
	err = b.Declare("ProtonFS", protons)
	if err != nil {
		return fmt.Errorf("star2006: could not declare proton projection: %w", err)
	}

	err = ana.h.book(b)
	if err != nil {
		return err
	}

	// pion spectra with the proton (resp. anti-proton) binning.
	err = ana.tmp.book(b, idProton, idPBar)
	if err != nil {
		return err
	}

	return ana.r.book(b)
}

func (ana *Untriggered) Analyze(evt analysis.Event) error {
	pions, err := evt.Apply("PionFS")
	if err != nil {
		return fmt.Errorf("star2006: could not apply pion projection: %w", err)
	}
	protons, err := evt.Apply("ProtonFS")
	if err != nil {
		return fmt.Errorf("star2006: could not apply proton projection: %w", err)
	}

	w := evt.Weight()
	for _, p := range cuts.Filter(pions, ana.central) {
		fill(ana.h.piplus, ana.h.piminus, p, w)
		fill(ana.tmp.piplus, ana.tmp.piminus, p, w)
	}

	for _, p := range cuts.Filter(protons, ana.central) {
		fill(ana.h.proton, ana.h.pbar, p, w)
	}

	return nil
}

func (ana *Untriggered) Finalize() error {
	for _, v := range []struct {
		num, den *hbook.H1D
		dst      *estimate.Binned
	}{
		{ana.h.piminus, ana.h.piplus, ana.r.piminusPiplus},
		{ana.h.pbar, ana.h.proton, ana.r.pbarProton},
		{ana.h.proton, ana.tmp.piplus, ana.r.protonPiplus},
		{ana.h.pbar, ana.tmp.piminus, ana.r.pbarPiminus},
	} {
		err := estimate.DivideInto(v.dst, v.num, v.den)
		if err != nil {
			return fmt.Errorf("star2006: could not compute ratio %q: %w", v.dst.Path(), err)
		}
	}

	factor, err := normFactor(ana.b.SumW())
	if err != nil {
		return fmt.Errorf("star2006: could not normalize spectra: %w", err)
	}
	for _, h := range append(ana.h.all(), ana.tmp.piplus, ana.tmp.piminus) {
		h.Scale(factor)
	}

	return nil
}

var (
	_ analysis.Analysis = (*Untriggered)(nil)
)
