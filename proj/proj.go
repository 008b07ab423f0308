// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proj provides reusable per-event particle selection views.
package proj // import "github.com/go-lpc/star/proj"

import (
	"github.com/go-lpc/star/cuts"
	"github.com/go-lpc/star/event"
)

// Projection computes a view of an event.
type Projection interface {
	Project(evt *event.Event) []event.Particle
}

// FinalState selects final-state particles passing a cut.
type FinalState struct {
	cut cuts.Cut
}

// NewFinalState returns a final-state projection with the provided cut.
// A nil cut accepts every final-state particle.
func NewFinalState(cut cuts.Cut) *FinalState {
	if cut == nil {
		cut = cuts.Open()
	}
	return &FinalState{cut: cut}
}

func (fs *FinalState) Project(evt *event.Event) []event.Particle {
	var o []event.Particle
	for _, p := range evt.Particles {
		if p.Status != 1 {
			continue
		}
		if !fs.cut(p) {
			continue
		}
		o = append(o, p)
	}
	return o
}

// ChargedFinalState selects charged final-state particles passing a cut.
type ChargedFinalState struct {
	fs FinalState
}

// NewChargedFinalState returns a charged final-state projection.
func NewChargedFinalState(cut cuts.Cut) *ChargedFinalState {
	if cut == nil {
		cut = cuts.Open()
	}
	return &ChargedFinalState{
		fs: FinalState{cut: cuts.And(cuts.Charged(), cut)},
	}
}

func (cfs *ChargedFinalState) Project(evt *event.Event) []event.Particle {
	return cfs.fs.Project(evt)
}

// IdentifiedFinalState selects final-state particles of a given set of
// species, passing a cut.
type IdentifiedFinalState struct {
	fs  FinalState
	ids map[int64]struct{}
}

// NewIdentifiedFinalState returns a projection accepting no species.
// Species are added with AcceptID and AcceptIDPair.
func NewIdentifiedFinalState(cut cuts.Cut) *IdentifiedFinalState {
	return &IdentifiedFinalState{
		fs:  *NewFinalState(cut),
		ids: make(map[int64]struct{}),
	}
}

// AcceptID adds pid to the list of accepted species.
func (ifs *IdentifiedFinalState) AcceptID(pid int64) {
	ifs.ids[pid] = struct{}{}
}

// AcceptIDPair adds pid and its anti-particle to the list of accepted species.
func (ifs *IdentifiedFinalState) AcceptIDPair(pid int64) {
	ifs.AcceptID(+pid)
	ifs.AcceptID(-pid)
}

func (ifs *IdentifiedFinalState) Project(evt *event.Event) []event.Particle {
	var o []event.Particle
	for _, p := range ifs.fs.Project(evt) {
		if _, ok := ifs.ids[p.PID]; !ok {
			continue
		}
		o = append(o, p)
	}
	return o
}

var (
	_ Projection = (*FinalState)(nil)
	_ Projection = (*ChargedFinalState)(nil)
	_ Projection = (*IdentifiedFinalState)(nil)
)
