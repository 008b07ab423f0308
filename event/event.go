// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package event describes generator-level collision events and the
// particles they hold.
package event // import "github.com/go-lpc/star/event"

import (
	"math"

	"go-hep.org/x/hep/fmom"
)

// Well-known PDG identifiers.
const (
	PiPlus  = 211
	PiMinus = -211
	Proton  = 2212
	PBar    = -2212
)

// Particle is a generator-level particle.
type Particle struct {
	PID    int64        // PDG identifier
	Status int          // generator status (1: final state)
	P4     fmom.PxPyPzE // four-momentum [GeV]
}

// Pt returns the transverse momentum of the particle.
func (p Particle) Pt() float64 {
	return math.Hypot(p.P4.Px(), p.P4.Py())
}

// Eta returns the pseudorapidity of the particle.
// Particles along the beam axis have an infinite pseudorapidity.
func (p Particle) Eta() float64 {
	var (
		pz = p.P4.Pz()
		pt = p.Pt()
	)
	if pt == 0 {
		switch {
		case pz > 0:
			return math.Inf(+1)
		case pz < 0:
			return math.Inf(-1)
		}
		return 0
	}
	return math.Asinh(pz / pt)
}

// AbsEta returns the absolute value of the pseudorapidity.
func (p Particle) AbsEta() float64 {
	return math.Abs(p.Eta())
}

// Rapidity returns the rapidity of the particle.
func (p Particle) Rapidity() float64 {
	var (
		e  = p.P4.E()
		pz = p.P4.Pz()
	)
	switch {
	case e <= pz:
		return math.Inf(+1)
	case e <= -pz:
		return math.Inf(-1)
	}
	return 0.5 * math.Log((e+pz)/(e-pz))
}

// AbsRapidity returns the absolute value of the rapidity.
func (p Particle) AbsRapidity() float64 {
	return math.Abs(p.Rapidity())
}

// Charge3 returns three times the electric charge of the particle.
func (p Particle) Charge3() int {
	return Charge3(p.PID)
}

// IsCharged returns whether the particle is electrically charged.
func (p Particle) IsCharged() bool {
	return p.Charge3() != 0
}

// Event is a generator-level collision event.
type Event struct {
	Run       int64
	Number    int64
	Weight    float64
	Particles []Particle
}

// Reset clears the event so its storage can be reused for decoding.
func (evt *Event) Reset() {
	evt.Run = 0
	evt.Number = 0
	evt.Weight = 0
	evt.Particles = evt.Particles[:0]
}
