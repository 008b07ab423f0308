// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cuts provides composable particle selection predicates.
package cuts // import "github.com/go-lpc/star/cuts"

import (
	"github.com/go-lpc/star/event"
)

// Cut is a particle selection predicate.
type Cut func(p event.Particle) bool

// Open accepts every particle.
func Open() Cut {
	return func(event.Particle) bool { return true }
}

// And returns a cut accepting particles passing all the provided cuts.
func And(cs ...Cut) Cut {
	return func(p event.Particle) bool {
		for _, c := range cs {
			if !c(p) {
				return false
			}
		}
		return true
	}
}

// EtaIn accepts particles with lo <= eta < hi.
func EtaIn(lo, hi float64) Cut {
	return func(p event.Particle) bool {
		eta := p.Eta()
		return lo <= eta && eta < hi
	}
}

// AbsEtaLess accepts particles with |eta| < v.
func AbsEtaLess(v float64) Cut {
	return func(p event.Particle) bool {
		return p.AbsEta() < v
	}
}

// PtGreater accepts particles with pT > v.
func PtGreater(v float64) Cut {
	return func(p event.Particle) bool {
		return p.Pt() > v
	}
}

// AbsRapLess accepts particles with |y| < v.
func AbsRapLess(v float64) Cut {
	return func(p event.Particle) bool {
		return p.AbsRapidity() < v
	}
}

// AbsPID accepts particles and anti-particles of the given species.
func AbsPID(pid int64) Cut {
	if pid < 0 {
		pid = -pid
	}
	return func(p event.Particle) bool {
		return p.PID == pid || p.PID == -pid
	}
}

// Charged accepts electrically charged particles.
func Charged() Cut {
	return func(p event.Particle) bool {
		return p.IsCharged()
	}
}

// Filter returns the particles of ps passing c, in their original order.
func Filter(ps []event.Particle, c Cut) []event.Particle {
	var o []event.Particle
	for _, p := range ps {
		if c(p) {
			o = append(o, p)
		}
	}
	return o
}
