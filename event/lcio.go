// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import (
	"fmt"
	"io"
	"math"

	"go-hep.org/x/hep/fmom"
	"go-hep.org/x/hep/lcio"
)

const (
	// MCParticleCollection is the default name of the LCIO collection
	// holding generator particles.
	MCParticleCollection = "MCParticle"

	// WeightParam is the name of the LCIO event parameter holding
	// the event weight.
	WeightParam = "_weight"
)

type lcioReader struct {
	r    *lcio.Reader
	coll string
}

// NewLCIOReader returns a Reader converting the coll collection of
// each LCIO event read from r.
func NewLCIOReader(r *lcio.Reader, coll string) Reader {
	return &lcioReader{r: r, coll: coll}
}

func (r *lcioReader) Read(evt *Event) error {
	if !r.r.Next() {
		err := r.r.Err()
		if err != nil {
			return fmt.Errorf("event: could not read LCIO event: %w", err)
		}
		return io.EOF
	}

	raw := r.r.Event()
	return FromLCIO(evt, &raw, r.coll)
}

func (r *lcioReader) Close() error {
	return r.r.Close()
}

// FromLCIO fills dst with the particles of the coll collection of src.
func FromLCIO(dst *Event, src *lcio.Event, coll string) error {
	dst.Reset()
	dst.Run = int64(src.RunNumber)
	dst.Number = int64(src.EventNumber)
	dst.Weight = 1
	if ws := src.Params.Floats[WeightParam]; len(ws) > 0 {
		dst.Weight = float64(ws[0])
	}

	mcs, ok := src.Get(coll).(*lcio.McParticleContainer)
	if !ok {
		return fmt.Errorf(
			"event: could not find MC particle collection %q in event (run=%d, evt=%d)",
			coll, src.RunNumber, src.EventNumber,
		)
	}

	for i := range mcs.Particles {
		p := &mcs.Particles[i]
		var (
			px = p.P[0]
			py = p.P[1]
			pz = p.P[2]
			m  = float64(p.Mass)
			e  = math.Sqrt(px*px + py*py + pz*pz + m*m)
		)
		dst.Particles = append(dst.Particles, Particle{
			PID:    int64(p.PDG),
			Status: int(p.GenStatus),
			P4:     fmom.NewPxPyPzE(px, py, pz, e),
		})
	}

	return nil
}

var (
	_ Reader = (*lcioReader)(nil)
)
