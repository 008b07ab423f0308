// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"go-hep.org/x/hep/hepmc"
)

type hepmcReader struct {
	dec *hepmc.Decoder
	c   io.Closer
}

// NewHepMCReader returns a Reader decoding HepMC2 ASCII events from r.
// Momenta are expected in GeV.
func NewHepMCReader(r io.Reader) Reader {
	return newHepMCReader(r, nil)
}

func newHepMCReader(r io.Reader, c io.Closer) *hepmcReader {
	return &hepmcReader{
		dec: hepmc.NewDecoder(r),
		c:   c,
	}
}

func (r *hepmcReader) Read(evt *Event) error {
	var raw hepmc.Event
	err := r.dec.Decode(&raw)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return fmt.Errorf("event: could not decode HepMC event: %w", err)
	}

	FromHepMC(evt, &raw)
	return nil
}

func (r *hepmcReader) Close() error {
	if r.c == nil {
		return nil
	}
	return r.c.Close()
}

// FromHepMC fills dst with the content of the HepMC event src.
// Particles are stored in increasing barcode order.
// The event weight is the first HepMC weight, or 1 when there is none.
func FromHepMC(dst *Event, src *hepmc.Event) {
	dst.Reset()
	dst.Number = int64(src.EventNumber)
	dst.Weight = 1
	if len(src.Weights.Slice) > 0 {
		dst.Weight = src.Weights.Slice[0]
	}

	bcs := make([]int, 0, len(src.Particles))
	for bc := range src.Particles {
		bcs = append(bcs, bc)
	}
	sort.Ints(bcs)

	for _, bc := range bcs {
		p := src.Particles[bc]
		dst.Particles = append(dst.Particles, Particle{
			PID:    p.PdgID,
			Status: p.Status,
			P4:     p.Momentum,
		})
	}
}

var (
	_ Reader = (*hepmcReader)(nil)
)
