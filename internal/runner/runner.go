// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runner drives a set of analyses over streams of events.
package runner // import "github.com/go-lpc/star/internal/runner"

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-lpc/star/analysis"
	"github.com/go-lpc/star/event"
	"github.com/go-lpc/star/refdata"
)

var (
	// ErrState is returned when the runner is used out of its
	// init, analyze and finalize sequence.
	ErrState = errors.New("runner: invalid state")
)

type state uint8

const (
	uninitialized state = iota
	initialized
	finalized
)

func (st state) String() string {
	switch st {
	case uninitialized:
		return "uninitialized"
	case initialized:
		return "initialized"
	case finalized:
		return "finalized"
	}
	return fmt.Sprintf("state(%d)", uint8(st))
}

type config struct {
	msg  *log.Logger
	dbg  *log.Logger
	freq int64
	sel  map[string][]string
}

func newConfig() config {
	return config{
		msg:  log.New(os.Stdout, "runner: ", 0),
		dbg:  log.New(io.Discard, "", 0),
		freq: 1000,
	}
}

// Option configures a Runner.
type Option func(*config)

// WithLogger sets the logger used to report progress.
func WithLogger(msg *log.Logger) Option {
	return func(cfg *config) {
		cfg.msg = msg
	}
}

// WithDebug sets the logger used for debug messages, such as vetoed events.
// Debug messages are discarded by default.
func WithDebug(dbg *log.Logger) Option {
	return func(cfg *config) {
		cfg.dbg = dbg
	}
}

// WithFreq sets the number of events between two progress messages.
func WithFreq(n int64) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.freq = n
		}
	}
}

// WithSelection restricts the objects written out for each analysis.
// Analyses without entries in sel, or with an empty list, have all their
// objects written out.
func WithSelection(sel map[string][]string) Option {
	return func(cfg *config) {
		cfg.sel = sel
	}
}

// Runner runs analyses over events.
type Runner struct {
	cfg config
	ref refdata.Lookup

	state state
	slots []*slot

	nevts int64
	sumw  float64
}

// New creates a runner for the provided analyses.
// Reference data binnings are retrieved from ref.
func New(ref refdata.Lookup, anas []analysis.Analysis, opts ...Option) (*Runner, error) {
	if len(anas) == 0 {
		return nil, fmt.Errorf("runner: no analysis to run")
	}

	r := &Runner{
		cfg: newConfig(),
		ref: ref,
	}
	for _, opt := range opts {
		opt(&r.cfg)
	}

	names := make(map[string]struct{}, len(anas))
	for _, ana := range anas {
		name := ana.Name()
		if _, dup := names[name]; dup {
			return nil, fmt.Errorf("runner: duplicate analysis %q", name)
		}
		names[name] = struct{}{}
		r.slots = append(r.slots, newSlot(r, ana))
	}

	return r, nil
}

// Init initializes all the analyses.
func (r *Runner) Init() error {
	if r.state != uninitialized {
		return fmt.Errorf("%w: cannot initialize %s runner", ErrState, r.state)
	}

	for _, slot := range r.slots {
		err := slot.ana.Init(slot)
		if err != nil {
			return fmt.Errorf("runner: could not initialize analysis %q: %w", slot.name, err)
		}
	}

	r.state = initialized
	return nil
}

// Process runs all the analyses over the provided event.
// Vetoed events are logged and do not stop the processing.
func (r *Runner) Process(evt *event.Event) error {
	if r.state != initialized {
		return fmt.Errorf("%w: cannot process event with %s runner", ErrState, r.state)
	}

	if r.nevts%r.cfg.freq == 0 {
		r.cfg.msg.Printf("processing evt %d...", r.nevts)
	}
	r.nevts++
	r.sumw += evt.Weight

	for _, slot := range r.slots {
		err := slot.process(evt)
		switch {
		case err == nil:
		case errors.Is(err, analysis.ErrVeto):
			slot.vetoed++
			r.cfg.dbg.Printf("%s: evt %d vetoed: %+v", slot.name, evt.Number, err)
		default:
			return fmt.Errorf("runner: could not analyze evt %d with %q: %w", evt.Number, slot.name, err)
		}
	}

	return nil
}

// Finalize finalizes all the analyses.
func (r *Runner) Finalize() error {
	if r.state != initialized {
		return fmt.Errorf("%w: cannot finalize %s runner", ErrState, r.state)
	}
	r.state = finalized

	r.cfg.msg.Printf("processed %d events (sumw=%g)", r.nevts, r.sumw)
	for _, slot := range r.slots {
		if slot.vetoed > 0 {
			r.cfg.msg.Printf("%s: %d vetoed events", slot.name, slot.vetoed)
		}
		err := slot.ana.Finalize()
		if err != nil {
			return fmt.Errorf("runner: could not finalize analysis %q: %w", slot.name, err)
		}
	}

	return nil
}

// NumEvents returns the number of processed events.
func (r *Runner) NumEvents() int64 { return r.nevts }

// SumW returns the sum of weights of the processed events.
func (r *Runner) SumW() float64 { return r.sumw }

// Object returns the booked object with the provided full path.
func (r *Runner) Object(path string) (any, bool) {
	for _, slot := range r.slots {
		if obj, ok := slot.objs[path]; ok {
			return obj, true
		}
	}
	return nil, false
}
