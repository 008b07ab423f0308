// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/go-lpc/star/event"
)

// Run processes all the events of the provided files.
//
// Up to njobs files are decoded concurrently (all of them when njobs <= 0).
// Events are handed to the analyses from a single goroutine, in no
// particular order across files.
func (r *Runner) Run(ctx context.Context, fnames []string, njobs int) error {
	if r.state != initialized {
		return fmt.Errorf("%w: cannot run %s runner", ErrState, r.state)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		grp, gctx = errgroup.WithContext(ctx)
		evts      = make(chan *event.Event, 64)
		done      = make(chan error, 1)
	)
	if njobs > 0 {
		grp.SetLimit(njobs)
	}

	go func() {
		defer close(evts)
		for _, fname := range fnames {
			fname := fname
			grp.Go(func() error {
				return read(gctx, fname, evts)
			})
		}
		done <- grp.Wait()
	}()

	var err error
	for evt := range evts {
		if err != nil {
			continue
		}
		err = r.Process(evt)
		if err != nil {
			cancel()
		}
	}

	if e := <-done; e != nil && err == nil {
		err = e
	}
	if err != nil {
		return fmt.Errorf("runner: could not run analyses: %w", err)
	}

	return nil
}

func read(ctx context.Context, fname string, evts chan<- *event.Event) error {
	r, err := event.Open(fname)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", fname, err)
	}
	defer r.Close()

	for {
		evt := new(event.Event)
		err := r.Read(evt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("could not read event from %q: %w", fname, err)
		}

		select {
		case evts <- evt:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	err = r.Close()
	if err != nil {
		return fmt.Errorf("could not close %q: %w", fname, err)
	}

	return nil
}
