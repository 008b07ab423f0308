// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// evt-dump decodes and displays the particles of HepMC or LCIO events.
//
// Usage: evt-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//	$> evt-dump -n 1 -final ./evts.hepmc.gz
//	=== evt 0 (run=0, weight=1) ===
//	particles:       245
//	     pid  st         pT        eta          y
//	     211   1     0.4125     -0.921     -0.843
//	   -2212   1     1.2250      0.130      0.102
//	[...]
package main // import "github.com/go-lpc/star/cmd/evt-dump"

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-lpc/star/event"
)

const usage = `evt-dump decodes and displays the particles of HepMC or LCIO events.

Usage: evt-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> evt-dump -n 1 -final ./evts.hepmc.gz
 === evt 0 (run=0, weight=1) ===
 particles:       245
      pid  st         pT        eta          y
      211   1     0.4125     -0.921     -0.843
    -2212   1     1.2250      0.130      0.102
 [...]

Options:
`

func main() {
	xmain(os.Stdout, os.Args[1:])
}

func xmain(w io.Writer, args []string) {
	log.SetPrefix("evt-dump: ")
	log.SetFlags(0)

	var (
		fset = flag.NewFlagSet("evt-dump", flag.ExitOnError)

		nevts = fset.Int64("n", -1, "number of events to display per file (-1: all)")
		final = fset.Bool("final", false, "display only final state particles")
	)

	fset.Usage = func() {
		fmt.Print(usage)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		log.Fatalf("could not parse input arguments: %+v", err)
	}

	if fset.NArg() == 0 {
		fset.Usage()
		log.Fatalf("missing path to input event file")
	}

	for _, fname := range fset.Args() {
		err := process(w, fname, *nevts, *final)
		if err != nil {
			log.Fatalf("could not dump file %q: %+v", fname, err)
		}
	}
}

func process(w io.Writer, fname string, nevts int64, final bool) error {
	wbuf := bufio.NewWriter(w)
	defer wbuf.Flush()

	r, err := event.Open(fname)
	if err != nil {
		return fmt.Errorf("could not open event file: %w", err)
	}
	defer r.Close()

	var evt event.Event
	for i := int64(0); nevts < 0 || i < nevts; i++ {
		err := r.Read(&evt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("could not read event: %w", err)
		}
		dump(wbuf, &evt, final)
	}

	err = wbuf.Flush()
	if err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}

	return nil
}

func dump(w io.Writer, evt *event.Event, final bool) {
	fmt.Fprintf(w, "=== evt %d (run=%d, weight=%g) ===\n", evt.Number, evt.Run, evt.Weight)
	fmt.Fprintf(w, "particles: % 9d\n", len(evt.Particles))
	fmt.Fprintf(w, "% 8s % 3s % 10s % 10s % 10s\n", "pid", "st", "pT", "eta", "y")
	for _, p := range evt.Particles {
		if final && p.Status != 1 {
			continue
		}
		fmt.Fprintf(w, "% 8d % 3d % 10.4f % 10.3f % 10.3f\n",
			p.PID, p.Status, p.Pt(), p.Eta(), p.Rapidity(),
		)
	}
}
