// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hbook/yodacnv"

	"github.com/go-lpc/star/estimate"
)

// WriteYODA writes the output objects of all the analyses to w.
//
// Temporary objects (booked under TMP/) and counters are not written.
// Estimates are written as scatters.
func (r *Runner) WriteYODA(w io.Writer) error {
	if r.state != finalized {
		return fmt.Errorf("%w: cannot write results of %s runner", ErrState, r.state)
	}

	var objs []yodacnv.Marshaler
	for _, slot := range r.slots {
		sel := r.cfg.sel[slot.name]
		for _, path := range slot.paths {
			name := strings.TrimPrefix(path, "/"+slot.name+"/")
			if !selected(name, sel) {
				continue
			}
			switch obj := slot.objs[path].(type) {
			case *hbook.H1D:
				objs = append(objs, obj)
			case *estimate.Binned:
				objs = append(objs, obj.S2D())
			}
		}
	}

	err := yodacnv.Write(w, objs...)
	if err != nil {
		return fmt.Errorf("runner: could not write YODA objects: %w", err)
	}
	return nil
}

// WriteYODAFile writes the output objects of all the analyses to
// the named file.
func (r *Runner) WriteYODAFile(fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("runner: could not create output file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	err = r.WriteYODA(w)
	if err != nil {
		return err
	}

	err = w.Flush()
	if err != nil {
		return fmt.Errorf("runner: could not flush output file: %w", err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("runner: could not close output file: %w", err)
	}
	return nil
}

func selected(name string, sel []string) bool {
	if strings.HasPrefix(name, "TMP/") {
		return false
	}
	if len(sel) == 0 {
		return true
	}
	for _, v := range sel {
		if v == name {
			return true
		}
	}
	return false
}
