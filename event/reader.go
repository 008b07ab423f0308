// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
	"go-hep.org/x/hep/lcio"
)

// Reader reads events from a stream.
type Reader interface {
	// Read decodes the next event into evt.
	// Read returns io.EOF when no more event is available.
	Read(evt *Event) error
	Close() error
}

// Open opens the named file and returns a Reader for the events it holds.
//
// LCIO files are recognized by their ".slcio" extension.
// Every other file is read as a HepMC2 ASCII stream, transparently
// decompressed when it ends with ".gz" or ".xz".
func Open(fname string) (Reader, error) {
	if filepath.Ext(fname) == ".slcio" {
		r, err := lcio.Open(fname)
		if err != nil {
			return nil, fmt.Errorf("event: could not open LCIO file %q: %w", fname, err)
		}
		return NewLCIOReader(r, MCParticleCollection), nil
	}

	f, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("event: could not open HepMC file %q: %w", fname, err)
	}

	var (
		r      io.Reader = f
		closer io.Closer = f
	)
	switch {
	case strings.HasSuffix(fname, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("event: could not open gzip stream %q: %w", fname, err)
		}
		r = gz
		closer = multiCloser{gz, f}
	case strings.HasSuffix(fname, ".xz"):
		xr, err := xz.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("event: could not open xz stream %q: %w", fname, err)
		}
		r = xr
	}

	return newHepMCReader(r, closer), nil
}

type multiCloser []io.Closer

func (mc multiCloser) Close() error {
	var err error
	for _, c := range mc {
		e := c.Close()
		if e != nil && err == nil {
			err = e
		}
	}
	return err
}
