// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runcfg reads analyses-list files.
//
// An analyses-list file groups analyses by collision system.
// Each group starts with a "<system>:" tag line, followed by one line per
// analysis holding the analysis name and, optionally, the names of the
// histograms to keep:
//
//	pp_200:
//	STAR_2006_I709170 d02-x01-y01 d07-x01-y01
//	STAR_2006_I709170_TEST
//
//	pp_7000:
//	ATLAS_2010_S8918562
//
// Empty lines and lines starting with '#' are ignored.
package runcfg // import "github.com/go-lpc/star/internal/runcfg"

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry is an analysis and its selected histograms.
// An empty selection keeps all histograms.
type Entry struct {
	Analysis string
	Histos   []string
}

// System is the list of analyses for a collision system.
type System struct {
	Name    string
	Entries []Entry
}

// Analyses returns the names of the analyses of the system.
func (sys System) Analyses() []string {
	names := make([]string, len(sys.Entries))
	for i, e := range sys.Entries {
		names[i] = e.Analysis
	}
	return names
}

// Selection returns the histograms to keep, keyed by the name canonical
// returns for each analysis. Analyses keeping all their histograms are
// not part of the selection.
// A nil canonical keeps names as written.
func (sys System) Selection(canonical func(name string) (string, bool)) (map[string][]string, error) {
	if canonical == nil {
		canonical = func(name string) (string, bool) { return name, true }
	}

	sel := make(map[string][]string, len(sys.Entries))
	for _, e := range sys.Entries {
		if len(e.Histos) == 0 {
			continue
		}
		name, ok := canonical(e.Analysis)
		if !ok {
			return nil, fmt.Errorf("runcfg: unknown analysis %q in system %q", e.Analysis, sys.Name)
		}
		sel[name] = append(sel[name], e.Histos...)
	}
	return sel, nil
}

// Config is an analyses-list file.
type Config struct {
	Systems []System
}

// System returns the named system.
func (cfg *Config) System(name string) (System, bool) {
	for _, sys := range cfg.Systems {
		if sys.Name == name {
			return sys, true
		}
	}
	return System{}, false
}

// Check returns an error if any of the named systems is missing.
func (cfg *Config) Check(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := cfg.System(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("runcfg: missing analyses for systems %q", missing)
	}
	return nil
}

// Open reads the named analyses-list file.
func Open(fname string) (*Config, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("runcfg: could not open analyses list: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("runcfg: could not parse %q: %w", fname, err)
	}
	return cfg, nil
}

// Parse reads an analyses-list from r.
//
// A tag repeated later in the stream starts its system afresh, and an
// analysis listed twice within a system keeps its last selection.
func Parse(r io.Reader) (*Config, error) {
	var (
		cfg = new(Config)
		cur = -1
		sc  = bufio.NewScanner(r)
		n   = 0
	)
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasSuffix(line, ":") {
			name := strings.TrimSpace(strings.TrimSuffix(line, ":"))
			if name == "" {
				return nil, fmt.Errorf("runcfg: empty system tag (line %d)", n)
			}
			cur = cfg.reset(name)
			continue
		}

		if cur < 0 {
			return nil, fmt.Errorf("runcfg: analysis line before system tag (line %d): %q", n, line)
		}

		toks := strings.Fields(line)
		cfg.Systems[cur].add(Entry{
			Analysis: toks[0],
			Histos:   toks[1:],
		})
	}

	err := sc.Err()
	if err != nil {
		return nil, fmt.Errorf("runcfg: could not scan analyses list: %w", err)
	}

	return cfg, nil
}

func (cfg *Config) reset(name string) int {
	for i := range cfg.Systems {
		if cfg.Systems[i].Name == name {
			cfg.Systems[i].Entries = nil
			return i
		}
	}
	cfg.Systems = append(cfg.Systems, System{Name: name})
	return len(cfg.Systems) - 1
}

func (sys *System) add(e Entry) {
	if len(e.Histos) == 0 {
		e.Histos = nil
	}
	for i := range sys.Entries {
		if sys.Entries[i].Analysis == e.Analysis {
			sys.Entries[i] = e
			return
		}
	}
	sys.Entries = append(sys.Entries, e)
}
