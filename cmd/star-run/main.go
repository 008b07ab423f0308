// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command star-run runs physics analyses over HepMC or LCIO event files
// and writes their results to a YODA file.
//
// Usage: star-run [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//	$> star-run -a STAR_2006_I709170 -ref ./STAR_2006_I709170.yoda -o out.yoda ./evts.hepmc.gz
//	star-run: processing evt 0...
//	star-run: processing evt 1000...
//	star-run: processed 1500 events (sumw=1500)
//	star-run: STAR_2006_I709170: 312 vetoed events
//	star-run: results written to "out.yoda"
package main // import "github.com/go-lpc/star/cmd/star-run"

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/sbinet/pmon"

	"github.com/go-lpc/star/analysis"
	_ "github.com/go-lpc/star/analysis/star2006" // register STAR analyses
	"github.com/go-lpc/star/internal/runcfg"
	"github.com/go-lpc/star/internal/runner"
	"github.com/go-lpc/star/refdata"
)

const usage = `star-run runs physics analyses over HepMC or LCIO event files.

Usage: star-run [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Analyses are selected with -a, or with -list and -system:

 $> star-run -a STAR_2006_I709170,STAR_2006_I709170_TEST -ref ref.yoda ./evts.hepmc
 $> star-run -list analyses_list.txt -system pp_200 -ref ref.yoda ./evts.slcio

Reference data binnings are read from YODA files (-ref) and/or from a
MySQL database (-refdb). Files are searched first.

Options:
`

func main() {
	log.SetPrefix("star-run: ")
	log.SetFlags(0)

	err := xmain(os.Args[1:])
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

func xmain(args []string) error {
	var (
		fset = flag.NewFlagSet("star-run", flag.ExitOnError)

		anas   = fset.String("a", "", "comma-separated list of analyses to run")
		list   = fset.String("list", "", "path to analyses-list file")
		system = fset.String("system", "pp_200", "collision system to run from the analyses-list file")
		refs   = fset.String("ref", "", "comma-separated list of reference data YODA files")
		refdb  = fset.String("refdb", "", "DSN of the reference data database (user:pass@tcp(host:port)/db)")
		oname  = fset.String("o", "out.yoda", "path to output YODA file")
		njobs  = fset.Int("j", 0, "number of input files to decode concurrently (0: all)")
		freq   = fset.Int64("freq", 1000, "number of events between progress reports")
		dbg    = fset.Bool("v", false, "enable verbose debug output")
		doMon  = fset.Bool("pmon", false, "enable pmon monitoring")
		monf   = fset.Duration("pmon-freq", 1*time.Second, "pmon frequency")
	)

	fset.Usage = func() {
		fmt.Print(usage)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		return fmt.Errorf("could not parse input arguments: %w", err)
	}

	if fset.NArg() == 0 {
		fset.Usage()
		return fmt.Errorf("missing input event files")
	}

	msg := log.New(os.Stdout, "star-run: ", 0)

	if *doMon {
		return runMonitored(args, *oname+".pmon", *monf, msg)
	}

	names, sel, err := analysesFrom(*anas, *list, *system)
	if err != nil {
		return err
	}

	ref, closeRef, err := refdataFrom(*refs, *refdb)
	if err != nil {
		return err
	}
	defer closeRef()

	var objs []analysis.Analysis
	for _, name := range names {
		ana, err := analysis.New(name)
		if err != nil {
			return fmt.Errorf("could not create analysis %q: %w", name, err)
		}
		objs = append(objs, ana)
	}

	opts := []runner.Option{
		runner.WithLogger(msg),
		runner.WithFreq(*freq),
		runner.WithSelection(sel),
	}
	if *dbg {
		opts = append(opts, runner.WithDebug(log.New(os.Stderr, "star-run: [dbg] ", 0)))
	}

	r, err := runner.New(ref, objs, opts...)
	if err != nil {
		return fmt.Errorf("could not create analyses runner: %w", err)
	}

	err = r.Init()
	if err != nil {
		return fmt.Errorf("could not initialize analyses: %w", err)
	}

	err = r.Run(context.Background(), fset.Args(), *njobs)
	if err != nil {
		return fmt.Errorf("could not process events: %w", err)
	}

	err = r.Finalize()
	if err != nil {
		return fmt.Errorf("could not finalize analyses: %w", err)
	}

	err = r.WriteYODAFile(*oname)
	if err != nil {
		return fmt.Errorf("could not write results: %w", err)
	}
	msg.Printf("results written to %q", *oname)

	return nil
}

// analysesFrom returns the canonical names of the analyses to run and
// their output selections.
func analysesFrom(anas, list, system string) ([]string, map[string][]string, error) {
	var (
		names []string
		sel   = make(map[string][]string)
	)

	if list != "" {
		cfg, err := runcfg.Open(list)
		if err != nil {
			return nil, nil, fmt.Errorf("could not read analyses list: %w", err)
		}
		err = cfg.Check(system)
		if err != nil {
			return nil, nil, err
		}
		sys, _ := cfg.System(system)
		names = append(names, sys.Analyses()...)
		sel, err = sys.Selection(analysis.Canonical)
		if err != nil {
			return nil, nil, err
		}
	}

	for _, name := range strings.Split(anas, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		names = append(names, name)
	}

	if len(names) == 0 {
		return nil, nil, fmt.Errorf("no analysis to run")
	}

	uniq := make(map[string]struct{}, len(names))
	out := names[:0]
	for _, name := range names {
		cname, ok := analysis.Canonical(name)
		if !ok {
			return nil, nil, fmt.Errorf("unknown analysis %q (available: %q)", name, analysis.Names())
		}
		if _, dup := uniq[cname]; dup {
			continue
		}
		uniq[cname] = struct{}{}
		out = append(out, cname)
	}

	return out, sel, nil
}

func refdataFrom(files, dsn string) (refdata.Lookup, func(), error) {
	var (
		ref  refdata.Multi
		done = func() {}
	)
	for _, fname := range strings.Split(files, ",") {
		fname = strings.TrimSpace(fname)
		if fname == "" {
			continue
		}
		tbl, err := refdata.OpenYODA(fname)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open reference data file %q: %w", fname, err)
		}
		ref = append(ref, tbl)
	}

	if dsn != "" {
		db, err := refdata.OpenDB(dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open reference data database: %w", err)
		}
		ref = append(ref, db)
		done = func() {
			err := db.Close()
			if err != nil {
				log.Printf("could not close reference data database: %+v", err)
			}
		}
	}

	return ref, done, nil
}

// runMonitored runs star-run in a child process monitored by pmon.
func runMonitored(args []string, fname string, freq time.Duration, msg *log.Logger) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate star-run executable: %w", err)
	}

	out, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("could not create pmon log file: %w", err)
	}
	defer out.Close()

	cmd := exec.Command(exe, withoutPMon(args)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err = cmd.Start()
	if err != nil {
		return fmt.Errorf("could not start monitored process: %w", err)
	}

	p, err := pmon.Monitor(cmd.Process.Pid)
	if err != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("could not start monitoring (pid=%d): %w", cmd.Process.Pid, err)
	}
	p.W = out
	p.Freq = freq

	go func() {
		msg.Printf("run pmon (pid=%d)...", cmd.Process.Pid)
		err := p.Run()
		if err != nil {
			msg.Printf("could not run pmon: %+v", err)
		}
	}()

	err = cmd.Wait()
	if err != nil {
		return fmt.Errorf("could not run monitored process: %w", err)
	}

	return nil
}

func withoutPMon(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		name := strings.TrimLeft(arg, "-")
		if i := strings.Index(name, "="); i >= 0 {
			name = name[:i]
		}
		if strings.HasPrefix(arg, "-") && name == "pmon" {
			continue
		}
		out = append(out, arg)
	}
	return out
}
