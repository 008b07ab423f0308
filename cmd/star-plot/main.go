// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command star-plot draws the histograms and scatters of YODA files.
//
// Each object is drawn in its own plot, saved under the output directory
// with a name derived from its YODA path.
package main // import "github.com/go-lpc/star/cmd/star-plot"

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hbook/yodacnv"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const usage = `star-plot draws the histograms and scatters of YODA files.

Usage: star-plot [OPTIONS] FILE1.yoda [FILE2.yoda [...]]

Example:

 $> star-plot -o plots -ext png ./out.yoda
 star-plot: plots/STAR_2006_I709170_d02-x01-y01.png
 star-plot: plots/STAR_2006_I709170_d23-x01-y02.png
 [...]

Options:
`

func main() {
	log.SetPrefix("star-plot: ")
	log.SetFlags(0)

	err := xmain(os.Args[1:])
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

func xmain(args []string) error {
	var (
		fset = flag.NewFlagSet("star-plot", flag.ExitOnError)

		odir = fset.String("o", ".", "output directory")
		ext  = fset.String("ext", "png", "output file format (png, pdf, svg, ...)")
		xlbl = fset.String("x", "p_T [GeV]", "x-axis label")
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
		return fmt.Errorf("missing input YODA file")
	}

	err = os.MkdirAll(*odir, 0755)
	if err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}

	for _, fname := range fset.Args() {
		_, err := plotFile(fname, *odir, *ext, *xlbl)
		if err != nil {
			return fmt.Errorf("could not plot %q: %w", fname, err)
		}
	}

	return nil
}

// plotFile plots all the objects of the named YODA file and returns the
// names of the created files.
func plotFile(fname, odir, ext, xlabel string) ([]string, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("could not open YODA file: %w", err)
	}
	defer f.Close()

	objs, err := yodacnv.Read(f)
	if err != nil {
		return nil, fmt.Errorf("could not read YODA file: %w", err)
	}

	var onames []string
	for _, obj := range objs {
		var (
			p    *hplot.Plot
			name string
		)
		switch obj := any(obj).(type) {
		case *hbook.H1D:
			name = obj.Name()
			p = plotH1D(obj)
		case *hbook.S2D:
			name = nameOf(obj.Annotation())
			p, err = plotS2D(obj)
			if err != nil {
				return onames, fmt.Errorf("could not plot %q: %w", name, err)
			}
		default:
			continue
		}

		p.Title.Text = name
		p.X.Label.Text = xlabel

		oname := filepath.Join(odir, fileName(name)+"."+ext)
		err = p.Save(12*vg.Centimeter, 9*vg.Centimeter, oname)
		if err != nil {
			return onames, fmt.Errorf("could not save %q: %w", oname, err)
		}
		log.Printf("%s", oname)
		onames = append(onames, oname)
	}

	return onames, nil
}

func plotH1D(h *hbook.H1D) *hplot.Plot {
	p := hplot.New()
	hh := hplot.NewH1D(h)
	hh.Infos.Style = hplot.HInfoNone
	hh.LineStyle.Color = color.RGBA{B: 255, A: 255}
	p.Add(hh)
	p.Add(hplot.NewGrid())
	return p
}

// plotS2D plots the finite points of s with their y-errors.
func plotS2D(s *hbook.S2D) (*hplot.Plot, error) {
	var (
		pts  plotter.XYs
		xerr plotter.XErrors
		yerr plotter.YErrors
	)
	for i := 0; i < s.Len(); i++ {
		pt := s.Point(i)
		if math.IsNaN(pt.Y) || math.IsInf(pt.Y, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: pt.X, Y: pt.Y})
		xerr = append(xerr, struct{ Low, High float64 }{pt.ErrX.Min, pt.ErrX.Max})
		yerr = append(yerr, struct{ Low, High float64 }{pt.ErrY.Min, pt.ErrY.Max})
	}

	p := hplot.New()
	p.Add(hplot.NewGrid())
	if len(pts) == 0 {
		return p, nil
	}

	data := plotutil.ErrorPoints{XYs: pts, XErrors: xerr, YErrors: yerr}
	sca, err := plotter.NewScatter(data)
	if err != nil {
		return nil, fmt.Errorf("could not create scatter: %w", err)
	}
	xbars, err := plotter.NewXErrorBars(data)
	if err != nil {
		return nil, fmt.Errorf("could not create x-error bars: %w", err)
	}
	ybars, err := plotter.NewYErrorBars(data)
	if err != nil {
		return nil, fmt.Errorf("could not create y-error bars: %w", err)
	}
	p.Add(sca, xbars, ybars)

	return p, nil
}

func nameOf(ann hbook.Annotation) string {
	for _, k := range []string{"name", "path", "Path"} {
		if v, ok := ann[k].(string); ok && v != "" {
			return v
		}
	}
	return "scatter"
}

// fileName turns a YODA path into a file name.
func fileName(path string) string {
	path = strings.Trim(path, "/")
	return strings.NewReplacer("/", "_", " ", "_").Replace(path)
}
