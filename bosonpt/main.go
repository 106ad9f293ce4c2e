package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/zllplot"
	"github.com/decibelcooper/zllplot/flat"
	"github.com/decibelcooper/zllplot/ntuple"
)

var (
	ptMax    = flag.Float64("maxpt", 100, "upper edge of the transverse momentum axis")
	nBins    = flag.Int("nbins", 50, "number of bins")
	weighted = flag.Bool("weighted", false, "weight events by the generator weight")
	title    = flag.String("title", "", "plot title")
	output   = flag.String("output", "out.png", "output file")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] <flat-ntuples>...

options:
`,
		os.Args[0],
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	p := plot.New()
	p.Title.Text = *title
	p.X.Label.Text = "boson p_T [GeV]"
	p.X.Tick.Marker = zllplot.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Scale = plot.LogScale{}

	i := 0
	for _, filename := range flag.Args() {
		pre, post, err := makeHists(filename)
		if err != nil {
			log.Fatal(err)
		}

		for _, hist := range []struct {
			h     *hbook.H1D
			label string
		}{{pre, "pre-FSR"}, {post, "post-FSR"}} {
			h := hplot.NewH1D(hist.h)
			h.FillColor = nil
			h.LogY = true
			h.LineStyle.Color = zllplot.LineColor(i)
			h.Infos.Style = hplot.HInfoNone

			p.Add(h)
			if flag.NArg() == 1 {
				p.Legend.Add(hist.label, h)
			} else {
				p.Legend.Add(filepath.Base(filename)+" "+hist.label, h)
			}
			i++
		}
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, *output); err != nil {
		log.Fatal(err)
	}
}

func makeHists(filename string) (pre, post *hbook.H1D, err error) {
	pre = hbook.NewH1D(*nBins, 0, *ptMax)
	post = hbook.NewH1D(*nBins, 0, *ptMax)

	var row flat.Row
	err = ntuple.ReadTree(filename, &row, func(int64) error {
		w := 1.0
		if *weighted {
			w = row.Weight
		}
		if row.GenVPt > 0 {
			pre.Fill(row.GenVPt, w)
		}
		if row.GenVfPt > 0 {
			post.Fill(row.GenVfPt, w)
		}
		return nil
	}, "genV_pt", "genVf_pt", "weight")
	return pre, post, err
}
