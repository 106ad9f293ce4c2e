package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/zllplot"
	"github.com/decibelcooper/zllplot/ntuple"
	"github.com/decibelcooper/zllplot/selection"
)

var (
	categories = []uint32{selection.Cat2HLT, selection.Cat1HLT1L1, selection.Cat1HLT}

	nBins  = flag.Int("nbins", 60, "number of bins")
	mLow   = flag.Float64("min", 60, "lower edge of the mass axis")
	mHigh  = flag.Float64("max", 120, "upper edge of the mass axis")
	lumi   = flag.Float64("lumi", 0, "scale simulation by scale1fb times this luminosity in pb⁻¹ (0 counts events)")
	title  = flag.String("title", "", "plot title")
	output = flag.String("output", "out.png", "output file")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] <selected-ntuples>...

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
	p.X.Label.Text = "m_ll [GeV]"
	p.Y.Label.Text = "Events"
	p.X.Tick.Marker = zllplot.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = zllplot.PreciseTicks{NSuggestedTicks: 5}

	for i, filename := range flag.Args() {
		hist, err := makeMassHist(filename)
		if err != nil {
			log.Fatal(err)
		}

		h := hplot.NewH1D(hist)
		h.LineStyle.Color = zllplot.LineColor(i)
		if flag.NArg() == 1 {
			h.Infos.Style = hplot.HInfoSummary
		}

		p.Add(h)
		p.Legend.Add(strings.TrimSuffix(filepath.Base(filename), ".root"), h)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, *output); err != nil {
		log.Fatal(err)
	}
}

func makeMassHist(filename string) (*hbook.H1D, error) {
	hist := hbook.NewH1D(*nBins, *mLow, *mHigh)

	var row selection.Row
	err := ntuple.ReadTree(filename, &row, func(int64) error {
		if !slices.Contains(categories, row.Category) || row.Q1 == row.Q2 {
			return nil
		}
		w := 1.0
		if *lumi > 0 {
			w = float64(row.Scale1fb) * *lumi
		}
		hist.Fill(row.DilepM, w)
		return nil
	}, "category", "q1", "q2", "scale1fb", "dilep_m")
	if err != nil {
		return nil, err
	}
	return hist, nil
}
