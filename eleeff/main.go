package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/zllplot"
	"github.com/decibelcooper/zllplot/ntuple"
	"github.com/decibelcooper/zllplot/selection"
)

var (
	pTMin    = flag.Float64("minpt", 25, "minimum generator transverse momentum")
	cone     = flag.Float64("cone", 0.3, "reco-gen matching cone")
	etaLimit = flag.Float64("etalimit", 2.5, "maximum absolute value of eta")
	nBins    = flag.Int("nbins", 50, "number of bins")
	title    = flag.String("title", "", "plot title")
	prefix   = flag.String("prefix", "out", "output file prefix")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] <selected-signal-ntuples>...

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
	p.X.Label.Text = "generator η"
	p.Y.Label.Text = "efficiency"
	p.X.Tick.Marker = zllplot.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = zllplot.PreciseTicks{NSuggestedTicks: 5}

	for i, filename := range flag.Args() {
		recoEtaHist := hbook.NewH1D(*nBins, -*etaLimit, *etaLimit)
		genEtaHist := hbook.NewH1D(*nBins, -*etaLimit, *etaLimit)

		var row selection.Row
		err := ntuple.ReadTree(filename, &row, func(int64) error {
			for _, m := range row.Matches(*cone) {
				if m.Gen.Pt < *pTMin {
					continue
				}
				genEtaHist.Fill(m.Gen.Eta, 1)
				if m.Found {
					recoEtaHist.Fill(m.Gen.Eta, 1)
				}
			}
			return nil
		},
			"genlep1_pt", "genlep1_eta", "genlep1_phi", "genlep1_m",
			"genlep2_pt", "genlep2_eta", "genlep2_phi", "genlep2_m",
			"lep1_pt", "lep1_eta", "lep1_phi", "lep1_m",
			"lep2_pt", "lep2_eta", "lep2_phi", "lep2_m",
		)
		if err != nil {
			log.Fatal(err)
		}

		errPoints, err := zllplot.Efficiency(recoEtaHist, genEtaHist)
		if err != nil {
			log.Fatal(err)
		}
		xerr, err := plotter.NewXErrorBars(errPoints)
		if err != nil {
			log.Fatal(err)
		}
		yerr, err := plotter.NewYErrorBars(errPoints)
		if err != nil {
			log.Fatal(err)
		}

		points, err := plotter.NewScatter(errPoints.XYs)
		if err != nil {
			log.Fatal(err)
		}

		pointColor := zllplot.LineColor(i)
		xerr.LineStyle.Color = pointColor
		yerr.LineStyle.Color = pointColor
		points.GlyphStyle.Color = pointColor
		points.GlyphStyle.Radius = vg.Points(1.5)

		p.Add(xerr, yerr, points)
		p.Legend.Add(strings.TrimSuffix(filepath.Base(filename), ".root"), points)
	}

	for _, ext := range []string{".pdf", ".png"} {
		if err := p.Save(6*vg.Inch, 4*vg.Inch, *prefix+ext); err != nil {
			log.Fatal(err)
		}
	}
}
