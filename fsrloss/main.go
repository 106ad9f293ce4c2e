package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pkg/profile"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/zllplot"
	"github.com/decibelcooper/zllplot/flat"
	"github.com/decibelcooper/zllplot/ntuple"
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
	var (
		title   = flag.String("title", "", "plot title")
		output  = flag.String("output", "out.png", "output file")
		profDir = flag.String("profile", "", "write a CPU profile into this directory")
	)
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	if *profDir != "" {
		defer profile.Start(profile.ProfilePath(*profDir)).Stop()
	}

	p := plot.New()
	p.Title.Text = *title
	p.X.Label.Text = "fraction of lepton p_T radiated"
	p.X.Tick.Marker = zllplot.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Scale = plot.LogScale{}

	var hists []*hbook.H1D
	for _, filename := range flag.Args() {
		hs, err := makeHists(filename)
		if err != nil {
			log.Fatal(err)
		}
		hists = append(hists, hs...)
	}

	for i, hist := range hists {
		h := hplot.NewH1D(hist)
		h.FillColor = nil
		h.LogY = true
		h.LineStyle.Color = zllplot.LineColor(i)
		h.Infos.Style = hplot.HInfoNone

		p.Add(h)
		if i < 2 {
			p.Legend.Add([]string{"lepton", "antilepton"}[i], h)
		}
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, *output); err != nil {
		log.Fatal(err)
	}
}

// makeHists returns the distribution of 1 - pT(post-FSR)/pT(pre-FSR) for
// the negative and the positive lepton.
func makeHists(filename string) ([]*hbook.H1D, error) {
	negHist := hbook.NewH1D(50, 0, 1)
	posHist := hbook.NewH1D(50, 0, 1)

	var row flat.Row
	err := ntuple.ReadTree(filename, &row, func(int64) error {
		if row.GenL2Pt > 0 && row.GenL2fPt > 0 {
			negHist.Fill(1-row.GenL2fPt/row.GenL2Pt, 1)
		}
		if row.GenL1Pt > 0 && row.GenL1fPt > 0 {
			posHist.Fill(1-row.GenL1fPt/row.GenL1Pt, 1)
		}
		return nil
	}, "genL1_pt", "genL1f_pt", "genL2_pt", "genL2f_pt")
	if err != nil {
		return nil, err
	}
	return []*hbook.H1D{negHist, posHist}, nil
}
