package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/zllplot"
	"github.com/decibelcooper/zllplot/ntuple"
	"github.com/decibelcooper/zllplot/selection"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] <selected-ntuple>

options:
`,
		os.Args[0],
	)
	flag.PrintDefaults()
}

var (
	output = flag.String("output", "out.png", "output file")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	p := plot.New()
	p.X.Label.Text = "supercluster E_T / electron p_T"
	p.X.Tick.Marker = zllplot.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Scale = plot.LogScale{}

	hist := hbook.NewH1D(100, 0, 3)

	var row selection.Row
	err := ntuple.ReadTree(flag.Arg(0), &row, func(int64) error {
		if row.Lep1Pt > 0 {
			hist.Fill(row.Sc1Pt/row.Lep1Pt, 1)
		}
		if row.Lep2Pt > 0 {
			hist.Fill(row.Sc2Pt/row.Lep2Pt, 1)
		}
		return nil
	}, "lep1_pt", "lep2_pt", "sc1_pt", "sc2_pt")
	if err != nil {
		log.Fatal(err)
	}

	hPlot := hplot.NewH1D(hist)
	hPlot.LogY = true
	p.Add(hPlot)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, *output); err != nil {
		log.Fatal(err)
	}
}
