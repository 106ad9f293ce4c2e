package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/decibelcooper/zllplot"
	"github.com/decibelcooper/zllplot/ntuple"
	"github.com/decibelcooper/zllplot/selection"
)

var (
	pTMin    = flag.Float64("minpt", 20, "minimum generator transverse momentum")
	pTMax    = flag.Float64("maxpt", 100, "maximum generator transverse momentum")
	etaLimit = flag.Float64("etalimit", 2.5, "maximum absolute value of eta")
	resLimit = flag.Float64("reslimit", 0.1, "maximum momentum resolution in the color map")
	nBinsPT  = flag.Int("nbinspt", 8, "number of bins in transverse momentum")
	nBinsEta = flag.Int("nbinseta", 10, "number of bins in eta")
	cone     = flag.Float64("cone", 0.3, "reco-gen matching cone")
	title    = flag.String("title", "", "plot title")
	output   = flag.String("output", "out.png", "output file")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] <selected-signal-ntuple>

options:
`,
		os.Args[0],
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	p := plot.New()
	p.Title.Text = *title
	p.X.Label.Text = "η"
	p.Y.Label.Text = "p_T [GeV]"
	p.X.Tick.Marker = zllplot.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = zllplot.PreciseTicks{NSuggestedTicks: 5}

	resGrid := zllplot.NewResGrid(*nBinsEta, -*etaLimit, *etaLimit, *nBinsPT, *pTMin, *pTMax)

	var row selection.Row
	err := ntuple.ReadTree(flag.Arg(0), &row, func(int64) error {
		for _, m := range row.Matches(*cone) {
			if !m.Found {
				continue
			}
			resGrid.Fill(m.Gen.Eta, m.Gen.Pt, m.Reco.Pt/m.Gen.Pt)
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

	img := vgimg.New(670, 400)
	dc := draw.New(img)
	dc0 := draw.Crop(dc, 0, -70, 0, 0)
	dc1 := draw.Crop(dc, 620, 0, 0, 0)

	colorMap := moreland.ExtendedBlackBody()
	colorMap.SetMin(0)
	colorMap.SetMax(*resLimit)
	pal := colorMap.Palette(1000)
	heatMap := plotter.NewHeatMap(resGrid, pal)
	heatMap.Min = 0
	heatMap.Max = *resLimit
	p.Add(heatMap)

	p.Draw(dc0)

	p = plot.New()

	colorBar := &plotter.ColorBar{ColorMap: colorMap}
	colorBar.Vertical = true
	p.Add(colorBar)
	p.HideX()
	p.Y.Padding = 0

	p.Draw(dc1)

	w, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err = png.WriteTo(w); err != nil {
		log.Fatal(err)
	}
}
