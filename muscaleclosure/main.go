package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/profile"

	"github.com/decibelcooper/zllplot"
	"github.com/decibelcooper/zllplot/closure"
	"github.com/decibelcooper/zllplot/corr"
	"github.com/decibelcooper/zllplot/metrics"
	"github.com/decibelcooper/zllplot/pileup"
)

var (
	etaBins    = zllplot.NewFloatArrayFlags(0, 1.2, 2.1, 2.4)
	lumi       = flag.Float64("lumi", 40, "integrated luminosity in pb⁻¹")
	nBins      = flag.Int("nbins", 40, "number of mass bins")
	puFile     = flag.String("pileup", "", "ROOT file with the npv_rw vertex reweighting histogram")
	corrFile   = flag.String("corr", "", "YAML file with scale and resolution corrections")
	seed       = flag.Uint64("seed", 1, "seed of the smearing generator")
	outDir     = flag.String("output", "MuScaleClosureTestResults", "output directory for the plots")
	histsOut   = flag.String("hists", "", "also save the histograms to this ROOT file")
	metricsOut = flag.String("metrics", "", "write run metrics in the Prometheus text format to this file")
	profDir    = flag.String("profile", "", "write a CPU profile into this directory")
	verbose    = flag.Bool("v", false, "verbose output")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] <data-ntuple> <mc-ntuple> <corr-mc-ntuple>

options:
`,
		os.Args[0],
	)
	flag.PrintDefaults()
}

func main() {
	flag.Var(etaBins, "etabin", "|eta| bin edge (may be repeated or comma separated)")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 3 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	if *profDir != "" {
		defer profile.Start(profile.ProfilePath(*profDir)).Stop()
	}
	logger := zllplot.NewLogger(*verbose)
	slog.SetDefault(logger)
	writeMetrics := metrics.EnableTextfile(*metricsOut)

	edges, err := etaBins.Edges()
	if err != nil {
		log.Fatal(err)
	}

	tabs := corr.Defaults()
	if *corrFile != "" {
		tabs, err = corr.Load(*corrFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	var npv *pileup.VertexWeights
	if *puFile != "" {
		npv, err = pileup.LoadVertex(*puFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	cfg := closure.DefaultConfig()
	cfg.Lumi = *lumi
	cfg.NBins = *nBins
	cfg.EtaEdges = edges

	ct := closure.New(cfg, npv, corr.NewSmearer(tabs.Muon, *seed), logger)
	inputs := []closure.Input{closure.Data, closure.MC, closure.CorrMC}
	for i, in := range inputs {
		if err := ct.Fill(flag.Arg(i), in); err != nil {
			log.Fatal(err)
		}
	}
	ct.Integrals()

	if err := ct.Plot(*outDir); err != nil {
		log.Fatal(err)
	}
	if *histsOut != "" {
		if err := ct.Save(*histsOut); err != nil {
			log.Fatal(err)
		}
	}
	if err := writeMetrics(); err != nil {
		log.Fatal(err)
	}

	abs, _ := filepath.Abs(*outDir)
	logger.Info("outputs saved", "dir", abs)
}
