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
	"github.com/decibelcooper/zllplot/conf"
	"github.com/decibelcooper/zllplot/export"
	"github.com/decibelcooper/zllplot/metrics"
	"github.com/decibelcooper/zllplot/ntuple"
	"github.com/decibelcooper/zllplot/pileup"
	"github.com/decibelcooper/zllplot/selection"
	"github.com/decibelcooper/zllplot/trigger"
)

var (
	puFile     = flag.String("pileup", "", "ROOT file with the pileup reweighting histograms")
	menuFile   = flag.String("menu", "", "trigger menu file (default menu if empty)")
	massWindow = flag.Bool("masswindow", false, "drop dielectron candidates outside [mlow, mhigh] (off by default)")
	massLow    = flag.Float64("mlow", 40, "lower edge of the mass window")
	massHigh   = flag.Float64("mhigh", 200, "upper edge of the mass window")
	withArrow  = flag.Bool("arrow", false, "also write each sample as an Arrow IPC stream")
	metricsOut = flag.String("metrics", "", "write run metrics in the Prometheus text format to this file")
	profDir    = flag.String("profile", "", "write a CPU profile into this directory")
	verbose    = flag.Bool("v", false, "verbose output")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] <sample-conf> [output-dir]

Every event with at least one selected electron is written. Dielectron
candidates are cut to [mlow, mhigh] only when -masswindow is given.

options:
`,
		os.Args[0],
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 || flag.NArg() > 2 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	outDir := "."
	if flag.NArg() == 2 {
		outDir = flag.Arg(1)
	}

	if *profDir != "" {
		defer profile.Start(profile.ProfilePath(*profDir)).Stop()
	}
	logger := zllplot.NewLogger(*verbose)
	slog.SetDefault(logger)
	writeMetrics := metrics.EnableTextfile(*metricsOut)

	samples, err := conf.Load(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	menu, err := trigger.LoadMenu(*menuFile)
	if err != nil {
		log.Fatal(err)
	}

	var pu *pileup.Weights
	if *puFile != "" {
		pu, err = pileup.Load(*puFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	ntupDir := filepath.Join(outDir, "ntuples")
	if err := os.MkdirAll(ntupDir, 0o755); err != nil {
		log.Fatal(err)
	}

	cfg := selection.DefaultConfig()
	cfg.MassWindow = *massWindow
	cfg.MassLow, cfg.MassHigh = *massLow, *massHigh
	sel := selection.New(cfg, menu, pu, selection.WithLogger(logger))

	for _, sample := range samples {
		if err := run(sel, sample, ntupDir, logger); err != nil {
			log.Fatal(err)
		}
	}

	if err := writeMetrics(); err != nil {
		log.Fatal(err)
	}
	logger.Info("outputs saved", "dir", ntupDir)
}

func run(sel *selection.Selector, sample conf.Sample, dir string, logger *slog.Logger) error {
	var row selection.Row

	out := filepath.Join(dir, sample.Name+"_select.raw.root")
	tw, err := ntuple.NewTreeWriter(out, &row)
	if err != nil {
		return err
	}
	writers := []ntuple.RowWriter{tw}

	if *withArrow {
		f, err := os.Create(filepath.Join(dir, sample.Name+"_select.arrow"))
		if err != nil {
			tw.Close()
			return err
		}
		aw, err := export.NewArrowWriter(f, &row)
		if err != nil {
			tw.Close()
			return err
		}
		writers = append(writers, aw)
	}

	yields, selErr := sel.SelectSample(sample, &row, writers...)
	for _, w := range writers {
		if err := w.Close(); err != nil && selErr == nil {
			selErr = err
		}
	}
	if selErr != nil {
		return fmt.Errorf("sample %q: %w", sample.Name, selErr)
	}

	var total selection.Yield
	for _, y := range yields {
		total.Read += y.Read
		total.N += y.N
		total.SumW += y.SumW
		total.SumW2 += y.SumW2
	}
	logger.Info("sample done", "sample", sample.Name, "label", sample.Label,
		"read", total.Read, "events", total.N, "sumw", total.SumW, "err", total.Err(), "output", out)
	return nil
}
