package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/pkg/profile"

	"github.com/decibelcooper/zllplot"
	"github.com/decibelcooper/zllplot/bacon"
	"github.com/decibelcooper/zllplot/export"
	"github.com/decibelcooper/zllplot/flat"
	"github.com/decibelcooper/zllplot/metrics"
	"github.com/decibelcooper/zllplot/ntuple"
)

var (
	first      = flag.Int64("first", 0, "first entry to process")
	maxEntries = flag.Int64("max", -1, "maximum number of entries to process (-1 for all)")
	entry      = flag.Int64("entry", -1, "process this single entry only, with debug output")
	bosonID    = flag.Int("vid", -24, "PDG code of the boson to reconstruct")
	withLHE    = flag.Bool("lhe", false, "also write the LHE weights")
	arrowOut   = flag.String("arrow", "", "also write the rows as an Arrow IPC stream to this file")
	metricsOut = flag.String("metrics", "", "write run metrics in the Prometheus text format to this file")
	profDir    = flag.String("profile", "", "write a CPU profile into this directory")
	verbose    = flag.Bool("v", false, "verbose output")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] <bacon-input-file> <output-file>

options:
`,
		os.Args[0],
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 2 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	if *profDir != "" {
		defer profile.Start(profile.ProfilePath(*profDir)).Stop()
	}
	logger := zllplot.NewLogger(*verbose || *entry >= 0)
	slog.SetDefault(logger)
	writeMetrics := metrics.EnableTextfile(*metricsOut)

	in, err := bacon.Open(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	var (
		base   flat.Row
		lhe    flat.RowLHE
		row    any = &base
		writer []ntuple.RowWriter
	)
	if *withLHE {
		row = &lhe
	}

	tw, err := ntuple.NewTreeWriter(flag.Arg(1), row)
	if err != nil {
		log.Fatal(err)
	}
	writer = append(writer, tw)

	if *arrowOut != "" {
		f, err := os.Create(*arrowOut)
		if err != nil {
			log.Fatal(err)
		}
		aw, err := export.NewArrowWriter(f, row)
		if err != nil {
			log.Fatal(err)
		}
		writer = append(writer, aw)
	}

	cfg := flat.DefaultConfig()
	cfg.BosonID = int32(*bosonID)
	cfg.First = *first
	cfg.Max = *maxEntries
	cfg.Entry = *entry
	cfg.Logger = logger

	stats, err := flat.Run(cfg, in, row, writer...)
	if err != nil {
		log.Fatal(err)
	}

	for _, w := range writer {
		if err := w.Close(); err != nil {
			log.Fatal(err)
		}
	}
	if err := writeMetrics(); err != nil {
		log.Fatal(err)
	}

	logger.Info("done", "read", stats.Read, "written", stats.Written, "sumw", stats.SumW, "output", flag.Arg(1))
}
