// Package closure compares the dilepton mass spectrum of data with raw and
// scale-corrected simulation, per pair of lepton |η| bins.
package closure

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/zllplot/corr"
	"github.com/decibelcooper/zllplot/gen"
	"github.com/decibelcooper/zllplot/metrics"
	"github.com/decibelcooper/zllplot/ntuple"
	"github.com/decibelcooper/zllplot/pileup"
	"github.com/decibelcooper/zllplot/selection"
)

const tool = "muscaleclosure"

// Input identifies one of the three compared samples.
type Input int

const (
	Data Input = iota
	MC
	CorrMC
)

func (in Input) String() string {
	switch in {
	case Data:
		return "data"
	case MC:
		return "mc"
	case CorrMC:
		return "corrmc"
	}
	return fmt.Sprintf("Input(%d)", int(in))
}

type Config struct {
	// Lumi is the integrated luminosity simulation is scaled to, in pb⁻¹.
	Lumi float64

	NBins             int
	MassLow, MassHigh float64
	PtCut, EtaCut     float64
	LeptonMass        float64

	// EtaEdges are the |η| bin edges leptons are classified by.
	EtaEdges   []float64
	Categories []uint32
}

func DefaultConfig() Config {
	return Config{
		Lumi:       40,
		NBins:      40,
		MassLow:    80,
		MassHigh:   100,
		PtCut:      25,
		EtaCut:     2.4,
		LeptonMass: 0.105658369,
		EtaEdges:   []float64{0, 1.2, 2.1, 2.4},
		Categories: []uint32{selection.Cat2HLT, selection.Cat1HLT1L1, selection.Cat1HLT},
	}
}

// NEtaBins is the number of |η| bins.
func (cfg *Config) NEtaBins() int { return len(cfg.EtaEdges) - 1 }

// EtaBin returns the |η| bin of eta, or -1. Edges belong to both adjacent
// bins; the higher bin wins.
func (cfg *Config) EtaBin(eta float64) int {
	aeta := math.Abs(eta)
	bin := -1
	for i := 0; i < cfg.NEtaBins(); i++ {
		if aeta >= cfg.EtaEdges[i] && aeta <= cfg.EtaEdges[i+1] {
			bin = i
		}
	}
	return bin
}

// PairIndex maps the ordered bin pair i <= j of n bins to its position in
// the list (0,0), (0,1), ..., (0,n-1), (1,1), ...
func PairIndex(i, j, n int) int {
	idx := j - i
	for k := 0; k < i; k++ {
		idx += n - k
	}
	return idx
}

// NPairs is the number of ordered bin pairs of n bins.
func NPairs(n int) int { return n * (n + 1) / 2 }

// Hists are the mass histograms of one input.
type Hists struct {
	Total *hbook.H1D
	Pairs []*hbook.H1D
}

func newHists(cfg *Config) Hists {
	h := Hists{
		Total: hbook.NewH1D(cfg.NBins, cfg.MassLow, cfg.MassHigh),
		Pairs: make([]*hbook.H1D, NPairs(cfg.NEtaBins())),
	}
	for i := range h.Pairs {
		h.Pairs[i] = hbook.NewH1D(cfg.NBins, cfg.MassLow, cfg.MassHigh)
	}
	return h
}

// Test accumulates the three inputs.
type Test struct {
	cfg   Config
	npv   *pileup.VertexWeights
	smear *corr.Smearer
	log   *slog.Logger
	rec   metrics.Recorder

	hists [3]Hists
}

// New returns an empty closure test. Simulation is weighted by npv, which
// may be nil, and the corrected input is smeared by smear.
func New(cfg Config, npv *pileup.VertexWeights, smear *corr.Smearer, log *slog.Logger) *Test {
	if log == nil {
		log = slog.Default()
	}
	t := &Test{cfg: cfg, npv: npv, smear: smear, log: log, rec: metrics.Default()}
	for i := range t.hists {
		t.hists[i] = newHists(&t.cfg)
	}
	return t
}

func (t *Test) Config() Config { return t.cfg }

func (t *Test) Hists(in Input) Hists { return t.hists[in] }

// columns read from the selected ntuples
var columns = []string{
	"category", "npv", "q1", "q2", "scale1fb",
	"lep1_pt", "lep1_eta", "lep1_phi",
	"lep2_pt", "lep2_eta", "lep2_phi",
	"dilep_m",
}

// Fill reads a selected ntuple and fills the histograms of in.
func (t *Test) Fill(path string, in Input) error {
	t.log.Info("processing", "input", in, "file", path)

	var (
		row  selection.Row
		read int64
		kept int64
	)
	err := ntuple.ReadTree(path, &row, func(int64) error {
		read++
		t.rec.IncEvents(tool, in.String())
		if t.Add(&row, in) {
			kept++
			t.rec.IncSelected(tool, in.String())
		}
		return nil
	}, columns...)
	if err != nil {
		return fmt.Errorf("could not fill %s from %q: %w", in, path, err)
	}

	t.log.Info("filled", "input", in, "read", read, "kept", kept)
	return nil
}

// Weight is the event weight of row for input in.
func (t *Test) Weight(row *selection.Row, in Input) float64 {
	if in == Data {
		return 1
	}
	return float64(row.Scale1fb) * t.npv.At(row.NPV) * t.cfg.Lumi
}

// Pass applies the event requirements to row.
func (t *Test) Pass(row *selection.Row) bool {
	cfg := &t.cfg
	switch {
	case !slices.Contains(cfg.Categories, row.Category):
		return false
	case row.Q1 == row.Q2:
		return false
	case row.DilepM < cfg.MassLow || row.DilepM > cfg.MassHigh:
		return false
	case row.Lep1Pt < cfg.PtCut || row.Lep2Pt < cfg.PtCut:
		return false
	case math.Abs(row.Lep1Eta) > cfg.EtaCut || math.Abs(row.Lep2Eta) > cfg.EtaCut:
		return false
	}
	return true
}

// Add fills one event into the histograms of in and reports whether it
// passed the requirements.
func (t *Test) Add(row *selection.Row, in Input) bool {
	if !t.Pass(row) {
		return false
	}

	bin1, bin2 := t.cfg.EtaBin(row.Lep1Eta), t.cfg.EtaBin(row.Lep2Eta)
	if bin1 < 0 || bin2 < 0 {
		t.log.Debug("lepton outside the eta bins", "eta1", row.Lep1Eta, "eta2", row.Lep2Eta)
		return false
	}
	ibin, jbin := min(bin1, bin2), max(bin1, bin2)

	pt1, pt2 := row.Lep1Pt, row.Lep2Pt
	if in == CorrMC && t.smear != nil {
		pt1 = t.smear.Pt(pt1, row.Lep1Eta)
		pt2 = t.smear.Pt(pt2, row.Lep2Eta)
	}
	v1 := gen.PtEtaPhiM(pt1, row.Lep1Eta, row.Lep1Phi, t.cfg.LeptonMass)
	v2 := gen.PtEtaPhiM(pt2, row.Lep2Eta, row.Lep2Phi, t.cfg.LeptonMass)
	dilep := gen.Add(v1, v2)
	m := dilep.M()

	w := t.Weight(row, in)
	h := &t.hists[in]
	h.Total.Fill(m, w)
	h.Pairs[PairIndex(ibin, jbin, t.cfg.NEtaBins())].Fill(m, w)
	t.rec.AddWeight(tool, in.String(), w)
	return true
}

// Integrals logs the in-range integral of every histogram.
func (t *Test) Integrals() {
	n := t.cfg.NEtaBins()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			k := PairIndex(i, j, n)
			t.log.Info("integrals", "pair", fmt.Sprintf("%d_%d", i, j),
				"mc", ntuple.Integral(t.hists[MC].Pairs[k]),
				"data", ntuple.Integral(t.hists[Data].Pairs[k]),
				"corrmc", ntuple.Integral(t.hists[CorrMC].Pairs[k]),
			)
		}
	}
	t.log.Info("integrals", "pair", "tot",
		"mc", ntuple.Integral(t.hists[MC].Total),
		"data", ntuple.Integral(t.hists[Data].Total),
		"corrmc", ntuple.Integral(t.hists[CorrMC].Total),
	)
}

// Save writes every histogram to a ROOT file, keyed as
// <input>_<i>_<j> and <input>_tot.
func (t *Test) Save(path string) error {
	hists := make(map[string]*hbook.H1D)
	n := t.cfg.NEtaBins()
	for _, in := range []Input{Data, MC, CorrMC} {
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				hists[fmt.Sprintf("%s_%d_%d", in, i, j)] = t.hists[in].Pairs[PairIndex(i, j, n)]
			}
		}
		hists[fmt.Sprintf("%s_tot", in)] = t.hists[in].Total
	}
	return ntuple.SaveH1Ds(path, hists)
}
