// Package selection selects Z→ee candidate events from Bacon ntuples and
// writes one flat row per event with trigger, identification, generator
// matching and normalisation information.
package selection

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"go-hep.org/x/hep/fmom"

	"github.com/decibelcooper/zllplot/bacon"
	"github.com/decibelcooper/zllplot/conf"
	"github.com/decibelcooper/zllplot/gen"
	"github.com/decibelcooper/zllplot/metrics"
	"github.com/decibelcooper/zllplot/ntuple"
	"github.com/decibelcooper/zllplot/pileup"
	"github.com/decibelcooper/zllplot/trigger"
)

const tool = "selectzeegen"

// Config holds the selection cuts.
type Config struct {
	MassLow, MassHigh float64
	// MassWindow drops dielectron candidates outside [MassLow, MassHigh].
	MassWindow bool

	PtCut   float64
	EtaCut  float64
	GapLow  float64
	GapHigh float64

	LeptonMass float64
	BosonID    int32
	LeptonID   int32

	Trigger       string
	TriggerObject string

	// MatchCone is the reco-gen matching cone, FSRCone the photon
	// recombination cone.
	MatchCone float64
	FSRCone   float64
}

func DefaultConfig() Config {
	return Config{
		MassLow:       40,
		MassHigh:      200,
		PtCut:         22,
		EtaCut:        2.5,
		GapLow:        1.4442,
		GapHigh:       1.566,
		LeptonMass:    0.000511,
		BosonID:       gen.PdgZ,
		LeptonID:      gen.PdgElectron,
		Trigger:       trigger.EleTrigger,
		TriggerObject: trigger.EleTriggerObject,
		MatchCone:     0.3,
		FSRCone:       gen.FSRCone,
	}
}

// InGap reports whether |eta| falls in the barrel-endcap transition.
func (cfg *Config) InGap(eta float64) bool {
	aeta := math.Abs(eta)
	return aeta >= cfg.GapLow && aeta <= cfg.GapHigh
}

// Accept applies the kinematic acceptance to a generator lepton.
func (cfg *Config) Accept(k gen.Kinematics) bool {
	aeta := math.Abs(k.Eta)
	return k.Pt >= cfg.PtCut && aeta < cfg.EtaCut && (aeta < cfg.GapLow || aeta > cfg.GapHigh)
}

// Kind tells how the generator decay of a sample is treated.
type Kind int

const (
	Background Kind = iota
	// Signal samples keep only decays to the selected lepton flavour and
	// get generator matching.
	Signal
	// WrongFlavor samples drop decays to the selected lepton flavour.
	WrongFlavor
)

// KindOf classifies a sample by name: "zxx" is the wrong-flavour
// background, any name containing "zee" is signal.
func KindOf(name string) Kind {
	switch {
	case strings.EqualFold(name, "zxx"):
		return WrongFlavor
	case strings.Contains(strings.ToLower(name), "zee"):
		return Signal
	}
	return Background
}

// Yield is the weighted count of events written for one input file.
type Yield struct {
	Path  string
	Read  int64
	N     int64
	SumW  float64
	SumW2 float64
}

// Err is the statistical uncertainty on SumW.
func (y Yield) Err() float64 { return math.Sqrt(y.SumW2) }

// Selector runs the selection over samples.
type Selector struct {
	cfg  Config
	menu *trigger.Menu
	pu   *pileup.Weights
	log  *slog.Logger
	rec  metrics.Recorder
}

// Option configures a Selector.
type Option func(*Selector)

func WithLogger(log *slog.Logger) Option {
	return func(s *Selector) { s.log = log }
}

func WithRecorder(rec metrics.Recorder) Option {
	return func(s *Selector) { s.rec = rec }
}

// New returns a selector. A nil menu uses the default trigger menu and nil
// pileup weights leave simulation unweighted in pileup.
func New(cfg Config, menu *trigger.Menu, pu *pileup.Weights, opts ...Option) *Selector {
	if menu == nil {
		menu = trigger.DefaultMenu()
	}
	s := &Selector{
		cfg:  cfg,
		menu: menu,
		pu:   pu,
		log:  slog.Default(),
		rec:  metrics.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectSample runs over every file of the sample, filling row and
// handing it to the writers for each kept event.
func (s *Selector) SelectSample(sample conf.Sample, row *Row, writers ...ntuple.RowWriter) ([]Yield, error) {
	kind := KindOf(sample.Name)
	yields := make([]Yield, 0, len(sample.Files))
	for _, f := range sample.Files {
		s.log.Info("processing", "sample", sample.Name, "file", f.Path, "xsec", f.Xsec)

		start := time.Now()
		y, err := s.SelectFile(f.Path, f.Xsec, kind, sample.Name, row, writers...)
		if err != nil {
			return yields, err
		}
		s.rec.ObserveFileSeconds(tool, time.Since(start).Seconds())

		s.log.Info("yield", "file", f.Path, "events", y.N, "sumw", y.SumW, "err", y.Err())
		yields = append(yields, y)
	}
	return yields, nil
}

type weights struct {
	gen, nom, up, down float64
}

// normalisation sums the generator weight, alone and times each pileup
// weight, over the whole file.
func (s *Selector) normalisation(in *bacon.File) (weights, error) {
	var tot weights
	err := in.Scan(bacon.PartInfo|bacon.PartGen, func(_ int64, ev *bacon.Event) error {
		w := float64(ev.Gen.Weight)
		nom, up, down := s.pu.At(float64(ev.Info.NPUMean))
		tot.gen += w
		tot.nom += w * nom
		tot.up += w * up
		tot.down += w * down
		return nil
	})
	return tot, err
}

func scale(xsec, total float64) float64 {
	if xsec > 0 && total > 0 {
		return xsec / total
	}
	return 1
}

// candidate is a selected electron.
type candidate struct {
	lep, sc gen.Kinematics
	q       int32
	hlt     bool
}

// SelectFile runs over one input file.
func (s *Selector) SelectFile(path string, xsec float64, kind Kind, sample string, row *Row, writers ...ntuple.RowWriter) (Yield, error) {
	y := Yield{Path: path}

	in, err := bacon.Open(path)
	if err != nil {
		return y, err
	}
	defer in.Close()

	var tot weights
	if in.HasGen() {
		tot, err = s.normalisation(in)
		if err != nil {
			return y, fmt.Errorf("could not compute normalisation of %q: %w", path, err)
		}
	}
	norm := weights{
		gen:  scale(xsec, tot.gen),
		nom:  scale(xsec, tot.nom),
		up:   scale(xsec, tot.up),
		down: scale(xsec, tot.down),
	}

	nentries := in.Entries()
	err = in.Scan(bacon.PartAll, func(entry int64, ev *bacon.Event) error {
		y.Read++
		s.rec.IncEvents(tool, sample)
		if entry%1000000 == 0 {
			s.log.Info("processing event", "entry", entry, "percent", 100*float64(entry)/float64(nentries))
		}

		w := norm
		puw := 1.0
		if in.HasGen() {
			nom, up, down := s.pu.At(float64(ev.Info.NPUMean))
			gw := float64(ev.Gen.Weight)
			w.gen *= gw
			w.nom *= gw * nom
			w.up *= gw * up
			w.down *= gw * down
			puw = nom
		}

		var chain gen.Chain
		if in.HasGen() && kind != Background {
			chain = gen.Walk(&ev.GenParticles, s.cfg.BosonID, nil)
			isLepton := abs(chain.Flavor) == s.cfg.LeptonID
			if kind == WrongFlavor && isLepton {
				return nil
			}
			if kind == Signal && !isLepton {
				return nil
			}
		}

		keep := s.fill(row, ev, kind == Signal && in.HasGen(), &chain)
		if !keep {
			return nil
		}

		row.Scale1fbGen = float32(w.gen)
		row.Scale1fb = float32(w.nom)
		row.Scale1fbUp = float32(w.up)
		row.Scale1fbDown = float32(w.down)
		row.PUWeight = float32(puw)

		for _, wr := range writers {
			if err := wr.Write(); err != nil {
				return fmt.Errorf("could not write entry %d: %w", entry, err)
			}
		}

		y.N++
		y.SumW += w.nom
		y.SumW2 += w.nom * w.nom
		s.rec.IncSelected(tool, sample)
		s.rec.AddWeight(tool, sample, w.nom)
		return nil
	})
	if err != nil {
		return y, fmt.Errorf("could not select %q: %w", path, err)
	}
	return y, nil
}

// fill sets every non-weight column of row from ev. It returns false when
// the event falls outside an enabled mass window.
func (s *Selector) fill(row *Row, ev *bacon.Event, signal bool, chain *gen.Chain) bool {
	cfg := &s.cfg
	row.reset()

	row.RunNum = ev.Info.RunNum
	row.LumiSec = ev.Info.LumiSec
	row.EvtNum = ev.Info.EvtNum
	row.NPV = uint32(ev.PV.N)
	row.NPU = uint32(ev.Info.NPUMean)
	row.TriggerDec = b2u(s.menu.Pass(cfg.Trigger, ev.Info.TriggerBits))
	row.GoodPV = b2u(ev.Info.HasGoodPV)

	var (
		lep1, lep2 candidate
		nlep       uint32
		hltMatch   bool
	)
	rho := float64(ev.Info.RhoIso)
	for i := 0; i < ev.Electrons.Len(); i++ {
		el := ev.Electrons.At(i)
		if el.ScEt < cfg.PtCut || math.Abs(el.ScEta) > cfg.EtaCut || cfg.InGap(el.ScEta) {
			continue
		}
		if !PassEleID(&el, rho) {
			continue
		}

		c := candidate{
			lep: gen.Kinematics{Pt: el.Pt, Eta: el.Eta, Phi: el.Phi, M: cfg.LeptonMass},
			sc:  gen.Kinematics{Pt: el.ScEt, Eta: el.ScEta, Phi: el.ScPhi, M: cfg.LeptonMass},
			q:   el.Q,
			hlt: s.menu.PassObject(cfg.TriggerObject, el.HLTMatchBits),
		}
		hltMatch = hltMatch || c.hlt

		// supercluster, charge and trigger match move with their electron
		switch {
		case c.lep.Pt > lep1.lep.Pt:
			lep2, lep1 = lep1, c
		case c.lep.Pt > lep2.lep.Pt:
			lep2 = c
		}
		nlep++
	}

	row.NLep = nlep
	row.MatchTrigger = b2u(hltMatch)
	if nlep > 0 {
		row.setLep1(lep1.lep)
		row.setSc1(lep1.sc)
		row.Q1 = lep1.q
	}
	if nlep > 1 {
		row.setLep2(lep2.lep)
		row.setSc2(lep2.sc)
		row.Q2 = lep2.q

		v1 := gen.PtEtaPhiM(lep1.lep.Pt, lep1.lep.Eta, lep1.lep.Phi, lep1.lep.M)
		v2 := gen.PtEtaPhiM(lep2.lep.Pt, lep2.lep.Eta, lep2.lep.Phi, lep2.lep.M)
		row.setDilep(gen.KinematicsOf(gen.Add(v1, v2)))
		if cfg.MassWindow && (row.DilepM < cfg.MassLow || row.DilepM > cfg.MassHigh) {
			return false
		}
	}
	row.Category = category(nlep, row.TriggerDec == 1, lep1.hlt, lep2.hlt)

	if signal {
		s.fillGen(row, ev, chain, lep1, lep2)
	}
	if n := min(len(ev.Gen.LHEWeight), MaxLHEWeights); n > 0 {
		row.LHEWeight = append(row.LHEWeight, ev.Gen.LHEWeight[:n]...)
	}
	row.NLHEWeight = int32(len(row.LHEWeight))
	return true
}

// fillGen matches the reconstructed leptons to the post-FSR generator
// leptons, then dresses the generator leptons with nearby photons and
// stores those within acceptance.
func (s *Selector) fillGen(row *Row, ev *bacon.Event, chain *gen.Chain, lep1, lep2 candidate) {
	cfg := &s.cfg
	glep1, glep2 := chain.LepNeg, chain.LepPos

	matched := func(c candidate) bool {
		if c.lep.Pt <= 0 {
			return false
		}
		v := gen.PtEtaPhiM(c.lep.Pt, c.lep.Eta, c.lep.Phi, c.lep.M)
		return gen.DeltaR(v, glep1) < cfg.MatchCone || gen.DeltaR(v, glep2) < cfg.MatchCone
	}
	row.MatchGen = b2u(matched(lep1) && matched(lep2))

	dressed := func(v fmom.PxPyPzE) gen.Kinematics {
		return gen.KinematicsOf(gen.Dress(v, &ev.GenParticles, cfg.FSRCone))
	}
	if g := dressed(glep1); cfg.Accept(g) {
		row.setGenLep1(g)
		row.GenQ1 = -1
		row.NGenLep++
	}
	if g := dressed(glep2); cfg.Accept(g) {
		row.setGenLep2(g)
		row.GenQ2 = +1
		row.NGenLep++
	}
}

// category classifies a dielectron event by how many of its two leading
// electrons fired the trigger.
func category(nlep uint32, triggered, hlt1, hlt2 bool) uint32 {
	switch {
	case nlep < 2:
		return CatNone
	case triggered && hlt1 && hlt2:
		return Cat2HLT
	case triggered && (hlt1 || hlt2):
		return Cat1HLT
	}
	return CatNoSel
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
