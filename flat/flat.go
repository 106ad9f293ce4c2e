// Package flat turns the generator record of simulated events into one flat
// row of boson and lepton kinematics per event.
package flat

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/decibelcooper/zllplot/bacon"
	"github.com/decibelcooper/zllplot/gen"
	"github.com/decibelcooper/zllplot/metrics"
	"github.com/decibelcooper/zllplot/ntuple"
)

// Row is one output entry.
type Row struct {
	ID1      float64 `groot:"id_1"`
	ID2      float64 `groot:"id_2"`
	X1       float64 `groot:"x_1"`
	X2       float64 `groot:"x_2"`
	XPDF1    float64 `groot:"xPDF_1"`
	XPDF2    float64 `groot:"xPDF_2"`
	ScalePDF float64 `groot:"scalePDF"`
	Weight   float64 `groot:"weight"`

	GenVPt  float64 `groot:"genV_pt"`
	GenVEta float64 `groot:"genV_eta"`
	GenVPhi float64 `groot:"genV_phi"`
	GenVM   float64 `groot:"genV_m"`
	GenVID  float64 `groot:"genV_id"`

	GenVfPt  float64 `groot:"genVf_pt"`
	GenVfEta float64 `groot:"genVf_eta"`
	GenVfPhi float64 `groot:"genVf_phi"`
	GenVfM   float64 `groot:"genVf_m"`

	GenL1Pt  float64 `groot:"genL1_pt"`
	GenL1Eta float64 `groot:"genL1_eta"`
	GenL1Phi float64 `groot:"genL1_phi"`
	GenL1M   float64 `groot:"genL1_m"`
	GenL1ID  float64 `groot:"genL1_id"`

	GenL2Pt  float64 `groot:"genL2_pt"`
	GenL2Eta float64 `groot:"genL2_eta"`
	GenL2Phi float64 `groot:"genL2_phi"`
	GenL2M   float64 `groot:"genL2_m"`
	GenL2ID  float64 `groot:"genL2_id"`

	GenL1fPt  float64 `groot:"genL1f_pt"`
	GenL1fEta float64 `groot:"genL1f_eta"`
	GenL1fPhi float64 `groot:"genL1f_phi"`
	GenL1fM   float64 `groot:"genL1f_m"`

	GenL2fPt  float64 `groot:"genL2f_pt"`
	GenL2fEta float64 `groot:"genL2f_eta"`
	GenL2fPhi float64 `groot:"genL2f_phi"`
	GenL2fM   float64 `groot:"genL2f_m"`
}

// RowLHE is Row with the LHE weight vector appended.
type RowLHE struct {
	Row
	NLHEWeight int32     `groot:"nLHEWeight"`
	LHEWeight  []float32 `groot:"lheweight[nLHEWeight]"`
}

// Config steers a flattening run.
type Config struct {
	// BosonID is the PDG code of the boson to reconstruct.
	BosonID int32
	// First and Max bound the processed entries; Max < 0 means all.
	First int64
	Max   int64
	// Entry restricts the run to a single entry when >= 0.
	Entry int64

	Logger   *slog.Logger
	Recorder metrics.Recorder
}

// DefaultConfig reconstructs W- bosons over the whole file.
func DefaultConfig() Config {
	return Config{BosonID: -gen.PdgW, Max: -1, Entry: -1}
}

// Stats summarises a run.
type Stats struct {
	Read    int64
	Written int64
	SumW    float64
}

// Fill sets the row columns from the event and its walked chain. All
// kinematic columns are reset first.
func (r *Row) Fill(info *bacon.GenEventInfo, c *gen.Chain) {
	*r = Row{}

	r.GenVID = float64(c.BosonID)
	r.GenL1ID = -math.Abs(float64(c.Flavor))
	r.GenL2ID = math.Abs(float64(c.Flavor))

	v := gen.KinematicsOf(c.V())
	r.GenVPt, r.GenVEta, r.GenVPhi, r.GenVM = v.Pt, v.Eta, v.Phi, v.M

	vf := gen.KinematicsOf(c.VPostFSR())
	r.GenVfPt, r.GenVfEta, r.GenVfPhi, r.GenVfM = vf.Pt, vf.Eta, vf.Phi, vf.M

	l1f := gen.KinematicsOf(c.LepPos)
	r.GenL1fPt, r.GenL1fEta, r.GenL1fPhi, r.GenL1fM = l1f.Pt, l1f.Eta, l1f.Phi, l1f.M

	l2f := gen.KinematicsOf(c.LepNeg)
	r.GenL2fPt, r.GenL2fEta, r.GenL2fPhi, r.GenL2fM = l2f.Pt, l2f.Eta, l2f.Phi, l2f.M

	l1 := gen.KinematicsOf(c.PreLepPos)
	r.GenL1Pt, r.GenL1Eta, r.GenL1Phi, r.GenL1M = l1.Pt, l1.Eta, l1.Phi, l1.M

	l2 := gen.KinematicsOf(c.PreLepNeg)
	r.GenL2Pt, r.GenL2Eta, r.GenL2Phi, r.GenL2M = l2.Pt, l2.Eta, l2.Phi, l2.M

	r.ID1 = float64(info.ID1)
	r.ID2 = float64(info.ID2)
	r.X1 = float64(info.X1)
	r.X2 = float64(info.X2)
	r.XPDF1 = float64(info.XPDF1)
	r.XPDF2 = float64(info.XPDF2)
	r.ScalePDF = float64(info.ScalePDF)
	r.Weight = float64(info.Weight)
}

// Run walks the generator record of every selected entry of in, fills row
// and asks each writer to persist it. Entries without generator particles
// are skipped. row must be the struct the writers are bound to: a *Row or
// a *RowLHE.
func Run(cfg Config, in *bacon.File, row any, writers ...ntuple.RowWriter) (Stats, error) {
	var stats Stats

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	rec := cfg.Recorder
	if rec == nil {
		rec = metrics.Default()
	}

	if !in.HasGen() {
		return stats, fmt.Errorf("file %q has no generator information", in.Path())
	}

	var (
		base *Row
		lhe  *RowLHE
	)
	switch row := row.(type) {
	case *Row:
		base = row
	case *RowLHE:
		base, lhe = &row.Row, row
	default:
		return stats, fmt.Errorf("invalid row type %T", row)
	}

	beg, end := cfg.First, in.Entries()
	if cfg.Max >= 0 && beg+cfg.Max < end {
		end = beg + cfg.Max
	}
	if cfg.Entry >= 0 {
		beg, end = cfg.Entry, cfg.Entry+1
	}

	err := in.ScanRange(bacon.PartGen|bacon.PartGenParticles, beg, end, func(entry int64, ev *bacon.Event) error {
		stats.Read++
		rec.IncEvents("makeflat", in.Path())
		if ev.GenParticles.Len() == 0 {
			return nil
		}

		c := gen.Walk(&ev.GenParticles, cfg.BosonID, log)
		base.Fill(&ev.Gen, &c)
		if lhe != nil {
			lhe.LHEWeight = append(lhe.LHEWeight[:0], ev.Gen.LHEWeight...)
			lhe.NLHEWeight = int32(len(lhe.LHEWeight))
		}

		for _, w := range writers {
			if err := w.Write(); err != nil {
				return fmt.Errorf("could not write entry %d: %w", entry, err)
			}
		}

		stats.Written++
		stats.SumW += base.Weight
		rec.IncSelected("makeflat", in.Path())
		rec.AddWeight("makeflat", in.Path(), base.Weight)

		log.Debug("flattened",
			"entry", entry,
			"genL1_pt", base.GenL1Pt, "genL1f_pt", base.GenL1fPt,
			"genL2_pt", base.GenL2Pt, "genL2f_pt", base.GenL2fPt,
			"genV_id", base.GenVID,
		)
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("could not flatten %q: %w", in.Path(), err)
	}
	return stats, nil
}
