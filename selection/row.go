package selection

import "github.com/decibelcooper/zllplot/gen"

// Dilepton categories. The numbering is shared with the muon selection;
// only the trigger-based categories are assigned here.
const (
	CatNone uint32 = iota
	Cat2HLT
	Cat1HLT1L1
	Cat1HLT
	CatNoSel
	CatSta
	CatTrk
)

// MaxLHEWeights bounds the number of LHE weights copied per event.
const MaxLHEWeights = 111

// Row is one entry of the selected ntuple.
type Row struct {
	RunNum       uint32 `groot:"runNum"`
	LumiSec      uint32 `groot:"lumiSec"`
	EvtNum       uint32 `groot:"evtNum"`
	MatchGen     uint32 `groot:"matchGen"`
	Category     uint32 `groot:"category"`
	NPV          uint32 `groot:"npv"`
	NPU          uint32 `groot:"npu"`
	TriggerDec   uint32 `groot:"triggerDec"`
	GoodPV       uint32 `groot:"goodPV"`
	MatchTrigger uint32 `groot:"matchTrigger"`

	NGenLep    uint32  `groot:"ngenlep"`
	GenLep1Pt  float64 `groot:"genlep1_pt"`
	GenLep1Eta float64 `groot:"genlep1_eta"`
	GenLep1Phi float64 `groot:"genlep1_phi"`
	GenLep1M   float64 `groot:"genlep1_m"`
	GenLep2Pt  float64 `groot:"genlep2_pt"`
	GenLep2Eta float64 `groot:"genlep2_eta"`
	GenLep2Phi float64 `groot:"genlep2_phi"`
	GenLep2M   float64 `groot:"genlep2_m"`
	GenQ1      int32   `groot:"genq1"`
	GenQ2      int32   `groot:"genq2"`

	NLep    uint32  `groot:"nlep"`
	Lep1Pt  float64 `groot:"lep1_pt"`
	Lep1Eta float64 `groot:"lep1_eta"`
	Lep1Phi float64 `groot:"lep1_phi"`
	Lep1M   float64 `groot:"lep1_m"`
	Lep2Pt  float64 `groot:"lep2_pt"`
	Lep2Eta float64 `groot:"lep2_eta"`
	Lep2Phi float64 `groot:"lep2_phi"`
	Lep2M   float64 `groot:"lep2_m"`
	Sc1Pt   float64 `groot:"sc1_pt"`
	Sc1Eta  float64 `groot:"sc1_eta"`
	Sc1Phi  float64 `groot:"sc1_phi"`
	Sc1M    float64 `groot:"sc1_m"`
	Sc2Pt   float64 `groot:"sc2_pt"`
	Sc2Eta  float64 `groot:"sc2_eta"`
	Sc2Phi  float64 `groot:"sc2_phi"`
	Sc2M    float64 `groot:"sc2_m"`
	Q1      int32   `groot:"q1"`
	Q2      int32   `groot:"q2"`

	DilepPt  float64 `groot:"dilep_pt"`
	DilepEta float64 `groot:"dilep_eta"`
	DilepPhi float64 `groot:"dilep_phi"`
	DilepM   float64 `groot:"dilep_m"`

	Scale1fbGen  float32 `groot:"scale1fbGen"`
	Scale1fb     float32 `groot:"scale1fb"`
	Scale1fbUp   float32 `groot:"scale1fbUp"`
	Scale1fbDown float32 `groot:"scale1fbDown"`
	PUWeight     float32 `groot:"puWeight"`

	NLHEWeight int32     `groot:"nLHEWeight"`
	LHEWeight  []float32 `groot:"lheweight[nLHEWeight]"`
}

func (r *Row) reset() {
	lhe := r.LHEWeight[:0]
	*r = Row{LHEWeight: lhe}
}

func (r *Row) setGenLep1(k gen.Kinematics) {
	r.GenLep1Pt, r.GenLep1Eta, r.GenLep1Phi, r.GenLep1M = k.Pt, k.Eta, k.Phi, k.M
}

func (r *Row) setGenLep2(k gen.Kinematics) {
	r.GenLep2Pt, r.GenLep2Eta, r.GenLep2Phi, r.GenLep2M = k.Pt, k.Eta, k.Phi, k.M
}

func (r *Row) setLep1(k gen.Kinematics) {
	r.Lep1Pt, r.Lep1Eta, r.Lep1Phi, r.Lep1M = k.Pt, k.Eta, k.Phi, k.M
}

func (r *Row) setLep2(k gen.Kinematics) {
	r.Lep2Pt, r.Lep2Eta, r.Lep2Phi, r.Lep2M = k.Pt, k.Eta, k.Phi, k.M
}

func (r *Row) setSc1(k gen.Kinematics) {
	r.Sc1Pt, r.Sc1Eta, r.Sc1Phi, r.Sc1M = k.Pt, k.Eta, k.Phi, k.M
}

func (r *Row) setSc2(k gen.Kinematics) {
	r.Sc2Pt, r.Sc2Eta, r.Sc2Phi, r.Sc2M = k.Pt, k.Eta, k.Phi, k.M
}

func (r *Row) setDilep(k gen.Kinematics) {
	r.DilepPt, r.DilepEta, r.DilepPhi, r.DilepM = k.Pt, k.Eta, k.Phi, k.M
}

// Lep1 returns the leading lepton coordinates.
func (r *Row) Lep1() gen.Kinematics {
	return gen.Kinematics{Pt: r.Lep1Pt, Eta: r.Lep1Eta, Phi: r.Lep1Phi, M: r.Lep1M}
}

func (r *Row) Lep2() gen.Kinematics {
	return gen.Kinematics{Pt: r.Lep2Pt, Eta: r.Lep2Eta, Phi: r.Lep2Phi, M: r.Lep2M}
}

func (r *Row) Dilep() gen.Kinematics {
	return gen.Kinematics{Pt: r.DilepPt, Eta: r.DilepEta, Phi: r.DilepPhi, M: r.DilepM}
}
