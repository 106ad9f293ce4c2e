// Package bacon reads and writes the flat rendering of the Bacon ntuple
// layout: a single Events tree carrying split event-info, generator,
// electron and vertex columns.
package bacon

// EventInfo holds the per-event bookkeeping and trigger information.
type EventInfo struct {
	RunNum      uint32  `groot:"runNum"`
	LumiSec     uint32  `groot:"lumiSec"`
	EvtNum      uint32  `groot:"evtNum"`
	NPUMean     float32 `groot:"nPUmean"`
	RhoIso      float32 `groot:"rhoIso"`
	HasGoodPV   bool    `groot:"hasGoodPV"`
	TriggerBits uint64  `groot:"triggerBits"`
}

// GenEventInfo holds the generator-level event record of simulated samples.
type GenEventInfo struct {
	ID1        int32     `groot:"GenEvtInfo_id_1"`
	ID2        int32     `groot:"GenEvtInfo_id_2"`
	X1         float32   `groot:"GenEvtInfo_x_1"`
	X2         float32   `groot:"GenEvtInfo_x_2"`
	XPDF1      float32   `groot:"GenEvtInfo_xPDF_1"`
	XPDF2      float32   `groot:"GenEvtInfo_xPDF_2"`
	ScalePDF   float32   `groot:"GenEvtInfo_scalePDF"`
	Weight     float32   `groot:"GenEvtInfo_weight"`
	NLHEWeight int32     `groot:"nLHEWeight"`
	LHEWeight  []float32 `groot:"GenEvtInfo_lheweight[nLHEWeight]"`
}

// GenParticles is the generator particle record in column form.
type GenParticles struct {
	N      int32     `groot:"nGenParticle"`
	PdgID  []int32   `groot:"GenParticle_pdgId[nGenParticle]"`
	Status []int32   `groot:"GenParticle_status[nGenParticle]"`
	Parent []int32   `groot:"GenParticle_parent[nGenParticle]"`
	Pt     []float32 `groot:"GenParticle_pt[nGenParticle]"`
	Eta    []float32 `groot:"GenParticle_eta[nGenParticle]"`
	Phi    []float32 `groot:"GenParticle_phi[nGenParticle]"`
	Mass   []float32 `groot:"GenParticle_mass[nGenParticle]"`
}

// GenParticle is one entry of the generator record. Parent is the index of
// the mother particle in the same record, or -1.
type GenParticle struct {
	PdgID  int32
	Status int32
	Parent int32
	Pt     float64
	Eta    float64
	Phi    float64
	Mass   float64
}

func (g *GenParticles) Len() int { return len(g.PdgID) }

func (g *GenParticles) At(i int) GenParticle {
	return GenParticle{
		PdgID:  g.PdgID[i],
		Status: g.Status[i],
		Parent: g.Parent[i],
		Pt:     float64(g.Pt[i]),
		Eta:    float64(g.Eta[i]),
		Phi:    float64(g.Phi[i]),
		Mass:   float64(g.Mass[i]),
	}
}

// Append adds a particle at the end of the record and returns its index.
func (g *GenParticles) Append(p GenParticle) int {
	g.PdgID = append(g.PdgID, p.PdgID)
	g.Status = append(g.Status, p.Status)
	g.Parent = append(g.Parent, p.Parent)
	g.Pt = append(g.Pt, float32(p.Pt))
	g.Eta = append(g.Eta, float32(p.Eta))
	g.Phi = append(g.Phi, float32(p.Phi))
	g.Mass = append(g.Mass, float32(p.Mass))
	g.N = int32(len(g.PdgID))
	return len(g.PdgID) - 1
}

// Electrons is the reconstructed electron collection in column form.
type Electrons struct {
	N            int32     `groot:"nElectron"`
	Pt           []float32 `groot:"Electron_pt[nElectron]"`
	Eta          []float32 `groot:"Electron_eta[nElectron]"`
	Phi          []float32 `groot:"Electron_phi[nElectron]"`
	ScEt         []float32 `groot:"Electron_scEt[nElectron]"`
	ScEta        []float32 `groot:"Electron_scEta[nElectron]"`
	ScPhi        []float32 `groot:"Electron_scPhi[nElectron]"`
	Q            []int32   `groot:"Electron_q[nElectron]"`
	ChHadIso     []float32 `groot:"Electron_chHadIso[nElectron]"`
	NeuHadIso    []float32 `groot:"Electron_neuHadIso[nElectron]"`
	GammaIso     []float32 `groot:"Electron_gammaIso[nElectron]"`
	Sieie        []float32 `groot:"Electron_sieie[nElectron]"`
	DEtaIn       []float32 `groot:"Electron_dEtaIn[nElectron]"`
	DPhiIn       []float32 `groot:"Electron_dPhiIn[nElectron]"`
	HOverE       []float32 `groot:"Electron_hovere[nElectron]"`
	EOverP       []float32 `groot:"Electron_eoverp[nElectron]"`
	EcalEnergy   []float32 `groot:"Electron_ecalEnergy[nElectron]"`
	D0           []float32 `groot:"Electron_d0[nElectron]"`
	Dz           []float32 `groot:"Electron_dz[nElectron]"`
	NMissingHits []int32   `groot:"Electron_nMissingHits[nElectron]"`
	IsConv       []int32   `groot:"Electron_isConv[nElectron]"`
	TypeBits     []uint32  `groot:"Electron_typeBits[nElectron]"`
	HLTMatchBits []uint64  `groot:"Electron_hltMatchBits[nElectron]"`
}

// Electron type bits.
const (
	EleTypeEcalDriven    uint32 = 1 << 0
	EleTypeTrackerDriven uint32 = 1 << 1
)

// Electron is one reconstructed electron.
type Electron struct {
	Pt, Eta, Phi        float64
	ScEt, ScEta, ScPhi  float64
	Q                   int32
	ChHadIso, NeuHadIso float64
	GammaIso            float64
	Sieie               float64
	DEtaIn, DPhiIn      float64
	HOverE              float64
	EOverP              float64
	EcalEnergy          float64
	D0, Dz              float64
	NMissingHits        int32
	IsConv              bool
	TypeBits            uint32
	HLTMatchBits        uint64
}

func (e *Electrons) Len() int { return len(e.Pt) }

func (e *Electrons) At(i int) Electron {
	return Electron{
		Pt:           float64(e.Pt[i]),
		Eta:          float64(e.Eta[i]),
		Phi:          float64(e.Phi[i]),
		ScEt:         float64(e.ScEt[i]),
		ScEta:        float64(e.ScEta[i]),
		ScPhi:        float64(e.ScPhi[i]),
		Q:            e.Q[i],
		ChHadIso:     float64(e.ChHadIso[i]),
		NeuHadIso:    float64(e.NeuHadIso[i]),
		GammaIso:     float64(e.GammaIso[i]),
		Sieie:        float64(e.Sieie[i]),
		DEtaIn:       float64(e.DEtaIn[i]),
		DPhiIn:       float64(e.DPhiIn[i]),
		HOverE:       float64(e.HOverE[i]),
		EOverP:       float64(e.EOverP[i]),
		EcalEnergy:   float64(e.EcalEnergy[i]),
		D0:           float64(e.D0[i]),
		Dz:           float64(e.Dz[i]),
		NMissingHits: e.NMissingHits[i],
		IsConv:       e.IsConv[i] != 0,
		TypeBits:     e.TypeBits[i],
		HLTMatchBits: e.HLTMatchBits[i],
	}
}

func (e *Electrons) Append(el Electron) {
	conv := int32(0)
	if el.IsConv {
		conv = 1
	}
	e.Pt = append(e.Pt, float32(el.Pt))
	e.Eta = append(e.Eta, float32(el.Eta))
	e.Phi = append(e.Phi, float32(el.Phi))
	e.ScEt = append(e.ScEt, float32(el.ScEt))
	e.ScEta = append(e.ScEta, float32(el.ScEta))
	e.ScPhi = append(e.ScPhi, float32(el.ScPhi))
	e.Q = append(e.Q, el.Q)
	e.ChHadIso = append(e.ChHadIso, float32(el.ChHadIso))
	e.NeuHadIso = append(e.NeuHadIso, float32(el.NeuHadIso))
	e.GammaIso = append(e.GammaIso, float32(el.GammaIso))
	e.Sieie = append(e.Sieie, float32(el.Sieie))
	e.DEtaIn = append(e.DEtaIn, float32(el.DEtaIn))
	e.DPhiIn = append(e.DPhiIn, float32(el.DPhiIn))
	e.HOverE = append(e.HOverE, float32(el.HOverE))
	e.EOverP = append(e.EOverP, float32(el.EOverP))
	e.EcalEnergy = append(e.EcalEnergy, float32(el.EcalEnergy))
	e.D0 = append(e.D0, float32(el.D0))
	e.Dz = append(e.Dz, float32(el.Dz))
	e.NMissingHits = append(e.NMissingHits, el.NMissingHits)
	e.IsConv = append(e.IsConv, conv)
	e.TypeBits = append(e.TypeBits, el.TypeBits)
	e.HLTMatchBits = append(e.HLTMatchBits, el.HLTMatchBits)
	e.N = int32(len(e.Pt))
}

// Vertices only carries the primary-vertex multiplicity.
type Vertices struct {
	N int32 `groot:"nPV"`
}

// Event is the buffer one entry of the Events tree is read into. The slices
// are reused from entry to entry.
type Event struct {
	Info         EventInfo
	Gen          GenEventInfo
	GenParticles GenParticles
	Electrons    Electrons
	PV           Vertices
}
