// Package gen reconstructs the vector boson and its decay leptons from the
// generator particle record.
package gen

import (
	"log/slog"
	"math"

	"go-hep.org/x/hep/fmom"

	"github.com/decibelcooper/zllplot/bacon"
)

// PDG codes and generator status codes used by the walk.
const (
	PdgElectron = 11
	PdgMuon     = 13
	PdgTau      = 15
	PdgPhoton   = 22
	PdgZ        = 23
	PdgW        = 24

	StatusHardLepton  = 23
	StatusHardBoson   = 22
	StatusHardBosonV1 = 3
)

// FSRCone is the ΔR cone photons are recombined into a lepton within.
const FSRCone = 0.1

// Chain is the outcome of walking the generator record.
type Chain struct {
	// BosonID is the requested boson code, or its charge conjugate when
	// the walk stopped on the opposite-charge boson.
	BosonID int32
	// Flavor is the PDG code of the first hard-process lepton seen.
	Flavor int32
	// Stopped is set when the walk ended on the opposite-charge boson.
	Stopped bool

	PreBoson fmom.PxPyPzE
	Boson    fmom.PxPyPzE

	// PreLepPos/PreLepNeg are the leptons as produced by the boson decay,
	// LepPos/LepNeg the last particle of each lepton's chain.
	PreLepPos fmom.PxPyPzE
	PreLepNeg fmom.PxPyPzE
	LepPos    fmom.PxPyPzE
	LepNeg    fmom.PxPyPzE
}

// Walk scans the generator record once for the boson vid and its leptons.
//
// The scan tracks the last hard-process boson and each lepton's chain
// through parent links; any daughter of a lepton replaces it in the
// post-FSR slot. Meeting the opposite-charge boson resets the post-FSR
// vectors and ends the scan. When no boson momentum was found, the boson
// is rebuilt from the pre-FSR leptons.
func Walk(parts *bacon.GenParticles, vid int32, log *slog.Logger) Chain {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	c := Chain{BosonID: vid}
	iv, iv1, iv2 := -1, -1, -1

	for i := 0; i < parts.Len(); i++ {
		p := parts.At(i)
		log.Debug("gen particle", "index", i, "pdgId", p.PdgID, "parent", p.Parent, "status", p.Status, "pt", p.Pt, "eta", p.Eta)

		if p.PdgID == -c.BosonID {
			c.Boson = fmom.PxPyPzE{}
			c.LepPos = fmom.PxPyPzE{}
			c.LepNeg = fmom.PxPyPzE{}
			c.BosonID = -vid
			c.Stopped = true
			log.Debug("opposite-charge boson, stopping walk", "index", i)
			break
		}

		switch {
		case p.Status == StatusHardLepton && IsChargedLepton(p.PdgID):
			c.takeLepton(p, i, &iv1, &iv2)

		case p.PdgID == vid && (p.Status == StatusHardBosonV1 || p.Status == StatusHardBoson):
			c.PreBoson = Vec(p)
			c.Boson = c.PreBoson
			iv = i

		case iv != -1 && int(p.Parent) == iv:
			switch {
			case p.PdgID == vid:
				c.Boson = Vec(p)
				iv = i
			case IsChargedLepton(p.PdgID):
				c.takeLepton(p, i, &iv1, &iv2)
			}

		case iv1 != -1 && int(p.Parent) == iv1:
			c.LepPos = Vec(p)
			iv1 = i

		case iv2 != -1 && int(p.Parent) == iv2:
			c.LepNeg = Vec(p)
			iv2 = i
		}
	}

	if c.Boson.Pt() == 0 && c.PreLepNeg.Pt() > 0 && c.PreLepPos.Pt() > 0 {
		c.Boson = Add(c.PreLepNeg, c.PreLepPos)
	}

	return c
}

func (c *Chain) takeLepton(p bacon.GenParticle, i int, iv1, iv2 *int) {
	if c.Flavor == 0 {
		c.Flavor = p.PdgID
	}

	switch {
	case p.PdgID < 0 && c.LepPos.Pt() == 0:
		c.LepPos = Vec(p)
		c.PreLepPos = c.LepPos
		*iv1 = i
	case p.PdgID > 0 && c.LepNeg.Pt() == 0:
		c.LepNeg = Vec(p)
		c.PreLepNeg = c.LepNeg
		*iv2 = i
	}
}

// V returns the boson four-vector: the hard-process record when it has a
// mass, otherwise the last boson copy or the dilepton fallback.
func (c *Chain) V() fmom.PxPyPzE {
	switch {
	case c.PreBoson.M() > 0:
		return c.PreBoson
	case c.Boson.M() > 0:
		return c.Boson
	}
	return fmom.PxPyPzE{}
}

// VPostFSR returns the sum of the post-FSR leptons, or a null vector unless
// both were found.
func (c *Chain) VPostFSR() fmom.PxPyPzE {
	if c.LepPos.Pt() > 0 && c.LepNeg.Pt() > 0 {
		return Add(c.LepPos, c.LepNeg)
	}
	return fmom.PxPyPzE{}
}

// Flavor returns the PDG code of the hard-process lepton of the boson vid
// decay, or zero if none was found.
func Flavor(parts *bacon.GenParticles, vid int32) int32 {
	c := Walk(parts, vid, nil)
	return c.Flavor
}

// Dress adds to lep every generator photon within ΔR < cone of it. Each
// photon is compared with the lepton as dressed so far.
func Dress(lep fmom.PxPyPzE, parts *bacon.GenParticles, cone float64) fmom.PxPyPzE {
	if lep.Pt() == 0 {
		return lep
	}

	for i := 0; i < parts.Len(); i++ {
		p := parts.At(i)
		if abs(p.PdgID) != PdgPhoton || p.Pt <= 0 {
			continue
		}
		ph := Vec(p)
		if DeltaR(ph, lep) < cone {
			lep = Add(lep, ph)
		}
	}
	return lep
}

func IsChargedLepton(id int32) bool {
	switch abs(id) {
	case PdgElectron, PdgMuon, PdgTau:
		return true
	}
	return false
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Vec converts a generator particle to a four-vector.
func Vec(p bacon.GenParticle) fmom.PxPyPzE {
	return PtEtaPhiM(p.Pt, p.Eta, p.Phi, p.Mass)
}

// PtEtaPhiM builds a cartesian four-vector from collider coordinates.
func PtEtaPhiM(pt, eta, phi, m float64) fmom.PxPyPzE {
	p := fmom.NewPtEtaPhiM(pt, eta, phi, m)
	var v fmom.PxPyPzE
	v.Set(&p)
	return v
}

func Add(a, b fmom.PxPyPzE) fmom.PxPyPzE {
	return fmom.NewPxPyPzE(a.Px()+b.Px(), a.Py()+b.Py(), a.Pz()+b.Pz(), a.E()+b.E())
}

// DeltaR is the angular distance in (η, φ). Vectors without transverse
// momentum have no direction and are infinitely far from everything.
func DeltaR(a, b fmom.PxPyPzE) float64 {
	if a.Pt() == 0 || b.Pt() == 0 {
		return math.Inf(1)
	}
	return fmom.DeltaR(&a, &b)
}

// Kinematics are the collider coordinates of a four-vector.
type Kinematics struct {
	Pt, Eta, Phi, M float64
}

// KinematicsOf returns the coordinates of v. A vector without transverse
// momentum keeps its mass and gets zero η and φ.
func KinematicsOf(v fmom.PxPyPzE) Kinematics {
	if v.Pt() == 0 {
		return Kinematics{M: v.M()}
	}
	return Kinematics{Pt: v.Pt(), Eta: v.Eta(), Phi: v.Phi(), M: v.M()}
}
