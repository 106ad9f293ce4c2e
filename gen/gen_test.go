package gen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/fmom"

	"github.com/decibelcooper/zllplot/bacon"
)

func particles(ps ...bacon.GenParticle) *bacon.GenParticles {
	var g bacon.GenParticles
	for _, p := range ps {
		g.Append(p)
	}
	return &g
}

func TestWalkZWithBosonRecord(t *testing.T) {
	parts := particles(
		bacon.GenParticle{PdgID: 2, Status: 21, Parent: -1, Pt: 0, Eta: 0},
		bacon.GenParticle{PdgID: 23, Status: 22, Parent: 0, Pt: 12, Eta: 0.3, Phi: 0.1, Mass: 91},
		bacon.GenParticle{PdgID: 23, Status: 44, Parent: 1, Pt: 14, Eta: 0.3, Phi: 0.2, Mass: 90.5},
		bacon.GenParticle{PdgID: -11, Status: 1, Parent: 2, Pt: 40, Eta: 0.5, Phi: 1.0, Mass: 0.000511},
		bacon.GenParticle{PdgID: 11, Status: 1, Parent: 2, Pt: 45, Eta: -0.2, Phi: -2.0, Mass: 0.000511},
		bacon.GenParticle{PdgID: -11, Status: 1, Parent: 3, Pt: 38, Eta: 0.5, Phi: 1.0, Mass: 0.000511},
	)

	c := Walk(parts, PdgZ, nil)
	assert.False(t, c.Stopped)
	assert.Equal(t, int32(23), c.BosonID)
	assert.Equal(t, int32(-11), c.Flavor)

	v := c.V()
	assert.InDelta(t, 12, v.Pt(), 1e-3)
	assert.InDelta(t, 91, v.M(), 1e-3)
	assert.InDelta(t, 14, c.Boson.Pt(), 1e-3)

	assert.InDelta(t, 40, c.PreLepPos.Pt(), 1e-3)
	assert.InDelta(t, 38, c.LepPos.Pt(), 1e-3)
	assert.InDelta(t, 45, c.PreLepNeg.Pt(), 1e-3)
	assert.InDelta(t, 45, c.LepNeg.Pt(), 1e-3)

	post := c.VPostFSR()
	want := Add(c.LepPos, c.LepNeg)
	assert.InDelta(t, want.Pt(), post.Pt(), 1e-9)
}

func TestWalkFallsBackToDileptonSum(t *testing.T) {
	parts := particles(
		bacon.GenParticle{PdgID: 21, Status: 21, Parent: -1},
		bacon.GenParticle{PdgID: 13, Status: 23, Parent: 0, Pt: 30, Eta: 1.0, Phi: 0.3, Mass: 0.105},
		bacon.GenParticle{PdgID: -13, Status: 23, Parent: 0, Pt: 35, Eta: -0.4, Phi: 2.8, Mass: 0.105},
	)

	c := Walk(parts, PdgZ, nil)
	require.Equal(t, 0.0, c.PreBoson.Pt())

	sum := Add(c.PreLepNeg, c.PreLepPos)
	v := c.V()
	assert.InDelta(t, sum.Pt(), v.Pt(), 1e-9)
	assert.InDelta(t, sum.M(), v.M(), 1e-9)
	assert.Equal(t, int32(13), c.Flavor)
}

func TestWalkKeepsBosonWhenRecordExists(t *testing.T) {
	parts := particles(
		bacon.GenParticle{PdgID: 23, Status: 3, Parent: -1, Pt: 5, Eta: 0.1, Phi: 0.0, Mass: 88},
		bacon.GenParticle{PdgID: 11, Status: 23, Parent: 0, Pt: 30, Eta: 1.0, Phi: 0.3},
		bacon.GenParticle{PdgID: -11, Status: 23, Parent: 0, Pt: 35, Eta: -0.4, Phi: 2.8},
	)

	c := Walk(parts, PdgZ, nil)
	v := c.V()
	assert.InDelta(t, 5, v.Pt(), 1e-3)

	sum := Add(c.PreLepNeg, c.PreLepPos)
	assert.NotEqual(t, math.Round(sum.Pt()*1e3), math.Round(v.Pt()*1e3))
}

func TestWalkStopsOnOppositeBoson(t *testing.T) {
	parts := particles(
		bacon.GenParticle{PdgID: 11, Status: 23, Parent: -1, Pt: 30, Eta: 1.0, Phi: 0.3},
		bacon.GenParticle{PdgID: 24, Status: 22, Parent: -1, Pt: 10, Eta: 0.2, Phi: 0.1, Mass: 80},
		bacon.GenParticle{PdgID: -11, Status: 23, Parent: 1, Pt: 35, Eta: -0.4, Phi: 2.8},
	)

	c := Walk(parts, -PdgW, nil)
	assert.True(t, c.Stopped)
	assert.Equal(t, int32(PdgW), c.BosonID)
	// post-FSR slots are reset, pre-FSR ones are kept
	assert.Equal(t, 0.0, c.LepNeg.Pt())
	assert.InDelta(t, 30, c.PreLepNeg.Pt(), 1e-3)
	assert.Equal(t, 0.0, c.PreLepPos.Pt())
	// no boson and a single lepton: no fallback
	v := c.V()
	assert.Equal(t, 0.0, v.Pt())
}

func TestWalkLeptonDaughterReplacesLepton(t *testing.T) {
	parts := particles(
		bacon.GenParticle{PdgID: 11, Status: 23, Parent: -1, Pt: 30, Eta: 1.0, Phi: 0.3},
		bacon.GenParticle{PdgID: 22, Status: 1, Parent: 0, Pt: 3, Eta: 1.01, Phi: 0.31},
	)

	c := Walk(parts, PdgZ, nil)
	assert.InDelta(t, 3, c.LepNeg.Pt(), 1e-3)
	assert.InDelta(t, 30, c.PreLepNeg.Pt(), 1e-3)
}

func TestFlavor(t *testing.T) {
	parts := particles(
		bacon.GenParticle{PdgID: 23, Status: 22, Parent: -1, Pt: 5, Mass: 91},
		bacon.GenParticle{PdgID: 15, Status: 1, Parent: 0, Pt: 30, Eta: 1.0},
		bacon.GenParticle{PdgID: -15, Status: 1, Parent: 0, Pt: 30, Eta: -1.0},
	)
	assert.Equal(t, int32(15), Flavor(parts, PdgZ))
	assert.Equal(t, int32(0), Flavor(particles(), PdgZ))
}

func TestDress(t *testing.T) {
	parts := particles(
		bacon.GenParticle{PdgID: 22, Status: 1, Parent: 0, Pt: 2, Eta: 0.52, Phi: 1.0},
		bacon.GenParticle{PdgID: 22, Status: 1, Parent: 0, Pt: 2, Eta: 1.5, Phi: 1.0},
		bacon.GenParticle{PdgID: 11, Status: 1, Parent: 0, Pt: 2, Eta: 0.5, Phi: 1.0},
	)

	lep := PtEtaPhiM(40, 0.5, 1.0, 0.000511)
	dressed := Dress(lep, parts, FSRCone)
	assert.InDelta(t, 42, dressed.Pt(), 0.01)

	empty := Dress(PtEtaPhiM(0, 0, 0, 0), parts, FSRCone)
	assert.Equal(t, 0.0, empty.Pt())
}

func TestKinematicsOfNull(t *testing.T) {
	assert.Equal(t, Kinematics{}, KinematicsOf(Add(PtEtaPhiM(0, 0, 0, 0), PtEtaPhiM(0, 0, 0, 0))))

	// at rest along the beam: the mass survives
	rest := KinematicsOf(fmom.NewPxPyPzE(0, 0, 0, 91.1876))
	assert.Zero(t, rest.Pt)
	assert.Zero(t, rest.Eta)
	assert.InDelta(t, 91.1876, rest.M, 1e-9)

	k := KinematicsOf(PtEtaPhiM(25, -1.2, 2.0, 0.1))
	assert.InDelta(t, 25, k.Pt, 1e-9)
	assert.InDelta(t, -1.2, k.Eta, 1e-9)
	assert.InDelta(t, 2.0, k.Phi, 1e-9)
	assert.InDelta(t, 0.1, k.M, 1e-6)
}
