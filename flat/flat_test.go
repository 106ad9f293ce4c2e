package flat

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/zllplot/bacon"
	"github.com/decibelcooper/zllplot/gen"
	"github.com/decibelcooper/zllplot/ntuple"
)

// writeZee writes n events: the first without generator particles, the
// others with a Z->ee decay where the electron radiates once.
func writeZee(t *testing.T, n int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "zee.root")
	w, err := bacon.NewWriter(path, true)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		var ev bacon.Event
		ev.Info.EvtNum = uint32(i)
		ev.Gen.ID1, ev.Gen.ID2 = 2, -2
		ev.Gen.Weight = float32(i)
		ev.Gen.LHEWeight = []float32{1, 0.5 * float32(i)}
		if i > 0 {
			p := &ev.GenParticles
			p.Append(bacon.GenParticle{PdgID: gen.PdgZ, Status: gen.StatusHardBoson, Parent: -1, Pt: 5, Eta: 0.2, Phi: 0.1, Mass: 91.1876})
			p.Append(bacon.GenParticle{PdgID: 11, Status: gen.StatusHardLepton, Parent: 0, Pt: 40, Eta: 0.5, Phi: 1.0, Mass: 0.000511})
			p.Append(bacon.GenParticle{PdgID: -11, Status: gen.StatusHardLepton, Parent: 0, Pt: 45, Eta: -0.3, Phi: -2.0, Mass: 0.000511})
			p.Append(bacon.GenParticle{PdgID: 11, Status: 1, Parent: 1, Pt: 38, Eta: 0.5, Phi: 1.0, Mass: 0.000511})
		}
		require.NoError(t, w.Write(&ev))
	}
	require.NoError(t, w.Close())
	return path
}

func TestRun(t *testing.T) {
	in, err := bacon.Open(writeZee(t, 4))
	require.NoError(t, err)
	defer in.Close()

	out := filepath.Join(t.TempDir(), "flat.root")
	var row Row
	tw, err := ntuple.NewTreeWriter(out, &row)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.BosonID = gen.PdgZ
	stats, err := Run(cfg, in, &row, tw)
	require.NoError(t, err)
	require.NoError(t, tw.Close())

	assert.Equal(t, int64(4), stats.Read)
	assert.Equal(t, int64(3), stats.Written)
	assert.Equal(t, 6.0, stats.SumW)

	var (
		got     Row
		weights []float64
	)
	err = ntuple.ReadTree(out, &got, func(entry int64) error {
		weights = append(weights, got.Weight)
		assert.Equal(t, float64(gen.PdgZ), got.GenVID)
		assert.Equal(t, -11.0, got.GenL1ID)
		assert.Equal(t, 11.0, got.GenL2ID)
		assert.InDelta(t, 91.1876, got.GenVM, 1e-3)
		assert.InDelta(t, 45, got.GenL1Pt, 1e-4)
		assert.InDelta(t, 40, got.GenL2Pt, 1e-4)
		assert.InDelta(t, 38, got.GenL2fPt, 1e-4)
		assert.Greater(t, got.GenVfM, 0.0)
		assert.Equal(t, 2.0, got.ID1)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, weights)
}

func TestRunSingleEntryWithLHE(t *testing.T) {
	in, err := bacon.Open(writeZee(t, 4))
	require.NoError(t, err)
	defer in.Close()

	out := filepath.Join(t.TempDir(), "flat_lhe.root")
	var row RowLHE
	tw, err := ntuple.NewTreeWriter(out, &row)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.BosonID = gen.PdgZ
	cfg.Entry = 2
	stats, err := Run(cfg, in, &row, tw)
	require.NoError(t, err)
	require.NoError(t, tw.Close())

	assert.Equal(t, int64(1), stats.Read)
	assert.Equal(t, int64(1), stats.Written)

	var got RowLHE
	n := 0
	err = ntuple.ReadTree(out, &got, func(int64) error {
		n++
		assert.Equal(t, 2.0, got.Weight)
		assert.Equal(t, []float32{1, 1}, got.LHEWeight)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRunWithoutGen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.root")
	w, err := bacon.NewWriter(path, false)
	require.NoError(t, err)
	require.NoError(t, w.Write(&bacon.Event{}))
	require.NoError(t, w.Close())

	in, err := bacon.Open(path)
	require.NoError(t, err)
	defer in.Close()

	var row Row
	_, err = Run(DefaultConfig(), in, &row)
	assert.Error(t, err)
}

func TestFillResetsRow(t *testing.T) {
	var r Row
	r.GenL1Pt = 99
	r.GenVfM = 99

	c := gen.Chain{BosonID: -gen.PdgW, Flavor: 13}
	r.Fill(&bacon.GenEventInfo{Weight: 0.5}, &c)

	assert.Equal(t, 0.0, r.GenL1Pt)
	assert.Equal(t, 0.0, r.GenVfM)
	assert.Equal(t, -13.0, r.GenL1ID)
	assert.Equal(t, 13.0, r.GenL2ID)
	assert.Equal(t, -24.0, r.GenVID)
	assert.Equal(t, 0.5, r.Weight)
}

func TestFillBosonAtRest(t *testing.T) {
	parts := &bacon.GenParticles{}
	parts.Append(bacon.GenParticle{PdgID: -gen.PdgW, Status: gen.StatusHardBoson, Parent: -1, Mass: 80.4})
	parts.Append(bacon.GenParticle{PdgID: 11, Status: gen.StatusHardLepton, Parent: 0, Pt: 40, Eta: 0.3, Phi: 1.0, Mass: 0.000511})
	parts.Append(bacon.GenParticle{PdgID: -11, Status: gen.StatusHardLepton, Parent: 0, Pt: 40, Eta: -0.3, Phi: 1.0 - math.Pi, Mass: 0.000511})

	c := gen.Walk(parts, -gen.PdgW, nil)
	v := c.V()
	require.InDelta(t, 80.4, v.M(), 1e-6)

	var r Row
	r.Fill(&bacon.GenEventInfo{Weight: 1}, &c)

	assert.InDelta(t, 80.4, r.GenVM, 1e-6)
	assert.Zero(t, r.GenVPt)
	assert.Zero(t, r.GenVEta)
	assert.InDelta(t, 40, r.GenL1Pt, 1e-9)
	assert.InDelta(t, 40, r.GenL2fPt, 1e-9)
	assert.Greater(t, r.GenVfM, 0.0)
}
