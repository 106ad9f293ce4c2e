package bacon

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndScan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bacon.root")

	w, err := NewWriter(path, true)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		var ev Event
		ev.Info.RunNum = 1
		ev.Info.EvtNum = uint32(100 + i)
		ev.Info.NPUMean = 12.5
		ev.Info.HasGoodPV = i != 1
		ev.Gen.Weight = float32(i + 1)
		ev.Gen.LHEWeight = []float32{1, 0.9, 1.1}
		ev.PV.N = int32(i)
		for j := 0; j < i; j++ {
			ev.GenParticles.Append(GenParticle{PdgID: 11, Status: 1, Parent: -1, Pt: 10, Eta: 0.5})
			ev.Electrons.Append(Electron{Pt: 30, Eta: 0.1, ScEt: 31, Q: -1, IsConv: j == 1, HLTMatchBits: 1})
		}
		require.NoError(t, w.Write(&ev))
	}
	require.NoError(t, w.Close())

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, f.HasGen())
	assert.Equal(t, int64(3), f.Entries())

	var (
		evtNums []uint32
		nGen    []int
		convs   int
		sumW    float32
	)
	err = f.Scan(PartAll, func(entry int64, ev *Event) error {
		evtNums = append(evtNums, ev.Info.EvtNum)
		nGen = append(nGen, ev.GenParticles.Len())
		sumW += ev.Gen.Weight
		for i := 0; i < ev.Electrons.Len(); i++ {
			if ev.Electrons.At(i).IsConv {
				convs++
			}
		}
		assert.Len(t, ev.Gen.LHEWeight, 3)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []uint32{100, 101, 102}, evtNums)
	assert.Equal(t, []int{0, 1, 2}, nGen)
	assert.Equal(t, 1, convs)
	assert.Equal(t, float32(6), sumW)
}

func TestScanRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.root")

	w, err := NewWriter(path, false)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		var ev Event
		ev.Info.EvtNum = uint32(i)
		require.NoError(t, w.Write(&ev))
	}
	require.NoError(t, w.Close())

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, f.HasGen())

	var got []uint32
	err = f.ScanRange(PartInfo|PartGen, 1, 3, func(entry int64, ev *Event) error {
		got = append(got, ev.Info.EvtNum)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2}, got)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.root"))
	require.Error(t, err)
}
