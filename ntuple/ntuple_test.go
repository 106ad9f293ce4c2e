package ntuple

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/hbook"
)

type inner struct {
	A float64 `groot:"a"`
}

type testRow struct {
	inner
	B    int32     `groot:"b"`
	N    int32     `groot:"n"`
	V    []float32 `groot:"v[n]"`
	Skip int
}

func TestColumns(t *testing.T) {
	cols := Columns(&testRow{})
	require.Len(t, cols, 4)

	assert.Equal(t, "a", cols[0].Name)
	assert.Equal(t, []int{0, 0}, cols[0].Index)
	assert.Equal(t, reflect.Float64, cols[0].Kind)

	assert.Equal(t, "v", cols[3].Name)
	assert.Equal(t, "n", cols[3].Count)
	assert.Equal(t, reflect.Slice, cols[3].Kind)
	assert.Equal(t, reflect.Float32, cols[3].Elem)

	assert.Panics(t, func() { Columns(testRow{}) })
}

func TestTreeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "rows.root")

	var row testRow
	tw, err := NewTreeWriter(path, &row)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		row.A = float64(i) + 0.5
		row.B = int32(10 * i)
		row.V = make([]float32, i)
		row.N = int32(i)
		require.NoError(t, tw.Write())
	}
	require.NoError(t, tw.Close())

	var (
		got  testRow
		as   []float64
		lens []int
	)
	err = ReadTree(path, &got, func(entry int64) error {
		as = append(as, got.A)
		lens = append(lens, len(got.V))
		assert.Zero(t, got.B)
		return nil
	}, "a", "n", "v")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, as)
	assert.Equal(t, []int{0, 1, 2}, lens)
}

func TestReadTreeErrors(t *testing.T) {
	dir := t.TempDir()

	var row testRow
	err := ReadTree(filepath.Join(dir, "missing.root"), &row, func(int64) error { return nil })
	var openErr *ErrOpenFile
	assert.True(t, errors.As(err, &openErr))

	path := filepath.Join(dir, "hists.root")
	require.NoError(t, SaveH1Ds(path, map[string]*hbook.H1D{"h": hbook.NewH1D(2, 0, 1)}))

	err = ReadTree(path, &row, func(int64) error { return nil })
	var missing *ErrMissingObject
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, TreeName, missing.Name)
}

func TestSaveLoadH1Ds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hists.root")

	h := hbook.NewH1D(4, 0, 4)
	h.Fill(0.5, 1)
	h.Fill(2.5, 3)
	require.NoError(t, SaveH1Ds(path, map[string]*hbook.H1D{"w": h}))

	hs, err := LoadH1Ds(path, "w")
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, 3.0, FindBinContent(hs[0], 2.1))
	assert.Equal(t, 4.0, Integral(hs[0]))

	_, err = LoadH1Ds(path, "w", "nope")
	var missing *ErrMissingObject
	assert.True(t, errors.As(err, &missing))
}

func TestBinLookups(t *testing.T) {
	h := hbook.NewH1D(4, 0, 4)
	h.Fill(0.5, 2)
	h.Fill(3.5, 5)
	h.Fill(-1, 100)
	h.Fill(9, 100)

	assert.Equal(t, 2.0, FindBinContent(h, 0))
	assert.Equal(t, 5.0, FindBinContent(h, 3.99))
	assert.Zero(t, FindBinContent(h, 1.5))
	assert.Zero(t, FindBinContent(h, -0.1))
	assert.Zero(t, FindBinContent(h, 4))

	assert.Equal(t, 2.0, BinContent(h, 1))
	assert.Equal(t, 5.0, BinContent(h, 4))
	assert.Zero(t, BinContent(h, 0))
	assert.Zero(t, BinContent(h, 5))

	assert.Equal(t, 7.0, Integral(h))
	assert.Equal(t, 5.0, Maximum(h))
}
