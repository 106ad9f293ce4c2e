package zllplot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/hbook"
)

func TestEfficiency(t *testing.T) {
	pass := hbook.NewH1D(2, -2.5, 2.5)
	total := hbook.NewH1D(2, -2.5, 2.5)
	for i := 0; i < 4; i++ {
		total.Fill(-1, 1)
		if i < 3 {
			pass.Fill(-1, 1)
		}
	}

	pts, err := Efficiency(pass, total)
	require.NoError(t, err)
	require.Len(t, pts.XYs, 2)

	assert.Equal(t, -1.25, pts.XYs[0].X)
	assert.Equal(t, 0.75, pts.XYs[0].Y)
	assert.InDelta(t, math.Sqrt(0.75*0.25/4), pts.YErrors[0].Low, 1e-12)
	assert.InDelta(t, 2.5/math.Sqrt(12), pts.XErrors[0].High, 1e-12)

	assert.Zero(t, pts.XYs[1].Y)
	assert.Zero(t, pts.YErrors[1].Low)

	_, err = Efficiency(hbook.NewH1D(3, -2.5, 2.5), total)
	assert.Error(t, err)
}

func TestResGrid(t *testing.T) {
	g := NewResGrid(2, -2, 2, 1, 0, 100)
	for _, z := range []float64{0.9, 1.0, 1.1} {
		g.Fill(-1, 50, z)
	}
	g.Fill(1, 50, 1)

	nx, ny := g.Dims()
	assert.Equal(t, 2, nx)
	assert.Equal(t, 1, ny)
	assert.Equal(t, 3.0, g.Count(0, 0))
	assert.InDelta(t, 1.0, g.Mean(0, 0), 1e-12)
	assert.InDelta(t, math.Sqrt(0.02/3), g.Z(0, 0), 1e-9)

	// too few entries
	assert.Equal(t, 1.0, g.Z(1, 0))
	g.Empty = 0
	assert.Zero(t, g.Z(1, 0))

	assert.Equal(t, -1.0, g.X(0))
	assert.Equal(t, 50.0, g.Y(0))
}
