package zllplot

import (
	"flag"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func TestRelDiffAgreeing(t *testing.T) {
	h := hbook.NewH1D(4, 80, 100)
	for _, x := range []float64{81, 86, 86, 91, 96} {
		h.Fill(x, 1)
	}

	pts, err := RelDiff(h, h)
	require.NoError(t, err)
	require.Len(t, pts.XYs, 4)
	for i, xy := range pts.XYs {
		assert.Zero(t, xy.Y, "bin %d", i)
	}
	assert.Equal(t, 82.5, pts.XYs[0].X)
	assert.InDelta(t, math.Sqrt(2)/2, pts.YErrors[1].Low, 1e-12)
}

func TestRelDiffNumeratorRelative(t *testing.T) {
	h := hbook.NewH1D(3, 0, 3)
	b := hbook.NewH1D(3, 0, 3)
	h.Fill(0.5, 4)
	b.Fill(0.5, 1)
	h.Fill(1.5, 2)
	b.Fill(2.5, 9)

	pts, err := RelDiff(h, b)
	require.NoError(t, err)

	assert.InDelta(t, 0.75, pts.XYs[0].Y, 1e-12)
	assert.InDelta(t, 0.25, pts.YErrors[0].High, 1e-12)
	// empty reference
	assert.Zero(t, pts.XYs[1].Y)
	// empty numerator
	assert.Zero(t, pts.XYs[2].Y)
	assert.Zero(t, pts.YErrors[2].Low)
}

func TestRelDiffBinning(t *testing.T) {
	_, err := RelDiff(hbook.NewH1D(3, 0, 3), hbook.NewH1D(4, 0, 3))
	assert.Error(t, err)
	_, err = RelDiff(hbook.NewH1D(3, 0, 3), hbook.NewH1D(3, 0, 6))
	assert.Error(t, err)
}

func TestPoints(t *testing.T) {
	h := hbook.NewH1D(2, 0, 2)
	h.Fill(0.5, 2)
	h.Fill(0.5, 2)
	pts := Points(h)
	assert.Equal(t, 4.0, pts.XYs[0].Y)
	assert.InDelta(t, math.Sqrt(8), pts.YErrors[0].Low, 1e-12)
	assert.Zero(t, pts.XYs[1].Y)
}

func TestPreciseTicks(t *testing.T) {
	ticks := PreciseTicks{NSuggestedTicks: 5}.Ticks(80, 100)

	var labelled []float64
	for _, tk := range ticks {
		assert.GreaterOrEqual(t, tk.Value, 80.0)
		assert.LessOrEqual(t, tk.Value, 100.0)
		if tk.Label != "" {
			labelled = append(labelled, tk.Value)
		}
	}
	assert.Equal(t, []float64{80, 85, 90, 95, 100}, labelled)

	ticks = PreciseTicks{}.Ticks(0, 0.3)
	for _, tk := range ticks {
		if tk.Label != "" {
			assert.LessOrEqual(t, len(tk.Label), len("0.08"), tk.Label)
		}
	}

	assert.Panics(t, func() { PreciseTicks{}.Ticks(1, 1) })
}

func TestFloatArrayFlags(t *testing.T) {
	f := NewFloatArrayFlags(0, 1.2, 2.1, 2.4)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(f, "etabin", "")

	edges, err := f.Edges()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1.2, 2.1, 2.4}, edges)

	require.NoError(t, fs.Parse([]string{"-etabin", "0,1.4442", "-etabin", "2.5"}))
	assert.Equal(t, []float64{0, 1.4442, 2.5}, f.Array)

	require.Error(t, f.Set("x"))
	require.NoError(t, f.Set("1"))
	_, err = f.Edges()
	assert.Error(t, err)
}

func TestLineColor(t *testing.T) {
	assert.Equal(t, Black, LineColor(0))
	assert.Equal(t, Blue, LineColor(2))
	assert.Equal(t, Black, LineColor(4))
}

func TestRatioPlotSave(t *testing.T) {
	h := hbook.NewH1D(40, 80, 100)
	b := hbook.NewH1D(40, 80, 100)
	for i := 0; i < 400; i++ {
		x := 80 + float64(i%40)/2 + 0.25
		h.Fill(x, 1)
		b.Fill(x, 1+0.1*float64(i%3))
	}

	rp := NewRatioPlot()
	rp.Top.X.Min, rp.Top.X.Max = 80, 100
	rp.Top.Add(hplot.NewH1D(h))

	pts, err := RelDiff(h, b)
	require.NoError(t, err)
	s, err := plotter.NewScatter(pts.XYs)
	require.NoError(t, err)
	rp.Bottom.Add(s)

	path := filepath.Join(t.TempDir(), "ratio.png")
	require.NoError(t, rp.Save(4*vg.Inch, 4*vg.Inch, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)
}
