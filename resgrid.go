package zllplot

import (
	"math"

	"go-hep.org/x/hep/hbook"
)

// ResGrid accumulates a value in bins of (x, y) and exposes its spread per
// bin as a plotter.GridXYZ.
type ResGrid struct {
	hCount, hV, hV2 *hbook.H2D
	nBinsX, nBinsY  int

	// Empty is reported for bins with fewer than three entries.
	Empty float64
}

func NewResGrid(nBinsX int, xLow, xHigh float64, nBinsY int, yLow, yHigh float64) *ResGrid {
	return &ResGrid{
		hCount: hbook.NewH2D(nBinsX, xLow, xHigh, nBinsY, yLow, yHigh),
		hV:     hbook.NewH2D(nBinsX, xLow, xHigh, nBinsY, yLow, yHigh),
		hV2:    hbook.NewH2D(nBinsX, xLow, xHigh, nBinsY, yLow, yHigh),
		nBinsX: nBinsX,
		nBinsY: nBinsY,
		Empty:  1,
	}
}

func (g *ResGrid) Fill(x, y, z float64) {
	g.hCount.Fill(x, y, 1)
	g.hV.Fill(x, y, z)
	g.hV2.Fill(x, y, z*z)
}

func (g *ResGrid) Dims() (int, int) {
	return g.nBinsX, g.nBinsY
}

// Count is the number of entries in bin (i, j).
func (g *ResGrid) Count(i, j int) float64 {
	return g.hCount.GridXYZ().Z(i, j)
}

// Mean is the mean value in bin (i, j), or zero for an empty bin.
func (g *ResGrid) Mean(i, j int) float64 {
	n := g.Count(i, j)
	if n == 0 {
		return 0
	}
	return g.hV.GridXYZ().Z(i, j) / n
}

// Z is the standard deviation of the value in bin (i, j).
func (g *ResGrid) Z(i, j int) float64 {
	n := g.Count(i, j)
	if n < 3 {
		return g.Empty
	}
	mean := g.hV.GridXYZ().Z(i, j) / n
	mean2 := g.hV2.GridXYZ().Z(i, j) / n

	return math.Sqrt(math.Max(mean2-mean*mean, 0))
}

func (g *ResGrid) X(i int) float64 {
	return g.hCount.GridXYZ().X(i)
}

func (g *ResGrid) Y(j int) float64 {
	return g.hCount.GridXYZ().Y(j)
}
