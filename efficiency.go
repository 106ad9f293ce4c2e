package zllplot

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
)

// Efficiency returns pass/total per bin at the bin centres, with binomial
// errors on y and the bin width over sqrt(12) on x. Bins without entries in
// total are zero.
func Efficiency(pass, total *hbook.H1D) (plotutil.ErrorPoints, error) {
	if err := sameBinning(pass, total); err != nil {
		return plotutil.ErrorPoints{}, fmt.Errorf("could not compute efficiency: %w", err)
	}

	bins := total.Binning.Bins
	points := make(plotter.XYs, len(bins))
	xErrors := make(plotter.XErrors, len(bins))
	yErrors := make(plotter.YErrors, len(bins))
	for i, bin := range bins {
		width := bin.Range.Max - bin.Range.Min
		points[i].X = bin.Range.Min + width/2
		xErrors[i].Low = width / math.Sqrt(12)
		xErrors[i].High = xErrors[i].Low

		n, k := bin.SumW(), pass.Binning.Bins[i].SumW()
		if n <= 0 {
			continue
		}
		eff := k / n
		points[i].Y = eff
		yErrors[i].Low = math.Sqrt(math.Max((1-eff)*eff/n, 0))
		yErrors[i].High = yErrors[i].Low
	}
	return plotutil.ErrorPoints{XYs: points, XErrors: xErrors, YErrors: yErrors}, nil
}
