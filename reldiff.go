package zllplot

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
)

// RelDiff compares h to the reference b bin by bin: the value is
// (h-b)/h and its error sqrt(b)/h, placed at the bin centre. Bins where
// either histogram is empty are zero.
func RelDiff(h, b *hbook.H1D) (plotutil.ErrorPoints, error) {
	if err := sameBinning(h, b); err != nil {
		return plotutil.ErrorPoints{}, err
	}

	n := len(h.Binning.Bins)
	pts := plotutil.ErrorPoints{
		XYs:     make(plotter.XYs, n),
		XErrors: make(plotter.XErrors, n),
		YErrors: make(plotter.YErrors, n),
	}
	for i, bin := range h.Binning.Bins {
		pts.XYs[i].X = 0.5 * (bin.Range.Min + bin.Range.Max)

		hv := bin.SumW()
		bv := b.Binning.Bins[i].SumW()
		if bv == 0 || hv == 0 {
			continue
		}
		pts.XYs[i].Y = (hv - bv) / hv
		err := math.Sqrt(math.Abs(bv)) / math.Abs(hv)
		pts.YErrors[i].Low = err
		pts.YErrors[i].High = err
	}
	return pts, nil
}

// Points returns the bin contents of h with their statistical errors, for
// drawing a histogram as markers.
func Points(h *hbook.H1D) plotutil.ErrorPoints {
	n := len(h.Binning.Bins)
	pts := plotutil.ErrorPoints{
		XYs:     make(plotter.XYs, n),
		XErrors: make(plotter.XErrors, n),
		YErrors: make(plotter.YErrors, n),
	}
	for i, bin := range h.Binning.Bins {
		pts.XYs[i].X = 0.5 * (bin.Range.Min + bin.Range.Max)
		pts.XYs[i].Y = bin.SumW()
		err := math.Sqrt(bin.SumW2())
		pts.YErrors[i].Low = err
		pts.YErrors[i].High = err
	}
	return pts
}

func sameBinning(h, b *hbook.H1D) error {
	hb, bb := h.Binning.Bins, b.Binning.Bins
	if len(hb) != len(bb) {
		return fmt.Errorf("histograms have %d and %d bins", len(hb), len(bb))
	}
	for i := range hb {
		if hb[i].Range != bb[i].Range {
			return fmt.Errorf("bin %d edges differ: %v vs %v", i, hb[i].Range, bb[i].Range)
		}
	}
	return nil
}
