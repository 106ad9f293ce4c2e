package ntuple

import (
	"sort"

	"go-hep.org/x/hep/hbook"
)

// FindBinContent returns the content of the bin containing x, mirroring a
// GetBinContent(FindBin(x)) lookup. Values outside the axis range fall in
// the under/overflow bins, which reweighting tables leave empty, so they
// yield zero.
func FindBinContent(h *hbook.H1D, x float64) float64 {
	bins := h.Binning.Bins
	if len(bins) == 0 || x < bins[0].Range.Min || x >= bins[len(bins)-1].Range.Max {
		return 0
	}

	i := sort.Search(len(bins), func(i int) bool { return bins[i].Range.Max > x })
	return bins[i].SumW()
}

// BinContent returns the content of a bin given its ROOT bin number:
// 1..N address the in-range bins, anything else is under/overflow and
// yields zero.
func BinContent(h *hbook.H1D, bin int) float64 {
	i := bin - 1
	if i < 0 || i >= len(h.Binning.Bins) {
		return 0
	}
	return h.Binning.Bins[i].SumW()
}

// Integral sums the in-range bin contents.
func Integral(h *hbook.H1D) float64 {
	sum := 0.0
	for _, b := range h.Binning.Bins {
		sum += b.SumW()
	}
	return sum
}

// Maximum returns the largest in-range bin content.
func Maximum(h *hbook.H1D) float64 {
	max := 0.0
	for i, b := range h.Binning.Bins {
		if i == 0 || b.SumW() > max {
			max = b.SumW()
		}
	}
	return max
}
