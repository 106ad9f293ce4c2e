package closure

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/zllplot"
	"github.com/decibelcooper/zllplot/ntuple"
)

// PlotLabel is the axis label of the dilepton mass.
var PlotLabel = "m_μμ [GeV]"

// Plot writes mu_comp_<i>_<j>.png for every bin pair and mu_comp_tot.png
// into dir.
func (t *Test) Plot(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}

	cfg := &t.cfg
	n := cfg.NEtaBins()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			k := PairIndex(i, j, n)
			name := filepath.Join(dir, fmt.Sprintf("mu_comp_%d_%d.png", i, j))
			err := t.plot(name, t.hists[MC].Pairs[k], t.hists[Data].Pairs[k], t.hists[CorrMC].Pairs[k],
				etaRange(cfg.EtaEdges[i], cfg.EtaEdges[i+1]), etaRange(cfg.EtaEdges[j], cfg.EtaEdges[j+1]), 1.3)
			if err != nil {
				return err
			}
		}
	}

	name := filepath.Join(dir, "mu_comp_tot.png")
	full := etaRange(cfg.EtaEdges[0], cfg.EtaEdges[n])
	return t.plot(name, t.hists[MC].Total, t.hists[Data].Total, t.hists[CorrMC].Total, full, full, 1.2)
}

func (t *Test) plot(path string, mc, data, corrmc *hbook.H1D, eta1, eta2 string, headroom float64) error {
	cfg := &t.cfg
	rp := zllplot.NewRatioPlot()

	top := rp.Top
	top.Title.Text = fmt.Sprintf("CMS Preliminary    %.1f pb⁻¹ at √s = 13 TeV", cfg.Lumi)
	top.Y.Label.Text = "Events"

	hmc := hplot.NewH1D(mc)
	hmc.LineStyle.Color = zllplot.Red
	hcorr := hplot.NewH1D(corrmc)
	hcorr.LineStyle.Color = zllplot.Blue
	top.Add(hmc, hcorr)

	dataPts := zllplot.Points(data)
	scatter, err := plotter.NewScatter(dataPts.XYs)
	if err != nil {
		return fmt.Errorf("could not plot data: %w", err)
	}
	scatter.GlyphStyle.Color = zllplot.Black
	scatter.GlyphStyle.Radius = vg.Points(2)
	bars, err := plotter.NewYErrorBars(dataPts)
	if err != nil {
		return fmt.Errorf("could not plot data: %w", err)
	}
	top.Add(scatter, bars)

	top.Legend.Add("Raw MC", hmc)
	top.Legend.Add("Data", scatter)
	top.Legend.Add("Corr. MC", hcorr)
	top.Legend.Add(eta1)
	top.Legend.Add(eta2)
	top.X.Min, top.X.Max = cfg.MassLow, cfg.MassHigh
	top.Y.Min = 0.01
	top.Y.Max = headroom * max(ntuple.Maximum(mc), ntuple.Maximum(data), 1)

	bottom := rp.Bottom
	bottom.X.Label.Text = PlotLabel
	bottom.Y.Label.Text = "χ"

	diffMC, err := zllplot.RelDiff(mc, data)
	if err != nil {
		return err
	}
	line, err := plotter.NewLine(diffMC.XYs)
	if err != nil {
		return fmt.Errorf("could not plot relative difference: %w", err)
	}
	line.StepStyle = plotter.MidStep
	line.LineStyle.Color = zllplot.Red

	diffCorr, err := zllplot.RelDiff(corrmc, data)
	if err != nil {
		return err
	}
	corrPts, err := plotter.NewScatter(diffCorr.XYs)
	if err != nil {
		return fmt.Errorf("could not plot relative difference: %w", err)
	}
	corrPts.GlyphStyle.Color = zllplot.Blue
	corrPts.GlyphStyle.Radius = vg.Points(2)
	corrBars, err := plotter.NewYErrorBars(diffCorr)
	if err != nil {
		return fmt.Errorf("could not plot relative difference: %w", err)
	}
	corrBars.LineStyle.Color = zllplot.Blue

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = color.Gray{Y: 128}
	zero.XMin, zero.XMax = cfg.MassLow, cfg.MassHigh

	bottom.Add(zero, line, corrPts, corrBars)
	bottom.Y.Min, bottom.Y.Max = -1, 1

	if err := rp.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return err
	}
	t.log.Debug("plot written", "file", path)
	return nil
}

func etaRange(low, high float64) string {
	return fmt.Sprintf("[%.1f, %.1f]", low, high)
}
