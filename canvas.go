package zllplot

import (
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// RatioPlot stacks a distribution plot on top of a smaller pad of relative
// differences. Both pads share the x range of the top one.
type RatioPlot struct {
	Top    *plot.Plot
	Bottom *plot.Plot
	// Split is the fraction of the height taken by the bottom pad.
	Split float64
}

func NewRatioPlot() *RatioPlot {
	top := plot.New()
	top.X.Tick.Marker = unlabelled{PreciseTicks{NSuggestedTicks: 5}}
	top.Y.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}
	top.Legend.Top = true

	bottom := plot.New()
	bottom.X.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}
	bottom.Y.Min, bottom.Y.Max = -1, 1
	bottom.Y.Tick.Marker = plot.ConstantTicks([]plot.Tick{
		{Value: -1, Label: "-1"},
		{Value: -0.5},
		{Value: 0, Label: "0"},
		{Value: 0.5},
		{Value: 1, Label: "1"},
	})

	return &RatioPlot{Top: top, Bottom: bottom, Split: 0.3}
}

func (r *RatioPlot) Draw(c draw.Canvas) {
	r.Bottom.X.Min, r.Bottom.X.Max = r.Top.X.Min, r.Top.X.Max

	h := c.Max.Y - c.Min.Y
	split := vg.Length(r.Split) * h
	r.Top.Draw(draw.Crop(c, 0, 0, split, 0))
	r.Bottom.Draw(draw.Crop(c, 0, 0, 0, split-h))
}

// Save renders the plot into a PNG file of the given size.
func (r *RatioPlot) Save(w, h vg.Length, path string) error {
	img := vgimg.New(w, h)
	r.Draw(draw.New(img))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create plot: %w", err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return f.Close()
}

// unlabelled keeps the tick positions of a marker and drops its labels.
type unlabelled struct {
	plot.Ticker
}

func (u unlabelled) Ticks(min, max float64) []plot.Tick {
	ticks := u.Ticker.Ticks(min, max)
	for i := range ticks {
		ticks[i].Label = ""
	}
	return ticks
}
