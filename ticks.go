package zllplot

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places labelled ticks on round values and rounds the labels
// so that floating point noise does not show up on the axes.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	if t.NSuggestedTicks == 0 {
		t.NSuggestedTicks = 4
	}

	if max <= min {
		panic("illegal range")
	}

	majorMult, tens := majorStep(min, max, t.NSuggestedTicks)
	majorDelta := float64(majorMult) * tens

	val := math.Floor(min/majorDelta) * majorDelta
	var labels []float64
	for ; val <= max; val += majorDelta {
		if val >= min {
			labels = append(labels, val)
		}
	}
	prec := int(math.Ceil(math.Log10(val)) - math.Floor(math.Log10(majorDelta)))

	var (
		ticks []plot.Tick
		major = make(map[float64]bool, len(labels))
	)
	for _, v := range labels {
		v = round(v, prec)
		major[v] = true
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', -1, 64)})
	}

	minorDelta := minorStep(majorMult, majorDelta)
	for val = math.Floor(min/minorDelta) * minorDelta; val <= max; val += minorDelta {
		if val >= min && !major[val] {
			ticks = append(ticks, plot.Tick{Value: val})
		}
	}
	return ticks
}

// majorStep returns the spacing of labelled ticks as a multiple of a power
// of ten.
func majorStep(min, max float64, nticks int) (int, float64) {
	tens := math.Pow10(int(math.Floor(math.Log10(max - min))))
	n := (max - min) / tens
	for n < float64(nticks)-1 {
		tens /= 10
		n = (max - min) / tens
	}

	mult := int(n / float64(nticks-1))
	switch mult {
	case 7:
		mult = 6
	case 9:
		mult = 8
	}
	return mult, tens
}

func minorStep(majorMult int, majorDelta float64) float64 {
	switch majorMult {
	case 3, 6:
		return majorDelta / 3
	case 5:
		return majorDelta / 5
	}
	return majorDelta / 2
}

func round(x float64, prec int) float64 {
	if x == 0 {
		// no negative zero
		return 0
	}
	if prec >= 0 && x == math.Trunc(x) {
		return x
	}
	pow := math.Pow10(prec)
	intermed := x * pow
	if math.IsInf(intermed, 0) {
		return x
	}
	if x < 0 {
		x = math.Ceil(intermed - 0.5)
	} else {
		x = math.Floor(intermed + 0.5)
	}

	if x == 0 {
		return 0
	}
	return x / pow
}
