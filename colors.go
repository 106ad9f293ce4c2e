package zllplot

import "image/color"

var (
	Black = color.RGBA{A: 255}
	Red   = color.RGBA{R: 255, A: 255}
	Green = color.RGBA{G: 255, A: 255}
	Blue  = color.RGBA{B: 255, A: 255}
	Pink  = color.RGBA{R: 255, B: 127, G: 127, A: 255}
)

// LineColor returns the colour of the i-th overlaid distribution.
func LineColor(i int) color.RGBA {
	switch i % 4 {
	case 1:
		return Green
	case 2:
		return Blue
	case 3:
		return Pink
	}
	return Black
}
