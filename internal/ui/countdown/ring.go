package countdown

import (
	"image/color"
	"math"

	"mondaymadness/internal/core/interval"
)

const ringThickness = 0.16

var (
	workColor  = color.NRGBA{R: 232, G: 84, B: 60, A: 255}
	restColor  = color.NRGBA{R: 76, G: 175, B: 110, A: 255}
	idleColor  = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	trackColor = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
)

func kindColor(kind interval.Kind, started bool) color.Color {
	if !started {
		return idleColor
	}
	if kind == interval.Rest {
		return restColor
	}
	return workColor
}

// ringPixel colours one pixel of a w×h raster showing a ring whose lit arc
// starts at twelve o'clock and sweeps clockwise over fraction of the circle.
func ringPixel(x, y, w, h int, fraction float64, lit color.Color) color.Color {
	if w <= 0 || h <= 0 {
		return color.Transparent
	}
	outer := math.Min(float64(w), float64(h)) / 2
	inner := outer * (1 - ringThickness)

	dx := float64(x) + 0.5 - float64(w)/2
	dy := float64(y) + 0.5 - float64(h)/2
	distance := math.Hypot(dx, dy)
	if distance > outer || distance < inner {
		return color.Transparent
	}

	angle := math.Atan2(dx, -dy)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	if angle <= fraction*2*math.Pi {
		return lit
	}
	return trackColor
}
