package domain

import "math"

// Coord is a continuous 2-D value. Placements store it in grid units,
// pointer events carry it in screen pixels.
type Coord struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Pt is shorthand for Coord{X: x, Y: y}.
func Pt(x, y float64) Coord {
	return Coord{X: x, Y: y}
}

func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y}
}

func (c Coord) Scale(f float64) Coord {
	return Coord{X: c.X * f, Y: c.Y * f}
}

func (c Coord) Div(f float64) Coord {
	return Coord{X: c.X / f, Y: c.Y / f}
}

// IsFinite reports whether neither axis is NaN or infinite.
func (c Coord) IsFinite() bool {
	return isFinite(c.X) && isFinite(c.Y)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Quantize snaps each axis down to a multiple of unit by removing the
// truncated remainder (v - v mod unit). Negative values therefore move
// towards zero. A non-positive unit leaves the value unchanged.
func (c Coord) Quantize(unit float64) Coord {
	if unit <= 0 {
		return c
	}
	return Coord{
		X: c.X - math.Mod(c.X, unit),
		Y: c.Y - math.Mod(c.Y, unit),
	}
}
