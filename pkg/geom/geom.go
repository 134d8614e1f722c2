// Package geom holds the 2-D primitives shared by the layout engine, the
// curve builder and the rendering sinks. Coordinates use screen orientation:
// x grows to the right, y grows downwards.
package geom

import (
	"fmt"
	"math"
)

// Point is a position in user units (pixels in SVG).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Round returns the point with both coordinates rounded half away from zero.
func (p Point) Round() Point { return Point{X: math.Round(p.X), Y: math.Round(p.Y)} }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// BBox is an axis-aligned bounding box given by its top-left corner and size.
type BBox struct {
	Left, Top     float64
	Width, Height float64
}

// Square returns the box enclosing a circle of radius r centred on c.
func Square(c Point, r float64) BBox {
	return BBox{Left: c.X - r, Top: c.Y - r, Width: 2 * r, Height: 2 * r}
}

// Right returns the x coordinate of the right edge.
func (b BBox) Right() float64 { return b.Left + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b BBox) Bottom() float64 { return b.Top + b.Height }

// CenterX returns the horizontal center of the box.
func (b BBox) CenterX() float64 { return b.Left + b.Width/2 }

// CenterY returns the vertical center of the box.
func (b BBox) CenterY() float64 { return b.Top + b.Height/2 }

// Center returns the center point of the box.
func (b BBox) Center() Point { return Point{X: b.CenterX(), Y: b.CenterY()} }

// Interpolation selects how a point sequence is joined into a path.
type Interpolation int

const (
	// Smooth joins points with a uniform cubic B-spline.
	Smooth Interpolation = iota
	// Linear joins points with straight lines.
	Linear
)

func (i Interpolation) String() string {
	if i == Linear {
		return "linear"
	}
	return "smooth"
}

// MarshalText implements encoding.TextMarshaler.
func (i Interpolation) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. Anything other than
// "linear" decodes to Smooth.
func (i *Interpolation) UnmarshalText(b []byte) error {
	if string(b) == "linear" {
		*i = Linear
	} else {
		*i = Smooth
	}
	return nil
}

// Segment is a routed piece of a connector: a point sequence plus the way
// it should be joined.
type Segment struct {
	Points []Point
	Interp Interpolation
}
