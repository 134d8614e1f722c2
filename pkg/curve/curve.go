// Package curve turns routed point sequences into path commands.
//
// [Build] produces a [Path] of move/line/cubic commands. Linear
// interpolation yields a polyline; Smooth yields a uniform cubic B-spline
// that starts at the first point, ends at the last and bends towards the
// interior points without passing through them. [Renderer] wraps that with
// branch colouring and hands the result to a [Drawer].
package curve

import (
	"strconv"
	"strings"

	"github.com/matzehuels/gitgraph/pkg/geom"
)

// Op is a path command.
type Op byte

const (
	MoveTo  Op = 'M'
	LineTo  Op = 'L'
	CubicTo Op = 'C'
)

// Cmd is a single path command. For MoveTo and LineTo only To is set;
// CubicTo also uses the control points C1 and C2.
type Cmd struct {
	Op     Op
	C1, C2 geom.Point
	To     geom.Point
}

// Path is an ordered list of commands.
type Path []Cmd

// Pen receives path commands. *gg.Context satisfies it.
type Pen interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(x1, y1, x2, y2, x3, y3 float64)
}

// Replay issues every command of the path to pen.
func (p Path) Replay(pen Pen) {
	for _, c := range p {
		switch c.Op {
		case MoveTo:
			pen.MoveTo(c.To.X, c.To.Y)
		case LineTo:
			pen.LineTo(c.To.X, c.To.Y)
		case CubicTo:
			pen.CubicTo(c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.To.X, c.To.Y)
		}
	}
}

// String renders the path in SVG path-data syntax, e.g. "M0,0L10,0".
func (p Path) String() string {
	var b strings.Builder
	for _, c := range p {
		b.WriteByte(byte(c.Op))
		if c.Op == CubicTo {
			writePoint(&b, c.C1)
			b.WriteByte(',')
			writePoint(&b, c.C2)
			b.WriteByte(',')
		}
		writePoint(&b, c.To)
	}
	return b.String()
}

func writePoint(b *strings.Builder, p geom.Point) {
	b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
}

// Build converts points to a path. Points are rounded to whole units first.
// An empty input yields a nil path; a single point yields a lone MoveTo.
func Build(points []geom.Point, interp geom.Interpolation) Path {
	if len(points) == 0 {
		return nil
	}
	pts := make([]geom.Point, len(points))
	for i, p := range points {
		pts[i] = p.Round()
	}
	if interp == geom.Linear || len(pts) < 3 {
		return polyline(pts)
	}
	return basis(pts)
}

func polyline(pts []geom.Point) Path {
	path := make(Path, 0, len(pts))
	path = append(path, Cmd{Op: MoveTo, To: pts[0]})
	for _, p := range pts[1:] {
		path = append(path, Cmd{Op: LineTo, To: p})
	}
	return path
}

// basis builds a uniform cubic B-spline over pts (len >= 3). The first
// command moves to pts[0], a short line reaches the start of the first
// span, each further point contributes one cubic, and the last span is
// closed by a line into the final point.
func basis(pts []geom.Point) Path {
	path := make(Path, 0, len(pts)+2)
	path = append(path, Cmd{Op: MoveTo, To: pts[0]})

	p0, p1 := pts[0], pts[1]
	path = append(path, Cmd{Op: LineTo, To: geom.Pt((5*p0.X+p1.X)/6, (5*p0.Y+p1.Y)/6)})

	for _, p := range pts[2:] {
		path = append(path, span(p0, p1, p))
		p0, p1 = p1, p
	}
	path = append(path, span(p0, p1, p1))
	path = append(path, Cmd{Op: LineTo, To: p1})
	return path
}

func span(p0, p1, p geom.Point) Cmd {
	return Cmd{
		Op: CubicTo,
		C1: geom.Pt((2*p0.X+p1.X)/3, (2*p0.Y+p1.Y)/3),
		C2: geom.Pt((p0.X+2*p1.X)/3, (p0.Y+2*p1.Y)/3),
		To: geom.Pt((p0.X+4*p1.X+p.X)/6, (p0.Y+4*p1.Y+p.Y)/6),
	}
}
