package layout

import (
	"github.com/matzehuels/gitgraph/pkg/config"
	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/geom"
	"github.com/matzehuels/gitgraph/pkg/model"
)

// Axis maps history positions to coordinates for one layout direction and
// routes connectors between placed nodes.
type Axis interface {
	Direction() model.Direction
	// Place returns the center of the commit with sequence number seq on
	// the given lane, in a graph of total commits.
	Place(seq, lane, total int) geom.Point
	// Route returns the segments joining a later commit's box (from) to an
	// earlier commit's box (to).
	Route(from, to geom.BBox) []geom.Segment
	// Extent returns the canvas dimension for a graph of the given size.
	Extent(commits, branches int) float64
	// Label adapts the configured label box to the direction.
	Label(base config.Label, branches int) config.Label
}

// AxisFor returns the axis strategy for dir.
func AxisFor(dir model.Direction, cfg config.Config) (Axis, error) {
	m := metrics{
		spacing: cfg.NodeSpacing,
		offset:  cfg.BranchOffset,
		margin:  cfg.LeftMargin,
		radius:  cfg.NodeRadius,
	}
	switch dir {
	case model.LeftRight:
		return leftRight{m}, nil
	case model.BottomTop:
		return bottomTop{m}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidDirection, "no axis for direction %q", dir)
	}
}

type metrics struct {
	spacing float64 // between consecutive sequence numbers
	offset  float64 // between lanes
	margin  float64
	radius  float64
}

// leftRight places history along x, oldest first, and lanes along y.
type leftRight struct{ metrics }

func (leftRight) Direction() model.Direction { return model.LeftRight }

func (a leftRight) Place(seq, lane, _ int) geom.Point {
	return geom.Pt(float64(seq)*a.spacing+a.margin, float64(lane)*a.offset)
}

func (a leftRight) Route(from, to geom.BBox) []geom.Segment {
	s := a.spacing
	fromY, toY := from.CenterY(), to.CenterY()
	bend := from.Left - s/2

	if from.Left-to.Left > s {
		start := geom.Pt(from.Left-s, toY)
		return []geom.Segment{
			{Interp: geom.Linear, Points: []geom.Point{start, geom.Pt(to.Right(), toY)}},
			{Interp: geom.Smooth, Points: []geom.Point{
				geom.Pt(from.Left, fromY),
				geom.Pt(bend, fromY),
				geom.Pt(bend, start.Y),
				start,
			}},
		}
	}
	return []geom.Segment{{Interp: geom.Smooth, Points: []geom.Point{
		geom.Pt(from.Left, fromY),
		geom.Pt(bend, fromY),
		geom.Pt(bend, toY),
		geom.Pt(to.Right(), toY),
	}}}
}

func (a leftRight) Extent(_, branches int) float64 {
	return float64(branches+1) * a.offset
}

func (leftRight) Label(base config.Label, _ int) config.Label { return base }

// bottomTop places history along y, oldest at the bottom, and lanes along x.
type bottomTop struct{ metrics }

func (bottomTop) Direction() model.Direction { return model.BottomTop }

func (a bottomTop) Place(seq, lane, total int) geom.Point {
	return geom.Pt(float64(lane)*a.offset+a.margin, float64(total-seq)*a.spacing)
}

func (a bottomTop) Route(from, to geom.BBox) []geom.Segment {
	s := a.spacing
	fromX, toX := from.CenterX(), to.CenterX()

	if to.Top-from.Top > s {
		start := geom.Pt(toX, from.Bottom()+s)
		return []geom.Segment{
			{Interp: geom.Linear, Points: []geom.Point{start, geom.Pt(toX, to.Top)}},
			{Interp: geom.Smooth, Points: []geom.Point{
				geom.Pt(fromX, from.Bottom()),
				geom.Pt(fromX, from.Bottom()+s/2),
				geom.Pt(toX, start.Y-s/2),
				start,
			}},
		}
	}
	return []geom.Segment{{Interp: geom.Smooth, Points: []geom.Point{
		geom.Pt(fromX, from.Bottom()),
		geom.Pt(fromX, from.Top+s/2),
		geom.Pt(toX, to.Top-s/2),
		geom.Pt(toX, to.Top),
	}}}
}

func (a bottomTop) Extent(commits, _ int) float64 {
	return float64(commits) * a.spacing
}

// Label moves the anchor past the last lane and above the node so stacked
// branch names do not overlap the history line.
func (a bottomTop) Label(base config.Label, branches int) config.Label {
	base.X = float64(branches) * a.offset
	base.Y = -2 * a.radius
	base.FullWidth = true
	return base
}
