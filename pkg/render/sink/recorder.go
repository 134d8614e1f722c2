package sink

import (
	"math"
	"strings"

	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/geom"
	"github.com/matzehuels/gitgraph/pkg/layout"
)

type op struct {
	node   int // index into Nodes, or -1
	stroke int // index into Strokes, or -1
}

// Recorder is an in-memory layout.Surface. It keeps every instruction of a
// pass in call order; the SVG, PNG and JSON renderers read from it.
//
// A Recorder serves a single pass and is not safe for concurrent use.
type Recorder struct {
	Template layout.NodeTemplate
	Nodes    []layout.Node
	Strokes  []layout.Stroke
	Extent   float64

	ops    []op
	index  map[string]int
	inited bool
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{index: make(map[string]int)}
}

// Init implements layout.Surface.
func (r *Recorder) Init(t layout.NodeTemplate) error {
	if r.inited {
		return errors.New(errors.ErrCodeInternal, "surface already initialised")
	}
	if r.index == nil {
		r.index = make(map[string]int)
	}
	r.Template = t
	r.inited = true
	return nil
}

// PlaceNode implements layout.Surface. Placing the same id twice is an
// error.
func (r *Recorder) PlaceNode(n layout.Node) error {
	if !r.inited {
		return errors.New(errors.ErrCodeInternal, "surface not initialised")
	}
	if _, dup := r.index[n.ID]; dup {
		return errors.New(errors.ErrCodeInternal, "node %s placed twice", n.ID)
	}
	r.index[n.ID] = len(r.Nodes)
	r.ops = append(r.ops, op{node: len(r.Nodes), stroke: -1})
	r.Nodes = append(r.Nodes, n)
	return nil
}

// IsNodePlaced implements layout.Surface.
func (r *Recorder) IsNodePlaced(id string) bool {
	_, ok := r.index[id]
	return ok
}

// NodeBBox implements layout.Surface.
func (r *Recorder) NodeBBox(id string) (geom.BBox, error) {
	i, ok := r.index[id]
	if !ok {
		return geom.BBox{}, errors.New(errors.ErrCodeUnplacedNode, "no node %s", id)
	}
	return geom.Square(r.Nodes[i].At, r.Template.Radius), nil
}

// DrawPath implements layout.Surface.
func (r *Recorder) DrawPath(s layout.Stroke) error {
	r.ops = append(r.ops, op{node: -1, stroke: len(r.Strokes)})
	r.Strokes = append(r.Strokes, s)
	return nil
}

// SetExtent implements layout.Surface.
func (r *Recorder) SetExtent(dim float64) { r.Extent = dim }

// Node returns the placed node with the given id.
func (r *Recorder) Node(id string) (layout.Node, bool) {
	i, ok := r.index[id]
	if !ok {
		return layout.Node{}, false
	}
	return r.Nodes[i], true
}

// Replay calls node or stroke for every instruction in call order.
func (r *Recorder) Replay(node func(layout.Node), stroke func(layout.Stroke)) {
	for _, o := range r.ops {
		if o.node >= 0 {
			node(r.Nodes[o.node])
		} else {
			stroke(r.Strokes[o.stroke])
		}
	}
}

// Bounds returns the box enclosing every node circle and stroke point.
func (r *Recorder) Bounds() geom.BBox {
	if len(r.Nodes) == 0 && len(r.Strokes) == 0 {
		return geom.BBox{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x0, y0, x1, y1 float64) {
		minX, minY = min(minX, x0), min(minY, y0)
		maxX, maxY = max(maxX, x1), max(maxY, y1)
	}
	rad := r.Template.Radius
	for _, n := range r.Nodes {
		grow(n.At.X-rad, n.At.Y-rad, n.At.X+rad, n.At.Y+rad)
	}
	for _, s := range r.Strokes {
		for _, p := range s.Points {
			grow(p.X, p.Y, p.X, p.Y)
		}
	}
	return geom.BBox{Left: minX, Top: minY, Width: maxX - minX, Height: maxY - minY}
}

// Size returns the canvas size: the drawing bounds plus room for labels,
// and at least the recorded extent in height.
func (r *Recorder) Size() (width, height float64) {
	b := r.Bounds()
	lbl := r.Template.Label
	pad := max(lbl.X, 0) + lbl.Width
	width = b.Right() + pad
	height = max(r.Extent, b.Bottom()+lbl.Height/2)
	return width, height
}

// LabelText joins a node's labels the way they are displayed: branch names
// first, then the commit text, then the detail.
func LabelText(n layout.Node) string {
	parts := append(append([]string(nil), n.Labels.Branches...), n.Labels.Text)
	s := strings.Join(parts, ", ")
	if n.Labels.Detail != "" {
		s += ", " + n.Labels.Detail
	}
	return s
}

var _ layout.Surface = (*Recorder)(nil)
