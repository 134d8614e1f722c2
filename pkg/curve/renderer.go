package curve

import "github.com/matzehuels/gitgraph/pkg/geom"

// Stroke is one connector segment ready to be painted.
type Stroke struct {
	Points     []geom.Point       `json:"points"` // rounded input points
	Interp     geom.Interpolation `json:"interpolation"`
	Path       Path               `json:"-"`
	D          string             `json:"d"` // Path in SVG syntax
	ColorIndex int                `json:"color_index"`
	Color      string             `json:"color"`
	Width      float64            `json:"width"`
}

// Drawer accepts finished strokes.
type Drawer interface {
	DrawPath(s Stroke) error
}

// Renderer styles segments with branch colours and forwards them to a
// Drawer. It holds no per-call state.
type Renderer struct {
	Palette  []string
	Fallback string // used when Palette is empty
	Width    float64
}

// Color resolves a colour index against the palette, wrapping around.
func (r Renderer) Color(index int) string {
	n := len(r.Palette)
	if n == 0 {
		return r.Fallback
	}
	return r.Palette[((index%n)+n)%n]
}

// Stroke builds the stroke for a segment without drawing it.
func (r Renderer) Stroke(seg geom.Segment, colorIndex int) Stroke {
	pts := make([]geom.Point, len(seg.Points))
	for i, p := range seg.Points {
		pts[i] = p.Round()
	}
	path := Build(pts, seg.Interp)
	return Stroke{
		Points:     pts,
		Interp:     seg.Interp,
		Path:       path,
		D:          path.String(),
		ColorIndex: colorIndex,
		Color:      r.Color(colorIndex),
		Width:      r.Width,
	}
}

// Draw builds the stroke for seg and passes it to d.
func (r Renderer) Draw(d Drawer, seg geom.Segment, colorIndex int) error {
	return d.DrawPath(r.Stroke(seg, colorIndex))
}
