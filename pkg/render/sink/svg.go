package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/gitgraph/pkg/layout"
)

const graphCSS = `
    .commit circle { transition: stroke-width 0.2s ease; }
    .commit:hover circle { stroke-width: 4; }
    .commit-label { font-family: system-ui, sans-serif; }
    .commit-line { fill: none; stroke-linecap: round; }`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title      string
	background string
	fontSize   float64
}

// WithTitle adds a <title> element.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithBackground fills the canvas with a colour before drawing.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithFontSize sets the label font size in pixels (default 12).
func WithFontSize(px float64) SVGOption { return func(r *svgRenderer) { r.fontSize = px } }

// RenderSVG writes the recorded pass as an SVG document. Elements appear
// in the order the layout emitted them.
func RenderSVG(rec *Recorder, opts ...SVGOption) []byte {
	r := svgRenderer{fontSize: 12}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := rec.Size()
	width, height := px(w), px(h)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(width, height, fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height))
	if r.title != "" {
		canvas.Title(r.title)
	}
	canvas.Style("text/css", graphCSS)
	if r.background != "" {
		canvas.Rect(0, 0, width, height, "fill:"+r.background)
	}

	t := rec.Template
	nodeStyle := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%g", t.Fill, t.StrokeColor, t.StrokeWidth)
	textStyle := fmt.Sprintf("font-size:%gpx;fill:#333", r.fontSize)

	rec.Replay(
		func(n layout.Node) {
			canvas.Group(fmt.Sprintf(`id="node-%s"`, html.EscapeString(n.ID)), `class="commit"`)
			canvas.Circle(px(n.At.X), px(n.At.Y), px(t.Radius), nodeStyle)
			lx := n.At.X + t.Label.X
			ly := n.At.Y + t.Label.Y + t.Radius + r.fontSize
			canvas.Text(px(lx), px(ly), LabelText(n), `class="commit-label"`, textStyle)
			canvas.Gend()
		},
		func(s layout.Stroke) {
			canvas.Path(s.D, `class="commit-line"`, fmt.Sprintf("stroke:%s;stroke-width:%g", s.Color, s.Width))
		},
	)

	canvas.End()
	return buf.Bytes()
}

func px(v float64) int { return int(math.Round(v)) }
