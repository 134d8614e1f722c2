package sink

import (
	"bytes"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/layout"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background string
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGBackground sets the canvas colour (default white).
func WithPNGBackground(c string) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// RenderPNG rasterises the recorded pass. Connectors replay the same path
// commands as the SVG output, so both formats agree.
func RenderPNG(rec *Recorder, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, background: "white"}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %v", r.scale)
	}

	w, h := rec.Size()
	dc := gg.NewContext(max(px(w*r.scale), 1), max(px(h*r.scale), 1))
	dc.Scale(r.scale, r.scale)
	setColor(dc, r.background)
	dc.Clear()

	t := rec.Template
	rec.Replay(
		func(n layout.Node) {
			dc.DrawCircle(n.At.X, n.At.Y, t.Radius)
			setColor(dc, t.Fill)
			dc.FillPreserve()
			setColor(dc, t.StrokeColor)
			dc.SetLineWidth(t.StrokeWidth)
			dc.Stroke()

			dc.SetColor(color.RGBA{0x33, 0x33, 0x33, 0xff})
			dc.DrawString(LabelText(n), n.At.X+t.Label.X, n.At.Y+t.Label.Y+t.Radius+12)
		},
		func(s layout.Stroke) {
			setColor(dc, s.Color)
			dc.SetLineWidth(s.Width)
			dc.SetLineCapRound()
			s.Path.Replay(dc)
			dc.Stroke()
		},
	)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode png")
	}
	return buf.Bytes(), nil
}

// setColor accepts "#rgb", "#rrggbb", "#rrggbbaa" or a CSS colour name.
// Unknown names fall back to black.
func setColor(dc *gg.Context, c string) {
	if strings.HasPrefix(c, "#") {
		dc.SetHexColor(c)
		return
	}
	dc.SetColor(ParseColor(c))
}

// ParseColor resolves a CSS colour name such as "yellow" or "grey".
func ParseColor(name string) color.Color {
	if c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return color.Black
}
