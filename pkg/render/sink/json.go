package sink

import (
	"encoding/json"

	"github.com/matzehuels/gitgraph/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	result *layout.Result
}

// WithJSONResult includes the pass summary: counts, effective configuration
// and any truncations.
func WithJSONResult(res *layout.Result) JSONOption {
	return func(r *jsonRenderer) { r.result = res }
}

type jsonOutput struct {
	Width    float64             `json:"width"`
	Height   float64             `json:"height"`
	Extent   float64             `json:"extent"`
	Template layout.NodeTemplate `json:"template"`
	Nodes    []jsonNode          `json:"nodes"`
	Strokes  []layout.Stroke     `json:"strokes"`
	Result   *layout.Result      `json:"result,omitempty"`
}

type jsonNode struct {
	layout.Node
	BBox jsonBox `json:"bbox"`
}

type jsonBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RenderJSON exports the recorded pass as a pretty-printed JSON document:
// the node template, every node with its bounding box, and every stroke
// with its points and SVG path data, in emission order.
func RenderJSON(rec *Recorder, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := rec.Size()
	out := jsonOutput{
		Width:    w,
		Height:   h,
		Extent:   rec.Extent,
		Template: rec.Template,
		Nodes:    make([]jsonNode, 0, len(rec.Nodes)),
		Strokes:  rec.Strokes,
		Result:   r.result,
	}
	if out.Strokes == nil {
		out.Strokes = []layout.Stroke{}
	}
	for _, n := range rec.Nodes {
		b, _ := rec.NodeBBox(n.ID)
		out.Nodes = append(out.Nodes, jsonNode{
			Node: n,
			BBox: jsonBox{Left: b.Left, Top: b.Top, Width: b.Width, Height: b.Height},
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
