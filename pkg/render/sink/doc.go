// Package sink provides rendering surfaces and output formats for commit
// graph layouts.
//
// # Overview
//
// A layout pass emits drawing instructions to a [layout.Surface]. The
// [Recorder] surface keeps them in memory, in call order, and the renderers
// in this package turn a recording into a final format:
//
//   - SVG: vector output via github.com/ajstarks/svgo
//   - PNG: raster output via github.com/fogleman/gg
//   - JSON: the raw instructions, for external tools and tests
//
// Basic usage:
//
//	rec := sink.NewRecorder()
//	res, err := layout.New(cfg, logger).Render(ctx, graph, rec)
//	svg := sink.RenderSVG(rec, sink.WithTitle("history"))
//	png, err := sink.RenderPNG(rec, sink.WithScale(2))
//	doc, err := sink.RenderJSON(rec, sink.WithJSONResult(res))
//
// Even when a pass aborts, the recording holds its partial output and can
// still be rendered.
//
// # Colours
//
// Stroke and node colours are passed through to SVG unchanged. The PNG
// renderer accepts hex colours and CSS colour names; names resolve through
// golang.org/x/image/colornames.
//
// # Canvas size
//
// [Recorder.Size] is the bounding box of all nodes and strokes plus room
// for labels, and at least the extent set by the layout pass.
//
// [layout.Surface]: github.com/matzehuels/gitgraph/pkg/layout.Surface
package sink
