// Package render groups the output stages of gitgraph.
//
// # Surfaces and formats
//
// The [sink] subpackage implements the layout surface used by every render:
// a [sink.Recorder] captures one layout pass, and the SVG, PNG and JSON
// renderers replay it.
//
//	rec := sink.NewRecorder()
//	res, err := layout.New(cfg, logger).Render(ctx, graph, rec)
//	svg := sink.RenderSVG(rec)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage skips the grid layout entirely. It writes the
// commit graph as Graphviz DOT, with lanes as edge colours, and lets
// Graphviz place it.
//
//	dot := nodelink.ToDOT(graph, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [sink]: github.com/matzehuels/gitgraph/pkg/render/sink
// [sink.Recorder]: github.com/matzehuels/gitgraph/pkg/render/sink.Recorder
// [nodelink]: github.com/matzehuels/gitgraph/pkg/render/nodelink
package render
