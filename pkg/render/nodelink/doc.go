// Package nodelink renders commit graphs as Graphviz node-link diagrams.
//
// # Overview
//
// This is an alternative to the native lane layout: Graphviz decides node
// positions, and the package only maps commits to nodes and parent links to
// edges. It is useful for checking the shape of a model file, since it
// draws every edge including those a layout pass would skip.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Colours
//
// Edges take the colour of the lane their line runs on, computed with the
// same first-parent/second-parent rule the layout uses. Second-parent edges
// are dashed.
//
// # Dependencies
//
// [RenderSVG] uses [github.com/goccy/go-graphviz], which bundles Graphviz
// as WebAssembly, so no system installation is needed. The DOT source from
// [ToDOT] can also be piped to an external dot binary.
package nodelink
