// Package pkg provides the libraries behind gitgraph, a commit-history
// diagram generator.
//
// # Overview
//
// gitgraph draws a version-control history (commits, their parents and the
// branch tips that name them) as a diagram: commits sit on a grid of
// sequence positions along one axis and branch lanes along the other, and
// parent links are drawn as coloured connectors. The pkg directory is
// organized as:
//
//  1. [model] - Commits, branches and validation
//  2. [layout] - The layout pass: placement, edge routing and labels
//  3. [render] - Output surfaces (SVG, PNG, JSON) and Graphviz diagrams
//  4. [pipeline] - Orchestration (load → layout → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	model file (TOML/JSON)
//	         ↓
//	    [io] package (decode into a model.Graph)
//	         ↓
//	    [model] package (validate)
//	         ↓
//	    [layout] package (place commits, route parent links)
//	         ↓
//	    [render/sink] package (SVG/PNG/JSON)
//
// # Quick Start
//
//	g, err := io.ImportFile("history.toml")
//	if err != nil {
//	    return err
//	}
//	rec := sink.NewRecorder()
//	if _, err := layout.New(config.Defaults(), nil).Render(ctx, g, rec); err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(rec)
//
// Or let the pipeline do it, with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "history.toml",
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	})
//
// # Main Packages
//
// ## Domain
//
// [model] - The [model.Model] interface read by the layout pass, the
// mutable [model.Graph] that implements it, and [model.Validate].
//
// [geom] and [curve] - Points, boxes, segments, and the Catmull-Rom path
// rendering behind every connector.
//
// [layout] - The layout coordinator, the history walker and the
// direction-specific axes (left-to-right and bottom-to-top).
//
// ## Output
//
// [render/sink] - The in-memory recording surface and the SVG, PNG and JSON
// renderers.
//
// [render/nodelink] - Graphviz DOT export and SVG rendering.
//
// ## Infrastructure
//
// [config] - Layered configuration: defaults, file, environment, flags and
// per-model options.
//
// [cache] - Artifact caching with file, Redis and no-op backends.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hooks for metrics and tracing.
//
// [model]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/model
// [model.Model]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/model#Model
// [model.Graph]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/model#Graph
// [model.Validate]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/model#Validate
// [io]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/io
// [geom]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/geom
// [curve]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/curve
// [layout]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gitgraph/pkg/observability
package pkg
