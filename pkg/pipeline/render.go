package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/gitgraph/pkg/layout"
	"github.com/matzehuels/gitgraph/pkg/model"
	"github.com/matzehuels/gitgraph/pkg/render/nodelink"
	"github.com/matzehuels/gitgraph/pkg/render/sink"
)

// Render generates the artifacts in formats. rec and res come from
// [Layout]; they may be nil when no requested format needs a layout.
func Render(ctx context.Context, m model.Model, rec *sink.Recorder, res *layout.Result, formats []string, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := renderFormat(ctx, m, rec, res, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, m model.Model, rec *sink.Recorder, res *layout.Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(nodelink.ToDOT(m, nodelinkOptions(opts))), nil
	case FormatNodelink:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(m, nodelinkOptions(opts)))
	}

	if rec == nil {
		return nil, fmt.Errorf("no layout for format %s", format)
	}
	switch format {
	case FormatSVG:
		svgOpts := []sink.SVGOption{}
		if opts.Title != "" {
			svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
		}
		return sink.RenderSVG(rec, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(rec, sink.WithScale(opts.Scale))
	case FormatJSON:
		return sink.RenderJSON(rec, sink.WithJSONResult(res))
	default:
		return nil, ValidateFormat(format)
	}
}

func nodelinkOptions(opts Options) nodelink.Options {
	o := nodelink.Options{Detailed: opts.Detailed}
	if opts.Config != nil {
		o.Palette = opts.Config.BranchColors
		o.MaxSteps = opts.Config.MaxSteps
	}
	return o
}
