package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitgraph/internal/watch"
	"github.com/matzehuels/gitgraph/pkg/config"
	"github.com/matzehuels/gitgraph/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file, base path for several formats, or "-" for stdout
	formats   []string // svg, png, json, dot, nodelink
	direction string   // LR or BT; overrides the model
	title     string   // SVG <title>
	scale     float64  // PNG pixel scale
	detailed  bool     // sequence numbers and messages in DOT labels
	noCache   bool
	refresh   bool
	partial   bool // write whatever a failed layout produced
	watch     bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a commit history to SVG, PNG, JSON or DOT",
		Long: `Render a commit history model (TOML or JSON) to one or more output files.

With a single format, -o names the output file ("-" writes to stdout). With
several formats, -o is a base path and each format gets its own extension.
Without -o, outputs are written next to the input file.

--watch keeps running and re-renders whenever the input file changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.output == "-" && len(opts.formats) > 1 {
				return fmt.Errorf("-o - needs exactly one format, got %d", len(opts.formats))
			}
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], cfg, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, dot, nodelink (comma-separated)")
	cmd.Flags().StringVar(&opts.direction, "direction", "", "layout direction: LR or BT (default from model)")
	cmd.Flags().StringVar(&opts.title, "title", "", "SVG document title")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include sequence numbers and messages in DOT labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and render again")
	cmd.Flags().BoolVar(&opts.partial, "partial", false, "write partial output when the layout fails")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the input file changes")
	addConfigFlags(cmd)

	return cmd
}

// runRender renders input once, then keeps re-rendering on change when
// opts.watch is set.
func (c *CLI) runRender(ctx context.Context, input string, cfg config.Config, opts *renderOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if !opts.watch {
		return c.renderOnce(ctx, runner, input, cfg, opts)
	}

	if err := c.renderOnce(ctx, runner, input, cfg, opts); err != nil {
		printError("%v", err)
	}
	printInfo("Watching %s for changes (ctrl+c to stop)", input)
	return watch.File(ctx, input, watch.DefaultDebounce, c.Logger, func() {
		if err := c.renderOnce(ctx, runner, input, cfg, opts); err != nil {
			printError("%v", err)
		}
	})
}

func (c *CLI) renderOnce(ctx context.Context, runner *pipeline.Runner, input string, cfg config.Config, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var spinner *Spinner
	if opts.output != "-" && !opts.watch {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(input)))
		spinner.Start()
	}

	res, err := runner.Execute(ctx, pipeline.Options{
		Path:      input,
		Direction: opts.direction,
		Config:    &cfg,
		Formats:   opts.formats,
		Title:     opts.title,
		Scale:     opts.scale,
		Detailed:  opts.detailed,
		Refresh:   opts.refresh,
		Partial:   opts.partial,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if res == nil {
		return err
	}

	paths, werr := writeArtifacts(res.Artifacts, opts.formats, input, opts.output)
	if werr != nil {
		return werr
	}
	if opts.output != "-" {
		if err != nil {
			printWarning("Rendered partial output of %s", input)
		} else {
			printSuccess("Rendered %s", input)
		}
		for _, p := range paths {
			printFile(p)
		}
		printStats(res.Stats.Nodes, res.Stats.Edges, res.CacheInfo.RenderHit)
		printTruncations(res.Layout)
	}
	prog.done("Rendered " + filepath.Base(input))
	return err
}

// writeArtifacts writes each format's output and returns the paths in
// format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(format, formats, input, output)
		out, err := openOutput(path)
		if err != nil {
			return paths, err
		}
		_, err = out.Write(data)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		if path != "-" {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// outputPath picks the file for one format. A single format writes to
// output as given; otherwise output is a base path.
func outputPath(format string, formats []string, input, output string) string {
	if len(formats) == 1 && output != "" {
		return output
	}
	return basePath(output, input) + pipeline.Extension(format)
}

// basePath derives the base output path. Without output it is the input
// path minus its extension; a known format extension on output is
// stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput opens path for writing; "-" is stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{stdout}, nil
	}
	return os.Create(path)
}
