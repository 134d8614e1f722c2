package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitgraph/pkg/cache"
	"github.com/matzehuels/gitgraph/pkg/layout"
	"github.com/matzehuels/gitgraph/pkg/model"
	"github.com/matzehuels/gitgraph/pkg/observability"
	"github.com/matzehuels/gitgraph/pkg/render/sink"
)

// Runner executes the pipeline with caching. The CLI and the preview server
// share it.
//
// The Runner keeps no per-run state, so multiple goroutines can use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs load → layout → render.
//
// If the layout pass fails and opts.Partial is set, the partial output is
// rendered and returned together with the error. Partial artifacts are
// never cached.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Load
	loadStart := time.Now()
	m, report, err := Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Model, result.Report = m, report
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Commits = m.Commits().Len()
	result.Stats.Branches = len(m.Branches())

	result.ModelHash, err = ModelHash(m)
	if err != nil {
		return nil, fmt.Errorf("hash model: %w", err)
	}

	r.Logger.Info("loaded model",
		"source", opts.source(),
		"commits", result.Stats.Commits,
		"branches", result.Stats.Branches,
		"duration", result.Stats.LoadTime)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	err = r.render(ctx, m, opts, result)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil && !(opts.Partial && len(result.Artifacts) > 0) {
		return nil, err
	}
	return result, err
}

func (r *Runner) render(ctx context.Context, m model.Model, opts Options, result *Result) error {
	keys := make(map[string]string, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(result.ModelHash, artifactKeyOpts(m, opts, format))
		if data, ok := r.get(ctx, keys[format], opts.Refresh); ok {
			result.Artifacts[format] = data
			result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
			continue
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		result.CacheInfo.RenderHit = true
		r.Logger.Debug("all artifacts cached", "formats", opts.Formats)
		return nil
	}

	// Stage 2: Layout
	var (
		rec       *sink.Recorder
		res       *layout.Result
		layoutErr error
	)
	if needsLayout(missing) {
		layoutStart := time.Now()
		rec, res, layoutErr = Layout(ctx, m, *opts.Config, opts.Logger)
		result.Layout = res
		result.Stats.LayoutTime = time.Since(layoutStart)
		result.Stats.Nodes, result.Stats.Edges = res.Nodes, res.Edges
		if layoutErr != nil {
			layoutErr = fmt.Errorf("layout: %w", layoutErr)
			if !opts.Partial {
				return layoutErr
			}
			r.Logger.Warn("rendering partial output", "err", layoutErr)
		}
		r.Logger.Info("computed layout",
			"nodes", res.Nodes,
			"edges", res.Edges,
			"truncated", res.Truncated(),
			"duration", result.Stats.LayoutTime)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := Render(ctx, m, rec, res, missing, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)
	for format, data := range artifacts {
		result.Artifacts[format] = data
		if layoutErr == nil {
			r.set(ctx, keys[format], data)
		}
	}

	r.Logger.Info("rendered outputs",
		"formats", missing,
		"duration", result.Stats.RenderTime)
	return layoutErr
}

func (r *Runner) get(ctx context.Context, key string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, key)
	return data, true
}

func (r *Runner) set(ctx context.Context, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}

func artifactKeyOpts(m model.Model, opts Options, format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:    format,
		Direction: m.Direction().String(),
		Config:    ConfigHash(*opts.Config),
	}
	switch format {
	case FormatSVG:
		k.Title = opts.Title
	case FormatPNG:
		k.Scale = opts.Scale
	case FormatDOT, FormatNodelink:
		k.Detailed = opts.Detailed
	}
	return k
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
