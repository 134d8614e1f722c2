package layout

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitgraph/pkg/config"
	"github.com/matzehuels/gitgraph/pkg/curve"
	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/model"
	"github.com/matzehuels/gitgraph/pkg/observability"
)

// Result describes a finished or aborted pass. Counts reflect what reached
// the surface, so an aborted pass reports its partial output.
type Result struct {
	Direction   model.Direction `json:"direction"`
	Config      config.Config   `json:"config"`
	Nodes       int             `json:"nodes"`
	Edges       int             `json:"edges"`
	Paths       int             `json:"paths"`
	Extent      float64         `json:"extent"`
	Truncations []Truncation    `json:"truncations,omitempty"`
	Issues      []model.Issue   `json:"-"`
}

// Truncated reports whether any walk hit the step cap.
func (r *Result) Truncated() bool { return len(r.Truncations) > 0 }

// Coordinator runs layout passes. It is safe for concurrent use as long as
// each pass gets its own Surface.
type Coordinator struct {
	cfg    config.Config
	logger *log.Logger
}

// New creates a coordinator. cfg is the caller's configuration, already
// layered over the defaults; model options are applied on top of it for
// each pass. A nil logger discards output.
func New(cfg config.Config, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Coordinator{cfg: cfg, logger: logger}
}

// Render lays out m onto s. Branches are processed in model order on lanes
// starting at 1: each tip's history is placed, then its edges are drawn.
//
// Any failure aborts the pass with a RENDER_FAILED error wrapping the
// cause. What was already drawn stays on the surface. The returned Result
// is never nil.
func (c *Coordinator) Render(ctx context.Context, m model.Model, s Surface) (*Result, error) {
	dir := m.Direction()
	if dir == "" {
		dir = model.LeftRight
	}
	res := &Result{Direction: dir, Config: c.cfg}
	start := time.Now()

	hooks := observability.Render()
	hooks.OnPassStart(ctx, dir.String(), m.Commits().Len(), len(m.Branches()))

	err := c.render(ctx, m, s, res)
	if err != nil {
		c.logger.Error("render aborted", "direction", dir, "nodes", res.Nodes, "edges", res.Edges, "err", err)
		err = errors.Wrap(errors.ErrCodeRender, err, "render %s graph", dir)
	} else {
		c.logger.Debug("render complete", "direction", dir, "nodes", res.Nodes, "edges", res.Edges, "paths", res.Paths, "took", time.Since(start))
	}

	stats := observability.PassStats{Nodes: res.Nodes, Edges: res.Edges, Paths: res.Paths}
	hooks.OnPassComplete(ctx, dir.String(), stats, time.Since(start), err)
	return res, err
}

func (c *Coordinator) render(ctx context.Context, m model.Model, s Surface, res *Result) error {
	cfg, err := config.Merge(c.cfg, m.Options())
	if err != nil {
		return err
	}
	res.Config = cfg

	axis, err := AxisFor(res.Direction, cfg)
	if err != nil {
		return err
	}

	commits, branches := m.Commits(), m.Branches()
	tmpl := NodeTemplate{
		Radius:      cfg.NodeRadius,
		Fill:        cfg.NodeFillColor,
		StrokeColor: cfg.NodeStrokeColor,
		StrokeWidth: cfg.NodeStrokeWidth,
		Label:       axis.Label(cfg.Label, len(branches)),
		Direction:   res.Direction,
	}
	if err := s.Init(tmpl); err != nil {
		return err
	}

	report := model.Validate(m)
	res.Issues = report.Issues
	for _, issue := range report.Warnings() {
		c.logger.Warn(issue.Message, "code", issue.Code)
	}
	for _, issue := range report.Blocking() {
		c.logger.Debug("model problem left to traversal", "code", issue.Code, "msg", issue.Message)
	}

	pen := curve.Renderer{
		Palette:  cfg.BranchColors,
		Fallback: cfg.LineColor,
		Width:    cfg.LineStrokeWidth,
	}
	w := newWalker(ctx, m, axis, s, pen, cfg.MaxSteps, c.logger)
	defer func() {
		res.Nodes, res.Edges, res.Paths = w.nodes, w.edges, w.paths
		res.Truncations = w.truncations
	}()

	lane := 1
	for _, b := range branches {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := commits.Get(b.Commit); !ok {
			return errors.New(errors.ErrCodeMissingBranchTip, "branch %s points at unknown commit %q", b.Name, b.Commit)
		}
		c.logger.Debug("walking branch", "branch", b.Name, "tip", b.Commit, "lane", lane)
		if err := w.placeHistory(b.Commit, lane); err != nil {
			return err
		}
		if err := w.drawHistory(b.Commit, 0); err != nil {
			return err
		}
		lane++
	}

	res.Extent = axis.Extent(commits.Len(), len(branches))
	s.SetExtent(res.Extent)
	return nil
}
