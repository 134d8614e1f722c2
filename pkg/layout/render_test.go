package layout_test

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/gitgraph/pkg/config"
	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/geom"
	"github.com/matzehuels/gitgraph/pkg/layout"
	"github.com/matzehuels/gitgraph/pkg/model"
	"github.com/matzehuels/gitgraph/pkg/observability"
	"github.com/matzehuels/gitgraph/pkg/render/sink"
)

type commit struct {
	id      string
	seq     int
	parents []string
	msg     string
}

func build(t *testing.T, dir model.Direction, commits []commit, branches ...[2]string) *model.Graph {
	t.Helper()
	g := model.NewGraph(dir)
	for _, c := range commits {
		if err := g.AddCommit(model.Commit{ID: c.id, Seq: c.seq, Parents: c.parents, Message: c.msg}); err != nil {
			t.Fatalf("AddCommit(%s) error = %v", c.id, err)
		}
	}
	for _, b := range branches {
		if err := g.AddBranch(model.Branch{Name: b[0], Commit: b[1]}); err != nil {
			t.Fatalf("AddBranch(%s) error = %v", b[0], err)
		}
	}
	return g
}

func render(t *testing.T, cfg config.Config, g *model.Graph) (*sink.Recorder, *layout.Result, error) {
	t.Helper()
	rec := sink.NewRecorder()
	res, err := layout.New(cfg, nil).Render(context.Background(), g, rec)
	if res == nil {
		t.Fatal("Render() returned nil result")
	}
	return rec, res, err
}

func mustRender(t *testing.T, g *model.Graph) (*sink.Recorder, *layout.Result) {
	t.Helper()
	rec, res, err := render(t, config.Defaults(), g)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return rec, res
}

func assertAt(t *testing.T, rec *sink.Recorder, id string, want geom.Point) {
	t.Helper()
	n, ok := rec.Node(id)
	if !ok {
		t.Errorf("node %s not placed", id)
		return
	}
	if n.At != want {
		t.Errorf("node %s at %v, want %v", id, n.At, want)
	}
}

func colors(rec *sink.Recorder) []int {
	out := make([]int, len(rec.Strokes))
	for i, s := range rec.Strokes {
		out[i] = s.ColorIndex
	}
	return out
}

func TestRenderLinear(t *testing.T) {
	g := build(t, model.LeftRight, []commit{
		{id: "a", seq: 0},
		{id: "b", seq: 1, parents: []string{"a"}},
		{id: "c", seq: 2, parents: []string{"b"}},
	}, [2]string{"main", "c"})

	rec, res := mustRender(t, g)

	assertAt(t, rec, "a", geom.Pt(50, 50))
	assertAt(t, rec, "b", geom.Pt(200, 50))
	assertAt(t, rec, "c", geom.Pt(350, 50))
	if res.Nodes != 3 || res.Edges != 2 || res.Paths != 2 {
		t.Errorf("Result = %d nodes, %d edges, %d paths; want 3, 2, 2", res.Nodes, res.Edges, res.Paths)
	}
	if got := colors(rec); !slices.Equal(got, []int{0, 0}) {
		t.Errorf("stroke colours = %v, want [0 0]", got)
	}
	if rec.Strokes[0].Color != "#442f74" || rec.Strokes[0].Width != 4 {
		t.Errorf("stroke style = %q width %v, want #442f74 width 4", rec.Strokes[0].Color, rec.Strokes[0].Width)
	}
	if c, _ := rec.Node("c"); !slices.Equal(c.Labels.Branches, []string{"main"}) {
		t.Errorf("c branches = %v, want [main]", c.Labels.Branches)
	}
	if res.Extent != 100 || rec.Extent != 100 {
		t.Errorf("extent = %v (surface %v), want 100", res.Extent, rec.Extent)
	}
}

func TestRenderMerge(t *testing.T) {
	g := build(t, model.LeftRight, []commit{
		{id: "A", seq: 0},
		{id: "B", seq: 1, parents: []string{"A"}},
		{id: "D", seq: 2, parents: []string{"A"}},
		{id: "C", seq: 3, parents: []string{"B", "D"}},
	}, [2]string{"main", "C"})

	rec, res := mustRender(t, g)

	assertAt(t, rec, "C", geom.Pt(500, 50))
	assertAt(t, rec, "B", geom.Pt(200, 50))
	assertAt(t, rec, "A", geom.Pt(50, 50))
	assertAt(t, rec, "D", geom.Pt(350, 100))

	if res.Edges != 4 {
		t.Errorf("edges = %d, want 4", res.Edges)
	}
	// C->B (long), C->D, D->A (long), B->A
	if got, want := colors(rec), []int{0, 0, 1, 1, 1, 0}; !slices.Equal(got, want) {
		t.Errorf("stroke colours = %v, want %v", got, want)
	}
	if rec.Strokes[2].Color != "#983351" {
		t.Errorf("merged line colour = %q, want #983351", rec.Strokes[2].Color)
	}
}

func TestRenderCycleTerminates(t *testing.T) {
	g := build(t, model.LeftRight, []commit{
		{id: "A", seq: 1, parents: []string{"B"}},
		{id: "B", seq: 2, parents: []string{"A"}},
	}, [2]string{"main", "B"})

	_, res, err := render(t, config.Defaults(), g)

	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if res.Nodes != 2 || res.Edges != 2 {
		t.Errorf("Result = %d nodes, %d edges; want 2, 2", res.Nodes, res.Edges)
	}
	if !slices.ContainsFunc(res.Issues, func(i model.Issue) bool { return i.Code == errors.ErrCodeCycle }) {
		t.Errorf("Issues = %v, want a cycle warning", res.Issues)
	}
}

func TestRenderSharedRoot(t *testing.T) {
	g := build(t, model.LeftRight, []commit{
		{id: "A", seq: 0},
		{id: "B", seq: 1, parents: []string{"A"}},
		{id: "D", seq: 2, parents: []string{"A"}},
	}, [2]string{"main", "B"}, [2]string{"dev", "D"})

	rec, res := mustRender(t, g)

	if len(rec.Nodes) != 3 {
		t.Errorf("placed %d nodes, want 3", len(rec.Nodes))
	}
	assertAt(t, rec, "A", geom.Pt(50, 50))
	assertAt(t, rec, "D", geom.Pt(350, 100))
	if res.Edges != 2 {
		t.Errorf("edges = %d, want 2", res.Edges)
	}
	if res.Extent != 150 {
		t.Errorf("extent = %v, want 150", res.Extent)
	}
}

func TestRenderEdgesOnce(t *testing.T) {
	g := build(t, model.LeftRight, []commit{
		{id: "A", seq: 0},
		{id: "B", seq: 1, parents: []string{"A"}},
		{id: "C", seq: 2, parents: []string{"B"}},
	}, [2]string{"main", "C"}, [2]string{"dev", "B"})

	rec, res := mustRender(t, g)

	if res.Edges != 2 || len(rec.Strokes) != 2 {
		t.Errorf("edges = %d, strokes = %d; want 2, 2", res.Edges, len(rec.Strokes))
	}
	b, _ := rec.Node("B")
	if !slices.Equal(b.Labels.Branches, []string{"dev"}) {
		t.Errorf("B branches = %v, want [dev]", b.Labels.Branches)
	}
	assertAt(t, rec, "B", geom.Pt(200, 50))
}

func TestRenderBottomTop(t *testing.T) {
	g := build(t, model.BottomTop, []commit{
		{id: "a", seq: 0},
		{id: "b", seq: 1, parents: []string{"a"}, msg: "fix"},
		{id: "c", seq: 2, parents: []string{"b"}},
	}, [2]string{"main", "c"})

	rec, res := mustRender(t, g)

	assertAt(t, rec, "a", geom.Pt(100, 450))
	assertAt(t, rec, "b", geom.Pt(100, 300))
	assertAt(t, rec, "c", geom.Pt(100, 150))
	if res.Extent != 450 {
		t.Errorf("extent = %v, want 450", res.Extent)
	}
	if b, _ := rec.Node("b"); b.Labels.Detail != "fix" {
		t.Errorf("b detail = %q, want fix", b.Labels.Detail)
	}
	if !rec.Template.Label.FullWidth || rec.Template.Label.X != 50 {
		t.Errorf("label = %+v, want full width at x 50", rec.Template.Label)
	}
	if rec.Template.Direction != model.BottomTop {
		t.Errorf("template direction = %v, want BT", rec.Template.Direction)
	}
}

func TestRenderModelOptions(t *testing.T) {
	g := build(t, model.LeftRight, []commit{
		{id: "a", seq: 0},
		{id: "b", seq: 1, parents: []string{"a"}},
	}, [2]string{"main", "b"})
	g.SetOption("node_spacing", 100)

	cfg := config.Defaults()
	cfg.NodeSpacing = 120
	cfg.NodeRadius = 6

	rec, res, err := render(t, cfg, g)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	assertAt(t, rec, "b", geom.Pt(150, 50))
	if res.Config.NodeSpacing != 100 || res.Config.NodeRadius != 6 {
		t.Errorf("Config = spacing %v radius %v, want 100 and 6", res.Config.NodeSpacing, res.Config.NodeRadius)
	}
}

func TestRenderLongGap(t *testing.T) {
	g := build(t, model.LeftRight, []commit{
		{id: "a", seq: 0},
		{id: "b", seq: 3, parents: []string{"a"}},
	}, [2]string{"main", "b"})

	rec, res := mustRender(t, g)

	if res.Edges != 1 || res.Paths != 2 {
		t.Errorf("Result = %d edges, %d paths; want 1, 2", res.Edges, res.Paths)
	}
	if len(rec.Strokes) == 2 && rec.Strokes[0].Interp != geom.Linear {
		t.Errorf("first stroke = %v, want the straight run", rec.Strokes[0].Interp)
	}
}

func TestRenderMissingParent(t *testing.T) {
	g := build(t, model.LeftRight, []commit{
		{id: "b", seq: 1, parents: []string{"ghost"}},
	}, [2]string{"main", "b"})

	rec, res, err := render(t, config.Defaults(), g)

	if !errors.Is(err, errors.ErrCodeRender) || !errors.Is(err, errors.ErrCodeMissingParent) {
		t.Fatalf("Render() error = %v, want RENDER_FAILED wrapping MISSING_PARENT", err)
	}
	if errors.GetCode(err) != errors.ErrCodeRender {
		t.Errorf("outer code = %s, want RENDER_FAILED", errors.GetCode(err))
	}
	if res.Nodes != 1 || len(rec.Nodes) != 1 {
		t.Errorf("partial output = %d nodes (surface %d), want 1", res.Nodes, len(rec.Nodes))
	}
}

func TestRenderMissingBranchTip(t *testing.T) {
	g := build(t, model.LeftRight, []commit{
		{id: "a", seq: 0},
	}, [2]string{"main", "a"}, [2]string{"stale", "nope"})

	rec, _, err := render(t, config.Defaults(), g)

	if !errors.Is(err, errors.ErrCodeMissingBranchTip) {
		t.Fatalf("Render() error = %v, want MISSING_BRANCH_TIP", err)
	}
	if len(rec.Nodes) != 1 {
		t.Errorf("surface has %d nodes, want the 1 placed before the failure", len(rec.Nodes))
	}
}

func TestRenderInvalidConfig(t *testing.T) {
	g := build(t, model.LeftRight, []commit{{id: "a", seq: 0}}, [2]string{"main", "a"})
	g.SetOption("node_spacing", -1)

	_, _, err := render(t, config.Defaults(), g)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Render() error = %v, want INVALID_INPUT", err)
	}
}

func TestRenderCanceled(t *testing.T) {
	g := build(t, model.LeftRight, []commit{{id: "a", seq: 0}}, [2]string{"main", "a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := sink.NewRecorder()
	_, err := layout.New(config.Defaults(), nil).Render(ctx, g, rec)
	if err == nil {
		t.Fatal("Render() with canceled context should fail")
	}
	if len(rec.Nodes) != 0 {
		t.Errorf("surface has %d nodes, want 0", len(rec.Nodes))
	}
}

type capHooks struct {
	observability.NoopRenderHooks
	phases []string
	stats  observability.PassStats
}

func (h *capHooks) OnTraversalCapped(_ context.Context, phase, _ string, _ int) {
	h.phases = append(h.phases, phase)
}

func (h *capHooks) OnPassComplete(_ context.Context, _ string, s observability.PassStats, _ time.Duration, _ error) {
	h.stats = s
}

func TestRenderTruncated(t *testing.T) {
	hooks := &capHooks{}
	observability.SetRenderHooks(hooks)
	t.Cleanup(observability.Reset)

	var commits []commit
	for i, id := range []string{"c0", "c1", "c2", "c3", "c4"} {
		c := commit{id: id, seq: i}
		if i > 0 {
			c.parents = []string{commits[i-1].id}
		}
		commits = append(commits, c)
	}
	g := build(t, model.LeftRight, commits, [2]string{"main", "c4"})

	cfg := config.Defaults()
	cfg.MaxSteps = 3
	_, res, err := render(t, cfg, g)

	// c1 was never placed, so the edge walk fails once it gets there.
	if !errors.Is(err, errors.ErrCodeUnplacedNode) {
		t.Errorf("Render() error = %v, want UNPLACED_NODE", err)
	}
	if !res.Truncated() {
		t.Fatal("Truncated() = false, want true")
	}
	want := layout.Truncation{Phase: layout.PhasePlace, Start: "c4", Steps: 3}
	if res.Truncations[0] != want {
		t.Errorf("Truncations[0] = %+v, want %+v", res.Truncations[0], want)
	}
	if res.Nodes != 3 || res.Edges != 2 {
		t.Errorf("Result = %d nodes, %d edges; want 3, 2", res.Nodes, res.Edges)
	}
	if !slices.Equal(hooks.phases, []string{layout.PhasePlace}) {
		t.Errorf("capped hook phases = %v, want [place]", hooks.phases)
	}
	if hooks.stats.Nodes != 3 {
		t.Errorf("pass stats nodes = %d, want 3", hooks.stats.Nodes)
	}
}

func TestRenderTooManyParents(t *testing.T) {
	g := build(t, model.LeftRight, []commit{
		{id: "a", seq: 0},
		{id: "b", seq: 1, parents: []string{"a"}},
		{id: "d", seq: 2, parents: []string{"a"}},
		{id: "e", seq: 3, parents: []string{"a"}},
		{id: "c", seq: 4, parents: []string{"b", "d", "e"}},
	}, [2]string{"main", "c"})

	rec, res, err := render(t, config.Defaults(), g)

	if !errors.Is(err, errors.ErrCodeRender) || !errors.Is(err, errors.ErrCodeInvalidModel) {
		t.Fatalf("Render() error = %v, want RENDER_FAILED wrapping INVALID_MODEL", err)
	}
	if res.Nodes != 1 || len(rec.Nodes) != 1 {
		t.Errorf("partial output = %d nodes (surface %d), want 1", res.Nodes, len(rec.Nodes))
	}
	if res.Edges != 0 {
		t.Errorf("edges = %d, want 0", res.Edges)
	}
}
