package layout

import (
	"testing"

	"github.com/matzehuels/gitgraph/pkg/config"
	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/geom"
	"github.com/matzehuels/gitgraph/pkg/model"
)

func mustAxis(t *testing.T, dir model.Direction) Axis {
	t.Helper()
	a, err := AxisFor(dir, config.Defaults())
	if err != nil {
		t.Fatalf("AxisFor(%q) error = %v", dir, err)
	}
	return a
}

func box(x, y float64) geom.BBox { return geom.Square(geom.Pt(x, y), 10) }

func TestAxisForUnknown(t *testing.T) {
	if _, err := AxisFor("TB", config.Defaults()); !errors.Is(err, errors.ErrCodeInvalidDirection) {
		t.Errorf("AxisFor(TB) error = %v, want INVALID_DIRECTION", err)
	}
}

func TestPlace(t *testing.T) {
	tests := []struct {
		dir              model.Direction
		seq, lane, total int
		want             geom.Point
	}{
		{model.LeftRight, 0, 1, 3, geom.Pt(50, 50)},
		{model.LeftRight, 1, 1, 3, geom.Pt(200, 50)},
		{model.LeftRight, 2, 2, 3, geom.Pt(350, 100)},
		{model.BottomTop, 0, 1, 3, geom.Pt(100, 450)},
		{model.BottomTop, 2, 1, 3, geom.Pt(100, 150)},
		{model.BottomTop, 1, 3, 3, geom.Pt(200, 300)},
	}
	for _, tt := range tests {
		got := mustAxis(t, tt.dir).Place(tt.seq, tt.lane, tt.total)
		if got != tt.want {
			t.Errorf("%s Place(%d, %d, %d) = %v, want %v", tt.dir, tt.seq, tt.lane, tt.total, got, tt.want)
		}
	}
}

func TestRouteLeftRight(t *testing.T) {
	a := mustAxis(t, model.LeftRight)

	t.Run("adjacent", func(t *testing.T) {
		segs := a.Route(box(200, 50), box(50, 50))
		if len(segs) != 1 {
			t.Fatalf("Route() = %d segments, want 1", len(segs))
		}
		want := []geom.Point{{X: 190, Y: 50}, {X: 115, Y: 50}, {X: 115, Y: 50}, {X: 60, Y: 50}}
		assertSegment(t, segs[0], geom.Smooth, want)
	})

	t.Run("adjacent across lanes", func(t *testing.T) {
		segs := a.Route(box(350, 50), box(200, 100))
		want := []geom.Point{{X: 340, Y: 50}, {X: 265, Y: 50}, {X: 265, Y: 100}, {X: 210, Y: 100}}
		assertSegment(t, segs[0], geom.Smooth, want)
	})

	t.Run("long gap", func(t *testing.T) {
		segs := a.Route(box(500, 100), box(50, 50))
		if len(segs) != 2 {
			t.Fatalf("Route() = %d segments, want 2", len(segs))
		}
		assertSegment(t, segs[0], geom.Linear, []geom.Point{{X: 340, Y: 50}, {X: 60, Y: 50}})
		assertSegment(t, segs[1], geom.Smooth, []geom.Point{{X: 490, Y: 100}, {X: 415, Y: 100}, {X: 415, Y: 50}, {X: 340, Y: 50}})
	})
}

func TestRouteBottomTop(t *testing.T) {
	a := mustAxis(t, model.BottomTop)

	t.Run("adjacent", func(t *testing.T) {
		segs := a.Route(box(100, 150), box(100, 300))
		if len(segs) != 1 {
			t.Fatalf("Route() = %d segments, want 1", len(segs))
		}
		want := []geom.Point{{X: 100, Y: 160}, {X: 100, Y: 215}, {X: 100, Y: 215}, {X: 100, Y: 290}}
		assertSegment(t, segs[0], geom.Smooth, want)
	})

	t.Run("long gap", func(t *testing.T) {
		segs := a.Route(box(150, 150), box(100, 600))
		if len(segs) != 2 {
			t.Fatalf("Route() = %d segments, want 2", len(segs))
		}
		assertSegment(t, segs[0], geom.Linear, []geom.Point{{X: 100, Y: 310}, {X: 100, Y: 590}})
		assertSegment(t, segs[1], geom.Smooth, []geom.Point{{X: 150, Y: 160}, {X: 150, Y: 235}, {X: 100, Y: 235}, {X: 100, Y: 310}})
	})
}

func TestExtent(t *testing.T) {
	lr, bt := mustAxis(t, model.LeftRight), mustAxis(t, model.BottomTop)
	tests := []struct {
		commits, branches int
		wantLR, wantBT    float64
	}{
		{3, 1, 100, 450},
		{10, 3, 200, 1500},
		{0, 0, 50, 0},
	}
	for _, tt := range tests {
		if got := lr.Extent(tt.commits, tt.branches); got != tt.wantLR {
			t.Errorf("LR Extent(%d, %d) = %v, want %v", tt.commits, tt.branches, got, tt.wantLR)
		}
		if got := bt.Extent(tt.commits, tt.branches); got != tt.wantBT {
			t.Errorf("BT Extent(%d, %d) = %v, want %v", tt.commits, tt.branches, got, tt.wantBT)
		}
	}
}

func TestLabel(t *testing.T) {
	base := config.Defaults().Label

	if got := mustAxis(t, model.LeftRight).Label(base, 3); got != base {
		t.Errorf("LR Label() = %+v, want %+v", got, base)
	}

	got := mustAxis(t, model.BottomTop).Label(base, 3)
	want := config.Label{Width: 75, Height: 100, X: 150, Y: -20, FullWidth: true}
	if got != want {
		t.Errorf("BT Label() = %+v, want %+v", got, want)
	}
}

func assertSegment(t *testing.T, seg geom.Segment, interp geom.Interpolation, want []geom.Point) {
	t.Helper()
	if seg.Interp != interp {
		t.Errorf("segment interpolation = %v, want %v", seg.Interp, interp)
	}
	if len(seg.Points) != len(want) {
		t.Fatalf("segment has %d points, want %d: %v", len(seg.Points), len(want), seg.Points)
	}
	for i := range want {
		if seg.Points[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, seg.Points[i], want[i])
		}
	}
}
