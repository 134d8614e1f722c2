package curve

import (
	"math"
	"testing"

	"github.com/matzehuels/gitgraph/pkg/geom"
)

func ops(p Path) string {
	b := make([]byte, len(p))
	for i, c := range p {
		b[i] = byte(c.Op)
	}
	return string(b)
}

func near(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestBuildShapes(t *testing.T) {
	tests := []struct {
		name    string
		points  []geom.Point
		interp  geom.Interpolation
		wantOps string
	}{
		{"empty", nil, geom.Smooth, ""},
		{"single point", []geom.Point{{X: 1, Y: 1}}, geom.Smooth, "M"},
		{"two points smooth", []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, geom.Smooth, "ML"},
		{"linear", []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, geom.Linear, "MLL"},
		{"three points smooth", []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, geom.Smooth, "MLCCL"},
		{"four points smooth", []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 10}}, geom.Smooth, "MLCCCL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.points, tt.interp)
			if ops(got) != tt.wantOps {
				t.Fatalf("Build() ops = %q, want %q", ops(got), tt.wantOps)
			}
			if len(got) == 0 {
				return
			}
			if got[0].To != tt.points[0] {
				t.Errorf("first point = %v, want %v", got[0].To, tt.points[0])
			}
			if last := got[len(got)-1].To; last != tt.points[len(tt.points)-1] {
				t.Errorf("last point = %v, want %v", last, tt.points[len(tt.points)-1])
			}
		})
	}
}

func TestBuildBasisControlPoints(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 10}}
	p := Build(pts, geom.Smooth)

	if !near(p[1].To, geom.Pt(10.0/6, 0)) {
		t.Errorf("lead-in line = %v, want (1.667,0)", p[1].To)
	}

	first := p[2]
	if !near(first.C1, geom.Pt(10.0/3, 0)) || !near(first.C2, geom.Pt(20.0/3, 0)) || !near(first.To, geom.Pt(50.0/6, 10.0/6)) {
		t.Errorf("first cubic = %+v", first)
	}

	second := p[3]
	if !near(second.C1, geom.Pt(10, 10.0/3)) || !near(second.C2, geom.Pt(10, 20.0/3)) || !near(second.To, geom.Pt(70.0/6, 50.0/6)) {
		t.Errorf("second cubic = %+v", second)
	}

	closing := p[4]
	if !near(closing.C1, geom.Pt(40.0/3, 10)) || !near(closing.C2, geom.Pt(50.0/3, 10)) || !near(closing.To, geom.Pt(110.0/6, 10)) {
		t.Errorf("closing cubic = %+v", closing)
	}
}

func TestBuildRoundsInput(t *testing.T) {
	p := Build([]geom.Point{{X: 0.4, Y: 0.6}, {X: 9.5, Y: 2.2}}, geom.Linear)
	if p[0].To != geom.Pt(0, 1) || p[1].To != geom.Pt(10, 2) {
		t.Errorf("Build() = %v, want rounded points", p)
	}
}

func TestPathString(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"empty", nil, ""},
		{
			name: "polyline",
			path: Path{{Op: MoveTo, To: geom.Pt(50, 50)}, {Op: LineTo, To: geom.Pt(200, 50)}},
			want: "M50,50L200,50",
		},
		{
			name: "cubic",
			path: Path{{Op: MoveTo, To: geom.Pt(0, 0)}, {Op: CubicTo, C1: geom.Pt(1, 2), C2: geom.Pt(3, 4), To: geom.Pt(5.5, 6)}},
			want: "M0,0C1,2,3,4,5.5,6",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

type penLog struct{ calls []string }

func (p *penLog) MoveTo(x, y float64)                    { p.calls = append(p.calls, "M") }
func (p *penLog) LineTo(x, y float64)                    { p.calls = append(p.calls, "L") }
func (p *penLog) CubicTo(x1, y1, x2, y2, x3, y3 float64) { p.calls = append(p.calls, "C") }

func TestReplay(t *testing.T) {
	path := Build([]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, geom.Smooth)
	pen := &penLog{}
	path.Replay(pen)

	var got string
	for _, c := range pen.calls {
		got += c
	}
	if got != ops(path) {
		t.Errorf("Replay() calls = %q, want %q", got, ops(path))
	}
}
