package geom

import "testing"

func TestBBoxEdges(t *testing.T) {
	tests := []struct {
		name             string
		box              BBox
		right, bottom    float64
		centerX, centerY float64
	}{
		{
			name:    "origin",
			box:     BBox{Left: 0, Top: 0, Width: 20, Height: 20},
			right:   20,
			bottom:  20,
			centerX: 10,
			centerY: 10,
		},
		{
			name:    "offset",
			box:     BBox{Left: 40, Top: 40, Width: 20, Height: 10},
			right:   60,
			bottom:  50,
			centerX: 50,
			centerY: 45,
		},
		{
			name:    "empty",
			box:     BBox{Left: 5, Top: 7},
			right:   5,
			bottom:  7,
			centerX: 5,
			centerY: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Right(); got != tt.right {
				t.Errorf("Right() = %v, want %v", got, tt.right)
			}
			if got := tt.box.Bottom(); got != tt.bottom {
				t.Errorf("Bottom() = %v, want %v", got, tt.bottom)
			}
			if got := tt.box.CenterX(); got != tt.centerX {
				t.Errorf("CenterX() = %v, want %v", got, tt.centerX)
			}
			if got := tt.box.CenterY(); got != tt.centerY {
				t.Errorf("CenterY() = %v, want %v", got, tt.centerY)
			}
		})
	}
}

func TestSquare(t *testing.T) {
	got := Square(Pt(50, 50), 10)
	want := BBox{Left: 40, Top: 40, Width: 20, Height: 20}
	if got != want {
		t.Errorf("Square() = %+v, want %+v", got, want)
	}
	if c := got.Center(); c != Pt(50, 50) {
		t.Errorf("Center() = %v, want (50,50)", c)
	}
}

func TestPointRound(t *testing.T) {
	tests := []struct {
		in, want Point
	}{
		{Pt(1.4, 1.6), Pt(1, 2)},
		{Pt(2.5, -2.5), Pt(3, -3)},
		{Pt(-0.4, 0), Pt(0, 0)},
	}
	for _, tt := range tests {
		if got := tt.in.Round(); got != tt.want {
			t.Errorf("%v.Round() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInterpolationText(t *testing.T) {
	for _, in := range []Interpolation{Linear, Smooth} {
		b, _ := in.MarshalText()
		var out Interpolation
		if err := out.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", b, err)
		}
		if out != in {
			t.Errorf("UnmarshalText(%q) = %v, want %v", b, out, in)
		}
	}
}
