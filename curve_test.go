package glyphfill

import "testing"

func TestCurveTriangles_Barycentric(t *testing.T) {
	g, err := Tessellate(ringPath(), WithEmUnits(10))
	if err != nil {
		t.Fatalf("Tessellate() error = %v", err)
	}
	for _, w := range []Winding{CW, CCW} {
		tris := g.Curves(w)
		if len(tris) != 4 {
			t.Fatalf("%v curves = %d, want 4", w, len(tris))
		}
		for i, tri := range tris {
			if tri.Winding != w {
				t.Errorf("%v curve %d winding = %v", w, i, tri.Winding)
			}
			if tri.Tail().Bary != (Barycentric{1, 0, 0}) {
				t.Errorf("%v curve %d tail = %v, want (1,0,0)", w, i, tri.Tail().Bary)
			}
			if tri.End().Bary != (Barycentric{0, 1, 0}) {
				t.Errorf("%v curve %d end = %v, want (0,1,0)", w, i, tri.End().Bary)
			}
			if tri.Control().Bary != (Barycentric{0, 0, 1}) {
				t.Errorf("%v curve %d control = %v, want (0,0,1)", w, i, tri.Control().Bary)
			}
		}
	}
}

func TestCurveTriangles_LinesOnly(t *testing.T) {
	contours, _, err := ExtractContours(squarePath())
	if err != nil {
		t.Fatalf("ExtractContours() error = %v", err)
	}
	if got := CurveTriangles(contours[0]); len(got) != 0 {
		t.Errorf("curves = %d, want 0", len(got))
	}
}

func TestCurveDiscriminant(t *testing.T) {
	tests := []struct {
		name string
		b    Barycentric
		want float64
	}{
		{"tail", BaryTail, 0},
		{"end", BaryEnd, 0},
		{"control", BaryControl, 0.25},
		{"chord midpoint", Barycentric{0.5, 0.5, 0}, -0.25},
		// Point on the curve at t=0.5: (mt^2, t^2, 2 mt t).
		{"on curve", Barycentric{0.25, 0.25, 0.5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurveDiscriminant(tt.b); got != tt.want {
				t.Errorf("CurveDiscriminant(%v) = %v, want %v", tt.b, got, tt.want)
			}
		})
	}
}

func TestCurveFills(t *testing.T) {
	chord := Barycentric{0.5, 0.5, 0}
	beyond := BaryControl

	tests := []struct {
		name   string
		b      Barycentric
		front  bool
		mirror bool
		want   bool
	}{
		{"front between chord and curve", chord, true, false, false},
		{"front beyond curve", beyond, true, false, true},
		{"back between chord and curve", chord, false, false, true},
		{"back beyond curve", beyond, false, false, false},
		{"mirrored front between chord and curve", chord, true, true, true},
		{"mirrored front beyond curve", beyond, true, true, false},
		{"mirrored back between chord and curve", chord, false, true, false},
		{"mirrored back beyond curve", beyond, false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurveFills(tt.b, tt.front, tt.mirror); got != tt.want {
				t.Errorf("CurveFills(%v, %v, %v) = %v, want %v", tt.b, tt.front, tt.mirror, got, tt.want)
			}
		})
	}
}
