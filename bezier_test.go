package glyphfill

import (
	"math"
	"testing"
)

func TestCubicBezSubdivide(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(0, 1), P2: Pt(1, 1), P3: Pt(1, 0)}
	left, right := c.Subdivide()

	mid := c.Eval(0.5)
	if left.P3 != mid || right.P0 != mid {
		t.Errorf("Subdivide() split point = %v/%v, want %v", left.P3, right.P0, mid)
	}
	if left.P0 != c.P0 || right.P3 != c.P3 {
		t.Error("Subdivide() did not keep the endpoints")
	}
	for _, tt := range []float64{0.1, 0.3, 0.7} {
		if got, want := left.Eval(tt), c.Eval(tt/2); got.Distance(want) > 1e-12 {
			t.Errorf("left.Eval(%v) = %v, want %v", tt, got, want)
		}
	}
}

func TestCubicBezToQuads(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(0, 1), P2: Pt(1, 1), P3: Pt(1, 0)}

	t.Run("midpoint", func(t *testing.T) {
		qs := c.ToQuads(0)
		if len(qs) != 1 {
			t.Fatalf("ToQuads(0) len = %d, want 1", len(qs))
		}
		if want := Pt(0.5, 1); qs[0].P1 != want {
			t.Errorf("control = %v, want %v", qs[0].P1, want)
		}
	})

	t.Run("subdivided", func(t *testing.T) {
		const tol = 1e-3
		qs := c.ToQuads(tol)
		if len(qs) < 2 {
			t.Fatalf("ToQuads(%v) len = %d, want > 1", tol, len(qs))
		}
		if qs[0].P0 != c.P0 || qs[len(qs)-1].P2 != c.P3 {
			t.Error("ToQuads() did not keep the endpoints")
		}
		for i := 1; i < len(qs); i++ {
			if qs[i-1].P2 != qs[i].P0 {
				t.Errorf("quad %d does not start where quad %d ends", i, i-1)
			}
		}
		// Each quad midpoint lies close to the cubic.
		for i, q := range qs {
			p := q.Eval(0.5)
			best := math.Inf(1)
			for s := 0; s <= 1000; s++ {
				best = math.Min(best, p.Distance(c.Eval(float64(s)/1000)))
			}
			if best > 4*tol {
				t.Errorf("quad %d midpoint is %v away from the cubic", i, best)
			}
		}
	})

	t.Run("depth capped", func(t *testing.T) {
		qs := c.ToQuads(1e-300)
		if len(qs) > 1<<maxCubicDepth {
			t.Errorf("ToQuads() len = %d, want <= %d", len(qs), 1<<maxCubicDepth)
		}
	})

	t.Run("degree elevated quad is exact", func(t *testing.T) {
		// Cubic obtained by raising a quadratic converts back in one step.
		q := QuadBez{P0: Pt(0, 0), P1: Pt(1, 2), P2: Pt(2, 0)}
		raised := CubicBez{
			P0: q.P0,
			P1: q.P0.Lerp(q.P1, 2.0/3),
			P2: q.P2.Lerp(q.P1, 2.0/3),
			P3: q.P2,
		}
		qs := raised.ToQuads(1e-6)
		if len(qs) != 1 {
			t.Fatalf("ToQuads() len = %d, want 1", len(qs))
		}
		if qs[0].P1.Distance(q.P1) > 1e-12 {
			t.Errorf("control = %v, want %v", qs[0].P1, q.P1)
		}
	})
}
