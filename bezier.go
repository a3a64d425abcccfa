package glyphfill

import "math"

// QuadBez represents a quadratic Bezier curve with control points P0, P1, P2.
// P0 is the start point, P1 is the control point, P2 is the end point.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	// (1-t)^2 * P0 + 2(1-t)t * P1 + t^2 * P2
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// CubicBez represents a cubic Bezier curve with control points P0, P1, P2, P3.
// P0 is the start point, P1 and P2 are control points, P3 is the end point.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	// (1-t)^3 * P0 + 3(1-t)^2*t * P1 + 3(1-t)*t^2 * P2 + t^3 * P3
	return Point{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// MidpointQuad approximates the cubic with one quadratic whose control is
// the midpoint of the two cubic controls.
func (c CubicBez) MidpointQuad() QuadBez {
	return QuadBez{P0: c.P0, P1: c.P1.Midpoint(c.P2), P2: c.P3}
}

// approxQuad returns the single quadratic closest to the cubic in the
// degree-elevation sense, control (3(P1+P2) - P0 - P3) / 4.
func (c CubicBez) approxQuad() QuadBez {
	ctrl := c.P1.Add(c.P2).Mul(3).Sub(c.P0).Sub(c.P3).Mul(0.25)
	return QuadBez{P0: c.P0, P1: ctrl, P2: c.P3}
}

// quadError bounds the distance between the cubic and approxQuad:
// sqrt(3)/36 * |P3 - 3*P2 + 3*P1 - P0|.
func (c CubicBez) quadError() float64 {
	d := c.P3.Sub(c.P2.Mul(3)).Add(c.P1.Mul(3)).Sub(c.P0)
	return math.Sqrt(3) / 36 * math.Hypot(d.X, d.Y)
}

// ToQuads converts the cubic into quadratics. With tol <= 0 it returns the
// single midpoint approximation. Otherwise it subdivides until every piece
// is within tol, or maxCubicDepth is reached.
func (c CubicBez) ToQuads(tol float64) []QuadBez {
	if tol <= 0 {
		return []QuadBez{c.MidpointQuad()}
	}
	return c.appendQuads(nil, tol, 0)
}

func (c CubicBez) appendQuads(dst []QuadBez, tol float64, depth int) []QuadBez {
	if depth >= maxCubicDepth || c.quadError() <= tol {
		return append(dst, c.approxQuad())
	}
	left, right := c.Subdivide()
	dst = left.appendQuads(dst, tol, depth+1)
	return right.appendQuads(dst, tol, depth+1)
}
