package softgpu

import (
	"math"

	"github.com/gogpu/glyphfill"
)

// triangle is a screen-space triangle on the sample grid, oriented so that
// its area is positive in y-down coordinates.
type triangle struct {
	v    [3]glyphfill.Point
	bary [3]glyphfill.Barycentric
	area float64

	// front is the facing in normalized device coordinates: counter-clockwise
	// triangles face front.
	front bool

	minX, maxX, minY, maxY int
}

// toSample maps a point in normalized device coordinates (y up) onto the
// sample grid (y down).
func toSample(p glyphfill.Point, sw, sh int) glyphfill.Point {
	return glyphfill.Point{
		X: (p.X + 1) / 2 * float64(sw),
		Y: (1 - p.Y) / 2 * float64(sh),
	}
}

func newTriangle(ndc [3]glyphfill.Point, bary [3]glyphfill.Barycentric, sw, sh int) (triangle, bool) {
	ndcArea := cross3(ndc[0], ndc[1], ndc[2])
	if ndcArea == 0 {
		return triangle{}, false
	}
	t := triangle{bary: bary, front: ndcArea > 0}
	for i := range ndc {
		t.v[i] = toSample(ndc[i], sw, sh)
	}
	t.area = cross3(t.v[0], t.v[1], t.v[2])
	if t.area < 0 {
		t.v[1], t.v[2] = t.v[2], t.v[1]
		t.bary[1], t.bary[2] = t.bary[2], t.bary[1]
		t.area = -t.area
	}
	if t.area == 0 {
		return triangle{}, false
	}

	lo := glyphfill.Point{X: math.Inf(1), Y: math.Inf(1)}
	hi := glyphfill.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range t.v {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	t.minX = max(int(math.Floor(lo.X-0.5)), 0)
	t.minY = max(int(math.Floor(lo.Y-0.5)), 0)
	t.maxX = min(int(math.Ceil(hi.X-0.5)), sw-1)
	t.maxY = min(int(math.Ceil(hi.Y-0.5)), sh-1)
	return t, true
}

// raster calls fn for every sample in rows [y0, y1) covered by t, with the
// barycentric weights of the sample. Samples lie at pixel centers; samples
// on an edge belong to the triangle only if the edge is a top or left edge.
func (t *triangle) raster(y0, y1, sw int, fn func(x, y int, t *triangle, w [3]float64)) {
	ys, ye := max(y0, t.minY), min(y1-1, t.maxY)
	if ys > ye || t.minX > t.maxX || t.minX >= sw {
		return
	}
	var owns [3]bool
	for i := range owns {
		a, b := t.v[(i+1)%3], t.v[(i+2)%3]
		owns[i] = isTopLeft(a, b)
	}
	for y := ys; y <= ye; y++ {
		for x := t.minX; x <= t.maxX; x++ {
			p := glyphfill.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			var e [3]float64
			inside := true
			for i := range e {
				e[i] = edgeFunction(t.v[(i+1)%3], t.v[(i+2)%3], p)
				if e[i] < 0 || (e[i] == 0 && !owns[i]) {
					inside = false
					break
				}
			}
			if !inside {
				continue
			}
			fn(x, y, t, [3]float64{e[0] / t.area, e[1] / t.area, e[2] / t.area})
		}
	}
}

// interpolate returns the barycentric attribute at weights w.
func (t *triangle) interpolate(w [3]float64) glyphfill.Barycentric {
	var out glyphfill.Barycentric
	for i, b := range t.bary {
		out.U += w[i] * b.U
		out.V += w[i] * b.V
		out.W += w[i] * b.W
	}
	return out
}

// edgeFunction is cross3(a, b, p) evaluated from a canonical endpoint order,
// so the two triangles sharing an edge get exactly opposite values.
func edgeFunction(a, b, p glyphfill.Point) float64 {
	if b.Y < a.Y || (b.Y == a.Y && b.X < a.X) {
		return -cross3(b, a, p)
	}
	return cross3(a, b, p)
}

// isTopLeft reports whether the directed edge a->b of a positively oriented
// y-down triangle is a top edge (horizontal, interior below) or a left edge.
func isTopLeft(a, b glyphfill.Point) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	return (dy == 0 && dx > 0) || dy < 0
}

func cross3(a, b, c glyphfill.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// markTriangles decodes a mark vertex stream.
func markTriangles(vertices []float32, sw, sh int) []triangle {
	const stride = glyphfill.MarkStride
	var zero [3]glyphfill.Barycentric
	tris := make([]triangle, 0, len(vertices)/(3*stride))
	for i := 0; i+3*stride <= len(vertices); i += 3 * stride {
		var ndc [3]glyphfill.Point
		for k := range ndc {
			ndc[k] = glyphfill.Pt(float64(vertices[i+k*stride]), float64(vertices[i+k*stride+1]))
		}
		if t, ok := newTriangle(ndc, zero, sw, sh); ok {
			tris = append(tris, t)
		}
	}
	return tris
}

// curveTriangles decodes a curve vertex stream.
func curveTriangles(vertices []float32, sw, sh int) []triangle {
	const stride = glyphfill.CurveStride
	tris := make([]triangle, 0, len(vertices)/(3*stride))
	for i := 0; i+3*stride <= len(vertices); i += 3 * stride {
		var ndc [3]glyphfill.Point
		var bary [3]glyphfill.Barycentric
		for k := range ndc {
			v := vertices[i+k*stride : i+(k+1)*stride]
			ndc[k] = glyphfill.Pt(float64(v[0]), float64(v[1]))
			bary[k] = glyphfill.Barycentric{U: float64(v[2]), V: float64(v[3]), W: float64(v[4])}
		}
		if t, ok := newTriangle(ndc, bary, sw, sh); ok {
			tris = append(tris, t)
		}
	}
	return tris
}
