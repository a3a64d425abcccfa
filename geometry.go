package glyphfill

// Vertex layouts of the packed streams.
const (
	// MarkStride is the number of float32 values per mark vertex (x, y).
	MarkStride = 2

	// CurveStride is the number of float32 values per curve vertex
	// (x, y, u, v, w).
	CurveStride = 5
)

// GlyphGeometry is the tessellated form of one glyph: stencil mark
// triangles plus curve triangles bucketed by winding.
//
// A GlyphGeometry is immutable once returned by Tessellate.
type GlyphGeometry struct {
	// Marks holds one triangle per contour edge, in contour order.
	Marks []MarkTriangle

	// CurvesCW and CurvesCCW hold curve triangles of clockwise and
	// counter-clockwise contours.
	CurvesCW  []CurveTriangle
	CurvesCCW []CurveTriangle

	// Contours are the extracted non-degenerate contours.
	Contours []Contour

	// Orientation is the winding of the contour with the largest absolute
	// area. Outer contours of TrueType outlines are CW, those of CFF
	// outlines CCW. The curve pass mirrors its fill rule for CCW glyphs.
	Orientation Winding

	// Apex is the reference point shared by all mark triangles.
	Apex Point

	// Bounds covers every contour point, control points included.
	Bounds Rect

	// Diagnostics lists recoverable per-contour failures
	// (DegenerateContourError).
	Diagnostics []error
}

// Curves returns the curve triangles of the given winding bucket.
func (g *GlyphGeometry) Curves(w Winding) []CurveTriangle {
	if w == CW {
		return g.CurvesCW
	}
	return g.CurvesCCW
}

// MirrorCurves reports whether the curve pass uses the mirrored fill rule.
func (g *GlyphGeometry) MirrorCurves() bool {
	return g != nil && g.Orientation == CCW
}

// CurveCount returns the total number of curve triangles.
func (g *GlyphGeometry) CurveCount() int {
	return len(g.CurvesCW) + len(g.CurvesCCW)
}

// IsEmpty reports whether the geometry has nothing to draw.
func (g *GlyphGeometry) IsEmpty() bool {
	return g == nil || (len(g.Marks) == 0 && g.CurveCount() == 0)
}

// MarkVertices packs the mark triangles as x, y float32 pairs.
// A nil geometry packs to nil.
func (g *GlyphGeometry) MarkVertices() []float32 {
	if g == nil {
		return nil
	}
	out := make([]float32, 0, len(g.Marks)*3*MarkStride)
	for _, tri := range g.Marks {
		for _, p := range tri {
			out = append(out, float32(p.X), float32(p.Y))
		}
	}
	return out
}

// CurveVertices packs the curve triangles as x, y, u, v, w float32 tuples,
// the CW bucket first, then the CCW bucket.
func (g *GlyphGeometry) CurveVertices() []float32 {
	if g == nil {
		return nil
	}
	out := make([]float32, 0, g.CurveCount()*3*CurveStride)
	for _, bucket := range [][]CurveTriangle{g.CurvesCW, g.CurvesCCW} {
		for _, tri := range bucket {
			for _, v := range tri.Vertices {
				out = append(out,
					float32(v.Point.X), float32(v.Point.Y),
					float32(v.Bary.U), float32(v.Bary.V), float32(v.Bary.W))
			}
		}
	}
	return out
}

// CurveRange returns the first vertex and vertex count of a winding bucket
// inside CurveVertices.
func (g *GlyphGeometry) CurveRange(w Winding) (first, count uint32) {
	cw := uint32(len(g.CurvesCW) * 3)
	if w == CW {
		return 0, cw
	}
	return cw, uint32(len(g.CurvesCCW) * 3)
}
