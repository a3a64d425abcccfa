package glyphfill

// Barycentric is the per-vertex (u, v, w) attribute of a curve triangle.
type Barycentric struct {
	U, V, W float64
}

// Fixed barycentric roles of a curve triangle's vertices.
var (
	BaryTail    = Barycentric{U: 1}
	BaryEnd     = Barycentric{V: 1}
	BaryControl = Barycentric{W: 1}
)

// CurveVertex is one vertex of a curve triangle.
type CurveVertex struct {
	Point Point
	Bary  Barycentric
}

// CurveTriangle covers the region between a quadratic edge and its chord.
// Vertices are stored in emission order: tail, control, end.
type CurveTriangle struct {
	Vertices [3]CurveVertex

	// Winding is the orientation of the contour that owns the edge.
	Winding Winding
}

// Tail returns the vertex at the start of the edge.
func (t CurveTriangle) Tail() CurveVertex { return t.Vertices[0] }

// Control returns the control-point vertex.
func (t CurveTriangle) Control() CurveVertex { return t.Vertices[1] }

// End returns the vertex at the end of the edge.
func (t CurveTriangle) End() CurveVertex { return t.Vertices[2] }

// CurveTriangles emits one curve triangle per quadratic edge of c.
// Straight edges produce nothing.
func CurveTriangles(c Contour) []CurveTriangle {
	return appendCurves(nil, c)
}

func appendCurves(dst []CurveTriangle, c Contour) []CurveTriangle {
	for _, s := range c.Segments {
		if s.Kind != SegmentQuad {
			continue
		}
		dst = append(dst, CurveTriangle{
			Vertices: [3]CurveVertex{
				{Point: s.From, Bary: BaryTail},
				{Point: s.Ctrl, Bary: BaryControl},
				{Point: s.To, Bary: BaryEnd},
			},
			Winding: c.Winding,
		})
	}
	return dst
}

// CurveDiscriminant evaluates (w/2 + v)^2 - v for an interpolated
// barycentric coordinate. It is zero on the curve, negative between the
// curve and its chord and positive toward the control point.
func CurveDiscriminant(b Barycentric) float64 {
	s := b.W/2 + b.V
	return s*s - b.V
}

// CurveFills reports whether a curve-pass fragment takes the fill color.
// Front-facing fragments are cleared to the background where the
// discriminant is negative and filled elsewhere; back-facing fragments are
// mirrored. mirror flips the rule for the whole glyph and is set for glyphs
// whose outer contours are CCW (GlyphGeometry.MirrorCurves).
func CurveFills(b Barycentric, frontFacing, mirror bool) bool {
	inside := CurveDiscriminant(b) < 0
	if frontFacing != mirror {
		return !inside
	}
	return inside
}
