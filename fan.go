package glyphfill

// MarkTriangle is one stencil mark triangle: the shared apex followed by the
// start and end of one contour edge. Curved edges contribute their chord.
type MarkTriangle [3]Point

// FanTriangles emits one mark triangle per contour edge, in traversal order,
// all anchored at apex.
//
// Drawing every triangle with a stencil Invert operation leaves bit 0 set
// exactly where a point is covered an odd number of times, which is the
// even-odd interior of the union of all contours fanned from the same apex.
// This holds for concave contours, holes and self-intersections alike; the
// apex only has to be shared across the glyph.
func FanTriangles(c Contour, apex Point) []MarkTriangle {
	return appendFan(make([]MarkTriangle, 0, len(c.Segments)), c, apex)
}

func appendFan(dst []MarkTriangle, c Contour, apex Point) []MarkTriangle {
	for _, s := range c.Segments {
		dst = append(dst, MarkTriangle{apex, s.From, s.To})
	}
	return dst
}

// defaultApex returns the top-left corner of b pushed out by margin along
// both axes (y-up, so "top" is Max.Y).
func defaultApex(b Rect, margin float64) Point {
	return Point{X: b.Min.X - margin, Y: b.Max.Y + margin}
}
