package glyphfill

// Winding is the orientation of a closed contour in normalized (y-up)
// coordinates.
type Winding uint8

const (
	// CCW is counter-clockwise orientation (positive signed area).
	CCW Winding = iota

	// CW is clockwise orientation (negative signed area).
	CW
)

// String returns the winding name.
func (w Winding) String() string {
	switch w {
	case CCW:
		return "CCW"
	case CW:
		return "CW"
	default:
		return "Winding(?)"
	}
}

// SegmentKind distinguishes straight and curved contour edges.
type SegmentKind uint8

const (
	// SegmentLine is a straight edge From -> To.
	SegmentLine SegmentKind = iota

	// SegmentQuad is a quadratic edge From -> To bending toward Ctrl.
	SegmentQuad
)

// Segment is one normalized edge of a contour. Cubic commands are already
// converted into quadratic segments.
type Segment struct {
	Kind SegmentKind
	From Point
	Ctrl Point // valid for SegmentQuad only
	To   Point
}

// isZeroLength reports whether the edge covers no area at all.
func (s Segment) isZeroLength() bool {
	if s.Kind == SegmentQuad {
		return s.From == s.To && s.Ctrl == s.From
	}
	return s.From == s.To
}

// Contour is one closed MoveTo ... Close run of a glyph.
type Contour struct {
	// Index is the position of the run among all runs of the glyph,
	// including skipped degenerate ones.
	Index int

	// Segments are the edges in traversal order, closing edge included.
	Segments []Segment

	// Winding is the orientation of the contour.
	Winding Winding

	// Area is the signed shoelace area of the contour polygon, control
	// points included. Positive for CCW.
	Area float64
}

// Start returns the point the contour begins and ends at.
func (c *Contour) Start() Point {
	if len(c.Segments) == 0 {
		return Point{}
	}
	return c.Segments[0].From
}

// ExtractContours splits a command stream into closed contours with resolved
// winding. Raw coordinates are mapped into normalized coordinates as
// configured by opts.
//
// Degenerate contours are skipped and reported in diagnostics. A command
// outside the supported set aborts extraction with UnsupportedCommandError.
func ExtractContours(cmds []PathCommand, opts ...Option) (contours []Contour, diagnostics []error, err error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, nil, err
	}
	return extractContours(cmds, cfg)
}

func extractContours(cmds []PathCommand, cfg Config) ([]Contour, []error, error) {
	tr := newTransform(cfg, cmds)
	x := extractor{tr: tr, tol: cfg.CubicTolerance}

	for i, cmd := range cmds {
		switch c := cmd.(type) {
		case MoveTo:
			x.finish()
			x.begin(tr.apply(c.Point))
		case LineTo:
			x.ensureOpen()
			p := tr.apply(c.Point)
			x.points = append(x.points, p)
			x.edge(Segment{Kind: SegmentLine, From: x.tail, To: p})
		case QuadTo:
			x.ensureOpen()
			ctrl, p := tr.apply(c.Control), tr.apply(c.Point)
			x.points = append(x.points, ctrl, p)
			x.edge(Segment{Kind: SegmentQuad, From: x.tail, Ctrl: ctrl, To: p})
		case CubicTo:
			x.ensureOpen()
			c1, c2, p := tr.apply(c.Control1), tr.apply(c.Control2), tr.apply(c.Point)
			x.points = append(x.points, c1, c2, p)
			cubic := CubicBez{P0: x.tail, P1: c1, P2: c2, P3: p}
			for _, q := range cubic.ToQuads(x.tol) {
				x.edge(Segment{Kind: SegmentQuad, From: q.P0, Ctrl: q.P1, To: q.P2})
			}
			x.tail = p
		case Close:
			x.finish()
		default:
			return nil, nil, &UnsupportedCommandError{Index: i, Command: cmd}
		}
	}
	x.finish()

	return x.contours, x.diagnostics, nil
}

// extractor holds the state of the run being collected.
type extractor struct {
	tr  transform
	tol float64

	open     bool
	start    Point
	tail     Point
	points   []Point
	segments []Segment
	runs     int

	contours    []Contour
	diagnostics []error
}

func (x *extractor) begin(p Point) {
	x.open = true
	x.start = p
	x.tail = p
	x.points = append(x.points[:0], p)
	x.segments = nil
}

// ensureOpen starts an implicit run at the origin for drawing commands that
// precede any MoveTo.
func (x *extractor) ensureOpen() {
	if !x.open {
		x.begin(x.tr.apply(Point{}))
	}
}

func (x *extractor) edge(s Segment) {
	x.tail = s.To
	if s.isZeroLength() {
		return
	}
	x.segments = append(x.segments, s)
}

// finish closes the open run, if any, and classifies it.
func (x *extractor) finish() {
	if !x.open {
		return
	}
	x.open = false
	index := x.runs
	x.runs++

	x.edge(Segment{Kind: SegmentLine, From: x.tail, To: x.start})

	w, distinct, ok := windingOf(x.points)
	if !ok {
		err := &DegenerateContourError{Index: index, Points: distinct}
		x.diagnostics = append(x.diagnostics, err)
		Logger().Debug("glyphfill: skip contour", "index", index, "points", distinct, "err", err)
		return
	}

	x.contours = append(x.contours, Contour{
		Index:    index,
		Segments: x.segments,
		Winding:  w,
		Area:     signedArea(x.points) / 2,
	})
}

// windingOf classifies the orientation of a closed point sequence. It
// returns ok=false when no three points are non-collinear, together with
// the number of distinct points considered.
func windingOf(points []Point) (w Winding, distinct int, ok bool) {
	pts := make([]Point, 0, len(points))
	for _, p := range points {
		if len(pts) > 0 && pts[len(pts)-1] == p {
			continue
		}
		pts = append(pts, p)
	}
	for len(pts) > 1 && pts[len(pts)-1] == pts[0] {
		pts = pts[:len(pts)-1]
	}

	triple := 0.0
	for i := 0; i+2 < len(pts); i++ {
		if c := cross3(pts[i], pts[i+1], pts[i+2]); c != 0 {
			triple = c
			break
		}
	}
	if triple == 0 {
		return CCW, len(pts), false
	}

	sign := signedArea(pts)
	if sign == 0 {
		sign = triple
	}
	if sign < 0 {
		return CW, len(pts), true
	}
	return CCW, len(pts), true
}

// signedArea returns twice the shoelace area of the closed polygon.
func signedArea(pts []Point) float64 {
	var sum float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += p.Cross(q)
	}
	return sum
}
