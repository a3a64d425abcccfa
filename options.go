package glyphfill

// Config controls how raw outline coordinates are mapped into normalized
// device coordinates and how curves are approximated.
//
// The zero value is not usable; start from DefaultConfig or pass options to
// Tessellate.
type Config struct {
	// EmUnits divides every raw coordinate. Typically the font's units per em.
	EmUnits float64

	// FlipY negates the y axis after scaling.
	FlipY bool

	// CenterX shifts x so that the glyph's raw bounding box is centered on 0.
	CenterX bool

	// Apex overrides the reference point shared by all mark triangles of a
	// glyph. It is given in normalized coordinates. When nil the apex is
	// derived from the glyph bounds and ApexMargin.
	Apex *Point

	// ApexMargin pushes the derived apex away from the top-left corner of
	// the glyph bounds.
	ApexMargin float64

	// CubicTolerance enables recursive cubic subdivision. Zero approximates
	// each cubic with a single quadratic whose control is the midpoint of
	// the two cubic controls.
	CubicTolerance float64
}

// Option configures tessellation.
//
// Example:
//
//	geom, err := glyphfill.Tessellate(cmds,
//	    glyphfill.WithEmUnits(2048),
//	    glyphfill.WithCenterX(true),
//	)
type Option func(*Config)

const (
	defaultApexMargin = 0.1

	// maxCubicDepth bounds the recursion of cubic subdivision.
	maxCubicDepth = 8
)

// DefaultConfig returns the default tessellation configuration.
func DefaultConfig() Config {
	return Config{
		EmUnits:    1,
		ApexMargin: defaultApexMargin,
	}
}

// NewConfig applies opts over DefaultConfig and validates the result.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if !(c.EmUnits > 0) {
		return ErrInvalidEmUnits
	}
	return nil
}

// WithEmUnits sets the divisor applied to raw coordinates.
func WithEmUnits(units float64) Option {
	return func(c *Config) {
		c.EmUnits = units
	}
}

// WithFlipY negates y after scaling. Font sources with a y-down design
// space use this to land in y-up device coordinates.
func WithFlipY(flip bool) Option {
	return func(c *Config) {
		c.FlipY = flip
	}
}

// WithCenterX centers the glyph horizontally around x = 0.
func WithCenterX(center bool) Option {
	return func(c *Config) {
		c.CenterX = center
	}
}

// WithApex fixes the reference apex of the fan triangulation.
// The point must lie outside the glyph's bounding hull.
func WithApex(p Point) Option {
	return func(c *Config) {
		c.Apex = &p
	}
}

// WithApexMargin sets how far the derived apex sits outside the glyph bounds.
func WithApexMargin(margin float64) Option {
	return func(c *Config) {
		c.ApexMargin = margin
	}
}

// WithCubicSubdivision splits cubics until each quadratic approximation is
// within tol normalized units. A tol of 0 restores the single midpoint
// approximation.
func WithCubicSubdivision(tol float64) Option {
	return func(c *Config) {
		if tol < 0 {
			tol = 0
		}
		c.CubicTolerance = tol
	}
}

// transform maps raw design coordinates into normalized coordinates.
type transform struct {
	em    float64
	cx    float64
	flipY bool
}

func newTransform(cfg Config, cmds []PathCommand) transform {
	tr := transform{em: cfg.EmUnits, flipY: cfg.FlipY}
	if cfg.CenterX {
		var b bounds
		for _, cmd := range cmds {
			for _, p := range commandPoints(cmd) {
				b.add(p)
			}
		}
		if b.ok {
			tr.cx = (b.rect.Min.X + b.rect.Max.X) / 2
		}
	}
	return tr
}

func (tr transform) apply(p Point) Point {
	x := (p.X - tr.cx) / tr.em
	y := p.Y / tr.em
	if tr.flipY {
		y = -y
	}
	return Point{X: x, Y: y}
}

// commandPoints returns the raw points a command carries, in order.
func commandPoints(cmd PathCommand) []Point {
	switch c := cmd.(type) {
	case MoveTo:
		return []Point{c.Point}
	case LineTo:
		return []Point{c.Point}
	case QuadTo:
		return []Point{c.Control, c.Point}
	case CubicTo:
		return []Point{c.Control1, c.Control2, c.Point}
	default:
		return nil
	}
}
