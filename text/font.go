package text

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gogpu/glyphfill"
)

var (
	// ErrGlyphNotFound is returned when a font has no glyph for a rune.
	ErrGlyphNotFound = errors.New("text: glyph not found")

	// ErrNoOutline is returned for glyphs without a vector outline, such as
	// bitmap or color glyphs.
	ErrNoOutline = errors.New("text: glyph has no outline")

	// ErrUnknownBackend is returned for an unrecognized Backend.
	ErrUnknownBackend = errors.New("text: unknown font backend")
)

// GlyphID is a glyph index within a font.
type GlyphID uint16

// Font supplies glyph outlines in font design units, y up.
type Font interface {
	// UnitsPerEm returns the em size in design units.
	UnitsPerEm() int

	// GlyphIndex returns the glyph for r. ok is false when the font has no
	// mapping for r.
	GlyphIndex(r rune) (gid GlyphID, ok bool)

	// Outline returns the outline of a glyph as path commands. Glyphs
	// without contours, such as space, return an empty slice.
	Outline(gid GlyphID) ([]glyphfill.PathCommand, error)
}

// Backend selects the font parsing library.
type Backend int

const (
	// BackendSFNT parses with golang.org/x/image/font/sfnt.
	BackendSFNT Backend = iota

	// BackendGoText parses with github.com/go-text/typesetting.
	BackendGoText
)

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case BackendSFNT:
		return "sfnt"
	case BackendGoText:
		return "gotext"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ParseBackend returns the Backend named by name ("sfnt" or "gotext").
func ParseBackend(name string) (Backend, error) {
	for _, b := range []Backend{BackendSFNT, BackendGoText} {
		if name == b.String() {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// Parse parses TrueType or OpenType font data with the given backend.
func Parse(data []byte, backend Backend) (Font, error) {
	switch backend {
	case BackendSFNT:
		return ParseSFNT(data)
	case BackendGoText:
		return ParseGoText(data)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownBackend, backend)
	}
}

// LoadFile reads and parses a font file. Reading is abandoned when ctx is
// done; parsing starts only after the whole file has been read.
func LoadFile(ctx context.Context, path string, backend Backend) (Font, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := os.ReadFile(path)
		done <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("text: read font: %w", res.err)
		}
		f, err := Parse(res.data, backend)
		if err != nil {
			return nil, err
		}
		glyphfill.Logger().Debug("text: font loaded",
			"path", path, "backend", backend.String(), "units_per_em", f.UnitsPerEm())
		return f, nil
	}
}

// RuneOutline returns the outline of the glyph mapped to r.
func RuneOutline(f Font, r rune) ([]glyphfill.PathCommand, error) {
	gid, ok := f.GlyphIndex(r)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrGlyphNotFound, r)
	}
	return f.Outline(gid)
}

// TessellateRune tessellates the glyph mapped to r, normalized by the font's
// em size and centered horizontally. opts are applied after those defaults.
func TessellateRune(f Font, r rune, opts ...glyphfill.Option) (*glyphfill.GlyphGeometry, error) {
	cmds, err := RuneOutline(f, r)
	if err != nil {
		return nil, err
	}
	all := append([]glyphfill.Option{
		glyphfill.WithEmUnits(float64(f.UnitsPerEm())),
		glyphfill.WithCenterX(true),
	}, opts...)
	return glyphfill.Tessellate(cmds, all...)
}

// outlineBuilder accumulates path commands, closing each contour explicitly
// before the next MoveTo and at the end.
type outlineBuilder struct {
	cmds []glyphfill.PathCommand
	open bool
}

func (b *outlineBuilder) moveTo(p glyphfill.Point) {
	b.close()
	b.cmds = append(b.cmds, glyphfill.MoveTo{Point: p})
	b.open = true
}

func (b *outlineBuilder) lineTo(p glyphfill.Point) {
	b.cmds = append(b.cmds, glyphfill.LineTo{Point: p})
}

func (b *outlineBuilder) quadTo(c, p glyphfill.Point) {
	b.cmds = append(b.cmds, glyphfill.QuadTo{Control: c, Point: p})
}

func (b *outlineBuilder) cubicTo(c1, c2, p glyphfill.Point) {
	b.cmds = append(b.cmds, glyphfill.CubicTo{Control1: c1, Control2: c2, Point: p})
}

func (b *outlineBuilder) close() {
	if b.open {
		b.cmds = append(b.cmds, glyphfill.Close{})
		b.open = false
	}
}

func (b *outlineBuilder) commands() []glyphfill.PathCommand {
	b.close()
	if b.cmds == nil {
		return []glyphfill.PathCommand{}
	}
	return b.cmds
}
