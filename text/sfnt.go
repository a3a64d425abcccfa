package text

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/glyphfill"
)

// SFNTFont is a Font backed by golang.org/x/image/font/sfnt.
// It is safe for concurrent use.
type SFNTFont struct {
	font *opentype.Font
	upem int

	// buffers pools sfnt.Buffer, which is not safe for concurrent use.
	buffers sync.Pool
}

// ParseSFNT parses TrueType or OpenType font data.
func ParseSFNT(data []byte) (*SFNTFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &SFNTFont{
		font:    f,
		upem:    int(f.UnitsPerEm()),
		buffers: sync.Pool{New: func() any { return new(sfnt.Buffer) }},
	}, nil
}

// Name returns the font family name, or "" if unavailable.
func (f *SFNTFont) Name() string {
	buf := f.buffers.Get().(*sfnt.Buffer)
	defer f.buffers.Put(buf)
	name, err := f.font.Name(buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// UnitsPerEm implements Font.
func (f *SFNTFont) UnitsPerEm() int {
	return f.upem
}

// GlyphIndex implements Font.
func (f *SFNTFont) GlyphIndex(r rune) (GlyphID, bool) {
	buf := f.buffers.Get().(*sfnt.Buffer)
	defer f.buffers.Put(buf)
	idx, err := f.font.GlyphIndex(buf, r)
	if err != nil || idx == 0 {
		return 0, false
	}
	return GlyphID(idx), true
}

// Outline implements Font. Loading at ppem equal to the em size yields
// design units; sfnt reports y down, so y is negated.
func (f *SFNTFont) Outline(gid GlyphID) ([]glyphfill.PathCommand, error) {
	buf := f.buffers.Get().(*sfnt.Buffer)
	defer f.buffers.Put(buf)

	segments, err := f.font.LoadGlyph(buf, sfnt.GlyphIndex(gid), fixed.I(f.upem), nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrColoredGlyph) {
			return nil, fmt.Errorf("%w: glyph %d", ErrNoOutline, gid)
		}
		return nil, fmt.Errorf("text: load glyph %d: %w", gid, err)
	}

	var b outlineBuilder
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			b.moveTo(fixedToPoint(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			b.lineTo(fixedToPoint(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			b.quadTo(fixedToPoint(seg.Args[0]), fixedToPoint(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			b.cubicTo(fixedToPoint(seg.Args[0]), fixedToPoint(seg.Args[1]), fixedToPoint(seg.Args[2]))
		}
	}
	return b.commands(), nil
}

func fixedToPoint(p fixed.Point26_6) glyphfill.Point {
	return glyphfill.Pt(float64(p.X)/64, -float64(p.Y)/64)
}
