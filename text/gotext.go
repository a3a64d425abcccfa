package text

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/glyphfill"
)

// GoTextFont is a Font backed by github.com/go-text/typesetting.
//
// font.Font is read-only and safe for concurrent use; a lightweight
// font.Face is created per Outline call.
type GoTextFont struct {
	font *font.Font
}

// ParseGoText parses TrueType or OpenType font data.
func ParseGoText(data []byte) (*GoTextFont, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &GoTextFont{font: face.Font}, nil
}

// UnitsPerEm implements Font.
func (f *GoTextFont) UnitsPerEm() int {
	return int(f.font.Upem())
}

// GlyphIndex implements Font.
func (f *GoTextFont) GlyphIndex(r rune) (GlyphID, bool) {
	gid, ok := f.font.NominalGlyph(r)
	if !ok || gid == 0 {
		return 0, false
	}
	return GlyphID(gid), true
}

// Outline implements Font. go-text reports design units with y up.
func (f *GoTextFont) Outline(gid GlyphID) ([]glyphfill.PathCommand, error) {
	face := font.NewFace(f.font)
	outline, ok := face.GlyphData(font.GID(gid)).(font.GlyphOutline)
	if !ok {
		return nil, fmt.Errorf("%w: glyph %d", ErrNoOutline, gid)
	}

	var b outlineBuilder
	for _, seg := range outline.Segments {
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			b.moveTo(segmentPoint(seg.Args[0]))
		case opentype.SegmentOpLineTo:
			b.lineTo(segmentPoint(seg.Args[0]))
		case opentype.SegmentOpQuadTo:
			b.quadTo(segmentPoint(seg.Args[0]), segmentPoint(seg.Args[1]))
		case opentype.SegmentOpCubeTo:
			b.cubicTo(segmentPoint(seg.Args[0]), segmentPoint(seg.Args[1]), segmentPoint(seg.Args[2]))
		}
	}
	return b.commands(), nil
}

func segmentPoint(p opentype.SegmentPoint) glyphfill.Point {
	return glyphfill.Pt(float64(p.X), float64(p.Y))
}
