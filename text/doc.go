// Package text turns font glyphs into glyphfill path commands.
//
// Two parsing backends are available: BackendSFNT uses
// golang.org/x/image/font/sfnt and BackendGoText uses
// github.com/go-text/typesetting. Both report outlines in font design units
// with y pointing up, so the result feeds glyphfill.Tessellate with
// glyphfill.WithEmUnits(f.UnitsPerEm()) directly:
//
//	f, err := text.Parse(goregular.TTF, text.BackendSFNT)
//	geom, err := text.TessellateRune(f, 'g')
//
// Outer contours of TrueType outlines run clockwise, which is the
// orientation the curve pass of the renderers expects.
package text
