// Package glyphfill tessellates font glyph outlines for stencil-based GPU
// filling with exact quadratic curve boundaries.
//
// # Overview
//
// A glyph is described by path commands (MoveTo, LineTo, QuadTo, CubicTo,
// Close). Tessellate turns them into two flat streams:
//
//   - mark triangles, one per contour edge, all sharing a reference apex
//     outside the glyph; drawn with a stencil Invert they leave the even-odd
//     interior of the glyph's chord polygon in stencil bit 0;
//   - curve triangles, one per quadratic edge, whose vertices carry fixed
//     barycentric coordinates so a fragment shader can decide per pixel
//     whether it lies between the chord and the true curve.
//
// Curves are never flattened into polylines.
//
// # Rendering contract
//
// A frame runs three passes in order, described by PassStates:
//
//  1. Mark: draw Marks, color writes off, stencil Always/Invert, write mask 1.
//  2. Fill: draw CoverQuad, stencil Equal 1 with read mask 1.
//  3. Curve: draw curve triangles without stencil; CurveFills decides the
//     color of each fragment from the discriminant (w/2+v)^2 - v, the facing
//     and the glyph orientation (GlyphGeometry.MirrorCurves).
//
// The gpu package executes this contract on a wgpu HAL device.
//
// # Quick Start
//
//	p := glyphfill.NewPath().
//	    MoveTo(0, 0).
//	    QuadTo(50, 100, 100, 0).
//	    Close()
//
//	geom, err := glyphfill.Tessellate(p.Commands(), glyphfill.WithEmUnits(100))
//	if err != nil {
//	    return err
//	}
//	marks := geom.MarkVertices()   // x, y
//	curves := geom.CurveVertices() // x, y, u, v, w
//
// # Coordinate System
//
// Output coordinates are normalized device coordinates with y up. Raw
// coordinates are divided by the em units, optionally centered on x = 0
// and flipped vertically (see Config).
package glyphfill
