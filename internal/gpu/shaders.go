package gpu

import _ "embed"

// glyphShaderSource holds the mark, fill and curve entry points.
//
//go:embed shaders/glyph.wgsl
var glyphShaderSource string

// Entry points of glyphShaderSource.
const (
	entryMarkVertex    = "vs_mark"
	entryMarkFragment  = "fs_mark"
	entryFillVertex    = "vs_fill"
	entryFillFragment  = "fs_fill"
	entryCurveVertex   = "vs_curve"
	entryCurveFragment = "fs_curve"
)
