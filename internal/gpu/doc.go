// Package gpu executes tessellated glyphs on a wgpu HAL device.
//
// A GlyphRenderer owns three render pipelines compiled from a single WGSL
// module and a set of lazily sized attachments:
//
//	mark   fan triangles, stencil Invert on both faces, color writes off
//	fill   full-viewport quad, stencil Equal 1 against the parity bit
//	curve  quadratic edge triangles, colored by the sign of (w/2+v)^2 - v,
//	       the facing and the glyph orientation flag in the frame uniform
//
// All three are recorded into one render pass in that order. The stencil
// attachment is Depth24PlusStencil8, cleared to 0 at the start of every
// frame and discarded at the end.
//
// Rendering can target the renderer's own texture (RenderOffscreen, with
// readback into an image.RGBA) or a caller-owned view such as a surface
// texture (RenderToView).
package gpu
