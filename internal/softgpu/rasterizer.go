// Package softgpu is a CPU implementation of the three-pass glyph pipeline.
//
// It consumes the same vertex streams a GPU draws (glyphfill.MarkVertices,
// glyphfill.CurveVertices) and the same fixed-function state
// (glyphfill.PassStates), emulating stencil, facing and barycentric
// interpolation on a supersampled grid. It serves as the reference renderer
// in tests and as the fallback when no GPU adapter is available.
package softgpu

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/glyphfill"
	"github.com/gogpu/glyphfill/internal/parallel"
)

var (
	// ErrInvalidSize is returned for non-positive image dimensions.
	ErrInvalidSize = errors.New("softgpu: image size must be positive")

	// ErrInvalidSupersample is returned for supersample factors outside 1..8.
	ErrInvalidSupersample = errors.New("softgpu: supersample factor must be in 1..8")
)

// bandRows is the number of sample rows one worker task rasterizes.
const bandRows = 16

// Rasterizer renders glyph geometry into an image on the CPU.
//
// A Rasterizer is not safe for concurrent use; frames are sequential.
type Rasterizer struct {
	width, height int

	// ss is the per-axis supersample factor; the sample grid is
	// (width*ss) x (height*ss).
	ss     int
	sw, sh int

	fill, background color.RGBA

	stencil []uint8
	target  *image.RGBA

	workers int
	pool    *parallel.WorkerPool

	seq glyphfill.PassSequencer
}

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithSupersample sets the per-axis supersample factor. The default is 4.
func WithSupersample(n int) Option {
	return func(r *Rasterizer) {
		r.ss = n
	}
}

// WithColors sets the fill and background colors.
func WithColors(fill, background color.Color) Option {
	return func(r *Rasterizer) {
		r.fill = color.RGBAModel.Convert(fill).(color.RGBA)
		r.background = color.RGBAModel.Convert(background).(color.RGBA)
	}
}

// WithWorkers sets the number of rasterization workers. Zero or negative
// uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Rasterizer) {
		r.workers = n
	}
}

// New creates a Rasterizer producing width x height images.
func New(width, height int, opts ...Option) (*Rasterizer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	r := &Rasterizer{
		width:      width,
		height:     height,
		ss:         4,
		fill:       color.RGBA{R: 0xff, A: 0xff},
		background: color.RGBA{R: 0xe6, G: 0xf2, B: 0xff, A: 0xff},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.ss < 1 || r.ss > 8 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSupersample, r.ss)
	}

	r.sw, r.sh = width*r.ss, height*r.ss
	r.stencil = make([]uint8, r.sw*r.sh)
	r.target = image.NewRGBA(image.Rect(0, 0, r.sw, r.sh))
	r.pool = parallel.NewWorkerPool(r.workers)
	return r, nil
}

// Close stops the worker pool.
func (r *Rasterizer) Close() {
	r.pool.Close()
}

// Size returns the output image size.
func (r *Rasterizer) Size() (int, int) {
	return r.width, r.height
}

// Render runs a complete frame and returns the resolved image.
// Empty geometry produces a background-only image.
func (r *Rasterizer) Render(ctx context.Context, geom *glyphfill.GlyphGeometry) (*image.RGBA, error) {
	r.BeginFrame()
	if err := r.Mark(ctx, geom); err != nil {
		r.seq.Abort()
		return nil, err
	}
	if err := r.Fill(ctx); err != nil {
		r.seq.Abort()
		return nil, err
	}
	if err := r.Curve(ctx, geom); err != nil {
		r.seq.Abort()
		return nil, err
	}
	return r.EndFrame(), nil
}

// BeginFrame clears the color target to the background and the stencil to 0.
func (r *Rasterizer) BeginFrame() {
	r.seq.BeginFrame()
	clear(r.stencil)
	draw.Draw(r.target, r.target.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)
}

// Mark inverts stencil bit 0 under every mark triangle. Color is untouched.
func (r *Rasterizer) Mark(ctx context.Context, geom *glyphfill.GlyphGeometry) error {
	r.seq.Enter(glyphfill.PassMark)
	st := glyphfill.PassStates()[glyphfill.PassMark]

	tris := markTriangles(geom.MarkVertices(), r.sw, r.sh)
	return r.bands(ctx, func(y0, y1 int) {
		for i := range tris {
			tris[i].raster(y0, y1, r.sw, func(x, y int, _ *triangle, _ [3]float64) {
				idx := y*r.sw + x
				if st.StencilTest(r.stencil[idx]) {
					r.stencil[idx] = st.StencilUpdate(r.stencil[idx])
				}
			})
		}
	})
}

// Fill composites the fill color over every sample whose stencil passes the
// fill test.
func (r *Rasterizer) Fill(ctx context.Context) error {
	r.seq.Enter(glyphfill.PassFill)
	st := glyphfill.PassStates()[glyphfill.PassFill]

	return r.bands(ctx, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := range r.sw {
				if st.StencilTest(r.stencil[y*r.sw+x]) {
					r.blendOver(x, y, r.fill)
				}
			}
		}
	})
}

// Curve paints every curve triangle, choosing fill or background per sample
// from the interpolated barycentrics, the triangle facing and the glyph
// orientation.
func (r *Rasterizer) Curve(ctx context.Context, geom *glyphfill.GlyphGeometry) error {
	r.seq.Enter(glyphfill.PassCurve)

	tris := curveTriangles(geom.CurveVertices(), r.sw, r.sh)
	mirror := geom.MirrorCurves()
	return r.bands(ctx, func(y0, y1 int) {
		for i := range tris {
			tris[i].raster(y0, y1, r.sw, func(x, y int, t *triangle, w [3]float64) {
				c := r.background
				if glyphfill.CurveFills(t.interpolate(w), t.front, mirror) {
					c = r.fill
				}
				r.target.SetRGBA(x, y, c)
			})
		}
	})
}

// EndFrame completes the frame and resolves the sample grid to the output
// size.
func (r *Rasterizer) EndFrame() *image.RGBA {
	r.seq.EndFrame()
	if r.ss == 1 {
		out := image.NewRGBA(r.target.Bounds())
		copy(out.Pix, r.target.Pix)
		return out
	}
	out := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.BiLinear.Scale(out, out.Bounds(), r.target, r.target.Bounds(), draw.Src, nil)
	return out
}

// StencilAt returns the stencil value of the sample nearest to p, given in
// normalized device coordinates. Points outside the viewport return 0.
func (r *Rasterizer) StencilAt(p glyphfill.Point) uint8 {
	s := toSample(p, r.sw, r.sh)
	x, y := int(s.X), int(s.Y)
	if s.X < 0 || s.Y < 0 || x >= r.sw || y >= r.sh {
		return 0
	}
	return r.stencil[y*r.sw+x]
}

// bands splits the sample rows into bands and runs fn on the worker pool.
// Bands never share rows, so per-sample writes do not race.
func (r *Rasterizer) bands(ctx context.Context, fn func(y0, y1 int)) error {
	n := (r.sh + bandRows - 1) / bandRows
	return r.pool.ForEach(ctx, n, func(i int) {
		y0 := i * bandRows
		fn(y0, min(y0+bandRows, r.sh))
	})
}

// blendOver composites premultiplied src over the sample at (x, y).
func (r *Rasterizer) blendOver(x, y int, src color.RGBA) {
	if src.A == 0xff {
		r.target.SetRGBA(x, y, src)
		return
	}
	dst := r.target.RGBAAt(x, y)
	inv := 0xff - uint32(src.A)
	mix := func(s, d uint8) uint8 {
		return uint8(uint32(s) + (uint32(d)*inv+0x7f)/0xff)
	}
	r.target.SetRGBA(x, y, color.RGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: mix(src.A, dst.A),
	})
}
