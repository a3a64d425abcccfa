package glyphfill

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/gogpu/glyphfill/internal/parallel"
)

// Tessellate converts the path commands of one glyph into stencil mark
// triangles and curve triangles.
//
// The result depends only on cmds and opts. Degenerate contours are skipped
// and listed in GlyphGeometry.Diagnostics; an unsupported command fails the
// whole glyph. A glyph without drawable contours yields empty geometry and
// no error.
func Tessellate(cmds []PathCommand, opts ...Option) (*GlyphGeometry, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return tessellate(cmds, cfg)
}

func tessellate(cmds []PathCommand, cfg Config) (*GlyphGeometry, error) {
	contours, diags, err := extractContours(cmds, cfg)
	if err != nil {
		return nil, err
	}

	g := &GlyphGeometry{
		Contours:    contours,
		Orientation: orientationOf(contours),
		Diagnostics: diags,
	}

	var b bounds
	for i := range contours {
		for _, s := range contours[i].Segments {
			b.add(s.From)
			if s.Kind == SegmentQuad {
				b.add(s.Ctrl)
			}
		}
	}
	g.Bounds = b.rect

	switch {
	case cfg.Apex != nil:
		g.Apex = *cfg.Apex
	case b.ok:
		g.Apex = defaultApex(b.rect, cfg.ApexMargin)
	}

	edges := 0
	for i := range contours {
		edges += len(contours[i].Segments)
	}
	g.Marks = make([]MarkTriangle, 0, edges)

	for i := range contours {
		c := contours[i]
		g.Marks = appendFan(g.Marks, c, g.Apex)
		if c.Winding == CW {
			g.CurvesCW = appendCurves(g.CurvesCW, c)
		} else {
			g.CurvesCCW = appendCurves(g.CurvesCCW, c)
		}
	}
	return g, nil
}

// orientationOf returns the winding of the largest contour by absolute
// area, CW when there are no contours. Ties keep the first contour.
func orientationOf(contours []Contour) Winding {
	w, largest := CW, -1.0
	for i := range contours {
		if a := math.Abs(contours[i].Area); a > largest {
			w, largest = contours[i].Winding, a
		}
	}
	return w
}

// BatchOption configures TessellateBatch.
type BatchOption func(*batchOptions)

type batchOptions struct {
	workers int
}

// WithWorkers sets the number of goroutines used by TessellateBatch.
// Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) BatchOption {
	return func(o *batchOptions) {
		o.workers = n
	}
}

// Glyph is one input of TessellateBatch.
type Glyph struct {
	Commands []PathCommand
	Options  []Option
}

// TessellateBatch tessellates independent glyphs concurrently. Results are in
// input order. The first glyph error is returned, wrapped with the glyph
// index. If ctx is cancelled, ctx.Err() is returned.
func TessellateBatch(ctx context.Context, glyphs []Glyph, opts ...BatchOption) ([]*GlyphGeometry, error) {
	o := batchOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if len(glyphs) == 0 {
		return nil, ctx.Err()
	}
	workers := o.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	pool := parallel.NewWorkerPool(min(workers, len(glyphs)))
	defer pool.Close()

	results := make([]*GlyphGeometry, len(glyphs))
	errs := make([]error, len(glyphs))
	err := pool.ForEach(ctx, len(glyphs), func(i int) {
		results[i], errs[i] = Tessellate(glyphs[i].Commands, glyphs[i].Options...)
	})
	if err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("tessellate glyph %d: %w", i, err)
		}
	}

	Logger().Debug("glyphfill: batch tessellated", "glyphs", len(glyphs), "workers", pool.Workers())
	return results, nil
}
