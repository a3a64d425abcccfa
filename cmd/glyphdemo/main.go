// Command glyphdemo renders glyphs with the stencil fill technique and saves
// them as a PNG strip, one tile per rune.
package main

import (
	"context"
	"flag"
	"image"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphfill"
	"github.com/gogpu/glyphfill/gpu"
	"github.com/gogpu/glyphfill/internal/softgpu"
	"github.com/gogpu/glyphfill/text"
)

// glyphRenderer is implemented by both the GPU and the CPU path.
type glyphRenderer interface {
	render(ctx context.Context, geom *glyphfill.GlyphGeometry) (*image.RGBA, error)
	close()
}

type gpuRenderer struct {
	r    *gpu.Renderer
	size int
}

func (g *gpuRenderer) render(_ context.Context, geom *glyphfill.GlyphGeometry) (*image.RGBA, error) {
	return g.r.Render(geom, g.size, g.size)
}

func (g *gpuRenderer) close() { g.r.Close() }

type cpuRenderer struct {
	r *softgpu.Rasterizer
}

func (c *cpuRenderer) render(ctx context.Context, geom *glyphfill.GlyphGeometry) (*image.RGBA, error) {
	return c.r.Render(ctx, geom)
}

func (c *cpuRenderer) close() { c.r.Close() }

func main() {
	var (
		runes    = flag.String("text", "Og&8", "runes to render")
		fontPath = flag.String("font", "", "TrueType/OpenType font file (default: Go Regular)")
		backend  = flag.String("backend", "sfnt", "font backend: sfnt or gotext")
		size     = flag.Int("size", 256, "tile size in pixels")
		useGPU   = flag.Bool("gpu", false, "render on the GPU instead of the CPU rasterizer")
		subdiv   = flag.Float64("cubic-tolerance", 0, "subdivide cubic curves to this tolerance (em units); 0 uses one quadratic")
		output   = flag.String("output", "glyphs.png", "output file")
		verbose  = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		glyphfill.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	font, err := loadFont(ctx, *fontPath, *backend)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	glyphs := make([]glyphfill.Glyph, 0, len(*runes))
	for _, r := range *runes {
		cmds, err := text.RuneOutline(font, r)
		if err != nil {
			log.Fatalf("Failed to load glyph %q: %v", r, err)
		}
		glyphs = append(glyphs, glyphfill.Glyph{
			Commands: cmds,
			Options: []glyphfill.Option{
				glyphfill.WithEmUnits(float64(font.UnitsPerEm())),
				glyphfill.WithCenterX(true),
				glyphfill.WithCubicSubdivision(*subdiv),
			},
		})
	}

	geoms, err := glyphfill.TessellateBatch(ctx, glyphs)
	if err != nil {
		log.Fatalf("Failed to tessellate: %v", err)
	}

	renderer, err := newRenderer(*useGPU, *size)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer renderer.close()

	strip := image.NewRGBA(image.Rect(0, 0, *size*len(geoms), *size))
	for i, geom := range geoms {
		for _, d := range geom.Diagnostics {
			log.Printf("glyph %d: %v", i, d)
		}
		tile, err := renderer.render(ctx, geom)
		if err != nil {
			log.Fatalf("Failed to render glyph %d: %v", i, err)
		}
		draw.Draw(strip, tile.Bounds().Add(image.Pt(i**size, 0)), tile, image.Point{}, draw.Src)
	}

	if err := savePNG(*output, strip); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Glyphs saved to %s (%dx%d)\n", *output, strip.Bounds().Dx(), strip.Bounds().Dy())
}

func loadFont(ctx context.Context, path, backend string) (text.Font, error) {
	b, err := text.ParseBackend(backend)
	if err != nil {
		return nil, err
	}
	var f text.Font
	if path == "" {
		f, err = text.Parse(goregular.TTF, b)
	} else {
		f, err = text.LoadFile(ctx, path, b)
	}
	if err != nil {
		return nil, err
	}
	return text.NewCachedFont(f, 0), nil
}

func newRenderer(useGPU bool, size int) (glyphRenderer, error) {
	if useGPU {
		r, err := gpu.NewStandaloneRenderer(gpu.WithSampleCount(4))
		if err == nil {
			return &gpuRenderer{r: r, size: size}, nil
		}
		log.Printf("GPU not available, falling back to CPU: %v", err)
	}
	r, err := softgpu.New(size, size)
	if err != nil {
		return nil, err
	}
	return &cpuRenderer{r: r}, nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
