// Package gpu renders tessellated glyphs with the three-pass stencil
// technique on a wgpu HAL device.
//
// A Renderer can run on a device it opens itself (OpenDevice), on a device
// and queue supplied by the caller, or on the shared device of a
// gpucontext.DeviceProvider such as a gogpu application:
//
//	geom, _ := glyphfill.Tessellate(path.Commands(), glyphfill.WithEmUnits(2048))
//	r, _ := gpu.NewRendererFromProvider(app)
//	defer r.Close()
//	img, _ := r.Render(geom, 512, 512)
package gpu

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/glyphfill"
	gpuimpl "github.com/gogpu/glyphfill/internal/gpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoHalAccess is returned when a provider does not expose HAL types.
var ErrNoHalAccess = errors.New("glyph gpu: provider does not expose HAL device and queue")

// Renderer draws glyph geometry on a GPU.
//
// Renderer is safe for concurrent use; frames are serialized.
type Renderer struct {
	impl    *gpuimpl.GlyphRenderer
	release func()
}

// RendererOption configures a Renderer.
type RendererOption func(*gpuimpl.Config)

// WithSampleCount sets the MSAA sample count: 1 or 4 (the default).
func WithSampleCount(n uint32) RendererOption {
	return func(c *gpuimpl.Config) {
		c.SampleCount = n
	}
}

// WithColors sets the glyph fill and background colors.
func WithColors(fill, background color.Color) RendererOption {
	return func(c *gpuimpl.Config) {
		c.Fill = toGPUColor(fill)
		c.Background = toGPUColor(background)
	}
}

// WithFormat sets the color target format.
func WithFormat(format gputypes.TextureFormat) RendererOption {
	return func(c *gpuimpl.Config) {
		c.Format = format
	}
}

// NewRenderer creates a Renderer on a caller-owned device and queue. The
// device outlives the renderer.
func NewRenderer(device hal.Device, queue hal.Queue, opts ...RendererOption) (*Renderer, error) {
	return newRenderer(device, queue, nil, gpuimpl.DefaultConfig(), opts)
}

// NewRendererFromProvider creates a Renderer on the shared device of
// provider. The provider must also implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue. The color format
// defaults to the provider's surface format.
func NewRendererFromProvider(provider gpucontext.DeviceProvider, opts ...RendererOption) (*Renderer, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHalAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHalAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHalAccess)
	}

	cfg := gpuimpl.DefaultConfig()
	if format := provider.SurfaceFormat(); format != gputypes.TextureFormatUndefined {
		cfg.Format = format
	}
	r, err := newRenderer(device, queue, nil, cfg, opts)
	if err != nil {
		return nil, err
	}
	glyphfill.Logger().Debug("glyph gpu: using shared device", "format", cfg.Format)
	return r, nil
}

// NewStandaloneRenderer opens its own GPU device and creates a Renderer on
// it. Close releases the device.
func NewStandaloneRenderer(opts ...RendererOption) (*Renderer, error) {
	dev, err := OpenDevice()
	if err != nil {
		return nil, err
	}
	r, err := newRenderer(dev.Device, dev.Queue, dev.Close, gpuimpl.DefaultConfig(), opts)
	if err != nil {
		dev.Close()
		return nil, err
	}
	return r, nil
}

func newRenderer(device hal.Device, queue hal.Queue, release func(), cfg gpuimpl.Config, opts []RendererOption) (*Renderer, error) {
	for _, opt := range opts {
		opt(&cfg)
	}
	impl, err := gpuimpl.NewGlyphRenderer(device, queue, cfg)
	if err != nil {
		return nil, err
	}
	return &Renderer{impl: impl, release: release}, nil
}

// Render draws geom into a w x h image.
func (r *Renderer) Render(geom *glyphfill.GlyphGeometry, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, gpuimpl.ErrInvalidSize
	}
	return r.impl.RenderOffscreen(geom, uint32(w), uint32(h))
}

// RenderToView draws geom into a caller-owned texture view of w x h pixels.
// The view must use the renderer's color format.
func (r *Renderer) RenderToView(view hal.TextureView, geom *glyphfill.GlyphGeometry, w, h int) error {
	if w <= 0 || h <= 0 {
		return gpuimpl.ErrInvalidSize
	}
	return r.impl.RenderToView(view, geom, uint32(w), uint32(h))
}

// Format returns the color target format.
func (r *Renderer) Format() gputypes.TextureFormat {
	return r.impl.Config().Format
}

// SampleCount returns the MSAA sample count.
func (r *Renderer) SampleCount() uint32 {
	return r.impl.Config().SampleCount
}

// Close releases GPU resources, and the device if the renderer opened it.
func (r *Renderer) Close() {
	r.impl.Destroy()
	if r.release != nil {
		r.release()
		r.release = nil
	}
}

func toGPUColor(c color.Color) gputypes.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return gputypes.Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}
