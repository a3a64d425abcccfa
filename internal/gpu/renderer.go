package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/glyphfill"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Renderer errors.
var (
	// ErrNilDevice is returned when the renderer is created without a device
	// or queue.
	ErrNilDevice = errors.New("glyph gpu: device and queue are required")

	// ErrInvalidSampleCount is returned for sample counts other than 1 and 4.
	ErrInvalidSampleCount = errors.New("glyph gpu: sample count must be 1 or 4")

	// ErrInvalidSize is returned for zero frame dimensions.
	ErrInvalidSize = errors.New("glyph gpu: frame size must be non-zero")

	// ErrDestroyed is returned when rendering with a destroyed renderer.
	ErrDestroyed = errors.New("glyph gpu: renderer destroyed")

	// ErrTimeout is returned when a submitted frame does not complete
	// within the fence timeout.
	ErrTimeout = errors.New("glyph gpu: timed out waiting for GPU")
)

// Config configures a GlyphRenderer.
type Config struct {
	// SampleCount is 1 (aliased) or 4 (MSAA with resolve).
	SampleCount uint32

	// Format is the color target format. Offscreen readback supports
	// BGRA8Unorm and RGBA8Unorm.
	Format gputypes.TextureFormat

	// Fill is the glyph color, Background the clear color. Both are
	// straight (non-premultiplied) RGBA.
	Fill       gputypes.Color
	Background gputypes.Color
}

// DefaultConfig returns 4x MSAA, BGRA8Unorm, red fill on a light background.
func DefaultConfig() Config {
	return Config{
		SampleCount: 4,
		Format:      gputypes.TextureFormatBGRA8Unorm,
		Fill:        gputypes.Color{R: 1, G: 0, B: 0, A: 1},
		Background:  gputypes.Color{R: 0.9, G: 0.95, B: 1, A: 1},
	}
}

func (c Config) validate() error {
	if c.SampleCount != 1 && c.SampleCount != 4 {
		return fmt.Errorf("%w: got %d", ErrInvalidSampleCount, c.SampleCount)
	}
	return nil
}

// PassEncoder is the subset of hal.RenderPassEncoder that records a glyph
// frame.
type PassEncoder interface {
	SetPipeline(pipeline hal.RenderPipeline)
	SetBindGroup(index uint32, group hal.BindGroup, offsets []uint32)
	SetVertexBuffer(slot uint32, buffer hal.Buffer, offset uint64)
	SetStencilReference(reference uint32)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
}

// GlyphRenderer executes the mark, fill and curve passes of a glyph on a
// wgpu HAL device.
//
// All three passes are recorded into one render pass by switching
// pipelines; the stencil attachment is cleared at the start of every frame.
// Frames are strictly sequential: recording a frame while another is being
// recorded panics.
type GlyphRenderer struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue
	cfg    Config

	pipes    *pipelines
	textures frameTextures

	// coverBuf holds the static full-viewport quad of the fill pass.
	coverBuf hal.Buffer

	seq glyphfill.PassSequencer
}

// NewGlyphRenderer creates pipelines and static buffers on device.
// Attachments are allocated lazily at the first frame.
func NewGlyphRenderer(device hal.Device, queue hal.Queue, cfg Config) (*GlyphRenderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	pipes, err := createPipelines(device, cfg.Format, cfg.SampleCount)
	if err != nil {
		return nil, err
	}

	r := &GlyphRenderer{
		device: device,
		queue:  queue,
		cfg:    cfg,
		pipes:  pipes,
		textures: frameTextures{
			device:  device,
			format:  cfg.Format,
			samples: cfg.SampleCount,
		},
	}

	r.coverBuf, err = r.createAndUploadBuffer("glyph_cover_vertices",
		float32SliceToBytes(glyphfill.CoverQuad()), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		pipes.destroy()
		return nil, err
	}
	return r, nil
}

// Config returns the renderer configuration.
func (r *GlyphRenderer) Config() Config {
	return r.cfg
}

// Size returns the current attachment size, (0, 0) before the first frame.
func (r *GlyphRenderer) Size() (uint32, uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.textures.width, r.textures.height
}

// Destroy releases all GPU resources. Safe to call multiple times.
func (r *GlyphRenderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.textures.destroy()
	if r.coverBuf != nil {
		r.device.DestroyBuffer(r.coverBuf)
		r.coverBuf = nil
	}
	if r.pipes != nil {
		r.pipes.destroy()
		r.pipes = nil
	}
}

// Frame holds the per-frame GPU buffers of one glyph.
type Frame struct {
	device hal.Device

	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup

	markBuf   hal.Buffer
	markCount uint32

	curveBuf   hal.Buffer
	curveCount uint32
	cwRange    [2]uint32
	ccwRange   [2]uint32
}

// Empty reports whether the frame draws nothing besides the clear.
func (f *Frame) Empty() bool {
	return f.markCount == 0 && f.curveCount == 0
}

// Release destroys the frame buffers. Safe to call multiple times.
func (f *Frame) Release() {
	if f.bindGroup != nil {
		f.device.DestroyBindGroup(f.bindGroup)
		f.bindGroup = nil
	}
	for _, buf := range []*hal.Buffer{&f.curveBuf, &f.markBuf, &f.uniformBuf} {
		if *buf != nil {
			f.device.DestroyBuffer(*buf)
			*buf = nil
		}
	}
}

// PrepareFrame uploads the vertex streams of geom and the frame uniform.
// The caller releases the frame after submission.
func (r *GlyphRenderer) PrepareFrame(geom *glyphfill.GlyphGeometry) (*Frame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prepareFrame(geom)
}

// prepareFrame implements PrepareFrame. Caller must hold r.mu.
func (r *GlyphRenderer) prepareFrame(geom *glyphfill.GlyphGeometry) (*Frame, error) {
	if r.pipes == nil {
		return nil, ErrDestroyed
	}
	f := &Frame{device: r.device}

	var err error
	f.uniformBuf, err = r.createAndUploadBuffer("glyph_uniforms",
		makeFrameUniform(r.cfg.Fill, r.cfg.Background, geom.MirrorCurves()),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	f.bindGroup, err = r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "glyph_bind_group",
		Layout: r.pipes.uniformLayout,
		Entries: []gputypes.BindGroupEntry{{
			Binding: 0,
			Resource: gputypes.BufferBinding{
				Buffer: f.uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
			},
		}},
	})
	if err != nil {
		f.Release()
		return nil, fmt.Errorf("create bind group: %w", err)
	}

	if geom.IsEmpty() {
		return f, nil
	}

	if marks := geom.MarkVertices(); len(marks) > 0 {
		f.markBuf, err = r.createAndUploadBuffer("glyph_mark_vertices",
			float32SliceToBytes(marks), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			f.Release()
			return nil, err
		}
		f.markCount = uint32(len(marks) / glyphfill.MarkStride)
	}

	if curves := geom.CurveVertices(); len(curves) > 0 {
		f.curveBuf, err = r.createAndUploadBuffer("glyph_curve_vertices",
			float32SliceToBytes(curves), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			f.Release()
			return nil, err
		}
		f.curveCount = uint32(len(curves) / glyphfill.CurveStride)
		f.cwRange[0], f.cwRange[1] = geom.CurveRange(glyphfill.CW)
		f.ccwRange[0], f.ccwRange[1] = geom.CurveRange(glyphfill.CCW)
	}

	slogger().Debug("glyph gpu: frame buffers uploaded",
		"mark_vertices", f.markCount, "curve_vertices", f.curveCount)
	return f, nil
}

// RecordFrame records the mark, fill and curve passes of f into rp, in that
// order. Empty streams record no draws. It panics if called while another
// frame is being recorded and returns ErrDestroyed after Destroy.
func (r *GlyphRenderer) RecordFrame(rp PassEncoder, f *Frame) error {
	r.seq.BeginFrame()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pipes == nil {
		r.seq.Abort()
		return ErrDestroyed
	}
	r.recordPasses(rp, f)
	r.seq.EndFrame()
	return nil
}

// recordPasses records the three passes of a begun frame. Caller must hold
// r.mu.
func (r *GlyphRenderer) recordPasses(rp PassEncoder, f *Frame) {
	states := glyphfill.PassStates()

	r.seq.Enter(glyphfill.PassMark)
	if f.markCount > 0 {
		rp.SetPipeline(r.pipes.mark)
		rp.SetBindGroup(0, f.bindGroup, nil)
		rp.SetStencilReference(states[glyphfill.PassMark].Reference)
		rp.SetVertexBuffer(0, f.markBuf, 0)
		rp.Draw(f.markCount, 1, 0, 0)
	}

	r.seq.Enter(glyphfill.PassFill)
	if f.markCount > 0 {
		rp.SetPipeline(r.pipes.fill)
		rp.SetBindGroup(0, f.bindGroup, nil)
		rp.SetStencilReference(states[glyphfill.PassFill].Reference)
		rp.SetVertexBuffer(0, r.coverBuf, 0)
		rp.Draw(uint32(len(glyphfill.CoverQuad())/glyphfill.MarkStride), 1, 0, 0)
	}

	r.seq.Enter(glyphfill.PassCurve)
	if f.curveCount > 0 {
		rp.SetPipeline(r.pipes.curve)
		rp.SetBindGroup(0, f.bindGroup, nil)
		rp.SetStencilReference(states[glyphfill.PassCurve].Reference)
		rp.SetVertexBuffer(0, f.curveBuf, 0)
		for _, rng := range [][2]uint32{f.cwRange, f.ccwRange} {
			if rng[1] > 0 {
				rp.Draw(rng[1], 1, rng[0], 0)
			}
		}
	}
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (r *GlyphRenderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// makeFrameUniform packs fill and background as premultiplied vec4<f32>,
// then the params vector whose x is 1 when the curve rule is mirrored.
func makeFrameUniform(fill, background gputypes.Color, mirror bool) []byte {
	premul := func(c gputypes.Color) []float32 {
		return []float32{
			float32(c.R * c.A), float32(c.G * c.A), float32(c.B * c.A), float32(c.A),
		}
	}
	params := []float32{0, 0, 0, 0}
	if mirror {
		params[0] = 1
	}
	values := append(premul(fill), premul(background)...)
	return float32SliceToBytes(append(values, params...))
}

// float32SliceToBytes encodes values as little-endian bytes.
func float32SliceToBytes(values []float32) []byte {
	out := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}
