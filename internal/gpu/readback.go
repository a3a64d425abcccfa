package gpu

import (
	"fmt"
	"image"
	"time"

	"github.com/gogpu/glyphfill"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// fenceTimeout bounds the wait for a submitted frame.
const fenceTimeout = 5 * time.Second

// copyPitchAlignment is the required BytesPerRow alignment of
// texture-to-buffer copies.
const copyPitchAlignment = 256

// RenderOffscreen renders geom into an internal target of w x h pixels,
// waits for the GPU and returns the image.
func (r *GlyphRenderer) RenderOffscreen(geom *glyphfill.GlyphGeometry, w, h uint32) (*image.RGBA, error) {
	if w == 0 || h == 0 {
		return nil, ErrInvalidSize
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pipes == nil {
		return nil, ErrDestroyed
	}
	if err := r.textures.ensure(w, h); err != nil {
		return nil, err
	}
	frame, err := r.prepareFrame(geom)
	if err != nil {
		return nil, err
	}
	defer frame.Release()

	encoder, err := r.beginFrame(nil, frame)
	if err != nil {
		return nil, err
	}

	src := r.textures.readbackTexture()

	// After the render pass the texture is in attachment layout; the copy
	// needs it as a transfer source.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: src,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glyph_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(staging)

	encoder.CopyTextureToBuffer(src, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: src, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: src,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	if err := r.submitAndWait(encoder); err != nil {
		return nil, err
	}

	readback := make([]byte, stagingSize)
	if err := r.queue.ReadBuffer(staging, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	for row := range int(h) {
		src := readback[row*int(alignedBytesPerRow) : row*int(alignedBytesPerRow)+int(bytesPerRow)]
		dst := img.Pix[row*img.Stride : row*img.Stride+int(bytesPerRow)]
		copy(dst, src)
	}
	if r.cfg.Format == gputypes.TextureFormatBGRA8Unorm {
		swapRedBlue(img.Pix)
	}
	return img, nil
}

// RenderToView renders geom directly into a caller-owned texture view of
// w x h pixels, such as a surface texture. With MSAA the view is the
// resolve target. The view must use the renderer's format.
func (r *GlyphRenderer) RenderToView(view hal.TextureView, geom *glyphfill.GlyphGeometry, w, h uint32) error {
	if view == nil {
		return fmt.Errorf("render to view: nil view")
	}
	if w == 0 || h == 0 {
		return ErrInvalidSize
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pipes == nil {
		return ErrDestroyed
	}
	if err := r.textures.ensure(w, h); err != nil {
		return err
	}
	frame, err := r.prepareFrame(geom)
	if err != nil {
		return err
	}
	defer frame.Release()

	encoder, err := r.beginFrame(view, frame)
	if err != nil {
		return err
	}
	return r.submitAndWait(encoder)
}

// beginFrame creates an encoder and records the glyph render pass into it.
func (r *GlyphRenderer) beginFrame(target hal.TextureView, frame *Frame) (hal.CommandEncoder, error) {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "glyph_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := beginEncoding(encoder, "glyph_frame"); err != nil {
		return nil, err
	}

	rp := encoder.BeginRenderPass(r.textures.renderPassDescriptor(target, premultiplied(r.cfg.Background)))
	r.seq.BeginFrame()
	r.recordPasses(rp, frame)
	r.seq.EndFrame()
	rp.End()
	return encoder, nil
}

// submitAndWait finishes encoding, submits and blocks on a fence.
func (r *GlyphRenderer) submitAndWait(encoder hal.CommandEncoder) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return fenceError(r.device.Wait(fence, 1, fenceTimeout))
}

// frameEncoder is the part of hal.CommandEncoder that starts a recording.
type frameEncoder interface {
	BeginEncoding(label string) error
	DiscardEncoding()
}

// beginEncoding starts recording on enc, discarding it on failure.
func beginEncoding(enc frameEncoder, label string) error {
	if err := enc.BeginEncoding(label); err != nil {
		enc.DiscardEncoding()
		return fmt.Errorf("begin encoding: %w", err)
	}
	return nil
}

// fenceError converts the result of a fence wait into an error.
func fenceError(ok bool, err error) error {
	if err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w after %v", ErrTimeout, fenceTimeout)
	}
	return nil
}

func premultiplied(c gputypes.Color) gputypes.Color {
	return gputypes.Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// swapRedBlue converts BGRA pixels to RGBA in place.
func swapRedBlue(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}
