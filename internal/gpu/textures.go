package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// frameTextures owns the color, stencil and (with MSAA) resolve attachments.
// They are resized automatically when the frame dimensions change.
type frameTextures struct {
	device  hal.Device
	format  gputypes.TextureFormat
	samples uint32

	// color is the render target: multisampled when samples > 1, otherwise
	// the single-sample texture that is read back.
	colorTex  hal.Texture
	colorView hal.TextureView

	// stencil is Depth24PlusStencil8. The depth component is unused.
	stencilTex  hal.Texture
	stencilView hal.TextureView

	// resolve is the single-sample target of the MSAA color attachment.
	resolveTex  hal.Texture
	resolveView hal.TextureView

	width, height uint32
}

func (ft *frameTextures) multisampled() bool { return ft.samples > 1 }

// ensure creates or recreates the attachments for the given size. Matching
// dimensions are a no-op.
func (ft *frameTextures) ensure(width, height uint32) error {
	if ft.width == width && ft.height == height && ft.colorTex != nil {
		return nil
	}
	ft.destroy()

	size := hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1}

	colorUsage := gputypes.TextureUsageRenderAttachment
	if !ft.multisampled() {
		colorUsage |= gputypes.TextureUsageCopySrc
	}
	tex, view, err := ft.create("glyph_color", size, ft.samples, ft.format, colorUsage)
	if err != nil {
		return err
	}
	ft.colorTex, ft.colorView = tex, view

	tex, view, err = ft.create("glyph_stencil", size, ft.samples,
		gputypes.TextureFormatDepth24PlusStencil8, gputypes.TextureUsageRenderAttachment)
	if err != nil {
		ft.destroy()
		return err
	}
	ft.stencilTex, ft.stencilView = tex, view

	if ft.multisampled() {
		tex, view, err = ft.create("glyph_resolve", size, 1, ft.format,
			gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageCopySrc)
		if err != nil {
			ft.destroy()
			return err
		}
		ft.resolveTex, ft.resolveView = tex, view
	}

	ft.width = width
	ft.height = height
	slogger().Debug("glyph gpu: textures allocated", "width", width, "height", height, "samples", ft.samples)
	return nil
}

func (ft *frameTextures) create(
	label string,
	size hal.Extent3D,
	samples uint32,
	format gputypes.TextureFormat,
	usage gputypes.TextureUsage,
) (hal.Texture, hal.TextureView, error) {
	tex, err := ft.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create %s texture: %w", label, err)
	}
	view, err := ft.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: label + "_view",
	})
	if err != nil {
		ft.device.DestroyTexture(tex)
		return nil, nil, fmt.Errorf("create %s texture view: %w", label, err)
	}
	return tex, view, nil
}

// readbackTexture returns the single-sample texture holding the final image.
func (ft *frameTextures) readbackTexture() hal.Texture {
	if ft.multisampled() {
		return ft.resolveTex
	}
	return ft.colorTex
}

// colorAttachment returns the color attachment that resolves (or renders)
// into target. A nil target uses the internal readback texture.
func (ft *frameTextures) colorAttachment(target hal.TextureView, clear gputypes.Color) hal.RenderPassColorAttachment {
	att := hal.RenderPassColorAttachment{
		View:       ft.colorView,
		LoadOp:     gputypes.LoadOpClear,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: clear,
	}
	switch {
	case ft.multisampled() && target != nil:
		att.ResolveTarget = target
	case ft.multisampled():
		att.ResolveTarget = ft.resolveView
	case target != nil:
		att.View = target
	}
	return att
}

// renderPassDescriptor clears color to the background and the stencil to 0
// at pass start. Stencil contents are transient within the frame.
func (ft *frameTextures) renderPassDescriptor(target hal.TextureView, clear gputypes.Color) *hal.RenderPassDescriptor {
	return &hal.RenderPassDescriptor{
		Label:            "glyph_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{ft.colorAttachment(target, clear)},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              ft.stencilView,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		},
	}
}

// destroy releases all views and textures. Safe on partial state.
func (ft *frameTextures) destroy() {
	pairs := []struct {
		view *hal.TextureView
		tex  *hal.Texture
	}{
		{&ft.resolveView, &ft.resolveTex},
		{&ft.stencilView, &ft.stencilTex},
		{&ft.colorView, &ft.colorTex},
	}
	for _, p := range pairs {
		if *p.view != nil {
			ft.device.DestroyTextureView(*p.view)
			*p.view = nil
		}
		if *p.tex != nil {
			ft.device.DestroyTexture(*p.tex)
			*p.tex = nil
		}
	}
	ft.width = 0
	ft.height = 0
}
