package gpu

import (
	"fmt"

	"github.com/gogpu/glyphfill"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Vertex strides in bytes.
const (
	markVertexStride  = glyphfill.MarkStride * 4
	curveVertexStride = glyphfill.CurveStride * 4
)

// uniformSize is the byte size of the frame uniform:
// fill, background and params, each vec4<f32>.
const uniformSize = 48

// pipelines holds the shader module, layouts and the three render pipelines
// of a glyph frame.
type pipelines struct {
	device hal.Device

	shader         hal.ShaderModule
	uniformLayout  hal.BindGroupLayout
	pipelineLayout hal.PipelineLayout

	mark  hal.RenderPipeline
	fill  hal.RenderPipeline
	curve hal.RenderPipeline
}

// compareFunction maps a contract comparison onto the WebGPU one.
func compareFunction(c glyphfill.CompareFunc) gputypes.CompareFunction {
	if c == glyphfill.CompareEqual {
		return gputypes.CompareFunctionEqual
	}
	return gputypes.CompareFunctionAlways
}

// stencilOperation maps a contract stencil op onto the HAL one.
func stencilOperation(op glyphfill.StencilOp) hal.StencilOperation {
	if op == glyphfill.StencilInvert {
		return hal.StencilOperationInvert
	}
	return hal.StencilOperationKeep
}

// colorWriteMask enables all channels or none.
func colorWriteMask(enabled bool) gputypes.ColorWriteMask {
	if enabled {
		return gputypes.ColorWriteMaskAll
	}
	return gputypes.ColorWriteMaskNone
}

// depthStencilState derives the depth/stencil state of a pass. Depth is
// unused; both faces share the same stencil state.
func depthStencilState(st glyphfill.PassState) *hal.DepthStencilState {
	face := hal.StencilFaceState{
		Compare:     compareFunction(st.Compare),
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      stencilOperation(st.PassOp),
	}
	return &hal.DepthStencilState{
		Format:            gputypes.TextureFormatDepth24PlusStencil8,
		DepthWriteEnabled: false,
		DepthCompare:      gputypes.CompareFunctionAlways,
		StencilFront:      face,
		StencilBack:       face,
		StencilReadMask:   st.ReadMask,
		StencilWriteMask:  st.WriteMask,
	}
}

func positionLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{{
		ArrayStride: markVertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		},
	}}
}

func curveLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{{
		ArrayStride: curveVertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 8, ShaderLocation: 1},
		},
	}}
}

// passPipeline describes one of the three pipelines.
type passPipeline struct {
	label         string
	state         glyphfill.PassState
	vertexEntry   string
	fragmentEntry string
	buffers       []gputypes.VertexBufferLayout
	blend         *gputypes.BlendState
	dst           *hal.RenderPipeline
}

// createPipelines compiles the glyph shader and creates the mark, fill and
// curve pipelines from glyphfill.PassStates. On error, everything created
// so far is released.
func createPipelines(device hal.Device, format gputypes.TextureFormat, samples uint32) (*pipelines, error) {
	p := &pipelines{device: device}

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "glyph_shader",
		Source: hal.ShaderSource{WGSL: glyphShaderSource},
	})
	if err != nil {
		return nil, fmt.Errorf("compile glyph shader: %w", err)
	}
	p.shader = shader

	uniformLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "glyph_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		p.destroy()
		return nil, fmt.Errorf("create uniform bind group layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	pipelineLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "glyph_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		p.destroy()
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}
	p.pipelineLayout = pipelineLayout

	states := glyphfill.PassStates()
	premul := gputypes.BlendStatePremultiplied()
	passes := []passPipeline{
		{
			label:         "mark",
			state:         states[glyphfill.PassMark],
			vertexEntry:   entryMarkVertex,
			fragmentEntry: entryMarkFragment,
			buffers:       positionLayout(),
			dst:           &p.mark,
		},
		{
			label:         "fill",
			state:         states[glyphfill.PassFill],
			vertexEntry:   entryFillVertex,
			fragmentEntry: entryFillFragment,
			buffers:       positionLayout(),
			blend:         &premul,
			dst:           &p.fill,
		},
		{
			// The curve pass replaces color so background fragments can
			// erase fill written by the previous pass.
			label:         "curve",
			state:         states[glyphfill.PassCurve],
			vertexEntry:   entryCurveVertex,
			fragmentEntry: entryCurveFragment,
			buffers:       curveLayout(),
			dst:           &p.curve,
		},
	}

	for _, pass := range passes {
		pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
			Label:  "glyph_" + pass.label + "_pipeline",
			Layout: p.pipelineLayout,
			Vertex: hal.VertexState{
				Module:     p.shader,
				EntryPoint: pass.vertexEntry,
				Buffers:    pass.buffers,
			},
			Fragment: &hal.FragmentState{
				Module:     p.shader,
				EntryPoint: pass.fragmentEntry,
				Targets: []gputypes.ColorTargetState{{
					Format:    format,
					Blend:     pass.blend,
					WriteMask: colorWriteMask(pass.state.ColorWrite),
				}},
			},
			DepthStencil: depthStencilState(pass.state),
			Multisample: gputypes.MultisampleState{
				Count: samples,
				Mask:  0xFFFFFFFF,
			},
			Primitive: gputypes.PrimitiveState{
				Topology: gputypes.PrimitiveTopologyTriangleList,
				CullMode: gputypes.CullModeNone,
			},
		})
		if err != nil {
			p.destroy()
			return nil, fmt.Errorf("create %s pipeline: %w", pass.label, err)
		}
		*pass.dst = pipeline
		slogger().Debug("glyph gpu: pipeline created", "pass", pass.label, "samples", samples)
	}
	return p, nil
}

// destroy releases all pipeline resources in reverse creation order.
// Safe to call on partially created pipelines.
func (p *pipelines) destroy() {
	for _, rp := range []*hal.RenderPipeline{&p.curve, &p.fill, &p.mark} {
		if *rp != nil {
			p.device.DestroyRenderPipeline(*rp)
			*rp = nil
		}
	}
	if p.pipelineLayout != nil {
		p.device.DestroyPipelineLayout(p.pipelineLayout)
		p.pipelineLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
