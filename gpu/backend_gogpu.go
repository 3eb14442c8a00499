// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"
	"sync"
	"sync/atomic"

	ggpu "github.com/gogpu/gogpu/gpu"
	gputypes "github.com/gogpu/gogpu/gpu/types"
)

// gogpuDevice implements Device against github.com/gogpu/gogpu/gpu, the
// pack's WebGPU-class backend. Acquisition of the instance, adapter,
// device and queue follows backend/gogpu.Backend.Init's exact sequence.
// Resource handles are tracked in ID maps the same way
// backend/gogpu/adapter.go's GoGPUAdapter maps gpucore IDs onto
// gogpu/gogpu handles, so termgrid's own Buffer/Texture/... types stay
// simple, comparable, and free of any gogpu/gogpu-specific fields.
type gogpuDevice struct {
	backend ggpu.Backend
	device  gputypes.Device
	queue   gputypes.Queue
	format  gputypes.TextureFormat

	mu          sync.Mutex
	nextID      atomic.Uint64
	buffers     map[Buffer]gputypes.Buffer
	textures    map[Texture]gputypes.Texture
	textureDims map[Texture]textureExtent
	shaders     map[ShaderModule]gputypes.ShaderModule
	samplers    map[Sampler]gputypes.Sampler
	pipes       map[RenderPipeline]gogpuPipeline
	groups      map[BindGroup]gputypes.BindGroup
}

type textureExtent struct {
	width, height, layers uint32
}

type gogpuPipeline struct {
	pipeline gputypes.RenderPipeline
	layout   gputypes.PipelineLayout
	bgLayout gputypes.BindGroupLayout
}

// NewGogpuDevice initializes a gogpu/gogpu-backed Device: instance,
// adapter, device and queue acquisition, in that order, exactly as
// backend/gogpu.Backend.Init performs it. surfaceFormat is the color
// format the host's swap chain presents in.
func NewGogpuDevice(surfaceFormat gputypes.TextureFormat) (Device, error) {
	backend := ggpu.GetBackend()
	if backend == nil {
		if err := ggpu.InitDefaultBackend(); err != nil {
			return nil, newError(CategoryResource, "init backend", err)
		}
		backend = ggpu.GetBackend()
	}
	if backend == nil {
		return nil, newError(CategoryResource, "init backend", fmt.Errorf("no gogpu backend available"))
	}

	instance, err := backend.CreateInstance()
	if err != nil {
		return nil, newError(CategoryResource, "create instance", err)
	}

	adapter, err := backend.RequestAdapter(instance, &gputypes.AdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, newError(CategoryResource, "request adapter", err)
	}

	device, err := backend.RequestDevice(adapter, &gputypes.DeviceOptions{
		Label: "termgrid-device",
	})
	if err != nil {
		return nil, newError(CategoryResource, "request device", err)
	}

	queue := backend.GetQueue(device)

	d := &gogpuDevice{
		backend:  backend,
		device:   device,
		queue:    queue,
		format:   surfaceFormat,
		buffers:     make(map[Buffer]gputypes.Buffer),
		textures:    make(map[Texture]gputypes.Texture),
		textureDims: make(map[Texture]textureExtent),
		shaders:     make(map[ShaderModule]gputypes.ShaderModule),
		samplers:    make(map[Sampler]gputypes.Sampler),
		pipes:       make(map[RenderPipeline]gogpuPipeline),
		groups:      make(map[BindGroup]gputypes.BindGroup),
	}
	d.nextID.Store(1)
	return d, nil
}

func (d *gogpuDevice) newID() uint64 { return d.nextID.Add(1) - 1 }

func convertBufferUsage(u BufferUsage) gputypes.BufferUsage {
	var out gputypes.BufferUsage
	if u&BufferUsageVertex != 0 {
		out |= gputypes.BufferUsageVertex
	}
	if u&BufferUsageIndex != 0 {
		out |= gputypes.BufferUsageIndex
	}
	if u&BufferUsageUniform != 0 {
		out |= gputypes.BufferUsageUniform
	}
	if u&BufferUsageCopyDst != 0 {
		out |= gputypes.BufferUsageCopyDst
	}
	return out
}

func (d *gogpuDevice) CreateBuffer(size int, usage BufferUsage, label string) (Buffer, error) {
	buf, err := d.backend.CreateBuffer(d.device, &gputypes.BufferDescriptor{
		Label: label,
		Size:  uint64(size),
		Usage: convertBufferUsage(usage),
	})
	if err != nil {
		return 0, newError(CategoryResource, "create buffer", err)
	}
	id := Buffer(d.newID())
	d.mu.Lock()
	d.buffers[id] = buf
	d.mu.Unlock()
	return id, nil
}

func (d *gogpuDevice) WriteBuffer(id Buffer, offset uint64, data []byte) {
	d.mu.Lock()
	buf, ok := d.buffers[id]
	d.mu.Unlock()
	if ok {
		d.backend.WriteBuffer(d.queue, buf, offset, data)
	}
}

func (d *gogpuDevice) DestroyBuffer(id Buffer) {
	d.mu.Lock()
	buf, ok := d.buffers[id]
	delete(d.buffers, id)
	d.mu.Unlock()
	if ok {
		d.backend.ReleaseBuffer(buf)
	}
}

func (d *gogpuDevice) CreateTextureArray(width, height, layers uint32, label string) (Texture, error) {
	tex, err := d.backend.CreateTexture(d.device, &gputypes.TextureDescriptor{
		Label: label,
		Size: gputypes.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: layers,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return 0, newError(CategoryResource, "create texture array", err)
	}
	id := Texture(d.newID())
	d.mu.Lock()
	d.textures[id] = tex
	d.textureDims[id] = textureExtent{width: width, height: height, layers: layers}
	d.mu.Unlock()
	return id, nil
}

// WriteTexture uploads the whole packed RGBA8 array in one call, laid out
// as `layers` consecutive width*height*4 images, matching the tightly
// packed pixel buffer atlas.Atlas.Pixels decodes into.
func (d *gogpuDevice) WriteTexture(id Texture, data []byte) {
	d.mu.Lock()
	tex, ok := d.textures[id]
	dims := d.textureDims[id]
	d.mu.Unlock()
	if !ok {
		return
	}

	const bytesPerPixel = 4
	bytesPerRow := dims.width * bytesPerPixel
	bytesPerLayer := bytesPerRow * dims.height

	for layer := uint32(0); layer < dims.layers; layer++ {
		start := layer * bytesPerLayer
		end := start + bytesPerLayer
		if end > uint32(len(data)) {
			break
		}
		dst := &gputypes.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   gputypes.Origin3D{X: 0, Y: 0, Z: layer},
			Aspect:   gputypes.TextureAspectAll,
		}
		layout := &gputypes.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  bytesPerRow,
			RowsPerImage: dims.height,
		}
		size := &gputypes.Extent3D{
			Width:              dims.width,
			Height:             dims.height,
			DepthOrArrayLayers: 1,
		}
		d.backend.WriteTexture(d.queue, dst, data[start:end], layout, size)
	}
}

func (d *gogpuDevice) DestroyTexture(id Texture) {
	d.mu.Lock()
	tex, ok := d.textures[id]
	delete(d.textures, id)
	delete(d.textureDims, id)
	d.mu.Unlock()
	if ok {
		d.backend.ReleaseTexture(tex)
	}
}

func (d *gogpuDevice) CreateShaderModule(wgsl, label string) (ShaderModule, error) {
	mod, err := d.backend.CreateShaderModuleWGSL(d.device, wgsl, label)
	if err != nil {
		return 0, newError(CategoryShader, "create shader module", err)
	}
	id := ShaderModule(d.newID())
	d.mu.Lock()
	d.shaders[id] = mod
	d.mu.Unlock()
	return id, nil
}

func (d *gogpuDevice) DestroyShaderModule(id ShaderModule) {
	d.mu.Lock()
	mod, ok := d.shaders[id]
	delete(d.shaders, id)
	d.mu.Unlock()
	if ok {
		d.backend.ReleaseShaderModule(mod)
	}
}

func (d *gogpuDevice) CreateSampler(label string) (Sampler, error) {
	s, err := d.backend.CreateSampler(d.device, &gputypes.SamplerDescriptor{
		Label:        label,
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
	})
	if err != nil {
		return 0, newError(CategoryResource, "create sampler", err)
	}
	id := Sampler(d.newID())
	d.mu.Lock()
	d.samplers[id] = s
	d.mu.Unlock()
	return id, nil
}

// gridVertexLayout describes the three vertex buffer slots consumed by
// gridShaderWGSL's vs_main: the shared unit quad (slot 0, per vertex),
// CellStatic (slot 1, per instance) and CellDynamic (slot 2, per
// instance). This is gogpu/gogpu-specific knowledge; termgrid's own
// Device interface never talks about vertex buffer layouts.
func gridVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: 16,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			},
		},
		{
			ArrayStride: cellStaticSize,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatUint16x2, Offset: 0, ShaderLocation: 2},
			},
		},
		{
			ArrayStride: cellDynamicSize,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatUint32x2, Offset: 0, ShaderLocation: 3},
			},
		},
	}
}

// CreateGridPipeline builds the bind group layout (uniform, uniform,
// texture array, sampler at bindings 0-3), the pipeline layout, and the
// render pipeline for gridShaderWGSL's fixed vs_main/fs_main entry
// points and vertex buffer layout (spec.md §4.6, §4.8).
func (d *gogpuDevice) CreateGridPipeline(shaderID ShaderModule, vertexUBO, fragUBO Buffer, texID Texture, samplerID Sampler) (RenderPipeline, BindGroup, error) {
	d.mu.Lock()
	shader, sOK := d.shaders[shaderID]
	vubo, vOK := d.buffers[vertexUBO]
	fubo, fOK := d.buffers[fragUBO]
	tex, tOK := d.textures[texID]
	sampler, smOK := d.samplers[samplerID]
	d.mu.Unlock()
	if !sOK || !vOK || !fOK || !tOK || !smOK {
		return 0, 0, newError(CategoryResource, "create grid pipeline", fmt.Errorf("unknown resource handle"))
	}

	layout, err := d.backend.CreateBindGroupLayout(d.device, &gputypes.BindGroupLayoutDescriptor{
		Label: "termgrid-bind-group-layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageVertex, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageFragment, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 2, Visibility: gputypes.ShaderStageFragment, Texture: &gputypes.TextureBindingLayout{SampleType: gputypes.TextureSampleTypeFloat, ViewDimension: gputypes.TextureViewDimension2DArray}},
			{Binding: 3, Visibility: gputypes.ShaderStageFragment, Sampler: &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}},
		},
	})
	if err != nil {
		return 0, 0, newError(CategoryResource, "create bind group layout", err)
	}

	pipeLayout, err := d.backend.CreatePipelineLayout(d.device, &gputypes.PipelineLayoutDescriptor{
		Label:            "termgrid-pipeline-layout",
		BindGroupLayouts: []gputypes.BindGroupLayout{layout},
	})
	if err != nil {
		return 0, 0, newError(CategoryResource, "create pipeline layout", err)
	}

	pipeline, err := d.backend.CreateRenderPipeline(d.device, &gputypes.RenderPipelineDescriptor{
		Label:  "termgrid-grid-pipeline",
		Layout: pipeLayout,
		Vertex: gputypes.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    gridVertexLayout(),
		},
		Fragment: &gputypes.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{Format: d.format, WriteMask: gputypes.ColorWriteMaskAll},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return 0, 0, newError(CategoryShader, "create render pipeline", err)
	}

	bg, err := d.backend.CreateBindGroup(d.device, &gputypes.BindGroupDescriptor{
		Label:  "termgrid-bind-group",
		Layout: layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Buffer: vubo},
			{Binding: 1, Buffer: fubo},
			{Binding: 2, Texture: tex},
			{Binding: 3, Sampler: sampler},
		},
	})
	if err != nil {
		return 0, 0, newError(CategoryResource, "create bind group", err)
	}

	pid := RenderPipeline(d.newID())
	gid := BindGroup(d.newID())
	d.mu.Lock()
	d.pipes[pid] = gogpuPipeline{pipeline: pipeline, layout: pipeLayout, bgLayout: layout}
	d.groups[gid] = bg
	d.mu.Unlock()

	return pid, gid, nil
}

func (d *gogpuDevice) DestroyRenderPipeline(id RenderPipeline) {
	d.mu.Lock()
	p, ok := d.pipes[id]
	delete(d.pipes, id)
	d.mu.Unlock()
	if ok {
		d.backend.ReleaseRenderPipeline(p.pipeline)
		d.backend.ReleasePipelineLayout(p.layout)
		d.backend.ReleaseBindGroupLayout(p.bgLayout)
	}
}

func (d *gogpuDevice) BeginRenderPass(label string) RenderPass {
	enc := d.backend.BeginRenderPass(d.queue, &gputypes.RenderPassDescriptor{Label: label})
	return &gogpuRenderPass{dev: d, enc: enc}
}

func (d *gogpuDevice) Submit() {
	d.backend.Submit(d.queue)
}

// gogpuRenderPass adapts gputypes.RenderPassEncoder to the RenderPass
// interface TerminalGrid.Render programs against, resolving termgrid's
// own resource IDs back to gogpu/gogpu handles as it goes.
type gogpuRenderPass struct {
	dev *gogpuDevice
	enc gputypes.RenderPassEncoder
}

func (p *gogpuRenderPass) SetPipeline(id RenderPipeline) {
	p.dev.mu.Lock()
	pl := p.dev.pipes[id].pipeline
	p.dev.mu.Unlock()
	p.enc.SetPipeline(pl)
}

func (p *gogpuRenderPass) SetBindGroup(index uint32, id BindGroup) {
	p.dev.mu.Lock()
	bg := p.dev.groups[id]
	p.dev.mu.Unlock()
	p.enc.SetBindGroup(index, bg, nil)
}

func (p *gogpuRenderPass) SetVertexBuffer(slot uint32, id Buffer) {
	p.dev.mu.Lock()
	buf := p.dev.buffers[id]
	p.dev.mu.Unlock()
	p.enc.SetVertexBuffer(slot, buf, 0)
}

func (p *gogpuRenderPass) SetIndexBuffer(id Buffer, format IndexFormat) {
	p.dev.mu.Lock()
	buf := p.dev.buffers[id]
	p.dev.mu.Unlock()

	var f gputypes.IndexFormat
	if format == IndexFormatUint32 {
		f = gputypes.IndexFormatUint32
	} else {
		f = gputypes.IndexFormatUint16
	}
	p.enc.SetIndexBuffer(buf, f, 0)
}

func (p *gogpuRenderPass) DrawIndexed(indexCount, instanceCount uint32) {
	p.enc.DrawIndexed(indexCount, instanceCount, 0, 0, 0)
}

func (p *gogpuRenderPass) End() { p.enc.End() }
