// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

// Buffer, Texture, ShaderModule, RenderPipeline, BindGroup and Sampler are
// opaque resource handles. Concrete Device implementations are free to
// give them whatever internal representation they like; TerminalGrid
// only ever passes them back to the Device that produced them. This
// mirrors gg's gpucore.GPUAdapter, which maps its own ID types onto a
// concrete backend's real handles internally rather than exposing them.
type (
	Buffer         uint64
	Texture        uint64
	ShaderModule   uint64
	RenderPipeline uint64
	BindGroup      uint64
	Sampler        uint64
)

// BufferUsage is a bitmask of how a buffer will be used, mirroring
// gogpu/gogpu/gpu/types.BufferUsage's flag set closely enough for
// termgrid's needs (vertex/index/uniform buffers, all written from the
// host and never mapped for readback).
type BufferUsage uint32

const (
	BufferUsageVertex BufferUsage = 1 << iota
	BufferUsageIndex
	BufferUsageUniform
	BufferUsageCopyDst
)

// IndexFormat selects the index buffer's element width.
type IndexFormat int

const (
	IndexFormatUint16 IndexFormat = iota
	IndexFormatUint32
)

// Device is the injection seam between TerminalGrid and a concrete GPU
// backend: everything TerminalGrid needs to provision buffers, upload the
// glyph texture array, compile the fixed grid shader and issue one
// instanced draw per frame, and nothing else. CreateGridPipeline is
// deliberately narrow rather than a generic pipeline builder, since
// TerminalGrid only ever needs the one pipeline shape spec.md §4.8 fixes.
type Device interface {
	CreateBuffer(size int, usage BufferUsage, label string) (Buffer, error)
	WriteBuffer(buf Buffer, offset uint64, data []byte)
	DestroyBuffer(buf Buffer)

	CreateTextureArray(width, height, layers uint32, label string) (Texture, error)
	// WriteTexture uploads the whole RGBA8 pixel buffer for a texture
	// array in one call, per spec.md §4.6's "immutable storage allocation
	// and one-shot sub-image update; never resized thereafter".
	WriteTexture(tex Texture, data []byte)
	DestroyTexture(tex Texture)

	CreateShaderModule(wgsl, label string) (ShaderModule, error)
	DestroyShaderModule(mod ShaderModule)

	CreateSampler(label string) (Sampler, error)

	// CreateGridPipeline builds the bind group layout, pipeline layout and
	// render pipeline for the fixed vertex/fragment contract in
	// gridShaderWGSL, with vertexUBO/fragUBO/tex/sampler bound at
	// locations 0-3, and returns a bind group referencing them.
	CreateGridPipeline(shader ShaderModule, vertexUBO, fragUBO Buffer, tex Texture, sampler Sampler) (RenderPipeline, BindGroup, error)
	DestroyRenderPipeline(p RenderPipeline)

	// BeginRenderPass returns an encoder targeting the current frame's
	// surface texture, however the host's swap chain acquires it.
	BeginRenderPass(label string) RenderPass

	// Submit flushes all commands recorded since the last Submit.
	Submit()
}

// RenderPass is the subset of a render pass encoder TerminalGrid.Render
// needs: bind the pipeline and its resources, then issue one instanced
// indexed draw.
type RenderPass interface {
	SetPipeline(p RenderPipeline)
	SetBindGroup(index uint32, bg BindGroup)
	SetVertexBuffer(slot uint32, buf Buffer)
	SetIndexBuffer(buf Buffer, format IndexFormat)
	DrawIndexed(indexCount, instanceCount uint32)
	End()
}
