// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "sync/atomic"

// fakeDevice is an in-memory Device used by this package's tests. It
// records every buffer write so tests can assert on exactly what a real
// backend would have uploaded, without requiring a GPU.
type fakeDevice struct {
	nextID atomic.Uint64

	buffers  map[Buffer][]byte
	textures map[Texture][]byte
	shaders  map[ShaderModule]string
	samplers map[Sampler]struct{}
	pipes    map[RenderPipeline]struct{}
	groups   map[BindGroup]struct{}

	renderPasses int
	submits      int
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		buffers:  make(map[Buffer][]byte),
		textures: make(map[Texture][]byte),
		shaders:  make(map[ShaderModule]string),
		samplers: make(map[Sampler]struct{}),
		pipes:    make(map[RenderPipeline]struct{}),
		groups:   make(map[BindGroup]struct{}),
	}
}

func (d *fakeDevice) newID() uint64 { return d.nextID.Add(1) - 1 }

func (d *fakeDevice) CreateBuffer(size int, usage BufferUsage, label string) (Buffer, error) {
	id := Buffer(d.newID())
	d.buffers[id] = make([]byte, size)
	return id, nil
}

func (d *fakeDevice) WriteBuffer(buf Buffer, offset uint64, data []byte) {
	dst := d.buffers[buf]
	copy(dst[offset:], data)
}

func (d *fakeDevice) DestroyBuffer(buf Buffer) { delete(d.buffers, buf) }

func (d *fakeDevice) CreateTextureArray(width, height, layers uint32, label string) (Texture, error) {
	id := Texture(d.newID())
	d.textures[id] = nil
	return id, nil
}

func (d *fakeDevice) WriteTexture(tex Texture, data []byte) {
	d.textures[tex] = append([]byte(nil), data...)
}

func (d *fakeDevice) DestroyTexture(tex Texture) { delete(d.textures, tex) }

func (d *fakeDevice) CreateShaderModule(wgsl, label string) (ShaderModule, error) {
	id := ShaderModule(d.newID())
	d.shaders[id] = wgsl
	return id, nil
}

func (d *fakeDevice) DestroyShaderModule(mod ShaderModule) { delete(d.shaders, mod) }

func (d *fakeDevice) CreateSampler(label string) (Sampler, error) {
	id := Sampler(d.newID())
	d.samplers[id] = struct{}{}
	return id, nil
}

func (d *fakeDevice) CreateGridPipeline(shader ShaderModule, vertexUBO, fragUBO Buffer, tex Texture, sampler Sampler) (RenderPipeline, BindGroup, error) {
	p := RenderPipeline(d.newID())
	g := BindGroup(d.newID())
	d.pipes[p] = struct{}{}
	d.groups[g] = struct{}{}
	return p, g, nil
}

func (d *fakeDevice) DestroyRenderPipeline(p RenderPipeline) { delete(d.pipes, p) }

func (d *fakeDevice) BeginRenderPass(label string) RenderPass {
	d.renderPasses++
	return &fakeRenderPass{}
}

func (d *fakeDevice) Submit() { d.submits++ }

type fakeRenderPass struct {
	drawCount     uint32
	drawInstances uint32
}

func (p *fakeRenderPass) SetPipeline(RenderPipeline)                {}
func (p *fakeRenderPass) SetBindGroup(uint32, BindGroup)             {}
func (p *fakeRenderPass) SetVertexBuffer(uint32, Buffer)             {}
func (p *fakeRenderPass) SetIndexBuffer(Buffer, IndexFormat)         {}
func (p *fakeRenderPass) DrawIndexed(indexCount, instanceCount uint32) {
	p.drawCount, p.drawInstances = indexCount, instanceCount
}
func (p *fakeRenderPass) End() {}
