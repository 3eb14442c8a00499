// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"

	"github.com/gogpu/termgrid"
	"github.com/gogpu/termgrid/mat4"
)

// unitQuadVertices is the single quad every cell instance reuses:
// {pos: vec2, uv: vec2} per vertex, four vertices, matching the vertex
// buffer layout in spec.md §4.6.
var unitQuadVertices = [4 * 4]float32{
	// pos.x, pos.y, uv.x, uv.y
	0, 0, 0, 0,
	1, 0, 1, 0,
	1, 1, 1, 1,
	0, 1, 0, 1,
}

var unitQuadIndices = [6]uint16{0, 1, 2, 2, 3, 0}

// TerminalGrid owns every GPU-resident resource needed to draw a
// fixed-pitch grid of styled cells: the shared GpuAtlas, static geometry,
// per-cell instance buffers, the shader program and its uniform buffers
// (spec.md §4.6).
//
// A TerminalGrid is bound to the thread that constructed it; the GPU API
// underneath is not safe to call from multiple goroutines concurrently.
type TerminalGrid struct {
	dev   Device
	atlas *GpuAtlas
	opts  GridOptions

	colsWide, rowsHigh int
	pixelW, pixelH     int

	vertexBuf  Buffer
	indexBuf   Buffer
	staticBuf  Buffer
	dynamicBuf Buffer
	vertexUBO  Buffer
	fragUBO    Buffer

	shader    ShaderModule
	pipeline  RenderPipeline
	sampler   Sampler
	bindGroup BindGroup

	// shadow is the host-side source of truth for CellDynamic, exclusively
	// owned by whichever Batch is currently open (spec.md §5). staticData
	// mirrors CellStatic and is only rewritten on resize.
	shadow     []byte
	staticData []byte

	instanceBuffersReady bool
	batchOpen            bool
}

// NewTerminalGrid provisions every static GPU resource (shader, VAO-
// equivalent bindings, texture already owned by atlas) and sizes the
// grid for the given surface, per spec.md §4.6's `new`.
func NewTerminalGrid(dev Device, atlas *GpuAtlas, opts GridOptions) (*TerminalGrid, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, newError(CategoryResource, "validate options", err)
	}

	g := &TerminalGrid{dev: dev, atlas: atlas, opts: opts}

	if err := g.createStaticResources(); err != nil {
		return nil, err
	}
	if err := g.Resize(opts.InitialPixelWidth, opts.InitialPixelHeight); err != nil {
		return nil, err
	}

	termgrid.Logger().Info("gpu: terminal grid created",
		"cols", g.colsWide, "rows", g.rowsHigh,
		"px_w", g.pixelW, "px_h", g.pixelH)

	return g, nil
}

func (g *TerminalGrid) createStaticResources() error {
	vertexBytes := make([]byte, len(unitQuadVertices)*4)
	for i, f := range unitQuadVertices {
		binary.LittleEndian.PutUint32(vertexBytes[i*4:], float32bits(f))
	}
	vb, err := g.dev.CreateBuffer(len(vertexBytes), BufferUsageVertex|BufferUsageCopyDst, "termgrid-quad-vertex")
	if err != nil {
		return err
	}
	g.dev.WriteBuffer(vb, 0, vertexBytes)
	g.vertexBuf = vb

	indexBytes := make([]byte, len(unitQuadIndices)*2)
	for i, idx := range unitQuadIndices {
		binary.LittleEndian.PutUint16(indexBytes[i*2:], idx)
	}
	ib, err := g.dev.CreateBuffer(len(indexBytes), BufferUsageIndex|BufferUsageCopyDst, "termgrid-quad-index")
	if err != nil {
		return err
	}
	g.dev.WriteBuffer(ib, 0, indexBytes)
	g.indexBuf = ib

	vubo, err := g.dev.CreateBuffer(vertexUBOSize, BufferUsageUniform|BufferUsageCopyDst, "termgrid-vertex-ubo")
	if err != nil {
		return err
	}
	g.vertexUBO = vubo

	fubo, err := g.dev.CreateBuffer(fragmentUBOSize, BufferUsageUniform|BufferUsageCopyDst, "termgrid-fragment-ubo")
	if err != nil {
		return err
	}
	g.fragUBO = fubo
	g.writeFragmentUBO()

	if err := g.createShaderAndPipeline(); err != nil {
		return err
	}

	return nil
}

// Resize recreates the size-dependent instance buffers when the cell
// count changes, and always rewrites the projection UBO (spec.md §4.6).
// It is idempotent when the new pixel dimensions produce the same cell
// count as before.
func (g *TerminalGrid) Resize(pixelW, pixelH int) error {
	if pixelW <= 0 || pixelH <= 0 {
		return newError(CategoryResource, "resize", errPositiveDimensions)
	}

	cw, ch := g.atlas.CellSize()
	newCols := pixelW / int(cw)
	newRows := pixelH / int(ch)

	g.pixelW, g.pixelH = pixelW, pixelH

	if newCols != g.colsWide || newRows != g.rowsHigh || !g.instanceBuffersReady {
		if err := g.reallocateInstanceBuffers(newCols, newRows); err != nil {
			return err
		}
		g.colsWide, g.rowsHigh = newCols, newRows
		g.instanceBuffersReady = true
	}

	g.writeProjection()
	return nil
}

func (g *TerminalGrid) reallocateInstanceBuffers(cols, rows int) error {
	if g.instanceBuffersReady {
		g.dev.DestroyBuffer(g.staticBuf)
		g.dev.DestroyBuffer(g.dynamicBuf)
	}

	count := cols * rows
	g.staticData = make([]byte, count*cellStaticSize)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			off := (y*cols + x) * cellStaticSize
			binary.LittleEndian.PutUint16(g.staticData[off:], uint16(x))
			binary.LittleEndian.PutUint16(g.staticData[off+2:], uint16(y))
		}
	}
	g.shadow = make([]byte, count*cellDynamicSize)

	sb, err := g.dev.CreateBuffer(len(g.staticData), BufferUsageVertex|BufferUsageCopyDst, "termgrid-cell-static")
	if err != nil {
		return err
	}
	g.dev.WriteBuffer(sb, 0, g.staticData)
	g.staticBuf = sb

	db, err := g.dev.CreateBuffer(len(g.shadow), BufferUsageVertex|BufferUsageCopyDst, "termgrid-cell-dynamic")
	if err != nil {
		return err
	}
	g.dynamicBuf = db

	return nil
}

func (g *TerminalGrid) writeProjection() {
	proj := mat4.Ortho(float32(g.pixelW), float32(g.pixelH))
	cw, ch := g.atlas.CellSize()
	paddingX, paddingY := g.atlas.paddingX, g.atlas.paddingY

	buf := make([]byte, vertexUBOSize)
	copy(buf[0:64], mat4.Bytes(proj))
	putFloat32(buf[64:], float32(cw))
	putFloat32(buf[68:], float32(ch))
	putFloat32(buf[72:], paddingX)
	putFloat32(buf[76:], paddingY)
	putFloat32(buf[80:], float32(g.atlas.LayerCount()))
	g.dev.WriteBuffer(g.vertexUBO, 0, buf)
}

func (g *TerminalGrid) writeFragmentUBO() {
	buf := make([]byte, fragmentUBOSize)
	putFloat32(buf[0:], g.atlas.paddingX)
	putFloat32(buf[4:], g.atlas.paddingY)
	putFloat32(buf[8:], g.atlas.underlinePos)
	putFloat32(buf[12:], g.atlas.underlineThickness)
	putFloat32(buf[16:], g.atlas.strikethroughPos)
	putFloat32(buf[20:], g.atlas.strikethroughThickness)
	g.dev.WriteBuffer(g.fragUBO, 0, buf)
}

// TerminalSize returns the current grid dimensions in cells.
func (g *TerminalGrid) TerminalSize() (cols, rows int) { return g.colsWide, g.rowsHigh }

// CellSize returns the pixel dimensions of one cell.
func (g *TerminalGrid) CellSize() (w, h int32) { return g.atlas.CellSize() }

// Batch returns a mutation handle over the host-side CellDynamic shadow.
// Only one Batch may be open per grid at a time (spec.md §5).
func (g *TerminalGrid) Batch() (*Batch, error) {
	if g.batchOpen {
		return nil, newError(CategoryBatch, "batch", ErrBatchInProgress)
	}
	g.batchOpen = true
	return &Batch{grid: g, dirtyMin: -1}, nil
}

// release marks the grid as no longer having an open batch. Called by
// Batch.Flush.
func (g *TerminalGrid) release() { g.batchOpen = false }

// Render binds the pipeline, UBOs, texture and both instance buffers and
// issues one instanced indexed draw call (spec.md §4.6's `render`).
func (g *TerminalGrid) Render(passLabel string) error {
	pass := g.dev.BeginRenderPass(passLabel)
	pass.SetPipeline(g.pipeline)
	pass.SetBindGroup(0, g.bindGroup)
	pass.SetVertexBuffer(0, g.vertexBuf)
	pass.SetVertexBuffer(1, g.staticBuf)
	pass.SetVertexBuffer(2, g.dynamicBuf)
	pass.SetIndexBuffer(g.indexBuf, IndexFormatUint16)
	pass.DrawIndexed(uint32(len(unitQuadIndices)), uint32(g.colsWide*g.rowsHigh))
	pass.End()
	g.dev.Submit()
	return nil
}

// Close releases every GPU resource this grid owns, except the shared
// GpuAtlas texture.
func (g *TerminalGrid) Close() {
	g.dev.DestroyBuffer(g.vertexBuf)
	g.dev.DestroyBuffer(g.indexBuf)
	g.dev.DestroyBuffer(g.staticBuf)
	g.dev.DestroyBuffer(g.dynamicBuf)
	g.dev.DestroyBuffer(g.vertexUBO)
	g.dev.DestroyBuffer(g.fragUBO)
	g.dev.DestroyRenderPipeline(g.pipeline)
	g.dev.DestroyShaderModule(g.shader)
}
