// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/gogpu/termgrid"
	"github.com/gogpu/termgrid/atlas"
)

// GpuAtlas is the runtime, GPU-resident counterpart of atlas.Atlas: an
// immutable 2D array texture plus the metadata the shader and the
// GlyphResolver need. It is created once at load time and shared by
// reference across any number of TerminalGrids (spec.md §5, "shared
// immutable atlas").
type GpuAtlas struct {
	texture     Texture
	cellWidth   int32
	cellHeight  int32
	layerCount  uint32
	paddingX    float32
	paddingY    float32
	underlinePos, underlineThickness         float32
	strikethroughPos, strikethroughThickness float32

	resolver *GlyphResolver
}

// Decoration vertical positions, expressed as a fraction of cell height
// measured from the top of the cell. The atlas wire format (spec.md
// §6.1) does not transmit the rasterizer's per-font underline/
// strikethrough metrics, so the runtime uses fixed fractions typical of
// monospace terminal fonts rather than a value round-tripped from the
// atlas file.
const (
	defaultUnderlinePos           = 0.88
	defaultUnderlineThickness     = 0.06
	defaultStrikethroughPos       = 0.55
	defaultStrikethroughThickness = 0.06
)

// LoadAtlas decodes atlas bytes, uploads the pixel buffer into a 2D array
// texture on dev, and freezes a GlyphResolver over the glyph table. Atlas
// load is the one potentially long call in this package (spec.md §5) and
// is expected to run before the per-frame loop starts.
func LoadAtlas(dev Device, data []byte, opts GridOptions) (*GpuAtlas, error) {
	a, err := atlas.Decode(data)
	if err != nil {
		return nil, newError(CategoryResource, "decode atlas", err)
	}

	tex, err := dev.CreateTextureArray(a.TexWidthPx, a.TexHeightPx, a.TexLayers, "termgrid-atlas")
	if err != nil {
		return nil, err
	}
	dev.WriteTexture(tex, a.Pixels)

	paddingX, paddingY := a.PaddingFrac()

	resolver, err := newGlyphResolver(a, opts.withDefaults())
	if err != nil {
		return nil, err
	}

	termgrid.Logger().Info("gpu: atlas loaded",
		"font", a.FontName,
		"layers", a.TexLayers,
		"glyphs", len(a.Glyphs),
	)

	return &GpuAtlas{
		texture:                tex,
		cellWidth:              a.CellWidth,
		cellHeight:             a.CellHeight,
		layerCount:             a.TexLayers,
		paddingX:               paddingX,
		paddingY:               paddingY,
		underlinePos:           defaultUnderlinePos,
		underlineThickness:     defaultUnderlineThickness,
		strikethroughPos:       defaultStrikethroughPos,
		strikethroughThickness: defaultStrikethroughThickness,
		resolver:               resolver,
	}, nil
}

// CellSize returns the pixel dimensions of one cell, including the 1px
// padding border baked into the atlas.
func (g *GpuAtlas) CellSize() (w, h int32) { return g.cellWidth, g.cellHeight }

// LayerCount reports how many texture-array layers the atlas occupies.
func (g *GpuAtlas) LayerCount() uint32 { return g.layerCount }

// MissCount reports how many resolver misses (unresolvable graphemes,
// substituted with the fallback glyph) have occurred since load.
func (g *GpuAtlas) MissCount() uint64 { return g.resolver.MissCount() }

// Release destroys the GPU texture. Callers must ensure no TerminalGrid
// still references this atlas.
func (g *GpuAtlas) Release(dev Device) {
	dev.DestroyTexture(g.texture)
}
