// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlasgen

import (
	"github.com/gogpu/termgrid/atlas"
	"github.com/gogpu/termgrid/rasterize"
)

// rasterKey identifies one rasterized (cluster, style) combination in the
// cache built while assembling a texture. Emoji clusters only ever
// rasterize at StyleNormal, so the style component is still meaningful
// there (it just never varies).
type rasterKey struct {
	cluster string
	style   rasterize.Style
}

// TextureAssembler composites rasterized glyph bitmaps into the single
// RGBA8 pixel buffer backing the whole 2D texture array, and emits the
// atlas.GlyphMetadata table for every glyph it successfully placed.
//
// Missing glyphs (the font could not render the cluster) are recorded by
// cluster name but otherwise skipped: their base ID stays reserved and
// unreused, but no bitmap or metadata record is produced for it, matching
// the wire format's glyph table (which lists only present glyphs).
type TextureAssembler struct {
	rasterizer rasterize.Rasterizer
	cache      map[rasterKey]*rasterize.RasterResult
	missing    map[string]bool
}

// NewTextureAssembler creates an assembler backed by r.
func NewTextureAssembler(r rasterize.Rasterizer) *TextureAssembler {
	return &TextureAssembler{
		rasterizer: r,
		cache:      make(map[rasterKey]*rasterize.RasterResult),
		missing:    make(map[string]bool),
	}
}

func (t *TextureAssembler) raster(cluster string, style rasterize.Style) (*rasterize.RasterResult, bool) {
	key := rasterKey{cluster, style}
	if r, ok := t.cache[key]; ok {
		return r, true
	}
	r, err := t.rasterizer.Rasterize(cluster, style)
	if err != nil {
		t.missing[cluster] = true
		return nil, false
	}
	t.cache[key] = r
	return r, true
}

// Assemble lays out every placed glyph into a single RGBA8 buffer sized
// for layerCount texture-array layers, and returns the glyph metadata
// table alongside the buffer. Placed glyphs whose bitmap cannot be
// rasterized are omitted from the returned metadata; MissingClusters
// reports which cluster names hit that path.
func (t *TextureAssembler) Assemble(placed []PlacedGlyph, layerCount int) (pixels []byte, texW, texH uint32, glyphs []atlas.GlyphMetadata) {
	metrics := t.rasterizer.CellMetrics()
	cellW := metrics.Width + 2
	cellH := metrics.Height + 2

	texW = uint32(cellW) * atlas.CellsPerLayer
	texH = uint32(cellH)
	layerStride := int(texW) * int(texH) * 4
	pixels = make([]byte, layerStride*layerCount)

	glyphs = make([]atlas.GlyphMetadata, 0, len(placed))

	for _, p := range placed {
		result, ok := t.raster(p.Cluster, p.Style)
		if !ok {
			continue
		}

		pixelX := p.Col * cellW
		layerOffset := p.Layer * layerStride
		blitCell(pixels, layerOffset, int(texW), pixelX, 0, result.Pixels, cellW, cellH)

		glyphs = append(glyphs, atlas.GlyphMetadata{
			ID:      uint16(p.ID),
			Style:   atlas.Style(p.Style),
			IsEmoji: p.IsEmoji,
			PixelX:  int32(pixelX),
			PixelY:  0,
			Symbol:  p.Cluster,
		})
	}

	return pixels, texW, texH, glyphs
}

// MissingClusters returns the cluster names that could not be rasterized
// in any style attempted so far, in no particular order.
func (t *TextureAssembler) MissingClusters() []string {
	out := make([]string, 0, len(t.missing))
	for c := range t.missing {
		out = append(out, c)
	}
	return out
}

// blitCell copies a (w x h x RGBA8) source block into dst, which
// represents one texture-array layer of stride layerStrideW pixels,
// starting at pixel offset (dstX, dstY) within that layer.
func blitCell(dst []byte, layerOffset, layerStrideW, dstX, dstY int, src []byte, w, h int) {
	for y := 0; y < h; y++ {
		srcRow := src[y*w*4 : (y+1)*w*4]
		dstOff := layerOffset + ((dstY+y)*layerStrideW+dstX)*4
		copy(dst[dstOff:dstOff+w*4], srcRow)
	}
}
