// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"testing"

	"github.com/gogpu/termgrid/atlas"
)

// testAtlasBytes encodes a minimal but structurally valid atlas: one
// layer, a handful of glyph records covering the ASCII fast path, one
// non-ASCII grapheme cluster and one emoji, enough to exercise
// GlyphResolver and TerminalGrid without a real font or GPU.
func testAtlasBytes(t *testing.T) []byte {
	t.Helper()

	cellW, cellH := int32(10), int32(18)
	pixels := make([]byte, int(uint32(cellW)*atlas.CellsPerLayer)*int(cellH)*1*4)

	a := &atlas.Atlas{
		FontName:    "TestMono",
		FontSize:    16,
		TexWidthPx:  uint32(cellW) * atlas.CellsPerLayer,
		TexHeightPx: uint32(cellH),
		TexLayers:   1,
		CellWidth:   cellW,
		CellHeight:  cellH,
		Glyphs: []atlas.GlyphMetadata{
			{ID: 0x20, Style: atlas.StyleNormal, Symbol: " "},
			{ID: 200, Style: atlas.StyleNormal, Symbol: "→"}, // "→"
			{ID: 201, Style: atlas.StyleNormal, IsEmoji: true, Symbol: "\U0001F600"},
			// Deliberately collides with the ASCII codepoint 'A' (65):
			// emoji base indices are assigned independently of non-emoji
			// ones and restart at 0, so this exercises that the resolver
			// keeps the two spaces separate.
			{ID: 65, Style: atlas.StyleNormal, IsEmoji: true, Symbol: "\U0001F601"},
		},
		Pixels: pixels,
	}

	data, err := atlas.Encode(a)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data
}

func newTestGrid(t *testing.T, dev Device, cols, rows int) *TerminalGrid {
	t.Helper()

	ga, err := LoadAtlas(dev, testAtlasBytes(t), GridOptions{
		InitialPixelWidth:  cols * 10,
		InitialPixelHeight: rows * 18,
	})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}

	g, err := NewTerminalGrid(dev, ga, GridOptions{
		InitialPixelWidth:  cols * 10,
		InitialPixelHeight: rows * 18,
	})
	if err != nil {
		t.Fatalf("NewTerminalGrid: %v", err)
	}
	return g
}
