// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package atlas defines the on-disk data model for a termgrid font atlas
// and the binary codec used to move it between the offline builder and the
// runtime loader.
package atlas

// Style mirrors the ordinal encoding used by the wire format: 0=Normal,
// 1=Bold, 2=Italic, 3=BoldItalic. The numeric values are chosen to convert
// directly to glyphid.Style, which uses the same ordinals.
type Style uint8

const (
	StyleNormal Style = iota
	StyleBold
	StyleItalic
	StyleBoldItalic
)

// GlyphMetadata describes one glyph record: its packed ID (without effect
// bits), its placement within the atlas texture, and the grapheme cluster
// it renders.
type GlyphMetadata struct {
	ID      uint16
	Style   Style
	IsEmoji bool
	PixelX  int32
	PixelY  int32
	Symbol  string
}

// Atlas is the builder's in-memory model of a packed font atlas: font
// metadata, cell dimensions, the glyph table, and the assembled RGBA8
// pixel buffer for the whole 2D texture array.
//
// Atlas is constructed once by the builder and never mutated afterward;
// the runtime loader produces a value-equal Atlas when decoding a file
// the encoder wrote.
type Atlas struct {
	FontName string
	FontSize float32

	// TexWidthPx, TexHeightPx, TexLayers describe the 2D texture array:
	// TexWidthPx == CellWidth*16, TexHeightPx == CellHeight.
	TexWidthPx  uint32
	TexHeightPx uint32
	TexLayers   uint32

	// CellWidth, CellHeight include the 1px padding border on every side.
	CellWidth  int32
	CellHeight int32

	Glyphs []GlyphMetadata

	// Pixels is the uncompressed RGBA8 buffer for the whole texture array,
	// length TexWidthPx*TexHeightPx*TexLayers*4.
	Pixels []byte
}

// CellsPerLayer is the fixed number of glyph columns packed into each
// texture-array layer.
const CellsPerLayer = 16

// PaddingFrac is 1/cell_dim_including_padding, the UV shrink the fragment
// shader applies to avoid bleeding between adjacent glyph cells. Width and
// height padding fractions differ since cells are not generally square.
func (a *Atlas) PaddingFrac() (x, y float32) {
	if a.CellWidth == 0 || a.CellHeight == 0 {
		return 0, 0
	}
	return 1 / float32(a.CellWidth), 1 / float32(a.CellHeight)
}

// TerminalSize returns how many whole cells fit in a surface of the given
// pixel dimensions.
func (a *Atlas) TerminalSize(pixelW, pixelH int) (cols, rows int) {
	if a.CellWidth <= 0 || a.CellHeight <= 0 {
		return 0, 0
	}
	return pixelW / int(a.CellWidth), pixelH / int(a.CellHeight)
}
