// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/gogpu/termgrid/glyphid"
)

// cellDynamicSize is the per-instance byte size of CellDynamic (spec.md
// §3): glyph_id (u16) + fg (3 bytes) + bg (3 bytes).
const cellDynamicSize = 8

// cellStaticSize is the per-instance byte size of CellStatic: grid_x,
// grid_y as little-endian u16.
const cellStaticSize = 4

// Color is an 8-bit RGB triple. Alpha is not transmitted; the shader
// derives coverage from the glyph texture's alpha channel (spec.md §3).
type Color struct {
	R, G, B uint8
}

// CellValue is the host-side representation of one cell's contents,
// mirroring the fields packed into CellDynamic.
type CellValue struct {
	Grapheme      string
	Style         glyphid.Style
	Underline     bool
	Strikethrough bool
	Fg, Bg        Color
}

// encode writes v's packed 8-byte CellDynamic record into dst[0:8].
func (v CellValue) encode(dst []byte, resolver *GlyphResolver) {
	id := resolver.Resolve(v.Grapheme, v.Style, v.Underline, v.Strikethrough)
	dst[0] = byte(id)
	dst[1] = byte(id >> 8)
	dst[2] = v.Fg.R
	dst[3] = v.Fg.G
	dst[4] = v.Fg.B
	dst[5] = v.Bg.R
	dst[6] = v.Bg.G
	dst[7] = v.Bg.B
}

// decodeCellDynamic reconstructs the packed glyph ID and colors from an
// 8-byte CellDynamic record, for tests and CellQuery.
func decodeCellDynamic(b []byte) (id glyphid.ID, fg, bg Color) {
	id = glyphid.ID(uint16(b[0]) | uint16(b[1])<<8)
	fg = Color{b[2], b[3], b[4]}
	bg = Color{b[5], b[6], b[7]}
	return
}
