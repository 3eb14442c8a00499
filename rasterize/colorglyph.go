// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rasterize

import "github.com/gogpu/termgrid/rasterize/emoji"

// ColorFont is an optional interface a ParsedFont implementation can
// satisfy to expose embedded color bitmap glyphs (emoji). It is a
// separate interface from ParsedFont so plain outline-only backends need
// not implement it.
type ColorFont interface {
	HasColorTables() bool
	GlyphType(glyphID uint16) GlyphType
	BitmapGlyph(glyphID uint16, ppem uint16) (*emoji.BitmapGlyph, error)
}

// detectGlyphType determines how a glyph should be rendered. Fonts with
// no embedded color bitmaps, or glyphs those tables don't cover, render
// as outlines.
func detectGlyphType(f ParsedFont, glyphID uint16) GlyphType {
	cf, ok := f.(ColorFont)
	if !ok {
		return GlyphTypeOutline
	}
	return cf.GlyphType(glyphID)
}

func getBitmapGlyph(f ParsedFont, glyphID uint16, ppem uint16) (*emoji.BitmapGlyph, error) {
	cf, ok := f.(ColorFont)
	if !ok {
		return nil, emoji.ErrGlyphNotInBitmap
	}
	return cf.BitmapGlyph(glyphID, ppem)
}
