// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rasterize

import (
	"encoding/binary"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/termgrid/rasterize/emoji"
)

// openTypeParser implements FontParser using golang.org/x/image/font/opentype.
// It is the default backend: termgrid's own rasterization needs (advance,
// bounds, metrics, and drawing a single rune per cell) are a strict subset
// of what opentype.Font already exposes, with no complex shaping required.
type openTypeParser struct{}

func (p *openTypeParser) Parse(data []byte) (ParsedFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rasterize: parsing font: %w", err)
	}
	return &openTypeFont{font: f, raw: data}, nil
}

type openTypeFont struct {
	font *opentype.Font
	raw  []byte

	colorOnce  sync.Once
	colorTable *emoji.Table // nil if the font has no usable CBLC/CBDT tables
}

func (f *openTypeFont) Name() string {
	if name, err := f.font.Name(nil, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}

func (f *openTypeFont) FullName() string {
	if name, err := f.font.Name(nil, sfnt.NameIDFull); err == nil {
		return name
	}
	return ""
}

func (f *openTypeFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

func (f *openTypeFont) GlyphIndex(r rune) uint16 {
	idx, err := f.font.GlyphIndex(nil, r)
	if err != nil {
		return 0
	}
	return uint16(idx)
}

func (f *openTypeFont) GlyphAdvance(glyphIndex uint16, ppem float64) float64 {
	var buf sfnt.Buffer
	advance, err := f.font.GlyphAdvance(&buf, sfnt.GlyphIndex(glyphIndex), fixed.Int26_6(ppem*64), font.HintingFull)
	if err != nil {
		return 0
	}
	return fixedToFloat64(advance)
}

func (f *openTypeFont) GlyphBounds(glyphIndex uint16, ppem float64) Rect {
	var buf sfnt.Buffer
	bounds, _, err := f.font.GlyphBounds(&buf, sfnt.GlyphIndex(glyphIndex), fixed.Int26_6(ppem*64), font.HintingFull)
	if err != nil {
		return Rect{}
	}
	return Rect{
		MinX: fixedToFloat64(bounds.Min.X),
		MinY: fixedToFloat64(bounds.Min.Y),
		MaxX: fixedToFloat64(bounds.Max.X),
		MaxY: fixedToFloat64(bounds.Max.Y),
	}
}

func (f *openTypeFont) Metrics(ppem float64) FontMetrics {
	var buf sfnt.Buffer
	m, err := f.font.Metrics(&buf, fixed.Int26_6(ppem*64), font.HintingFull)
	if err != nil {
		return FontMetrics{}
	}
	return FontMetrics{
		Ascent:    fixedToFloat64(m.Ascent),
		Descent:   fixedToFloat64(m.Descent),
		LineGap:   fixedToFloat64(m.Height) - fixedToFloat64(m.Ascent) + fixedToFloat64(m.Descent),
		XHeight:   fixedToFloat64(m.XHeight),
		CapHeight: fixedToFloat64(m.CapHeight),
	}
}

// face returns an opentype.Face ready for drawing at the given pixel size.
// Callers must Close() the returned face.
func (f *openTypeFont) face(ppem float64) (font.Face, error) {
	return opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    ppem,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

// loadColorTable locates the font's CBLC/CBDT tables in its raw bytes and
// parses them, caching the result (or its absence) for the font's
// lifetime. golang.org/x/image/font/sfnt doesn't expose raw table access,
// so the sfnt table directory is walked directly here; it's a fixed,
// tiny structure (a 12-byte header followed by 16-byte table records)
// that every OpenType/TrueType font shares regardless of outline format.
func (f *openTypeFont) loadColorTable() {
	f.colorOnce.Do(func() {
		cblc := sfntRawTable(f.raw, "CBLC")
		cbdt := sfntRawTable(f.raw, "CBDT")
		if cblc == nil || cbdt == nil {
			return
		}
		table, err := emoji.ParseTable(cblc, cbdt)
		if err != nil {
			return
		}
		f.colorTable = table
	})
}

func (f *openTypeFont) HasColorTables() bool {
	f.loadColorTable()
	return f.colorTable != nil
}

func (f *openTypeFont) GlyphType(glyphIndex uint16) GlyphType {
	f.loadColorTable()
	if f.colorTable == nil || !f.colorTable.HasGlyph(glyphIndex) {
		return GlyphTypeOutline
	}
	return GlyphTypeBitmap
}

func (f *openTypeFont) BitmapGlyph(glyphIndex uint16, ppem uint16) (*emoji.BitmapGlyph, error) {
	f.loadColorTable()
	if f.colorTable == nil {
		return nil, emoji.ErrGlyphNotInBitmap
	}
	return f.colorTable.ExtractBitmap(glyphIndex, ppem)
}

// sfntRawTable returns the raw bytes of the named 4-byte table tag from
// an OpenType/TrueType font file, or nil if the font has no such table.
func sfntRawTable(data []byte, tag string) []byte {
	if len(data) < 12 {
		return nil
	}
	numTables := int(binary.BigEndian.Uint16(data[4:6]))
	const recordSize = 16
	directoryEnd := 12 + numTables*recordSize
	if directoryEnd > len(data) {
		return nil
	}
	for i := 0; i < numTables; i++ {
		rec := data[12+i*recordSize : 12+(i+1)*recordSize]
		if string(rec[0:4]) != tag {
			continue
		}
		offset := binary.BigEndian.Uint32(rec[8:12])
		length := binary.BigEndian.Uint32(rec[12:16])
		if int(offset+length) > len(data) {
			return nil
		}
		return data[offset : offset+length]
	}
	return nil
}
