// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rasterize

// FontParser is a pluggable font-parsing backend. The default
// implementation parses TrueType/OpenType data with
// golang.org/x/image/font/opentype; callers can register an alternative
// backend (e.g. an embedded-bitmap-only parser for constrained targets).
type FontParser interface {
	Parse(data []byte) (ParsedFont, error)
}

// ParsedFont abstracts a parsed font file enough for the rasterizer to
// resolve glyph indices, advances, bounds and font-wide metrics.
type ParsedFont interface {
	Name() string
	FullName() string
	UnitsPerEm() int
	GlyphIndex(r rune) uint16
	GlyphAdvance(glyphIndex uint16, ppem float64) float64
	GlyphBounds(glyphIndex uint16, ppem float64) Rect
	Metrics(ppem float64) FontMetrics
}

// FontMetrics holds font-level metrics at a specific pixel size.
type FontMetrics struct {
	Ascent    float64
	Descent   float64
	LineGap   float64
	XHeight   float64
	CapHeight float64
}

// parserRegistry holds registered font parsers, keyed by name. The default
// parser is "opentype" (golang.org/x/image/font/opentype).
var parserRegistry = map[string]FontParser{
	"opentype": &openTypeParser{},
}

const defaultParserName = "opentype"

// RegisterParser registers a custom font-parsing backend under name.
func RegisterParser(name string, parser FontParser) {
	parserRegistry[name] = parser
}

func getParser(name string) FontParser {
	if p, ok := parserRegistry[name]; ok {
		return p
	}
	return parserRegistry[defaultParserName]
}
