// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlasgen

import (
	"github.com/gogpu/termgrid/atlas"
	"github.com/gogpu/termgrid/rasterize"
)

// Config configures one offline atlas build: the font descriptor, the
// rasterizer's font sources, and the character set to bake in.
type Config struct {
	// FontName is stored in the atlas file for informational/debugging
	// purposes; it does not affect glyph resolution.
	FontName string

	// PixelSize is the font size in pixels-per-em the rasterizer renders
	// at (its ppem argument).
	PixelSize float64

	// Faces holds one FontSource per style, indexed by rasterize.Style.
	// Faces[StyleNormal] is required; a nil entry elsewhere falls back to
	// it, exactly as rasterize.NewDefaultRasterizer does.
	Faces [4]*rasterize.FontSource

	// EmojiFont is consulted for clusters classified as emoji. If nil,
	// Faces[StyleNormal] is used instead.
	EmojiFont *rasterize.FontSource

	// CharacterSet is the set of grapheme clusters to bake into the
	// atlas. If nil, it is derived from Text.
	CharacterSet *CharacterSet

	// Text is segmented into a CharacterSet when CharacterSet is nil.
	Text string

	// Styles is the set of styles baked for every non-emoji base glyph.
	// A nil or empty Styles bakes DefaultStyles (all four variants); a
	// single-entry Styles (e.g. just StyleNormal) produces a style-less
	// atlas, e.g. spec.md §8 scenario 1's plain ASCII/128-glyph/8-layer
	// atlas.
	Styles []rasterize.Style
}

// Validate reports the first invalid Config field found.
func (c *Config) Validate() error {
	if c.FontName == "" {
		return &ConfigError{Field: "FontName", Detail: "must not be empty"}
	}
	if c.PixelSize <= 0 {
		return &ConfigError{Field: "PixelSize", Detail: "must be positive"}
	}
	if c.Faces[rasterize.StyleNormal] == nil {
		return &ConfigError{Field: "Faces[StyleNormal]", Detail: "required"}
	}
	if c.CharacterSet == nil && c.Text == "" {
		return &ConfigError{Field: "Text", Detail: "required when CharacterSet is nil"}
	}
	return nil
}

// BuildReport summarizes a Build run: how many clusters were requested,
// how many glyph records were actually encoded, and which cluster names
// the font could not render in any style (see spec.md §4.9: missing
// glyphs are reported upstream and never block atlas production).
type BuildReport struct {
	RequestedClusters int
	EncodedGlyphs     int
	MissingClusters   []string
}

// Build runs the full offline pipeline: classify/assign base IDs, plan
// the layer/column layout, rasterize every (cluster, style) combination,
// and assemble the packed atlas.Atlas ready for atlas.Encode.
func Build(cfg Config) (*atlas.Atlas, *BuildReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	cs := cfg.CharacterSet
	if cs == nil {
		cs = NewCharacterSet(cfg.Text)
	}

	assignments, err := AssignBaseIDs(cs)
	if err != nil {
		return nil, nil, err
	}

	placed, layerCount, err := PlanLayout(assignments, cfg.Styles)
	if err != nil {
		return nil, nil, err
	}

	rasterizer, err := rasterize.NewDefaultRasterizer(cfg.Faces, cfg.EmojiFont, cfg.PixelSize)
	if err != nil {
		return nil, nil, err
	}

	assembler := NewTextureAssembler(rasterizer)
	pixels, texW, texH, glyphs := assembler.Assemble(placed, layerCount)

	metrics := rasterizer.CellMetrics()
	a := &atlas.Atlas{
		FontName:    cfg.FontName,
		FontSize:    float32(cfg.PixelSize),
		TexWidthPx:  texW,
		TexHeightPx: texH,
		TexLayers:   uint32(layerCount),
		CellWidth:   int32(metrics.Width + 2),
		CellHeight:  int32(metrics.Height + 2),
		Glyphs:      glyphs,
		Pixels:      pixels,
	}

	report := &BuildReport{
		RequestedClusters: len(assignments),
		EncodedGlyphs:     len(glyphs),
		MissingClusters:   assembler.MissingClusters(),
	}

	return a, report, nil
}
