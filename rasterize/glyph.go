// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rasterize

import (
	"image"
	"image/draw"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// CellMetrics describes the fixed cell dimensions and decoration positions
// a Rasterizer has derived from its font(s). They are computed once, from
// the full-block character U+2588, and shared by every glyph rasterized
// at that pixel size.
type CellMetrics struct {
	// Width, Height are the unpadded cell dimensions in pixels:
	// ceil(advance) and ceil(ascent+descent) respectively.
	Width, Height int

	// UnderlinePos, StrikethroughPos are vertical fractions of Height,
	// measured from the top of the cell, where the decoration line is
	// centered.
	UnderlinePos, UnderlineThickness         float32
	StrikethroughPos, StrikethroughThickness float32
}

// RasterResult is the output of rasterizing one grapheme cluster at one
// style: an RGBA8 bitmap sized to include 1px of transparent padding on
// every side, plus the origin the glyph should be composited at within a
// padded cell.
type RasterResult struct {
	// Pixels is (Width+2)*(Height+2)*4 bytes of RGBA8, where Width/Height
	// are the Rasterizer's CellMetrics.
	Pixels []byte
	Width  int
	Height int

	// BaselineX, BaselineY is the pen origin within Pixels the glyph was
	// drawn relative to.
	BaselineX, BaselineY float64

	IsEmoji bool
}

// Rasterizer renders grapheme clusters into cell-sized RGBA8 bitmaps. It
// is the injected capability boundary between a system font engine and
// the atlas builder: "given a style and a grapheme cluster, produce an
// RGBA bitmap of at most cell-size pixels."
type Rasterizer interface {
	// CellMetrics returns the fixed cell geometry this rasterizer uses,
	// derived once from U+2588 at construction time.
	CellMetrics() CellMetrics

	// Rasterize renders cluster at the given style. It returns
	// ErrMissingGlyph (wrapped) if the font cannot render the cluster;
	// this is expected to happen and must not abort atlas production.
	Rasterize(cluster string, style Style) (*RasterResult, error)
}

// DefaultRasterizer is the default Rasterizer, backed by up to four
// FontSource style variants (regular/bold/italic/bold-italic) plus an
// optional emoji font consulted when the requested cluster is a color
// glyph.
type DefaultRasterizer struct {
	faces   [4]*FontSource // indexed by Style
	emoji   *FontSource    // optional; falls back to faces[StyleNormal]
	ppem    float64
	metrics CellMetrics
}

// NewDefaultRasterizer builds a DefaultRasterizer from one FontSource per
// style (a nil entry falls back to StyleNormal) and an optional emoji
// font, all rasterized at ppem pixels per em.
func NewDefaultRasterizer(faces [4]*FontSource, emojiFont *FontSource, ppem float64) (*DefaultRasterizer, error) {
	if faces[StyleNormal] == nil {
		return nil, ErrEmptyFontData
	}
	for i := range faces {
		if faces[i] == nil {
			faces[i] = faces[StyleNormal]
		}
	}

	r := &DefaultRasterizer{faces: faces, emoji: emojiFont, ppem: ppem}
	metrics, err := r.measureCell()
	if err != nil {
		return nil, err
	}
	r.metrics = metrics
	return r, nil
}

func (r *DefaultRasterizer) CellMetrics() CellMetrics { return r.metrics }

// measureCell rasterizes U+2588 (FULL BLOCK) to derive cell dimensions and
// decoration positions, per the rasterizer contract: cell width is
// ceil(advance), cell height is ceil(ascent+descent), both rounded up.
func (r *DefaultRasterizer) measureCell() (CellMetrics, error) {
	parsed := r.faces[StyleNormal].Parsed()
	gid := parsed.GlyphIndex('█')
	advance := parsed.GlyphAdvance(gid, r.ppem)
	fm := parsed.Metrics(r.ppem)

	width := ceilPositive(advance)
	height := ceilPositive(fm.Ascent + fm.Descent)
	if width <= 0 || height <= 0 {
		return CellMetrics{}, ErrMissingGlyph
	}

	// Underline sits just below the baseline; strikethrough at roughly the
	// x-height midpoint. Both expressed as a fraction of cell height
	// measured from the top of the cell.
	ascentFrac := fm.Ascent / (fm.Ascent + fm.Descent)
	underlineFrac := float32(ascentFrac + 0.08)
	strikeFrac := float32(ascentFrac - (fm.XHeight / 2 / (fm.Ascent + fm.Descent)))

	return CellMetrics{
		Width:                  width,
		Height:                 height,
		UnderlinePos:           clamp01(underlineFrac),
		UnderlineThickness:     0.06,
		StrikethroughPos:       clamp01(strikeFrac),
		StrikethroughThickness: 0.06,
	}, nil
}

func (r *DefaultRasterizer) Rasterize(cluster string, style Style) (*RasterResult, error) {
	runes := []rune(cluster)
	if len(runes) == 0 {
		return nil, ErrMissingGlyph
	}

	if isEmojiCluster(runes) {
		return r.rasterizeEmoji(cluster)
	}

	return r.rasterizeOutline(cluster, style)
}

func (r *DefaultRasterizer) rasterizeOutline(cluster string, style Style) (*RasterResult, error) {
	source := r.faces[style]
	otFont, ok := source.Parsed().(*openTypeFont)
	if !ok {
		return nil, ErrMissingGlyph
	}

	face, err := otFont.face(r.ppem)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	runes := []rune(cluster)
	gid := otFont.GlyphIndex(runes[0])
	if gid == 0 {
		return nil, ErrMissingGlyph
	}

	w, h := r.metrics.Width, r.metrics.Height
	padded := image.Rect(0, 0, w+2, h+2)
	dst := image.NewRGBA(padded)

	// Baseline sits one padding pixel down plus the font's ascent.
	fm := otFont.Metrics(r.ppem)
	baselineX := 1.0
	baselineY := 1.0 + fm.Ascent

	mask := image.NewAlpha(padded)
	drawer := &xfont.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(int(baselineX), int(baselineY)),
	}
	drawer.DrawString(cluster)

	draw.DrawMask(dst, dst.Bounds(), image.White, image.Point{}, mask, image.Point{}, draw.Over)

	return &RasterResult{
		Pixels:    dst.Pix,
		Width:     w,
		Height:    h,
		BaselineX: baselineX,
		BaselineY: baselineY,
		IsEmoji:   false,
	}, nil
}

// rasterizeEmoji renders an emoji cluster at 2x the nominal pixel size
// (for sharper bitmap-strike selection), then scales the result to fit
// within the cell while preserving aspect ratio and centering it,
// preserving alpha so the shader can blend around the glyph.
func (r *DefaultRasterizer) rasterizeEmoji(cluster string) (*RasterResult, error) {
	source := r.emoji
	if source == nil {
		source = r.faces[StyleNormal]
	}

	otFont, ok := source.Parsed().(*openTypeFont)
	if !ok {
		return nil, ErrMissingGlyph
	}

	runes := []rune(cluster)
	gid := otFont.GlyphIndex(runes[0])
	if gid == 0 {
		return nil, ErrMissingGlyph
	}

	const emojiScale = 2
	ppem := r.ppem * emojiScale

	var rendered image.Image
	switch detectGlyphType(otFont, gid) {
	case GlyphTypeBitmap:
		bmp, err := getBitmapGlyph(otFont, gid, uint16(ppem))
		if err != nil {
			return nil, ErrMissingGlyph
		}
		img, err := bmp.Decode()
		if err != nil {
			return nil, ErrMissingGlyph
		}
		rendered = img
	default:
		return r.rasterizeOutline(cluster, StyleNormal)
	}

	w, h := r.metrics.Width, r.metrics.Height
	scaled := scaleToFitCentered(rendered, w, h)

	padded := image.NewRGBA(image.Rect(0, 0, w+2, h+2))
	draw.Draw(padded, image.Rect(1, 1, 1+w, 1+h), scaled, image.Point{}, draw.Over)

	return &RasterResult{
		Pixels:    padded.Pix,
		Width:     w,
		Height:    h,
		BaselineX: 1,
		BaselineY: 1,
		IsEmoji:   true,
	}, nil
}

func isEmojiCluster(runes []rune) bool {
	for _, r := range runes {
		if isEmojiRune(r) {
			return true
		}
	}
	return false
}

func ceilPositive(v float64) int {
	i := int(v)
	if float64(i) < v {
		i++
	}
	return i
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
