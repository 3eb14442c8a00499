// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"golang.org/x/time/rate"

	"github.com/gogpu/termgrid"
	"github.com/gogpu/termgrid/atlas"
	"github.com/gogpu/termgrid/glyphid"
)

// GlyphResolver translates a (grapheme, style, effect) triple into a
// packed glyphid.ID without allocation in the hot path (spec.md §4.5).
// It is a pure function of a mapping frozen at atlas load: no locking is
// needed because the map is never written to after construction.
type GlyphResolver struct {
	// nonASCIIBase maps a non-ASCII grapheme cluster to its base ID and
	// emoji flag. ASCII clusters never enter this map; they use the fast
	// path in Resolve instead.
	nonASCIIBase map[string]resolvedBase

	// symbolByBase and emojiSymbolByBase reverse base ID to grapheme, for
	// CellQuery. Both are indexed by the 9-bit base only (style/effect
	// bits are stripped by callers), but kept as separate tables: emoji
	// base indices are assigned independently of non-emoji ones and start
	// back at 0, so a single shared map would let an emoji collide with
	// an ASCII/Unicode base of the same number.
	symbolByBase      map[uint16]string
	emojiSymbolByBase map[uint16]string

	fallbackBase    uint16
	fallbackIsEmoji bool

	missLimiter *rate.Limiter
	missCount   uint64
}

type resolvedBase struct {
	base    uint16
	isEmoji bool
}

// newGlyphResolver builds a GlyphResolver from a decoded atlas's glyph
// table. Only one style variant per cluster needs to be indexed here
// since style is applied at resolve time, not baked into the map key.
func newGlyphResolver(a *atlas.Atlas, opts GridOptions) (*GlyphResolver, error) {
	m := make(map[string]resolvedBase, len(a.Glyphs))
	symbols := make(map[uint16]string, len(a.Glyphs))
	emojiSymbols := make(map[uint16]string)
	for _, g := range a.Glyphs {
		id := glyphid.ID(g.ID)
		if g.IsEmoji {
			emojiSymbols[id.Base()] = g.Symbol
		} else {
			symbols[id.Base()] = g.Symbol
		}
		if len(g.Symbol) == 1 && g.Symbol[0] < 128 {
			continue
		}
		if _, ok := m[g.Symbol]; ok {
			continue
		}
		m[g.Symbol] = resolvedBase{base: id.Base(), isEmoji: g.IsEmoji}
	}

	fallback := resolvedBase{base: uint16(' ')}
	if len(opts.FallbackGrapheme) == 1 && opts.FallbackGrapheme[0] < 128 {
		fallback.base = uint16(opts.FallbackGrapheme[0])
	} else if rb, ok := m[opts.FallbackGrapheme]; ok {
		fallback = rb
	}

	return &GlyphResolver{
		nonASCIIBase:      m,
		symbolByBase:      symbols,
		emojiSymbolByBase: emojiSymbols,
		fallbackBase:      fallback.base,
		fallbackIsEmoji:   fallback.isEmoji,
		missLimiter:       rate.NewLimiter(rate.Limit(opts.MissingGlyphLogEventsPerSecond), 1),
	}, nil
}

// symbolFor returns the grapheme cluster id's base ID renders as an
// ASCII fast-path glyph, or via the atlas's glyph table otherwise. Used
// by CellQuery to recover text content from packed glyph IDs.
func (r *GlyphResolver) symbolFor(id glyphid.ID) string {
	base := id.Base()
	if id.IsEmoji() {
		return r.emojiSymbolByBase[base]
	}
	if sym, ok := r.symbolByBase[base]; ok && sym != "" {
		return sym
	}
	if base < 128 {
		return string(rune(base))
	}
	return ""
}

// Resolve composes the packed glyph ID for one cell's (grapheme, style,
// effect). ASCII graphemes take the fast path from spec.md §4.5:
// id = codepoint | style_mask | effect_mask. Non-ASCII graphemes are
// looked up in the frozen map; a miss substitutes the fallback grapheme
// and records a rate-limited log line rather than failing the call.
func (r *GlyphResolver) Resolve(grapheme string, style glyphid.Style, underline, strikethrough bool) glyphid.ID {
	if len(grapheme) == 1 && grapheme[0] < 128 {
		id, _ := glyphid.Compose(uint16(grapheme[0]), style, false, underline, strikethrough)
		return id
	}

	rb, ok := r.nonASCIIBase[grapheme]
	if !ok {
		r.recordMiss(grapheme)
		rb = resolvedBase{base: r.fallbackBase, isEmoji: r.fallbackIsEmoji}
	}

	effStyle := style
	if rb.isEmoji {
		effStyle = glyphid.StyleNormal
	}
	id, _ := glyphid.Compose(rb.base, effStyle, rb.isEmoji, underline, strikethrough)
	return id
}

func (r *GlyphResolver) recordMiss(grapheme string) {
	r.missCount++
	if r.missLimiter.Allow() {
		termgrid.Logger().Warn("gpu: glyph resolver miss, substituting fallback",
			"grapheme", grapheme, "total_misses", r.missCount)
	}
}

// MissCount returns the total number of resolver misses since load,
// regardless of how many were actually logged (spec.md §7:
// MissingGlyphReported is "non-fatal, surfaced via an atlas counter").
func (r *GlyphResolver) MissCount() uint64 { return r.missCount }
