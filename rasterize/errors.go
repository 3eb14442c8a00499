// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rasterize

import "errors"

// Sentinel errors for the rasterize package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("rasterize: empty font data")

	// ErrMissingGlyph is returned by Rasterize when the font cannot render
	// the requested grapheme cluster. It is not a fatal error: callers are
	// expected to report the miss upstream and substitute a fallback glyph.
	ErrMissingGlyph = errors.New("rasterize: glyph not found in font")
)
