// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package emoji answers exactly the two questions termgrid's rasterizer
// needs to decide how to render a grapheme cluster: whether a rune should
// route through the color-glyph path at all (IsEmoji, IsEmojiPresentation),
// and, when a font carries embedded color bitmaps, how to pull a single
// glyph's bitmap out of its CBLC/CBDT tables (ExtractBitmap).
//
// It does not attempt run segmentation, ZWJ sequence classification, or
// COLR/CPAL layer compositing: cluster boundaries already come from
// uniseg upstream, and termgrid falls back to outline rendering for any
// glyph that isn't a plain embedded bitmap.
package emoji
