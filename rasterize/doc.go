// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rasterize renders grapheme clusters into cell-sized RGBA8
// bitmaps for the atlas builder. It wraps golang.org/x/image/font/opentype
// for outline glyphs and the emoji sub-package for color glyph extraction
// (CBDT/CBLC, sbix, COLR/CPAL bitmap and layer tables).
package rasterize
