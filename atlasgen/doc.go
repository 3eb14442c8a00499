// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package atlasgen implements the offline pipeline that turns a font
// descriptor and a set of grapheme clusters into a packed atlas.Atlas:
// CharacterSet classification, base ID assignment, layer/column layout,
// rasterization, and texture assembly.
package atlasgen
