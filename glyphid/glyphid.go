// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glyphid implements the 16-bit glyph identifier used throughout
// termgrid's atlas format and GPU instance data. A glyph ID packs a base
// glyph index together with style and effect flags so the fragment shader
// can recover a texture-array layer and column with shifts and masks alone.
package glyphid

import "fmt"

// ID is a packed 16-bit glyph identifier.
//
// Bit layout (LSB first):
//
//	bits  0-8  (0x01FF): base glyph index, 0-511
//	bit   9    (0x0200): bold
//	bit   10   (0x0400): italic
//	bit   11   (0x0800): emoji
//	bit   12   (0x1000): underline
//	bit   13   (0x2000): strikethrough
//	bits  14-15          reserved, must be zero
type ID uint16

const (
	baseMask          ID = 0x01FF
	boldFlag          ID = 0x0200
	italicFlag        ID = 0x0400
	emojiFlag         ID = 0x0800
	underlineFlag     ID = 0x1000
	strikethroughFlag ID = 0x2000
	reservedMask      ID = 0xC000

	// cellsPerLayer is the number of glyph cells packed into one row of a
	// texture array layer (a 16x1 grid per layer).
	cellsPerLayer = 16
)

// Style is the bold/italic combination carried by a glyph ID.
type Style uint8

const (
	StyleNormal Style = iota
	StyleBold
	StyleItalic
	StyleBoldItalic
)

// bits returns the style's contribution to a packed ID.
func (s Style) bits() ID {
	var b ID
	if s == StyleBold || s == StyleBoldItalic {
		b |= boldFlag
	}
	if s == StyleItalic || s == StyleBoldItalic {
		b |= italicFlag
	}
	return b
}

// Compose builds a packed glyph ID from a base index and the requested
// attributes. It returns an error if base exceeds the 9-bit range.
func Compose(base uint16, style Style, emoji, underline, strikethrough bool) (ID, error) {
	if base > uint16(baseMask) {
		return 0, fmt.Errorf("glyphid: base index %d exceeds %d", base, baseMask)
	}
	id := ID(base) | style.bits()
	if emoji {
		id |= emojiFlag
	}
	if underline {
		id |= underlineFlag
	}
	if strikethrough {
		id |= strikethroughFlag
	}
	return id, nil
}

// Base returns the base glyph index (bits 0-8).
func (id ID) Base() uint16 { return uint16(id & baseMask) }

// Style returns the bold/italic combination encoded in id.
func (id ID) Style() Style {
	var s Style
	if id&boldFlag != 0 {
		s |= StyleBold
	}
	if id&italicFlag != 0 {
		s |= StyleItalic
	}
	return s
}

// IsEmoji reports whether the emoji flag (bit 11) is set.
func (id ID) IsEmoji() bool { return id&emojiFlag != 0 }

// IsUnderline reports whether the underline flag (bit 12) is set.
func (id ID) IsUnderline() bool { return id&underlineFlag != 0 }

// IsStrikethrough reports whether the strikethrough flag (bit 13) is set.
func (id ID) IsStrikethrough() bool { return id&strikethroughFlag != 0 }

// Reserved reports whether either reserved bit (14-15) is set.
func (id ID) Reserved() bool { return id&reservedMask != 0 }

// Validate returns an error if id sets a reserved bit.
func (id ID) Validate() error {
	if id.Reserved() {
		return fmt.Errorf("glyphid: id 0x%04X has a reserved bit set", uint16(id))
	}
	return nil
}

// Layer returns the texture-array layer this glyph lives on.
//
// Layer and Col are derived from the low 12 bits only (base+bold+italic+
// emoji): underline and strikethrough never change which texture cell is
// sampled, since they're drawn as separate line overlays in the fragment
// shader rather than baked into distinct glyph images.
func (id ID) Layer() int {
	return int((id & 0x0FFF) >> 4)
}

// Col returns the column (0-15) within the glyph's layer.
func (id ID) Col() int {
	return int(id & 0x0F)
}
