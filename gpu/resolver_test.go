// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"testing"

	"github.com/gogpu/termgrid/glyphid"
)

func TestResolveASCIIFastPath(t *testing.T) {
	dev := newFakeDevice()
	ga, err := LoadAtlas(dev, testAtlasBytes(t), GridOptions{InitialPixelWidth: 100, InitialPixelHeight: 100})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}

	id := ga.resolver.Resolve("A", glyphid.StyleBold, false, false)
	if id.Base() != uint16('A') {
		t.Fatalf("Base() = %d, want %d", id.Base(), 'A')
	}
	if id.Style() != glyphid.StyleBold {
		t.Fatalf("Style() = %v, want Bold", id.Style())
	}
	if id.IsEmoji() {
		t.Fatalf("ASCII glyph should never carry the emoji flag")
	}
}

func TestResolveNonASCIIHit(t *testing.T) {
	dev := newFakeDevice()
	ga, err := LoadAtlas(dev, testAtlasBytes(t), GridOptions{InitialPixelWidth: 100, InitialPixelHeight: 100})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}

	id := ga.resolver.Resolve("→", glyphid.StyleNormal, false, false)
	if id.Base() != 200 {
		t.Fatalf("Base() = %d, want 200", id.Base())
	}
	if ga.MissCount() != 0 {
		t.Fatalf("MissCount() = %d, want 0", ga.MissCount())
	}
}

func TestResolveEmojiIgnoresStyle(t *testing.T) {
	dev := newFakeDevice()
	ga, err := LoadAtlas(dev, testAtlasBytes(t), GridOptions{InitialPixelWidth: 100, InitialPixelHeight: 100})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}

	id := ga.resolver.Resolve("\U0001F600", glyphid.StyleBoldItalic, false, false)
	if !id.IsEmoji() {
		t.Fatalf("expected the emoji flag to be set")
	}
	if id.Style() != glyphid.StyleNormal {
		t.Fatalf("Style() = %v, want Normal: emoji glyphs never carry bold/italic", id.Style())
	}
}

func TestResolveMissSubstitutesFallback(t *testing.T) {
	dev := newFakeDevice()
	ga, err := LoadAtlas(dev, testAtlasBytes(t), GridOptions{InitialPixelWidth: 100, InitialPixelHeight: 100})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}

	id := ga.resolver.Resolve("字", glyphid.StyleNormal, false, false)
	if id.Base() != uint16(' ') {
		t.Fatalf("Base() = %d, want the fallback space glyph", id.Base())
	}
	if ga.MissCount() != 1 {
		t.Fatalf("MissCount() = %d, want 1", ga.MissCount())
	}

	ga.resolver.Resolve("字", glyphid.StyleNormal, false, false)
	if ga.MissCount() != 2 {
		t.Fatalf("MissCount() = %d, want 2 (every miss counts even when the log is rate-limited)", ga.MissCount())
	}
}

func TestSymbolForDoesNotConfuseCollidingASCIIAndEmojiBases(t *testing.T) {
	dev := newFakeDevice()
	ga, err := LoadAtlas(dev, testAtlasBytes(t), GridOptions{InitialPixelWidth: 100, InitialPixelHeight: 100})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}

	asciiID, _ := glyphid.Compose(uint16('A'), glyphid.StyleNormal, false, false, false)
	if got := ga.resolver.symbolFor(asciiID); got != "A" {
		t.Fatalf("symbolFor(ASCII base 65) = %q, want %q", got, "A")
	}

	emojiID, _ := glyphid.Compose(65, glyphid.StyleNormal, true, false, false)
	if got := ga.resolver.symbolFor(emojiID); got != "\U0001F601" {
		t.Fatalf("symbolFor(emoji base 65) = %q, want the emoji sharing that base index", got)
	}
}

func TestResolveUnderlineStrikethroughBits(t *testing.T) {
	dev := newFakeDevice()
	ga, err := LoadAtlas(dev, testAtlasBytes(t), GridOptions{InitialPixelWidth: 100, InitialPixelHeight: 100})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}

	id := ga.resolver.Resolve("x", glyphid.StyleNormal, true, true)
	if !id.IsUnderline() || !id.IsStrikethrough() {
		t.Fatalf("expected both underline and strikethrough flags set, got 0x%04X", uint16(id))
	}
}
