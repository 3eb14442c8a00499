package glyphid

import "testing"

func TestComposeDecompose(t *testing.T) {
	cases := []struct {
		name          string
		base          uint16
		style         Style
		emoji         bool
		underline     bool
		strikethrough bool
		want          ID
	}{
		{"ascii space", 0x20, StyleNormal, false, false, false, 0x0020},
		{"styled A bold+italic+underline", 0x41, StyleBoldItalic, false, true, false, 0x1641},
		{"emoji base", 0, StyleNormal, true, false, false, 0x0800},
		{"strikethrough", 0x41, StyleNormal, false, false, true, 0x2041},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := Compose(tc.base, tc.style, tc.emoji, tc.underline, tc.strikethrough)
			if err != nil {
				t.Fatalf("Compose: %v", err)
			}
			if id != tc.want {
				t.Fatalf("Compose() = 0x%04X, want 0x%04X", uint16(id), uint16(tc.want))
			}
			if id.Base() != tc.base {
				t.Errorf("Base() = %d, want %d", id.Base(), tc.base)
			}
			if id.Style() != tc.style {
				t.Errorf("Style() = %v, want %v", id.Style(), tc.style)
			}
			if id.IsEmoji() != tc.emoji {
				t.Errorf("IsEmoji() = %v, want %v", id.IsEmoji(), tc.emoji)
			}
			if id.IsUnderline() != tc.underline {
				t.Errorf("IsUnderline() = %v, want %v", id.IsUnderline(), tc.underline)
			}
			if id.IsStrikethrough() != tc.strikethrough {
				t.Errorf("IsStrikethrough() = %v, want %v", id.IsStrikethrough(), tc.strikethrough)
			}
		})
	}
}

func TestComposeBaseOutOfRange(t *testing.T) {
	if _, err := Compose(512, StyleNormal, false, false, false); err == nil {
		t.Fatal("expected error for base index 512")
	}
}

func TestLayerAndCol(t *testing.T) {
	cases := []struct {
		id        ID
		wantLayer int
		wantCol   int
	}{
		// ASCII space (0x20): layer 2, col 0.
		{0x0020, 2, 0},
		// Styled 'A' (bold+italic+underline, 0x1641): layer 100, col 1.
		// Underline does not shift the layer: the effect bit sits above
		// the 12-bit mask used for the cell address.
		{0x1641, 100, 1},
		// Emoji base id 0x0800: layer 128, col 0.
		{0x0800, 128, 0},
	}

	for _, tc := range cases {
		if got := tc.id.Layer(); got != tc.wantLayer {
			t.Errorf("ID(0x%04X).Layer() = %d, want %d", uint16(tc.id), got, tc.wantLayer)
		}
		if got := tc.id.Col(); got != tc.wantCol {
			t.Errorf("ID(0x%04X).Col() = %d, want %d", uint16(tc.id), got, tc.wantCol)
		}
	}
}

func TestEffectBitsDoNotAffectLayer(t *testing.T) {
	base, err := Compose(0x41, StyleBold, false, false, false)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	withUnderline := base | underlineFlag
	withStrike := base | strikethroughFlag
	if base.Layer() != withUnderline.Layer() || base.Layer() != withStrike.Layer() {
		t.Fatalf("layer changed: base=%d underline=%d strike=%d", base.Layer(), withUnderline.Layer(), withStrike.Layer())
	}
}

func TestEmojiLayerFloor(t *testing.T) {
	id, err := Compose(0, StyleNormal, true, false, false)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if id.Layer() < 128 {
		t.Fatalf("emoji glyph layer %d, want >= 128", id.Layer())
	}
}

func TestReservedBitsRejected(t *testing.T) {
	id := ID(0x4000)
	if !id.Reserved() {
		t.Fatal("expected reserved bit to be detected")
	}
	if err := id.Validate(); err == nil {
		t.Fatal("expected Validate to reject a reserved bit")
	}
}
