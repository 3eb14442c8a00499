package atlas

import (
	"bytes"
	"testing"
)

func minimalAtlas() *Atlas {
	cellW, cellH := int32(10), int32(18)
	pixels := make([]byte, int(uint32(cellW)*CellsPerLayer)*int(cellH)*1*4)
	return &Atlas{
		FontName:    "X",
		FontSize:    16,
		TexWidthPx:  uint32(cellW) * CellsPerLayer,
		TexHeightPx: uint32(cellH),
		TexLayers:   1,
		CellWidth:   cellW,
		CellHeight:  cellH,
		Glyphs: []GlyphMetadata{
			{ID: 0x20, Style: StyleNormal, IsEmoji: false, PixelX: 0, PixelY: 0, Symbol: " "},
		},
		Pixels: pixels,
	}
}

func TestRoundTrip(t *testing.T) {
	a := minimalAtlas()

	encoded, err := Encode(a)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if decoded.FontName != a.FontName || decoded.FontSize != a.FontSize {
		t.Fatalf("font metadata mismatch: got %+v", decoded)
	}
	if decoded.CellWidth != a.CellWidth || decoded.CellHeight != a.CellHeight {
		t.Fatalf("cell size mismatch: got %dx%d", decoded.CellWidth, decoded.CellHeight)
	}
	if len(decoded.Glyphs) != 1 || decoded.Glyphs[0] != a.Glyphs[0] {
		t.Fatalf("glyph table mismatch: got %+v", decoded.Glyphs)
	}
	if !bytes.Equal(decoded.Pixels, a.Pixels) {
		t.Fatalf("pixel buffer mismatch")
	}

	reencoded, err := Encode(decoded)
	if err != nil {
		t.Fatalf("re-Encode: %v", err)
	}
	if !bytes.Equal(reencoded, encoded) {
		t.Fatalf("re-encode is not byte-equal to the original encoding")
	}
}

func TestDecodeBadMagic(t *testing.T) {
	data, err := Encode(minimalAtlas())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	data[0] = 0x00

	_, err = Decode(data)
	assertDecodeErrorKind(t, err, BadMagic)
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	data, err := Encode(minimalAtlas())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	data[4] = 0x02

	_, err = Decode(data)
	assertDecodeErrorKind(t, err, UnsupportedVersion)
}

func TestDecodeTruncated(t *testing.T) {
	data, err := Encode(minimalAtlas())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	_, err = Decode(data[:len(data)-10])
	assertDecodeErrorKind(t, err, Truncated)
}

func TestDecodeSizeMismatch(t *testing.T) {
	a := minimalAtlas()
	a.TexHeightPx++ // break tex_height_px == cell_height invariant

	data, err := Encode(a)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	_, err = Decode(data)
	assertDecodeErrorKind(t, err, SizeMismatch)
}

func TestDecodeEmptyInput(t *testing.T) {
	_, err := Decode(nil)
	assertDecodeErrorKind(t, err, Truncated)
}

func assertDecodeErrorKind(t *testing.T, err error, want DecodeErrorKind) {
	t.Helper()
	de, ok := err.(*DecodeError)
	if !ok {
		t.Fatalf("error is %T, want *DecodeError", err)
	}
	if de.Kind != want {
		t.Fatalf("DecodeError.Kind = %v, want %v", de.Kind, want)
	}
}
