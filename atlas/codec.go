// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

var magic = [4]byte{0xBA, 0xB1, 0xF0, 0xA5}

const formatVersion = 0x01

// Encode serializes an Atlas to the wire-exact binary format described by
// the atlas file contract. Encoding is deterministic: no timestamps or
// random salts are written, and compression runs at the best level the
// implementation offers.
func Encode(a *Atlas) ([]byte, error) {
	var buf bytes.Buffer

	buf.Write(magic[:])
	buf.WriteByte(formatVersion)

	name := []byte(a.FontName)
	if len(name) > 0xFF {
		return nil, fmt.Errorf("atlas: font name too long (%d bytes)", len(name))
	}
	buf.WriteByte(byte(len(name)))
	buf.Write(name)

	writeLE(&buf, a.FontSize)
	writeLE(&buf, a.TexWidthPx)
	writeLE(&buf, a.TexHeightPx)
	writeLE(&buf, a.TexLayers)
	writeLE(&buf, a.CellWidth)
	writeLE(&buf, a.CellHeight)

	if len(a.Glyphs) > 0xFFFF {
		return nil, fmt.Errorf("atlas: too many glyphs (%d)", len(a.Glyphs))
	}
	writeLE(&buf, uint16(len(a.Glyphs)))

	for _, g := range a.Glyphs {
		writeLE(&buf, g.ID)
		buf.WriteByte(byte(g.Style))
		if g.IsEmoji {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
		writeLE(&buf, g.PixelX)
		writeLE(&buf, g.PixelY)

		sym := []byte(g.Symbol)
		if len(sym) > 0xFF {
			return nil, fmt.Errorf("atlas: symbol %q too long", g.Symbol)
		}
		buf.WriteByte(byte(len(sym)))
		buf.Write(sym)
	}

	var pixelBuf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&pixelBuf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("atlas: zlib writer: %w", err)
	}
	if _, err := zw.Write(a.Pixels); err != nil {
		return nil, fmt.Errorf("atlas: compressing pixels: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("atlas: closing zlib writer: %w", err)
	}

	writeLE(&buf, uint32(pixelBuf.Len()))
	buf.Write(pixelBuf.Bytes())

	return buf.Bytes(), nil
}

func writeLE(buf *bytes.Buffer, v any) {
	_ = binary.Write(buf, binary.LittleEndian, v)
}

// cursor reads sequentially from a byte slice with explicit bounds checks
// before every read, so that a truncated or adversarial input always fails
// with Truncated instead of panicking or over-reading.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) remaining() int { return len(c.data) - c.pos }

func (c *cursor) need(n int) error {
	if n < 0 || c.remaining() < n {
		return newDecodeError(Truncated, "need %d bytes at offset %d, have %d", n, c.pos, c.remaining())
	}
	return nil
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) u8() (uint8, error) {
	b, err := c.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) i32() (int32, error) {
	v, err := c.u32()
	return int32(v), err
}

func (c *cursor) f32() (float32, error) {
	v, err := c.u32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (c *cursor) string(n int) (string, error) {
	b, err := c.bytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses the wire-exact binary atlas format, bounds-checking every
// read against the remaining input before it happens. It never allocates a
// buffer sized from an attacker-controlled length without first confirming
// that many bytes actually remain.
func Decode(data []byte) (*Atlas, error) {
	c := &cursor{data: data}

	magicBytes, err := c.bytes(4)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(magicBytes, magic[:]) {
		return nil, newDecodeError(BadMagic, "got % X", magicBytes)
	}

	version, err := c.u8()
	if err != nil {
		return nil, err
	}
	if version != formatVersion {
		return nil, newDecodeError(UnsupportedVersion, "got %d, want %d", version, formatVersion)
	}

	nameLen, err := c.u8()
	if err != nil {
		return nil, err
	}
	name, err := c.string(int(nameLen))
	if err != nil {
		return nil, err
	}

	fontSize, err := c.f32()
	if err != nil {
		return nil, err
	}
	texW, err := c.u32()
	if err != nil {
		return nil, err
	}
	texH, err := c.u32()
	if err != nil {
		return nil, err
	}
	texLayers, err := c.u32()
	if err != nil {
		return nil, err
	}
	cellW, err := c.i32()
	if err != nil {
		return nil, err
	}
	cellH, err := c.i32()
	if err != nil {
		return nil, err
	}

	if texW != uint32(cellW)*CellsPerLayer {
		return nil, newDecodeError(SizeMismatch, "tex_width_px %d != cell_width %d * %d", texW, cellW, CellsPerLayer)
	}
	if texH != uint32(cellH) {
		return nil, newDecodeError(SizeMismatch, "tex_height_px %d != cell_height %d", texH, cellH)
	}

	glyphCount, err := c.u16()
	if err != nil {
		return nil, err
	}

	glyphs := make([]GlyphMetadata, 0, glyphCount)
	seenIDs := make(map[uint16]struct{}, glyphCount)
	for i := 0; i < int(glyphCount); i++ {
		id, err := c.u16()
		if err != nil {
			return nil, err
		}
		styleByte, err := c.u8()
		if err != nil {
			return nil, err
		}
		isEmojiByte, err := c.u8()
		if err != nil {
			return nil, err
		}
		px, err := c.i32()
		if err != nil {
			return nil, err
		}
		py, err := c.i32()
		if err != nil {
			return nil, err
		}
		symLen, err := c.u8()
		if err != nil {
			return nil, err
		}
		sym, err := c.string(int(symLen))
		if err != nil {
			return nil, err
		}

		if _, dup := seenIDs[id]; dup {
			return nil, newDecodeError(SizeMismatch, "duplicate glyph id 0x%04X", id)
		}
		seenIDs[id] = struct{}{}

		isEmoji := isEmojiByte != 0
		if isEmoji && (styleByte != 0 || id&0x0800 == 0) {
			return nil, newDecodeError(SizeMismatch, "emoji glyph 0x%04X has style %d or missing emoji bit", id, styleByte)
		}

		glyphs = append(glyphs, GlyphMetadata{
			ID:      id,
			Style:   Style(styleByte),
			IsEmoji: isEmoji,
			PixelX:  px,
			PixelY:  py,
			Symbol:  sym,
		})
	}

	pixelLen, err := c.u32()
	if err != nil {
		return nil, err
	}
	compressed, err := c.bytes(int(pixelLen))
	if err != nil {
		return nil, err
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, newDecodeError(InflateFailed, "%v", err)
	}
	pixels, err := io.ReadAll(zr)
	if err != nil {
		return nil, newDecodeError(InflateFailed, "%v", err)
	}
	if err := zr.Close(); err != nil {
		return nil, newDecodeError(InflateFailed, "%v", err)
	}

	wantPixelLen := uint64(texW) * uint64(texH) * uint64(texLayers) * 4
	if uint64(len(pixels)) != wantPixelLen {
		return nil, newDecodeError(SizeMismatch, "inflated pixel buffer is %d bytes, want %d", len(pixels), wantPixelLen)
	}

	return &Atlas{
		FontName:    name,
		FontSize:    fontSize,
		TexWidthPx:  texW,
		TexHeightPx: texH,
		TexLayers:   texLayers,
		CellWidth:   cellW,
		CellHeight:  cellH,
		Glyphs:      glyphs,
		Pixels:      pixels,
	}, nil
}
