// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rasterize

import (
	"fmt"
	"os"
)

// FontSource is a loaded font file ready for rasterization. FontSource is
// heavyweight (it retains the parsed font and the raw bytes) and should be
// created once per style variant and reused.
//
// FontSource must not be copied after creation; doing so panics the next
// time any method is called (the Ebitengine copy-protection pattern).
type FontSource struct {
	addr *FontSource

	data   []byte
	parsed ParsedFont
	name   string
}

// NewFontSource parses font data (TTF or OTF) with the default backend.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	parsed, err := getParser(defaultParserName).Parse(data)
	if err != nil {
		return nil, err
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	s := &FontSource{data: dataCopy, parsed: parsed}
	s.addr = s
	s.name = extractFontName(parsed)
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- font file path is provided by the host application.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rasterize: reading font file: %w", err)
	}
	return NewFontSource(data)
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Parsed returns the parsed font for rasterization operations.
func (s *FontSource) Parsed() ParsedFont {
	s.copyCheck()
	return s.parsed
}

func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("rasterize: FontSource must not be copied by value")
	}
}

func extractFontName(parsed ParsedFont) string {
	if name := parsed.Name(); name != "" {
		return name
	}
	if full := parsed.FullName(); full != "" {
		return full
	}
	return "Unknown Font"
}
