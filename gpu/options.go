// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "fmt"

// GridOptions configures a TerminalGrid at construction time. There are
// no environment variables or files consumed anywhere in this package
// (spec.md §6.2); every knob is a struct field.
type GridOptions struct {
	// InitialPixelWidth, InitialPixelHeight size the grid before the
	// first Resize call. Both must be positive.
	InitialPixelWidth, InitialPixelHeight int

	// FallbackGrapheme substitutes for any grapheme the atlas can't
	// resolve. Defaults to a single space when empty.
	FallbackGrapheme string

	// MissingGlyphLogInterval bounds how often GlyphResolver logs a
	// missing-glyph warning, via golang.org/x/time/rate. Zero selects a
	// package default (one log line per second).
	MissingGlyphLogEventsPerSecond float64
}

// Validate reports the first invalid field found.
func (o *GridOptions) Validate() error {
	if o.InitialPixelWidth <= 0 {
		return fmt.Errorf("gpu: GridOptions.InitialPixelWidth must be positive, got %d", o.InitialPixelWidth)
	}
	if o.InitialPixelHeight <= 0 {
		return fmt.Errorf("gpu: GridOptions.InitialPixelHeight must be positive, got %d", o.InitialPixelHeight)
	}
	return nil
}

// withDefaults returns a copy of o with zero-value optional fields
// replaced by package defaults.
func (o GridOptions) withDefaults() GridOptions {
	if o.FallbackGrapheme == "" {
		o.FallbackGrapheme = " "
	}
	if o.MissingGlyphLogEventsPerSecond <= 0 {
		o.MissingGlyphLogEventsPerSecond = 1
	}
	return o
}
