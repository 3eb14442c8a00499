// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "testing"

func TestGridOptionsValidateRejectsNonPositiveDimensions(t *testing.T) {
	o := GridOptions{InitialPixelWidth: 0, InitialPixelHeight: 100}
	if err := o.Validate(); err == nil {
		t.Fatalf("expected an error for zero InitialPixelWidth")
	}
}

func TestGridOptionsWithDefaults(t *testing.T) {
	o := GridOptions{}.withDefaults()
	if o.FallbackGrapheme != " " {
		t.Fatalf("FallbackGrapheme default = %q, want %q", o.FallbackGrapheme, " ")
	}
	if o.MissingGlyphLogEventsPerSecond != 1 {
		t.Fatalf("MissingGlyphLogEventsPerSecond default = %v, want 1", o.MissingGlyphLogEventsPerSecond)
	}
}
