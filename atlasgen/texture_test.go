// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlasgen

import (
	"testing"

	"github.com/gogpu/termgrid/rasterize"
)

// stubRasterizer renders every cluster except those listed in missing as a
// flat 1x1 (padded to 3x3) opaque bitmap, so texture assembly can be tested
// without a real font.
type stubRasterizer struct {
	metrics rasterize.CellMetrics
	missing map[string]bool
}

func (s *stubRasterizer) CellMetrics() rasterize.CellMetrics { return s.metrics }

func (s *stubRasterizer) Rasterize(cluster string, style rasterize.Style) (*rasterize.RasterResult, error) {
	if s.missing[cluster] {
		return nil, rasterize.ErrMissingGlyph
	}
	w, h := s.metrics.Width, s.metrics.Height
	px := make([]byte, (w+2)*(h+2)*4)
	for i := range px {
		px[i] = 0xFF
	}
	return &rasterize.RasterResult{Pixels: px, Width: w, Height: h}, nil
}

func TestTextureAssemblerPlacesGlyphsAndSkipsMissing(t *testing.T) {
	stub := &stubRasterizer{
		metrics: rasterize.CellMetrics{Width: 4, Height: 6},
		missing: map[string]bool{"?": true},
	}
	assignments := []ClusterAssignment{
		{Cluster: "A", Base: 0x41},
		{Cluster: "?", Base: 0x3F},
	}

	placed, layerCount, err := PlanLayout(assignments, nil)
	if err != nil {
		t.Fatalf("PlanLayout: %v", err)
	}

	asm := NewTextureAssembler(stub)
	pixels, texW, texH, glyphs := asm.Assemble(placed, layerCount)

	wantTexW := uint32(6) * 16 // cellW+2 padding = 6
	wantTexH := uint32(8)
	if texW != wantTexW || texH != wantTexH {
		t.Fatalf("texture size = %dx%d, want %dx%d", texW, texH, wantTexW, wantTexH)
	}
	if len(pixels) != int(texW)*int(texH)*layerCount*4 {
		t.Fatalf("pixel buffer len = %d, want %d", len(pixels), int(texW)*int(texH)*layerCount*4)
	}

	// "A" renders in all 4 styles; "?" is missing in all of them.
	if len(glyphs) != 4 {
		t.Fatalf("got %d glyph records, want 4 (only \"A\"'s styles)", len(glyphs))
	}
	for _, g := range glyphs {
		if g.Symbol != "A" {
			t.Errorf("unexpected glyph record for %q", g.Symbol)
		}
	}

	missing := asm.MissingClusters()
	if len(missing) != 1 || missing[0] != "?" {
		t.Fatalf("MissingClusters() = %v, want [\"?\"]", missing)
	}
}
