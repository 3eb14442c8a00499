// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlasgen

import (
	"testing"

	"github.com/gogpu/termgrid/rasterize"
)

func TestPlanLayoutNonEmojiProducesFourStyles(t *testing.T) {
	assignments := []ClusterAssignment{{Cluster: "A", Base: 0x41}}

	placed, _, err := PlanLayout(assignments, nil)
	if err != nil {
		t.Fatalf("PlanLayout: %v", err)
	}
	if len(placed) != 4 {
		t.Fatalf("got %d placed glyphs, want 4", len(placed))
	}
	for _, p := range placed {
		if p.ID.Base() != 0x41 {
			t.Errorf("style %v: base = 0x%02X, want 0x41", p.Style, p.ID.Base())
		}
		if p.IsEmoji {
			t.Errorf("style %v: unexpectedly emoji", p.Style)
		}
	}
}

func TestPlanLayoutEmojiProducesOneEntry(t *testing.T) {
	assignments := []ClusterAssignment{{Cluster: "🚀", Base: 0, IsEmoji: true}}

	placed, layerCount, err := PlanLayout(assignments, nil)
	if err != nil {
		t.Fatalf("PlanLayout: %v", err)
	}
	if len(placed) != 1 {
		t.Fatalf("got %d placed glyphs, want 1", len(placed))
	}
	if placed[0].ID != 0x0800 {
		t.Fatalf("id = 0x%04X, want 0x0800", uint16(placed[0].ID))
	}
	if placed[0].Layer != 128 {
		t.Fatalf("layer = %d, want 128", placed[0].Layer)
	}
	if layerCount != 129 {
		t.Fatalf("layerCount = %d, want 129", layerCount)
	}
}

func TestPlanLayoutASCIISpaceLayerAndCol(t *testing.T) {
	assignments := []ClusterAssignment{{Cluster: " ", Base: 0x20}}

	placed, layerCount, err := PlanLayout(assignments, nil)
	if err != nil {
		t.Fatalf("PlanLayout: %v", err)
	}

	var normal *PlacedGlyph
	for i := range placed {
		if placed[i].Style == rasterize.StyleNormal {
			normal = &placed[i]
		}
	}
	if normal == nil {
		t.Fatal("no Normal-style placement found")
	}
	if normal.Layer != 2 || normal.Col != 0 {
		t.Fatalf("space Normal: layer=%d col=%d, want layer=2 col=0", normal.Layer, normal.Col)
	}
	// Highest placed ID here is bold-italic space (0x20|0x600=0x0620),
	// which still lives in layer 0x62 = 98, so 99 layers cover it.
	if layerCount != 99 {
		t.Fatalf("layerCount = %d, want 99", layerCount)
	}
}

// TestPlanLayoutSingleStyleProducesStylelessAtlas covers spec.md §8
// scenario 1: a plain ASCII character set baked with only StyleNormal
// produces one PlacedGlyph per base (no bold/italic/bold-italic
// expansion) and packs into the 8 layers 128 ASCII glyphs require.
func TestPlanLayoutSingleStyleProducesStylelessAtlas(t *testing.T) {
	assignments := make([]ClusterAssignment, 0, 128)
	for b := 0; b < 128; b++ {
		assignments = append(assignments, ClusterAssignment{Cluster: string(rune(b)), Base: uint16(b)})
	}

	placed, layerCount, err := PlanLayout(assignments, []rasterize.Style{rasterize.StyleNormal})
	if err != nil {
		t.Fatalf("PlanLayout: %v", err)
	}
	if len(placed) != 128 {
		t.Fatalf("got %d placed glyphs, want 128 (one per base, no style expansion)", len(placed))
	}
	for _, p := range placed {
		if p.Style != rasterize.StyleNormal {
			t.Fatalf("base 0x%02X: style = %v, want Normal only", p.ID.Base(), p.Style)
		}
	}
	if layerCount != 8 {
		t.Fatalf("layerCount = %d, want 8", layerCount)
	}
}
