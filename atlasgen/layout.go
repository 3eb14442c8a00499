// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlasgen

import (
	"github.com/gogpu/termgrid/glyphid"
	"github.com/gogpu/termgrid/rasterize"
)

// PlacedGlyph is one (cluster, style) combination that has been assigned a
// concrete slot in the atlas texture: a packed glyph ID and the layer/
// column derived from it. Non-emoji clusters produce four PlacedGlyphs
// (one per style); emoji clusters produce exactly one (Normal, emoji=true).
type PlacedGlyph struct {
	Cluster string
	ID      glyphid.ID
	Style   rasterize.Style
	IsEmoji bool
	Layer   int
	Col     int
}

// DefaultStyles is the style set a Config with no explicit Styles bakes
// every non-emoji base into: Normal, Bold, Italic, BoldItalic, in that
// order for reproducibility.
var DefaultStyles = []rasterize.Style{
	rasterize.StyleNormal,
	rasterize.StyleBold,
	rasterize.StyleItalic,
	rasterize.StyleBoldItalic,
}

// PlanLayout expands each cluster assignment into its placed glyph slots,
// one per style in styles (a nil or empty styles bakes DefaultStyles), and
// reports how many texture-array layers the resulting IDs span. Emoji
// clusters always produce exactly one placed glyph (Normal, emoji=true)
// regardless of styles, since emoji never carry a style variant.
//
// Layer allocation is dense: layerCount is derived from the highest
// assigned ID, so gaps are permitted only between the last non-emoji
// layer and the first emoji layer (emoji IDs start at 0x800, layer 128),
// exactly as the emoji base region requires.
func PlanLayout(assignments []ClusterAssignment, styles []rasterize.Style) ([]PlacedGlyph, int, error) {
	if len(styles) == 0 {
		styles = DefaultStyles
	}
	placed := make([]PlacedGlyph, 0, len(assignments)*len(styles))
	var maxID glyphid.ID

	for _, a := range assignments {
		if a.IsEmoji {
			id, err := glyphid.Compose(a.Base, glyphid.Style(rasterize.StyleNormal), true, false, false)
			if err != nil {
				return nil, 0, err
			}
			placed = append(placed, PlacedGlyph{
				Cluster: a.Cluster,
				ID:      id,
				Style:   rasterize.StyleNormal,
				IsEmoji: true,
				Layer:   id.Layer(),
				Col:     id.Col(),
			})
			if id > maxID {
				maxID = id
			}
			continue
		}

		for _, style := range styles {
			id, err := glyphid.Compose(a.Base, glyphid.Style(style), false, false, false)
			if err != nil {
				return nil, 0, err
			}
			placed = append(placed, PlacedGlyph{
				Cluster: a.Cluster,
				ID:      id,
				Style:   style,
				Layer:   id.Layer(),
				Col:     id.Col(),
			})
			if id > maxID {
				maxID = id
			}
		}
	}

	layerCount := (int(maxID) + 1 + 15) / 16
	return placed, layerCount, nil
}
