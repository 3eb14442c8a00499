// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlasgen

import "github.com/gogpu/termgrid/glyphid"

const maxNonEmojiBases = 512

// ClusterAssignment maps a single grapheme cluster to the base ID that
// every style variant of that cluster shares.
type ClusterAssignment struct {
	Cluster string
	Base    uint16
	IsEmoji bool
}

// AssignBaseIDs assigns base glyph IDs deterministically: ASCII clusters
// map to their own codepoint, remaining non-emoji clusters fill holes in
// 0..511 in sorted order, and emoji clusters are assigned sequentially
// starting at 0 within the emoji region (their stored ID is 0x800|i).
//
// Returns ErrAtlasCapacityExceeded if more than 512 non-emoji bases would
// be produced.
func AssignBaseIDs(cs *CharacterSet) ([]ClusterAssignment, error) {
	if n := cs.NonEmojiCount(); n > maxNonEmojiBases {
		return nil, &ErrAtlasCapacityExceeded{Requested: n}
	}

	used := make(map[uint16]struct{}, len(cs.ASCII))
	for _, c := range cs.ASCII {
		used[uint16(c[0])] = struct{}{}
	}

	assignments := make([]ClusterAssignment, 0, cs.NonEmojiCount()+len(cs.Emoji))
	for _, c := range cs.ASCII {
		assignments = append(assignments, ClusterAssignment{Cluster: c, Base: uint16(c[0])})
	}

	nextID := uint16(0)
	for _, c := range cs.Unicode {
		for {
			if _, taken := used[nextID]; !taken {
				break
			}
			nextID++
		}
		used[nextID] = struct{}{}
		assignments = append(assignments, ClusterAssignment{Cluster: c, Base: nextID})
		nextID++
	}

	for i, c := range cs.Emoji {
		// Base holds the 9-bit index within the emoji region (0..511); the
		// 0x0800 emoji flag is applied by Compose, not folded in here, so
		// that Base always satisfies glyphid.Compose's precondition.
		assignments = append(assignments, ClusterAssignment{Cluster: c, Base: uint16(i), IsEmoji: true})
	}

	return assignments, nil
}

// Compose derives the full glyph ID stored in an atlas record: the base
// ID OR-ed with the style and emoji bits (no effect bits, which are only
// ever applied at render time via glyphid.Compose).
func (a ClusterAssignment) Compose(style glyphid.Style) (glyphid.ID, error) {
	return glyphid.Compose(a.Base, style, a.IsEmoji, false, false)
}
