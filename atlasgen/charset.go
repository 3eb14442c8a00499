// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlasgen

import (
	"sort"

	"github.com/rivo/uniseg"

	"github.com/gogpu/termgrid/rasterize/emoji"
)

// CharacterSet is a deduplicated, classified collection of grapheme
// clusters: single-byte ASCII, other non-emoji Unicode graphemes, and
// emoji sequences. Each slice is sorted for deterministic iteration, so
// rebuilding an atlas from the same input text always assigns the same
// base IDs.
type CharacterSet struct {
	ASCII   []string
	Unicode []string
	Emoji   []string
}

// NewCharacterSet segments text into grapheme clusters (UAX #29, via
// uniseg) and classifies each one as ASCII, other Unicode, or emoji.
func NewCharacterSet(text string) *CharacterSet {
	seen := make(map[string]struct{})
	var clusters []string

	state := -1
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		if _, ok := seen[cluster]; ok {
			continue
		}
		seen[cluster] = struct{}{}
		clusters = append(clusters, cluster)
	}

	cs := &CharacterSet{}
	for _, c := range clusters {
		switch {
		case len(c) == 1 && c[0] < 128:
			cs.ASCII = append(cs.ASCII, c)
		case isEmojiCluster(c):
			cs.Emoji = append(cs.Emoji, c)
		default:
			cs.Unicode = append(cs.Unicode, c)
		}
	}

	sort.Strings(cs.ASCII)
	sort.Strings(cs.Unicode)
	sort.Strings(cs.Emoji)
	return cs
}

// NonEmojiCount is the number of distinct base glyphs (ASCII + Unicode)
// that must be assigned a slot in the 0..511 base ID range.
func (cs *CharacterSet) NonEmojiCount() int {
	return len(cs.ASCII) + len(cs.Unicode)
}

func isEmojiCluster(cluster string) bool {
	for _, r := range cluster {
		if emoji.IsEmoji(r) {
			return true
		}
	}
	return false
}
