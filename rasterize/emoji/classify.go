// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package emoji

import "sort"

// codepointRange is an inclusive [lo, hi] span of Unicode scalar values.
type codepointRange struct {
	lo, hi rune
}

// presentationRanges lists the blocks whose codepoints default to emoji
// presentation (Emoji_Presentation=Yes in Unicode TR51) without requiring
// a following variation selector: emoticons, pictographs, flags, and skin
// tone modifiers. Ranges are sorted by lo for binary search.
var presentationRanges = []codepointRange{
	{0x1F000, 0x1F02F}, // mahjong tiles
	{0x1F0A0, 0x1F0FF}, // playing cards
	{0x1F1E6, 0x1F1FF}, // regional indicators (flags)
	{0x1F300, 0x1F5FF}, // misc symbols and pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport and map symbols
	{0x1F900, 0x1F9FF}, // supplemental symbols and pictographs
	{0x1FA00, 0x1FA6F}, // symbols and pictographs extended-A
	{0x1FA70, 0x1FAFF}, // symbols and pictographs extended-B
	{0x1F3FB, 0x1F3FF}, // skin tone modifiers
}

// textPresentationRanges lists codepoints that render as emoji only when
// followed by U+FE0F (VARIATION SELECTOR-16): dingbats, weather symbols,
// and a long tail of individually listed characters from TR51's
// text-default emoji set.
var textPresentationRanges = []codepointRange{
	{0x00A9, 0x00A9}, {0x00AE, 0x00AE},
	{0x2122, 0x2122},
	{0x2194, 0x2199}, {0x21A9, 0x21AA},
	{0x203C, 0x203C}, {0x2049, 0x2049},
	{0x2139, 0x2139},
	{0x2600, 0x26FF},
	{0x2702, 0x27B0}, {0x27BF, 0x27BF},
	{0x2934, 0x2935},
	{0x2B05, 0x2B07}, {0x2B1B, 0x2B1C}, {0x2B50, 0x2B50}, {0x2B55, 0x2B55},
	{0x3030, 0x3030}, {0x303D, 0x303D},
	{0x3297, 0x3297}, {0x3299, 0x3299},
}

func init() {
	sort.Slice(presentationRanges, func(i, j int) bool { return presentationRanges[i].lo < presentationRanges[j].lo })
	sort.Slice(textPresentationRanges, func(i, j int) bool { return textPresentationRanges[i].lo < textPresentationRanges[j].lo })
}

func inRanges(ranges []codepointRange, r rune) bool {
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i].hi >= r })
	return i < len(ranges) && ranges[i].lo <= r
}

// IsEmojiPresentation reports whether r defaults to emoji presentation
// without needing a following variation selector.
func IsEmojiPresentation(r rune) bool {
	return inRanges(presentationRanges, r)
}

// isTextPresentation reports whether r is emoji-capable but defaults to
// text presentation, requiring U+FE0F to render as emoji.
func isTextPresentation(r rune) bool {
	return inRanges(textPresentationRanges, r)
}

// IsEmoji reports whether r should route a cluster through emoji
// rendering: either it always presents as emoji, or it is one of the
// text-default characters commonly seen with an explicit emoji variation
// selector.
func IsEmoji(r rune) bool {
	return IsEmojiPresentation(r) || isTextPresentation(r)
}
