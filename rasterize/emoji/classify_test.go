// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package emoji

import "testing"

func TestIsEmojiPresentationCoversEmoticonBlock(t *testing.T) {
	if !IsEmojiPresentation('😀') {
		t.Fatal("U+1F600 GRINNING FACE should default to emoji presentation")
	}
	if !IsEmojiPresentation('🚀') {
		t.Fatal("U+1F680 ROCKET should default to emoji presentation")
	}
	if IsEmojiPresentation('A') {
		t.Fatal("plain ASCII letter must not be classified as emoji-presentation")
	}
}

func TestIsEmojiIncludesTextPresentationCandidates(t *testing.T) {
	if !IsEmoji('☀') {
		t.Fatal("U+2600 BLACK SUN WITH RAYS is emoji-capable via variation selector")
	}
	if !IsEmoji('™') {
		t.Fatal("U+2122 TRADE MARK SIGN is emoji-capable via variation selector")
	}
}

func TestIsEmojiRejectsOrdinaryText(t *testing.T) {
	for _, r := range "Hello, world! 123" {
		if IsEmoji(r) {
			t.Fatalf("rune %q misclassified as emoji", r)
		}
	}
}

func TestSkinToneModifiersClassifyAsEmojiPresentation(t *testing.T) {
	for r := rune(0x1F3FB); r <= 0x1F3FF; r++ {
		if !IsEmojiPresentation(r) {
			t.Fatalf("skin tone modifier %U should be emoji-presentation", r)
		}
	}
}
