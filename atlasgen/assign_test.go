// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlasgen

import "testing"

func TestAssignBaseIDsASCIIFastPath(t *testing.T) {
	cs := &CharacterSet{ASCII: []string{"A", "a", " ", "!"}}

	assignments, err := AssignBaseIDs(cs)
	if err != nil {
		t.Fatalf("AssignBaseIDs: %v", err)
	}
	if len(assignments) != len(cs.ASCII) {
		t.Fatalf("got %d assignments, want %d", len(assignments), len(cs.ASCII))
	}
	for _, a := range assignments {
		if a.Base != uint16(a.Cluster[0]) {
			t.Errorf("cluster %q: base = %d, want codepoint %d", a.Cluster, a.Base, a.Cluster[0])
		}
		if a.IsEmoji {
			t.Errorf("cluster %q: unexpectedly marked emoji", a.Cluster)
		}
	}
}

func TestAssignBaseIDsUnicodeFillsHolesAroundASCII(t *testing.T) {
	cs := &CharacterSet{
		ASCII:   []string{"A"}, // occupies base 0x41
		Unicode: []string{"é", "ñ"},
	}

	assignments, err := AssignBaseIDs(cs)
	if err != nil {
		t.Fatalf("AssignBaseIDs: %v", err)
	}

	seen := make(map[uint16]string)
	for _, a := range assignments {
		if prev, dup := seen[a.Base]; dup {
			t.Fatalf("base %d assigned to both %q and %q", a.Base, prev, a.Cluster)
		}
		seen[a.Base] = a.Cluster
	}
	if seen[0x41] != "A" {
		t.Fatalf("base 0x41 = %q, want \"A\"", seen[0x41])
	}
	// Unicode assignment must not reuse ASCII's base 0x41.
	for _, c := range cs.Unicode {
		for base, cluster := range seen {
			if cluster == c && base == 0x41 {
				t.Fatalf("unicode cluster %q collided with ASCII base 0x41", c)
			}
		}
	}
}

func TestAssignBaseIDsEmojiSequential(t *testing.T) {
	cs := &CharacterSet{Emoji: []string{"🚀", "🎉", "🔥"}}

	assignments, err := AssignBaseIDs(cs)
	if err != nil {
		t.Fatalf("AssignBaseIDs: %v", err)
	}
	for i, a := range assignments {
		if !a.IsEmoji {
			t.Errorf("assignment %d: expected IsEmoji", i)
		}
		if a.Base != uint16(i) {
			t.Errorf("assignment %d (%q): base = %d, want %d", i, a.Cluster, a.Base, i)
		}
	}
}

func TestAssignBaseIDsCapacityExceeded(t *testing.T) {
	unicode := make([]string, 513)
	for i := range unicode {
		// Distinct 2-rune strings so each counts as its own cluster.
		unicode[i] = string(rune(0x3000+i)) + "x"
	}
	cs := &CharacterSet{Unicode: unicode}

	if _, err := AssignBaseIDs(cs); err == nil {
		t.Fatal("expected ErrAtlasCapacityExceeded")
	}
}

func TestClusterAssignmentComposeEmojiUsesEmojiBit(t *testing.T) {
	a := ClusterAssignment{Cluster: "🚀", Base: 0, IsEmoji: true}
	id, err := a.Compose(0) // style ignored for emoji at the glyphid layer
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if id != 0x0800 {
		t.Fatalf("Compose() = 0x%04X, want 0x0800", uint16(id))
	}
}
