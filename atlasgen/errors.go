// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlasgen

import "fmt"

// ErrAtlasCapacityExceeded is returned by AssignBaseIDs when the number of
// distinct non-emoji grapheme clusters exceeds the 512-base ceiling fixed
// by the glyph ID scheme (9 base bits).
type ErrAtlasCapacityExceeded struct {
	Requested int
}

func (e *ErrAtlasCapacityExceeded) Error() string {
	return fmt.Sprintf("atlasgen: %d unique non-emoji graphemes requested, exceeds the 512-base capacity", e.Requested)
}

// ConfigError reports an invalid atlasgen.Config field.
type ConfigError struct {
	Field  string
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("atlasgen: invalid config field %q: %s", e.Field, e.Detail)
}
