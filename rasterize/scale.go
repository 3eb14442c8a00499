// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rasterize

import (
	"image"

	"github.com/gogpu/termgrid/rasterize/emoji"
)

// isEmojiRune reports whether r should route a cluster through the emoji
// rasterization path rather than outline rendering.
func isEmojiRune(r rune) bool {
	return emoji.IsEmoji(r)
}

// scaleToFitCentered nearest-neighbor scales src to fit within w x h while
// preserving aspect ratio, centering the result on a transparent canvas of
// exactly w x h. Nearest-neighbor is sufficient here: emoji bitmaps are
// rasterized at 2x the target size specifically so a cheap downscale
// still looks sharp.
func scaleToFitCentered(src image.Image, w, h int) image.Image {
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	if sw == 0 || sh == 0 {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}

	scale := float64(w) / float64(sw)
	if hs := float64(h) / float64(sh); hs < scale {
		scale = hs
	}

	dw := int(float64(sw) * scale)
	dh := int(float64(sh) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	offX := (w - dw) / 2
	offY := (h - dh) / 2

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < dh; y++ {
		sy := sb.Min.Y + int(float64(y)/scale)
		for x := 0; x < dw; x++ {
			sx := sb.Min.X + int(float64(x)/scale)
			dst.Set(offX+x, offY+y, src.At(sx, sy))
		}
	}
	return dst
}
