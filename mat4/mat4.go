// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mat4 provides the small amount of 4x4 matrix math the terminal
// grid's vertex shader needs: a single orthographic projection matrix,
// recomputed whenever the drawing surface resizes.
package mat4

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mat4 is a column-major 4x4 float32 matrix, laid out exactly as std140
// expects a mat4 uniform: 16 consecutive float32s, column by column.
type Mat4 = mgl32.Mat4

// Ortho builds the orthographic projection that maps a pixel-space
// surface of size (pixelW, pixelH), origin top-left, Y growing downward,
// onto OpenGL/WebGPU-style NDC (X,Y in [-1,1], origin center, Y growing
// upward).
//
// Passing top=pixelH and bottom=0 to a conventional bottom-left-origin
// Ortho would leave Y unflipped; here the terminal grid's cell coordinates
// grow downward, so bottom and top are swapped to invert Y as part of the
// projection itself, matching spec.md §4.6's "y inverted" requirement.
func Ortho(pixelW, pixelH float32) Mat4 {
	return mgl32.Ortho2D(0, pixelW, pixelH, 0)
}

// Bytes returns m's 16 float32 components as a little-endian byte slice,
// ready to copy into a std140 uniform buffer.
func Bytes(m Mat4) []byte {
	out := make([]byte, 0, 16*4)
	for _, f := range m {
		out = appendFloat32LE(out, f)
	}
	return out
}

func appendFloat32LE(b []byte, f float32) []byte {
	bits := math.Float32bits(f)
	return append(b, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
}
