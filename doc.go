// Package termgrid renders fixed-pitch character grids through a
// WebGPU-capable GPU pipeline: one instanced textured quad per cell,
// drawn from a pre-baked glyph texture array.
//
// # Overview
//
// termgrid targets terminal emulators and other monospace-grid UIs that
// need to redraw tens of thousands of cells per frame without
// re-rasterizing glyphs on the GPU path. A font atlas is built once,
// offline, by the atlasgen package (or the termgrid-atlas command) and
// loaded at startup; the gpu package then renders a grid of cells by
// uploading two small per-cell instance buffers (position, glyph+color)
// and drawing one instanced quad per cell.
//
// # Quick Start
//
//	data, _ := os.ReadFile("font.atlas")
//	a, _ := atlas.Decode(data)
//
//	grid, _ := gpu.NewTerminalGrid(device, a, 80, 24)
//	batch := grid.Batch()
//	batch.SetCell(0, 0, "A", glyphid.StyleBold, fg, bg)
//	batch.Flush()
//	grid.Render(pass)
//
// # Architecture
//
// The repository is organized into:
//   - glyphid: the 16-bit glyph identifier and its bit layout
//   - atlas: the binary atlas wire format (encode/decode)
//   - rasterize: font loading and grapheme-to-bitmap rendering
//   - atlasgen: the offline pipeline that builds an Atlas from fonts
//   - mat4: the small 4x4 matrix helper used for the grid's projection
//   - gpu: the runtime pipeline (resolver, texture array, grid, batch)
//   - cmd/termgrid-atlas: a CLI wrapping atlasgen
//
// # Coordinate System
//
// Cells are addressed row-major from the top-left, origin (0,0) at the
// top-left cell. Pixel coordinates follow the same convention: Y
// increases downward.
package termgrid

// Version information.
const (
	Version      = "0.1.0-alpha.1"
	VersionMajor = 0
	VersionMinor = 1
	VersionPatch = 0
)
