// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/rivo/uniseg"

	"github.com/gogpu/termgrid/glyphid"
)

// Batch collects cell mutations against a TerminalGrid's host-side
// CellDynamic shadow and synchronizes them to the GPU on Flush (spec.md
// §4.7). Only one Batch may be open per grid at a time; obtaining a
// second one fails with ErrBatchInProgress.
type Batch struct {
	grid *TerminalGrid

	// dirtyMin/dirtyMax track the smallest contiguous byte range covering
	// every write since the last Flush, so Flush can upload exactly that
	// range instead of the whole buffer. dirtyMin == -1 means nothing is
	// dirty yet.
	dirtyMin, dirtyMax int

	flushed bool
}

// Clear writes {id: space, fg: bg, bg: bg} to every cell and marks the
// whole buffer dirty.
func (b *Batch) Clear(bg Color) {
	v := CellValue{Grapheme: " ", Fg: bg, Bg: bg}
	cols, rows := b.grid.colsWide, b.grid.rowsHigh
	for i := 0; i < cols*rows; i++ {
		v.encode(b.grid.shadow[i*cellDynamicSize:], b.grid.atlas.resolver)
	}
	b.markDirty(0, len(b.grid.shadow))
}

// Cell resolves v's glyph ID and writes its 8-byte record at (x,y).
// Out-of-bounds coordinates fail with ErrOutOfBounds and leave the batch
// otherwise usable.
func (b *Batch) Cell(x, y int, v CellValue) error {
	idx, err := b.index(x, y)
	if err != nil {
		return err
	}
	off := idx * cellDynamicSize
	v.encode(b.grid.shadow[off:], b.grid.atlas.resolver)
	b.markDirty(off, off+cellDynamicSize)
	return nil
}

// CellWrite is one (x, y, value) triple for the bulk Cells call.
type CellWrite struct {
	X, Y  int
	Value CellValue
}

// Cells applies a sequence of cell writes, stopping at the first
// out-of-bounds coordinate and returning its error; writes before the
// failure remain applied, matching Cell's per-call semantics.
func (b *Batch) Cells(writes []CellWrite) error {
	for _, w := range writes {
		if err := b.Cell(w.X, w.Y, w.Value); err != nil {
			return err
		}
	}
	return nil
}

// Text segments str into grapheme clusters (UAX #29) and writes one cell
// per cluster left-to-right from (x, y), stopping at the end of the row.
// Tab and newline are not special; every cluster consumes one cell.
func (b *Batch) Text(x, y int, str string, style glyphid.Style, underline, strikethrough bool, fg, bg Color) error {
	cols, _ := b.grid.TerminalSize()
	col := x

	state := -1
	for len(str) > 0 {
		if col >= cols {
			break
		}
		var cluster string
		cluster, str, _, state = uniseg.FirstGraphemeClusterInString(str, state)
		if err := b.Cell(col, y, CellValue{
			Grapheme:      cluster,
			Style:         style,
			Underline:     underline,
			Strikethrough: strikethrough,
			Fg:            fg,
			Bg:            bg,
		}); err != nil {
			return err
		}
		col++
	}
	return nil
}

// Fill writes v to every cell in the rectangle [x, x+w) x [y, y+h), which
// must fit entirely inside the grid.
func (b *Batch) Fill(x, y, w, h int, v CellValue) error {
	cols, rows := b.grid.TerminalSize()
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > cols || y+h > rows {
		return newError(CategoryBatch, "fill", ErrOutOfBounds)
	}
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			if err := b.Cell(col, row, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Highlight swaps foreground and background colors for every cell in the
// rectangle, without touching the resolved glyph or its style/effect
// bits. Supplements spec.md's core with a selection-highlight primitive
// (see SPEC_FULL.md section D), grounded on beamterm-renderer's
// flip_selected_cell_colors.
func (b *Batch) Highlight(x, y, w, h int) error {
	cols, rows := b.grid.TerminalSize()
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > cols || y+h > rows {
		return newError(CategoryBatch, "highlight", ErrOutOfBounds)
	}
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			idx, _ := b.index(col, row)
			off := idx * cellDynamicSize
			rec := b.grid.shadow[off : off+cellDynamicSize]
			rec[2], rec[5] = rec[5], rec[2]
			rec[3], rec[6] = rec[6], rec[3]
			rec[4], rec[7] = rec[7], rec[4]
		}
	}
	b.markDirty(0, len(b.grid.shadow))
	return nil
}

// ClearHighlight is the inverse of Highlight over the same rectangle: it
// swaps fg/bg back, restoring the pre-highlight colors. Swapping twice is
// its own inverse, so callers can call it unconditionally after Highlight
// without tracking prior state.
func (b *Batch) ClearHighlight(x, y, w, h int) error {
	return b.Highlight(x, y, w, h)
}

// Flush uploads the smallest contiguous byte range covering every dirty
// write to the GPU in one call, then releases the batch so a new one can
// be obtained. Implementations may upload more than the dirty range;
// this one uploads exactly it, per spec.md §4.7.
func (b *Batch) Flush() {
	if b.dirtyMin >= 0 {
		b.grid.dev.WriteBuffer(b.grid.dynamicBuf, uint64(b.dirtyMin), b.grid.shadow[b.dirtyMin:b.dirtyMax])
	}
	b.dirtyMin, b.dirtyMax = -1, 0
	b.grid.release()
	b.flushed = true
}

func (b *Batch) index(x, y int) (int, error) {
	cols, rows := b.grid.colsWide, b.grid.rowsHigh
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return 0, newError(CategoryBatch, "cell", ErrOutOfBounds)
	}
	return y*cols + x, nil
}

func (b *Batch) markDirty(min, max int) {
	if b.dirtyMin < 0 || min < b.dirtyMin {
		b.dirtyMin = min
	}
	if max > b.dirtyMax {
		b.dirtyMax = max
	}
}
