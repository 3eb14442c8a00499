// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"
)

// Category classifies the phase of the runtime pipeline an Error came
// from, mirroring beamterm-renderer's Initialization/Shader/Resource/
// Data/Callback split, adapted to the three phases this package actually
// has: shader compilation, GPU resource provisioning, and batch mutation.
type Category int

const (
	CategoryShader Category = iota
	CategoryResource
	CategoryBatch
)

func (c Category) String() string {
	switch c {
	case CategoryShader:
		return "shader"
	case CategoryResource:
		return "resource"
	case CategoryBatch:
		return "batch"
	default:
		return "unknown"
	}
}

// Error reports a failure in the runtime pipeline, tagged with the phase
// it occurred in so callers can distinguish "the GPU rejected our pipeline"
// from "the caller misused the Batch API" without string matching.
type Error struct {
	Category Category
	Op       string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gpu: %s: %s: %v", e.Category, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(cat Category, op string, err error) *Error {
	return &Error{Category: cat, Op: op, Err: err}
}

// Sentinel errors for the Batch API (spec.md §4.7, §4.9).
var (
	// ErrOutOfBounds is returned when a Batch write addresses a cell
	// outside the grid. The batch remains valid for further writes.
	ErrOutOfBounds = errors.New("gpu: cell coordinates out of bounds")

	// ErrBatchInProgress is returned by TerminalGrid.Batch when a batch
	// obtained from a previous call has not been released.
	ErrBatchInProgress = errors.New("gpu: a batch is already in progress for this grid")

	// ErrInvalidRegion is returned by Query and Highlight when the
	// requested rectangle does not fit inside the grid.
	ErrInvalidRegion = errors.New("gpu: region does not fit inside the grid")
)
