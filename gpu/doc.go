// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu is termgrid's runtime pipeline: it loads a decoded atlas
// into GPU-resident resources and renders a grid of styled cells with
// one instanced draw call per frame.
//
// The pipeline is: LoadAtlas produces a shared, immutable GpuAtlas;
// NewTerminalGrid provisions a grid's static and size-dependent GPU
// resources against it; each frame, Batch collects cell mutations,
// Flush uploads them, and Render issues the draw call.
//
// Device is the injection seam to the underlying GPU API
// (github.com/gogpu/gogpu/gpu). Hosts that already manage their own
// device/queue can implement Device directly instead of using
// NewGogpuDevice.
package gpu
