// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"math"
)

// vertexUBOSize and fragmentUBOSize are the std140-aligned sizes of the
// two uniform buffers TerminalGrid maintains. spec.md §4.6 quotes 80 and
// "<=32" bytes for the unaligned field lists; std140 rounds a uniform
// block's size up to a multiple of its largest member's base alignment
// (16 bytes here, from the embedded mat4), which is why both are rounded
// up from the field-only totals (84 and 24 bytes respectively).
const (
	vertexUBOSize   = 96
	fragmentUBOSize = 32
)

var errPositiveDimensions = errors.New("width and height must be positive")

func float32bits(f float32) uint32 { return math.Float32bits(f) }

func putFloat32(dst []byte, f float32) {
	bits := math.Float32bits(f)
	dst[0] = byte(bits)
	dst[1] = byte(bits >> 8)
	dst[2] = byte(bits >> 16)
	dst[3] = byte(bits >> 24)
}

// gridShaderWGSL implements the vertex/fragment contract from spec.md
// §4.8: pixel-snapped instance offset, glyph_id bit extraction, layer/col
// derivation from the low 12 bits, underline/strikethrough line coverage,
// and emoji-color vs. foreground-color branching.
const gridShaderWGSL = `
struct VertexUniforms {
  projection: mat4x4<f32>,
  cell_size: vec2<f32>,
  padding_frac: vec2<f32>,
  num_layers: f32,
};

struct FragmentUniforms {
  padding_frac: vec2<f32>,
  underline_pos: f32,
  underline_thickness: f32,
  strikethrough_pos: f32,
  strikethrough_thickness: f32,
};

@group(0) @binding(0) var<uniform> u_vertex: VertexUniforms;
@group(0) @binding(1) var<uniform> u_fragment: FragmentUniforms;
@group(0) @binding(2) var atlas_tex: texture_2d_array<f32>;
@group(0) @binding(3) var atlas_sampler: sampler;

struct VertexOut {
  @builtin(position) position: vec4<f32>,
  @location(0) tex_coord: vec2<f32>,
  @location(1) @interpolate(flat) packed: vec2<u32>,
};

@vertex
fn vs_main(
  @location(0) a_pos: vec2<f32>,
  @location(1) a_uv: vec2<f32>,
  @location(2) a_instance_pos: vec2<u32>,
  @location(3) a_packed_data: vec2<u32>,
) -> VertexOut {
  let cell_origin = vec2<f32>(a_instance_pos) * u_vertex.cell_size;
  let offset = floor(cell_origin + 0.5);
  var out: VertexOut;
  out.position = u_vertex.projection * vec4<f32>(a_pos * u_vertex.cell_size + offset, 0.0, 1.0);
  out.tex_coord = a_uv;
  out.packed = a_packed_data;
  return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
  let glyph_id = in.packed.x & 0xFFFFu;
  let layer = f32((glyph_id & 0x0FFFu) >> 4u);
  let col = f32(glyph_id & 0x0Fu);
  let underline_bit = f32((glyph_id >> 12u) & 1u);
  let strike_bit = f32((glyph_id >> 13u) & 1u);
  let emoji_bit = (glyph_id >> 11u) & 1u;

  // packed.x: glyph_id in bits 0-15, fg_r in 16-23, fg_g in 24-31.
  // packed.y: fg_b in 0-7, bg_r in 8-15, bg_g in 16-23, bg_b in 24-31.
  let fg = vec3<f32>(
    f32((in.packed.x >> 16u) & 0xFFu),
    f32((in.packed.x >> 24u) & 0xFFu),
    f32(in.packed.y & 0xFFu),
  ) / 255.0;
  let bg = vec3<f32>(
    f32((in.packed.y >> 8u) & 0xFFu),
    f32((in.packed.y >> 16u) & 0xFFu),
    f32((in.packed.y >> 24u) & 0xFFu),
  ) / 255.0;

  let underline_cov = clamp(1.0 - abs(in.tex_coord.y - u_fragment.underline_pos) / u_fragment.underline_thickness, 0.0, 1.0) * underline_bit;
  let strike_cov = clamp(1.0 - abs(in.tex_coord.y - u_fragment.strikethrough_pos) / u_fragment.strikethrough_thickness, 0.0, 1.0) * strike_bit;
  let line_alpha = clamp(underline_cov + strike_cov, 0.0, 1.0);

  let inner = in.tex_coord * (vec2<f32>(1.0) - 2.0 * u_fragment.padding_frac) + u_fragment.padding_frac;
  let uv = vec2<f32>((col + inner.x) / 16.0, inner.y);
  let glyph = textureSample(atlas_tex, atlas_sampler, uv, i32(layer));

  var foreground = fg;
  if (emoji_bit == 1u) {
    foreground = glyph.rgb;
  }
  foreground = mix(foreground, fg, line_alpha);

  let coverage = max(glyph.a, line_alpha);
  let final_rgb = mix(bg, foreground, coverage);
  return vec4<f32>(final_rgb, 1.0);
}
`

// createShaderAndPipeline compiles gridShaderWGSL and asks the device to
// build the fixed pipeline shape around it, plus the sampler the atlas
// texture is read through. Attribute locations are fixed per spec.md
// §4.6: 0=pos, 1=uv, 2=instance_pos, 3=packed_data; the concrete Device
// implementation owns translating that into its backend's vertex buffer
// layout, since termgrid's own Device interface never talks about vertex
// layouts.
func (g *TerminalGrid) createShaderAndPipeline() error {
	shader, err := g.dev.CreateShaderModule(gridShaderWGSL, "termgrid-grid-shader")
	if err != nil {
		return err
	}
	g.shader = shader

	sampler, err := g.dev.CreateSampler("termgrid-atlas-sampler")
	if err != nil {
		return err
	}
	g.sampler = sampler

	pipeline, bindGroup, err := g.dev.CreateGridPipeline(shader, g.vertexUBO, g.fragUBO, g.atlas.texture, sampler)
	if err != nil {
		return err
	}
	g.pipeline = pipeline
	g.bindGroup = bindGroup

	return nil
}
