// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TileVertexShader transforms tile vertices and passes their color through.
//
//go:embed tile.vert
var TileVertexShader string

// TileFragmentShader writes the interpolated vertex color unlit.
//
//go:embed tile.frag
var TileFragmentShader string

// MarkerVertexShader draws actor positions as sized points.
//
//go:embed marker.vert
var MarkerVertexShader string

// MarkerFragmentShader shades actor points as discs.
//
//go:embed marker.frag
var MarkerFragmentShader string

// LineVertexShader transforms overlay line vertices.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader writes the line color.
//
//go:embed line.frag
var LineFragmentShader string
