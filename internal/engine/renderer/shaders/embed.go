// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// WireframeVertexShader is the vertex shader for edges and vertex points.
//
//go:embed wireframe.vert
var WireframeVertexShader string

// WireframeFragmentShader is the fragment shader for edges and vertex points.
//
//go:embed wireframe.frag
var WireframeFragmentShader string
