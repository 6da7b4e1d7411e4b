// Package shaders holds the built-in GLSL 4.10 program used to draw PBR
// meshes.
//
// The vertex stage reads inPos, inNormal and inTexCoord and expects
// uViewProjection, uModel and uNormalMat. The fragment stage shades with a
// single directional light (uLightDir, uLightColor) seen from uCamPos and
// samples uAlbedo, uNormalMap, uMetallicMap and uRoughnessMap.
package shaders

import _ "embed"

// File names of the two stages, also used when loading sources from disk.
const (
	VertexFile   = "pbr.vert"
	FragmentFile = "pbr.frag"
)

var (
	//go:embed pbr.vert
	Vertex string

	//go:embed pbr.frag
	Fragment string
)
