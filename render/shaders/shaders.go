// Package shaders embeds the WGSL sources used by the render pipeline.
package shaders

import _ "embed"

// Entry points exported by MeshWGSL.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// MeshWGSL draws textured geometry: group 0 holds the diffuse texture and
// sampler, group 1 the camera view-projection uniform.
//
//go:embed shader.wgsl
var MeshWGSL string
