// Package assets bundles the default content loaded by the graphics context.
package assets

import _ "embed"

// DefaultTextureLabel names the bundled texture in GPU debug labels.
const DefaultTextureLabel = "happy-tree.png"

//go:embed happy-tree.png
var DefaultTexture []byte
