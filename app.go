// Package onion drives a single-window render loop and routes window events
// to an application made of interchangeable screens.
package onion

import "github.com/gekko3d/onion/platform"

// App is the host application owned by the frame loop. E is the engine
// handed to every call, normally *gpu.Context.
type App[E any] interface {
	Resize(engine E, size platform.Size)
	Input(engine E, ev platform.KeyEvent)
	Update(engine E)
}
