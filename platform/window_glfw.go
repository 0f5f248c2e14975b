package platform

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a single GLFW window whose callbacks feed an event Queue.
// All methods must be called from the thread that created it.
type Window struct {
	windowGlfw *glfw.Window
	title      string
	queue      Queue
}

// NewWindow initializes GLFW and opens a resizable window without a client
// API, so that a WebGPU surface can be attached to it.
func NewWindow(width, height int, title string) (*Window, error) {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "Onion"
	}

	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	w := &Window{
		windowGlfw: win,
		title:      title,
	}
	w.installCallbacks()
	return w, nil
}

func (w *Window) installCallbacks() {
	w.windowGlfw.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		ev := KeyEvent{
			Key:      FromGlfw(key),
			Scancode: scancode,
			State:    Released,
		}
		switch action {
		case glfw.Press:
			ev.State = Pressed
		case glfw.Repeat:
			ev.State = Pressed
			ev.Repeat = true
		}
		w.queue.Push(KeyboardEvent(ev))
	})

	// Framebuffer size, not window size: the surface is configured in pixels.
	w.windowGlfw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.queue.Push(ResizedEvent(clampSize(width, height)))
	})

	w.windowGlfw.SetContentScaleCallback(func(_ *glfw.Window, x, y float32) {
		w.queue.Push(Event{Kind: EventScaleFactorChanged, Size: w.Size()})
	})

	w.windowGlfw.SetCloseCallback(func(_ *glfw.Window) {
		w.queue.Push(Event{Kind: EventCloseRequested})
	})
}

// PollEvents pumps the GLFW event queue and returns everything that arrived
// since the previous call, in arrival order.
func (w *Window) PollEvents() []Event {
	glfw.PollEvents()
	return w.queue.Drain()
}

func (w *Window) RequestRedraw() {
	w.queue.RequestRedraw()
}

// Size returns the current framebuffer size in pixels.
func (w *Window) Size() Size {
	return clampSize(w.windowGlfw.GetFramebufferSize())
}

func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.windowGlfw)
}

func (w *Window) Title() string {
	return w.title
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	if w.windowGlfw == nil {
		return
	}
	w.windowGlfw.Destroy()
	w.windowGlfw = nil
	glfw.Terminate()
}

func clampSize(width, height int) Size {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Size{Width: uint32(width), Height: uint32(height)}
}
