package gpu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// Surface acquisition failures. Render wraps backend errors so callers can
// switch on them with errors.Is.
var (
	ErrSurfaceLost        = errors.New("surface lost")
	ErrSurfaceOutOfMemory = errors.New("surface out of memory")
	ErrSurfaceOutdated    = errors.New("surface outdated")
	ErrSurfaceTimeout     = errors.New("surface timeout")
	// ErrDeviceLost is fatal: reconfiguring the surface cannot bring the
	// device back.
	ErrDeviceLost = errors.New("device lost")

	ErrNotInitialized = errors.New("graphics context not initialized")
)

// Checked in order. "device-lost" must win over "lost".
var surfaceErrors = []struct {
	needle string
	err    error
}{
	{"device-lost", ErrDeviceLost},
	{"device lost", ErrDeviceLost},
	{"out-of-memory", ErrSurfaceOutOfMemory},
	{"outofmemory", ErrSurfaceOutOfMemory},
	{"out of memory", ErrSurfaceOutOfMemory},
	{"lost", ErrSurfaceLost},
	{"outdated", ErrSurfaceOutdated},
	{"timeout", ErrSurfaceTimeout},
	{"timed out", ErrSurfaceTimeout},
}

// ClassifySurfaceError maps a raw backend error onto one of the surface
// sentinels. The binding reports the acquire status only through the error
// text ("...: surface status out-of-memory"), so matching is done on the
// message. Errors that match nothing are returned unchanged.
func ClassifySurfaceError(err error) error {
	if err == nil {
		return nil
	}
	for _, s := range surfaceErrors {
		if errors.Is(err, s.err) {
			return err
		}
	}
	msg := strings.ToLower(err.Error())
	for _, s := range surfaceErrors {
		if strings.Contains(msg, s.needle) {
			return fmt.Errorf("%w: %v", s.err, err)
		}
	}
	return err
}

func IsSrgb(format wgpu.TextureFormat) bool {
	switch format {
	case wgpu.TextureFormatRGBA8UnormSrgb,
		wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	}
	return false
}

// ChooseSurfaceFormat picks the first sRGB format the surface supports,
// falling back to the first format listed.
func ChooseSurfaceFormat(formats []wgpu.TextureFormat) (wgpu.TextureFormat, error) {
	if len(formats) == 0 {
		return wgpu.TextureFormatUndefined, errors.New("surface reports no supported formats")
	}
	for _, f := range formats {
		if IsSrgb(f) {
			return f, nil
		}
	}
	return formats[0], nil
}

var presentModeNames = map[string]wgpu.PresentMode{
	"fifo":      wgpu.PresentModeFifo,
	"immediate": wgpu.PresentModeImmediate,
	"mailbox":   wgpu.PresentModeMailbox,
}

// ParsePresentMode resolves a config name. "auto" and "" mean "whatever the
// surface lists first" and report ok with a zero mode.
func ParsePresentMode(name string) (mode wgpu.PresentMode, auto bool, ok bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		return 0, true, true
	}
	mode, ok = presentModeNames[name]
	return mode, false, ok
}

// ChoosePresentMode returns the preferred mode when the surface supports it,
// otherwise the first supported mode. Fifo is always available per the
// WebGPU contract, so it is the answer for an empty list.
func ChoosePresentMode(supported []wgpu.PresentMode, preferred string) wgpu.PresentMode {
	if len(supported) == 0 {
		return wgpu.PresentModeFifo
	}
	mode, auto, ok := ParsePresentMode(preferred)
	if !ok || auto {
		return supported[0]
	}
	for _, m := range supported {
		if m == mode {
			return m
		}
	}
	return supported[0]
}

// SwapConfig is the negotiated contract between surface and device.
type SwapConfig struct {
	Format      wgpu.TextureFormat
	PresentMode wgpu.PresentMode
	AlphaMode   wgpu.CompositeAlphaMode
	Width       uint32
	Height      uint32
	// MaxFrameLatency has no field in the binding's SurfaceConfiguration.
	// Render holds at most one surface texture, acquired and presented in
	// the same call.
	MaxFrameLatency uint32
}

func (s SwapConfig) surfaceConfiguration() *wgpu.SurfaceConfiguration {
	return &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      s.Format,
		Width:       s.Width,
		Height:      s.Height,
		PresentMode: s.PresentMode,
		AlphaMode:   s.AlphaMode,
	}
}

// surfaceCaps mirrors the parts of wgpu.SurfaceCapabilities the swap
// configuration depends on.
type surfaceCaps struct {
	Formats      []wgpu.TextureFormat
	PresentModes []wgpu.PresentMode
	AlphaModes   []wgpu.CompositeAlphaMode
}

func newSwapConfig(caps surfaceCaps, width, height uint32, presentMode string) (SwapConfig, error) {
	format, err := ChooseSurfaceFormat(caps.Formats)
	if err != nil {
		return SwapConfig{}, err
	}
	alpha := wgpu.CompositeAlphaModeAuto
	if len(caps.AlphaModes) > 0 {
		alpha = caps.AlphaModes[0]
	}
	return SwapConfig{
		Format:          format,
		PresentMode:     ChoosePresentMode(caps.PresentModes, presentMode),
		AlphaMode:       alpha,
		Width:           width,
		Height:          height,
		MaxFrameLatency: 1,
	}, nil
}
