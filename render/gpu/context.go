// Package gpu owns the WebGPU device, surface and the fixed mesh pipeline.
package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/onion/platform"
	"github.com/gekko3d/onion/render/assets"
	"github.com/gekko3d/onion/render/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Logger is the subset of the engine logger the graphics context writes to.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// SurfaceTarget is a window the context can present into.
type SurfaceTarget interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	RequestRedraw()
}

type options struct {
	logger       Logger
	clearColor   wgpu.Color
	presentMode  string
	rows, cols   int
	spacing      float32
	camera       *core.Camera
	textureData  []byte
	textureLabel string
}

type Option func(*options)

func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithClearColor(r, g, b, a float64) Option {
	return func(o *options) { o.clearColor = wgpu.Color{R: r, G: g, B: b, A: a} }
}

// WithPresentMode takes "auto", "fifo", "immediate" or "mailbox".
func WithPresentMode(mode string) Option {
	return func(o *options) { o.presentMode = mode }
}

func WithInstanceGrid(rows, cols int, spacing float32) Option {
	return func(o *options) {
		o.rows, o.cols, o.spacing = rows, cols, spacing
	}
}

// WithCamera replaces the default camera. Its aspect is overwritten with the
// surface aspect at Init.
func WithCamera(c *core.Camera) Option {
	return func(o *options) { o.camera = c }
}

func WithTexture(data []byte, label string) Option {
	return func(o *options) {
		o.textureData, o.textureLabel = data, label
	}
}

func defaultOptions() options {
	return options{
		logger:       nopLogger{},
		clearColor:   wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0},
		presentMode:  "auto",
		rows:         10,
		cols:         10,
		spacing:      1,
		textureData:  assets.DefaultTexture,
		textureLabel: assets.DefaultTextureLabel,
	}
}

func DefaultCamera(aspect float32) *core.Camera {
	return core.NewCamera(
		mgl32.Vec3{0, 1, 2},
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0, 1, 0},
		45, aspect, 0.1, 100,
	)
}

// Context is the graphics context: device, queue, surface, and every GPU
// resource the fixed pipeline draws with. Only the frame loop touches it.
type Context struct {
	logger     Logger
	clearColor wgpu.Color
	target     SurfaceTarget

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	config SwapConfig
	size   platform.Size

	pipeline       *wgpu.RenderPipeline
	vertexBuffer   *wgpu.Buffer
	indexBuffer    *wgpu.Buffer
	numIndices     uint32
	instanceBuffer *wgpu.Buffer
	cameraBuffer   *wgpu.Buffer

	diffuseTexture   *Texture
	diffuseBindGroup *wgpu.BindGroup
	cameraBindGroup  *wgpu.BindGroup
	depthTexture     *Texture

	camera        *core.Camera
	cameraUniform core.CameraUniform
	instances     []core.Instance
}

// NewHeadless returns a context with no device or surface. Resize, Update
// and the camera work as usual; Render reports ErrNotInitialized.
func NewHeadless(size platform.Size, opts ...Option) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newContext(size, o)
}

func newContext(size platform.Size, o options) *Context {
	cam := o.camera
	if cam == nil {
		cam = DefaultCamera(1)
	}
	cam.SetAspectFromSize(size.Width, size.Height)

	uniform := core.NewCameraUniform()
	uniform.UpdateViewProj(cam)

	return &Context{
		logger:        o.logger,
		clearColor:    o.clearColor,
		size:          size,
		config:        SwapConfig{Width: size.Width, Height: size.Height, MaxFrameLatency: 1},
		camera:        cam,
		cameraUniform: uniform,
		instances:     core.GenerateInstances(o.rows, o.cols, o.spacing),
	}
}

// Init acquires an adapter for target's surface, creates the device and
// every pipeline resource, and configures the surface at size. It blocks
// until all of that is done.
func Init(target SurfaceTarget, size platform.Size, opts ...Option) (*Context, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if size.IsZero() {
		return nil, fmt.Errorf("init graphics context: invalid surface size %s", size)
	}

	c := newContext(size, o)
	c.target = target
	if err := c.initDevice(target, o.presentMode); err != nil {
		c.Release()
		return nil, err
	}
	if err := c.initResources(o); err != nil {
		c.Release()
		return nil, err
	}
	return c, nil
}

func (c *Context) initDevice(target SurfaceTarget, presentMode string) error {
	c.instance = wgpu.CreateInstance(nil)
	c.surface = c.instance.CreateSurface(target.SurfaceDescriptor())

	adapter, err := c.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: c.surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	c.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "onion device"})
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	c.device = device
	c.queue = device.GetQueue()

	caps := c.surface.GetCapabilities(adapter)
	c.config, err = newSwapConfig(surfaceCaps{
		Formats:      caps.Formats,
		PresentModes: caps.PresentModes,
		AlphaModes:   caps.AlphaModes,
	}, c.size.Width, c.size.Height, presentMode)
	if err != nil {
		return fmt.Errorf("surface configuration: %w", err)
	}
	c.surface.Configure(c.adapter, c.device, c.config.surfaceConfiguration())
	c.logger.Infof("surface configured: format=%v present=%v size=%s srgb=%t",
		c.config.Format, c.config.PresentMode, c.size, IsSrgb(c.config.Format))
	return nil
}

func (c *Context) initResources(o options) error {
	var err error

	c.diffuseTexture, err = LoadTexture(c.device, c.queue, o.textureData, o.textureLabel)
	if err != nil {
		return err
	}
	texLayout, err := textureBindGroupLayout(c.device)
	if err != nil {
		return fmt.Errorf("texture bind group layout: %w", err)
	}
	defer texLayout.Release()

	c.diffuseBindGroup, err = c.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "diffuse_bind_group",
		Layout: texLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: c.diffuseTexture.View},
			{Binding: 1, Sampler: c.diffuseTexture.Sampler},
		},
	})
	if err != nil {
		return fmt.Errorf("diffuse bind group: %w", err)
	}

	c.cameraBuffer, err = c.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Camera Buffer",
		Contents: uniformBytes(&c.cameraUniform),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("camera buffer: %w", err)
	}
	camLayout, err := cameraBindGroupLayout(c.device)
	if err != nil {
		return fmt.Errorf("camera bind group layout: %w", err)
	}
	defer camLayout.Release()

	c.cameraBindGroup, err = c.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "camera_bind_group",
		Layout: camLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: c.cameraBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("camera bind group: %w", err)
	}

	if len(c.instances) > 0 {
		c.instanceBuffer, err = c.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    "Instance Buffer",
			Contents: wgpu.ToBytes(core.InstancesToRaw(c.instances)),
			Usage:    wgpu.BufferUsageVertex,
		})
		if err != nil {
			return fmt.Errorf("instance buffer: %w", err)
		}
	}

	c.depthTexture, err = NewDepthTexture(c.device, c.config.Width, c.config.Height, "depth_texture")
	if err != nil {
		return err
	}

	c.pipeline, err = newRenderPipeline(c.device, c.config.Format, texLayout, camLayout)
	if err != nil {
		return err
	}

	mesh := core.PentagonMesh()
	c.vertexBuffer, err = c.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Vertex Buffer",
		Contents: wgpu.ToBytes(mesh.Vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return fmt.Errorf("vertex buffer: %w", err)
	}
	c.indexBuffer, err = c.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Index Buffer",
		Contents: wgpu.ToBytes(paddedIndices(mesh.Indices)),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		return fmt.Errorf("index buffer: %w", err)
	}
	c.numIndices = mesh.NumIndices()
	return nil
}

func (c *Context) Size() platform.Size { return c.size }

func (c *Context) Config() SwapConfig { return c.config }

func (c *Context) Camera() *core.Camera { return c.camera }

func (c *Context) CameraUniform() core.CameraUniform { return c.cameraUniform }

func (c *Context) Instances() []core.Instance { return c.instances }

// Resize reconfigures the surface for a new window size. Sizes with a zero
// dimension (minimized windows) are ignored.
func (c *Context) Resize(size platform.Size) {
	if size.IsZero() {
		return
	}
	c.size = size
	c.config.Width = size.Width
	c.config.Height = size.Height

	if c.surface != nil && c.device != nil {
		c.surface.Configure(c.adapter, c.device, c.config.surfaceConfiguration())
		depth, err := NewDepthTexture(c.device, size.Width, size.Height, "depth_texture")
		if err != nil {
			c.logger.Errorf("recreate depth texture: %v", err)
		} else {
			c.depthTexture.Release()
			c.depthTexture = depth
		}
	}
	if c.target != nil {
		c.target.RequestRedraw()
	}
}

// Update refreshes the camera uniform from the current camera and uploads
// it for the next Render.
func (c *Context) Update() error {
	c.cameraUniform.UpdateViewProj(c.camera)
	if c.queue == nil || c.cameraBuffer == nil {
		return nil
	}
	if err := c.queue.WriteBuffer(c.cameraBuffer, 0, uniformBytes(&c.cameraUniform)); err != nil {
		return fmt.Errorf("write camera buffer: %w", err)
	}
	return nil
}

// Render draws one frame. Surface acquisition failures are classified into
// the ErrSurface* and ErrDeviceLost sentinels. Acquire and present happen
// inside this call, so at most one surface texture is held at a time.
func (c *Context) Render() error {
	if c.surface == nil || c.device == nil {
		return ErrNotInitialized
	}
	surfaceTexture, err := c.surface.GetCurrentTexture()
	if err != nil {
		return ClassifySurfaceError(err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("surface view: %w", err)
	}
	defer view.Release()

	encoder, err := c.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: c.clearColor,
			},
		},
	})
	pass.SetPipeline(c.pipeline)
	pass.SetBindGroup(0, c.diffuseBindGroup, nil)
	pass.SetBindGroup(1, c.cameraBindGroup, nil)
	pass.SetVertexBuffer(0, c.vertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(c.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	pass.DrawIndexed(c.numIndices, 1, 0, 0, 0)
	err = pass.End()
	pass.Release()
	if err != nil {
		return fmt.Errorf("render pass: %w", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	defer cmd.Release()

	c.queue.Submit(cmd)
	c.surface.Present()
	return nil
}

// Release frees every GPU resource. The context is unusable afterwards.
func (c *Context) Release() {
	if c.pipeline != nil {
		c.pipeline.Release()
		c.pipeline = nil
	}
	if c.diffuseBindGroup != nil {
		c.diffuseBindGroup.Release()
		c.diffuseBindGroup = nil
	}
	if c.cameraBindGroup != nil {
		c.cameraBindGroup.Release()
		c.cameraBindGroup = nil
	}
	for _, b := range []**wgpu.Buffer{&c.vertexBuffer, &c.indexBuffer, &c.instanceBuffer, &c.cameraBuffer} {
		if *b != nil {
			(*b).Release()
			*b = nil
		}
	}
	c.diffuseTexture.Release()
	c.diffuseTexture = nil
	c.depthTexture.Release()
	c.depthTexture = nil

	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}
	if c.device != nil {
		c.device.Release()
		c.device = nil
	}
	if c.adapter != nil {
		c.adapter.Release()
		c.adapter = nil
	}
	if c.surface != nil {
		c.surface.Release()
		c.surface = nil
	}
	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}
}
