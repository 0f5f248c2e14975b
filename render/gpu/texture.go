package gpu

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const DepthFormat = wgpu.TextureFormatDepth24Plus

// Texture bundles a GPU texture with its default view and sampler.
type Texture struct {
	ID      uuid.UUID
	Label   string
	Width   uint32
	Height  uint32
	Texture *wgpu.Texture
	View    *wgpu.TextureView
	Sampler *wgpu.Sampler
}

// DecodeImage decodes any registered format (png, jpeg, gif, bmp, tiff,
// webp) into tightly packed RGBA.
func DecodeImage(data []byte) (*image.RGBA, error) {
	if len(data) == 0 {
		return nil, errors.New("empty image data")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == rgba.Rect.Dx()*4 && rgba.Rect.Min == (image.Point{}) {
		return rgba, nil
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("decode image: empty %s bounds", format)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}

// LoadTexture decodes encoded image bytes and uploads them as an sRGB
// texture with a clamped, linearly filtered sampler.
func LoadTexture(device *wgpu.Device, queue *wgpu.Queue, data []byte, label string) (*Texture, error) {
	rgba, err := DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", label, err)
	}
	width, height := uint32(rgba.Rect.Dx()), uint32(rgba.Rect.Dy())
	extent := wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1}

	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("texture %q: create: %w", label, err)
	}

	err = queue.WriteTexture(
		tex.AsImageCopy(),
		rgba.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  4 * width,
			RowsPerImage: height,
		},
		&extent,
	)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("texture %q: upload: %w", label, err)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("texture %q: view: %w", label, err)
	}

	sampler, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		view.Release()
		tex.Release()
		return nil, fmt.Errorf("texture %q: sampler: %w", label, err)
	}

	return &Texture{
		ID:      uuid.New(),
		Label:   label,
		Width:   width,
		Height:  height,
		Texture: tex,
		View:    view,
		Sampler: sampler,
	}, nil
}

// NewDepthTexture creates a depth attachment sized to the surface, with a
// comparison sampler so it can also be sampled as a shadow map.
func NewDepthTexture(device *wgpu.Device, width, height uint32, label string) (*Texture, error) {
	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("depth texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("depth texture view: %w", err)
	}
	sampler, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   100,
		Compare:       wgpu.CompareFunctionLessEqual,
		MaxAnisotropy: 1,
	})
	if err != nil {
		view.Release()
		tex.Release()
		return nil, fmt.Errorf("depth texture sampler: %w", err)
	}
	return &Texture{
		ID:      uuid.New(),
		Label:   label,
		Width:   width,
		Height:  height,
		Texture: tex,
		View:    view,
		Sampler: sampler,
	}, nil
}

func (t *Texture) Release() {
	if t == nil {
		return
	}
	if t.Sampler != nil {
		t.Sampler.Release()
		t.Sampler = nil
	}
	if t.View != nil {
		t.View.Release()
		t.View = nil
	}
	if t.Texture != nil {
		t.Texture.Release()
		t.Texture = nil
	}
}
