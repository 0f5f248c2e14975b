package gpu

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/gekko3d/onion/render/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
	}
	return img
}

func TestDecodeImage_PNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, checker(4, 3)))

	rgba, err := DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 4, rgba.Rect.Dx())
	assert.Equal(t, 3, rgba.Rect.Dy())
	assert.Len(t, rgba.Pix, 4*3*4)
	assert.Equal(t, []uint8{255, 0, 0, 255}, rgba.Pix[0:4])
	assert.Equal(t, []uint8{0, 0, 255, 255}, rgba.Pix[4:8])
}

func TestDecodeImage_BMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, checker(2, 2)))

	rgba, err := DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), rgba.Rect)
}

func TestDecodeImage_DefaultTexture(t *testing.T) {
	rgba, err := DecodeImage(assets.DefaultTexture)
	require.NoError(t, err)
	assert.Equal(t, rgba.Rect.Dx()*4, rgba.Stride)
}

func TestDecodeImage_Errors(t *testing.T) {
	_, err := DecodeImage(nil)
	assert.Error(t, err)

	_, err = DecodeImage([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestTexture_ReleaseNil(t *testing.T) {
	var tex *Texture
	tex.Release()
	(&Texture{}).Release()
}
