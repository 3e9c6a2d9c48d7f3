package main

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gan/internal/backend/cpu"
	"github.com/born-ml/gan/internal/tensor"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestPixelMapping(t *testing.T) {
	assert.Equal(t, uint8(0), toPixel(-1))
	assert.Equal(t, uint8(255), toPixel(1))
	assert.Equal(t, uint8(128), toPixel(0))
	assert.Equal(t, uint8(0), toPixel(-3), "clamped")
	assert.Equal(t, uint8(255), toPixel(2), "clamped")

	assert.InDelta(t, -1, fromPixel(0), 1e-6)
	assert.InDelta(t, 1, fromPixel(0xffff), 1e-6)
}

func TestTensorImages(t *testing.T) {
	backend := cpu.New()
	// two 1x2 images: R plane, G plane, B plane per image
	data := []float32{
		-1, 1, 1, -1, 0, 0,
		1, 1, 1, 1, 1, 1,
	}
	x, err := tensor.FromSlice(data, tensor.Shape{2, 3, 1, 2}, backend)
	require.NoError(t, err)

	images, err := tensorImages(x)
	require.NoError(t, err)
	require.Len(t, images, 2)

	assert.Equal(t, image.Rect(0, 0, 2, 1), images[0].Bounds())
	assert.Equal(t, color.RGBA{R: 0, G: 255, B: 128, A: 255}, images[0].RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 128, A: 255}, images[0].RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, images[1].RGBAAt(1, 0))

	gray, err := tensor.FromSlice(make([]float32, 4), tensor.Shape{1, 1, 2, 2}, backend)
	require.NoError(t, err)
	_, err = tensorImages(gray)
	assert.Error(t, err)
}

func TestTileGrid(t *testing.T) {
	red := solid(2, 3, color.RGBA{R: 255, A: 255})
	green := solid(2, 3, color.RGBA{G: 255, A: 255})
	blue := solid(2, 3, color.RGBA{B: 255, A: 255})

	grid := tileGrid([]*image.RGBA{red, green, blue}, 2)

	assert.Equal(t, image.Rect(0, 0, 4, 6), grid.Bounds())
	assert.Equal(t, red.RGBAAt(0, 0), grid.RGBAAt(1, 2))
	assert.Equal(t, green.RGBAAt(0, 0), grid.RGBAAt(2, 0))
	assert.Equal(t, blue.RGBAAt(0, 0), grid.RGBAAt(0, 3))
	assert.Equal(t, color.RGBA{}, grid.RGBAAt(3, 5), "empty cell stays transparent")

	assert.Equal(t, image.Rect(0, 0, 6, 3), tileGrid([]*image.RGBA{red, green, blue}, 10).Bounds())
	assert.True(t, tileGrid(nil, 2).Bounds().Empty())
}

func TestGridColumns(t *testing.T) {
	for n, want := range map[int]int{0: 1, 1: 1, 2: 2, 3: 2, 4: 2, 5: 3, 9: 3, 10: 4} {
		assert.Equal(t, want, gridColumns(n), "n=%d", n)
	}
}

func TestUpscale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 10, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 200, A: 255})

	assert.Same(t, img, upscale(img, 1))

	big := upscale(img, 3)
	assert.Equal(t, image.Rect(0, 0, 6, 3), big.Bounds())
	for y := 0; y < 3; y++ {
		for x := 0; x < 6; x++ {
			want := img.RGBAAt(x/3, 0)
			assert.Equal(t, want, big.RGBAAt(x, y), "(%d, %d)", x, y)
		}
	}
}

func TestImageTensor(t *testing.T) {
	img := solid(40, 30, color.RGBA{R: 255, G: 0, B: 255, A: 255})

	x, err := imageTensor(img, 8, cpu.New())
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 3, 8, 8}, x.Shape())

	data := x.Data()
	for i := 0; i < 64; i++ {
		assert.InDelta(t, 1, data[i], 1e-3)
		assert.InDelta(t, -1, data[64+i], 1e-3)
		assert.InDelta(t, 1, data[128+i], 1e-3)
	}

	_, err = imageTensor(img, 0, cpu.New())
	assert.Error(t, err)
}
