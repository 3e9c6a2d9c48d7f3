package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/born-ml/gan/internal/tensor"
)

// toPixel maps [-1, 1] onto [0, 255].
func toPixel(v float32) uint8 {
	p := math.Round(float64(v+1) / 2 * 255)
	return uint8(max(0, min(255, p)))
}

// fromPixel maps a 16-bit color channel onto [-1, 1].
func fromPixel(c uint32) float32 {
	return float32(c)/0xffff*2 - 1
}

// tensorImages converts a [N, 3, H, W] batch in [-1, 1] into RGBA images.
func tensorImages[B tensor.Backend](t *tensor.Tensor[float32, B]) ([]*image.RGBA, error) {
	shape := t.Shape()
	if len(shape) != 4 || shape[1] != 3 {
		return nil, fmt.Errorf("expected [N, 3, H, W] images, got %v", shape)
	}
	n, h, w := shape[0], shape[2], shape[3]
	data := t.Data()
	plane := h * w

	images := make([]*image.RGBA, n)
	for i := range images {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		base := i * 3 * plane
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				off := y*w + x
				img.SetRGBA(x, y, color.RGBA{
					R: toPixel(data[base+off]),
					G: toPixel(data[base+plane+off]),
					B: toPixel(data[base+2*plane+off]),
					A: 0xff,
				})
			}
		}
		images[i] = img
	}
	return images, nil
}

// tileGrid lays images out row-major on a grid with cols columns. All
// images must share the first image's size.
func tileGrid(images []*image.RGBA, cols int) *image.RGBA {
	if len(images) == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	cols = max(1, min(cols, len(images)))
	rows := (len(images) + cols - 1) / cols
	cell := images[0].Bounds().Size()

	grid := image.NewRGBA(image.Rect(0, 0, cols*cell.X, rows*cell.Y))
	for i, img := range images {
		at := image.Pt((i%cols)*cell.X, (i/cols)*cell.Y)
		draw.Draw(grid, image.Rectangle{Min: at, Max: at.Add(cell)}, img, img.Bounds().Min, draw.Src)
	}
	return grid
}

// gridColumns is the column count of the most square grid holding n images.
func gridColumns(n int) int {
	return max(1, int(math.Ceil(math.Sqrt(float64(n)))))
}

// upscale enlarges img by an integer factor with nearest-neighbour sampling.
func upscale(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}
	size := img.Bounds().Size()
	dst := image.NewRGBA(image.Rect(0, 0, size.X*factor, size.Y*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// imageTensor resizes img to size x size with bilinear filtering and returns
// it as a [1, 3, size, size] tensor in [-1, 1].
func imageTensor[B tensor.Backend](img image.Image, size int, backend B) (*tensor.Tensor[float32, B], error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid image size %d", size)
	}

	resized := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Src, nil)

	plane := size * size
	data := make([]float32, 3*plane)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			off := y*size + x
			data[off] = fromPixel(r)
			data[plane+off] = fromPixel(g)
			data[2*plane+off] = fromPixel(b)
		}
	}
	return tensor.FromSlice(data, tensor.Shape{1, 3, size, size}, backend)
}
