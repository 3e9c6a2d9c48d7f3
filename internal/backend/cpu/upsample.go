package cpu

import (
	"fmt"

	"github.com/born-ml/gan/internal/parallel"
	"github.com/born-ml/gan/internal/tensor"
)

// Upsample2D scales the spatial dimensions of [N, C, H, W] input by an
// integer factor.
//
// Nearest copies the source pixel at floor(dst / scale). Bilinear uses
// half-pixel centers (align_corners=false): src = (dst + 0.5) / scale - 0.5,
// clamped at the borders.
func (cpu *CPUBackend) Upsample2D(input *tensor.RawTensor, scale int, mode tensor.InterpolationMode) *tensor.RawTensor {
	require4D("upsample2d", "input", input)
	requireFloat32("upsample2d", input)
	if scale <= 0 {
		panic(fmt.Sprintf("upsample2d: invalid scale factor %d", scale))
	}

	shape := input.Shape()
	N, C, H, W := shape[0], shape[1], shape[2], shape[3]
	HOut, WOut := H*scale, W*scale

	output, err := tensor.NewRaw(tensor.Shape{N, C, HOut, WOut}, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("upsample2d: failed to create output tensor: %v", err))
	}

	src := input.AsFloat32()
	dst := output.AsFloat32()

	var kernel func(dst, src []float32)
	switch mode {
	case tensor.Nearest:
		kernel = func(dst, src []float32) { upsampleNearest(dst, src, H, W, scale) }
	case tensor.Bilinear:
		kernel = func(dst, src []float32) { upsampleBilinear(dst, src, H, W, scale) }
	default:
		panic(fmt.Sprintf("upsample2d: unsupported mode %v", mode))
	}

	parallel.ForBatch(N, C, func(n, c int) {
		plane := n*C + c
		kernel(dst[plane*HOut*WOut:(plane+1)*HOut*WOut], src[plane*H*W:(plane+1)*H*W])
	}, cpu.parallel)

	return output
}

func upsampleNearest(dst, src []float32, H, W, scale int) {
	WOut := W * scale
	for oh := 0; oh < H*scale; oh++ {
		srcRow := src[(oh/scale)*W:][:W]
		dstRow := dst[oh*WOut:][:WOut]
		for ow := range dstRow {
			dstRow[ow] = srcRow[ow/scale]
		}
	}
}

func upsampleBilinear(dst, src []float32, H, W, scale int) {
	HOut, WOut := H*scale, W*scale
	for oh := 0; oh < HOut; oh++ {
		h0, h1, hl := bilinearTaps(oh, H, scale)
		for ow := 0; ow < WOut; ow++ {
			w0, w1, wl := bilinearTaps(ow, W, scale)
			top := src[h0*W+w0]*(1-wl) + src[h0*W+w1]*wl
			bottom := src[h1*W+w0]*(1-wl) + src[h1*W+w1]*wl
			dst[oh*WOut+ow] = top*(1-hl) + bottom*hl
		}
	}
}

// bilinearTaps returns the two source indices and the weight of the second
// one for output coordinate o.
func bilinearTaps(o, size, scale int) (i0, i1 int, lambda float32) {
	src := (float32(o)+0.5)/float32(scale) - 0.5
	if src < 0 {
		src = 0
	}
	i0 = int(src)
	if i0 > size-1 {
		i0 = size - 1
	}
	i1 = min(i0+1, size-1)
	return i0, i1, src - float32(i0)
}
