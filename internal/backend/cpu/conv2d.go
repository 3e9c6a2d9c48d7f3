package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/born-ml/gan/internal/parallel"
	"github.com/born-ml/gan/internal/tensor"
)

// Conv2D performs 2D convolution using the im2col algorithm.
//
// Input shape: [batch, in_channels, height, width]
// Kernel shape: [out_channels, in_channels, kernel_h, kernel_w]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Where:
//
//	out_h = (height + 2*padding - kernel_h) / stride + 1
//	out_w = (width + 2*padding - kernel_w) / stride + 1
//
// Algorithm, per sample:
//  1. Im2col: [C_in, H, W] -> columns [C_in*K_h*K_w, H_out*W_out]
//  2. GEMM: kernel [C_out, C_in*K_h*K_w] @ columns -> [C_out, H_out*W_out]
//
// The GEMM result is already in NCHW order, so no rearrangement is needed.
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	require4D("conv2d", "input", input)
	if len(kernel.Shape()) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", len(kernel.Shape())))
	}
	requireFloat32("conv2d", input)
	requireFloat32("conv2d", kernel)
	if stride <= 0 || padding < 0 {
		panic(fmt.Sprintf("conv2d: invalid stride=%d, padding=%d", stride, padding))
	}

	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	N := inputShape[0]     // batch size
	CIn := inputShape[1]   // input channels
	H := inputShape[2]     // input height
	W := inputShape[3]     // input width
	COut := kernelShape[0] // output channels
	KH := kernelShape[2]   // kernel height
	KW := kernelShape[3]   // kernel width

	if CIn != kernelShape[1] {
		panic(fmt.Sprintf("conv2d: input channels %d != kernel channels %d", CIn, kernelShape[1]))
	}

	if H+2*padding < KH || W+2*padding < KW {
		panic(fmt.Sprintf("conv2d: kernel %dx%d larger than padded input %dx%d", KH, KW, H+2*padding, W+2*padding))
	}

	HOut := (H+2*padding-KH)/stride + 1
	WOut := (W+2*padding-KW)/stride + 1
	if HOut <= 0 || WOut <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output dimensions: out_h=%d, out_w=%d (check stride/padding)", HOut, WOut))
	}

	output, err := tensor.NewRaw(tensor.Shape{N, COut, HOut, WOut}, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("conv2d: failed to create output tensor: %v", err))
	}

	inputData := input.AsFloat32()
	outputData := output.AsFloat32()

	colRows := CIn * KH * KW
	colCols := HOut * WOut
	weights := blas32.General{Rows: COut, Cols: colRows, Stride: colRows, Data: kernel.AsFloat32()}

	parallel.For(N, func(n int) {
		col := make([]float32, colRows*colCols)
		im2col(col, inputData[n*CIn*H*W:(n+1)*CIn*H*W], CIn, H, W, KH, KW, HOut, WOut, stride, padding)

		blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
			weights,
			blas32.General{Rows: colRows, Cols: colCols, Stride: colCols, Data: col},
			0,
			blas32.General{Rows: COut, Cols: colCols, Stride: colCols, Data: outputData[n*COut*colCols : (n+1)*COut*colCols]},
		)
	}, cpu.parallel)

	return output
}

// im2col transforms one sample [C, H, W] into a column matrix
// [C*K_h*K_w, H_out*W_out]. Each row corresponds to one kernel weight,
// each column to one output position. Out-of-bounds taps read zero padding.
func im2col(col, src []float32, C, H, W, KH, KW, HOut, WOut, stride, padding int) {
	positions := HOut * WOut
	for c := 0; c < C; c++ {
		plane := src[c*H*W : (c+1)*H*W]
		for kh := 0; kh < KH; kh++ {
			for kw := 0; kw < KW; kw++ {
				row := col[((c*KH+kh)*KW+kw)*positions:][:positions]
				for oh := 0; oh < HOut; oh++ {
					h := oh*stride - padding + kh
					for ow := 0; ow < WOut; ow++ {
						w := ow*stride - padding + kw
						if h >= 0 && h < H && w >= 0 && w < W {
							row[oh*WOut+ow] = plane[h*W+w]
						}
						// else: zero padding, col is freshly allocated
					}
				}
			}
		}
	}
}
