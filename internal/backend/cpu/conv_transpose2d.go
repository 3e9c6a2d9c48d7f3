package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/born-ml/gan/internal/parallel"
	"github.com/born-ml/gan/internal/tensor"
)

// ConvTranspose2D performs 2D transposed convolution (fractionally strided
// convolution) using GEMM followed by col2im.
//
// Input shape: [batch, in_channels, height, width]
// Kernel shape: [in_channels, out_channels, kernel_h, kernel_w]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Where:
//
//	out_h = (height - 1) * stride - 2*padding + kernel_h
//	out_w = (width - 1) * stride - 2*padding + kernel_w
//
// With a 4x4 kernel, stride 2 and padding 1 the spatial size doubles.
//
// Algorithm, per sample:
//  1. GEMM: kernel^T [C_out*K_h*K_w, C_in] @ input [C_in, H*W] -> columns
//  2. Col2im: scatter-add every column entry into its output position
func (cpu *CPUBackend) ConvTranspose2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	require4D("conv_transpose2d", "input", input)
	if len(kernel.Shape()) != 4 {
		panic(fmt.Sprintf("conv_transpose2d: kernel must be 4D [C_in,C_out,K_h,K_w], got %dD", len(kernel.Shape())))
	}
	requireFloat32("conv_transpose2d", input)
	requireFloat32("conv_transpose2d", kernel)
	if stride <= 0 || padding < 0 {
		panic(fmt.Sprintf("conv_transpose2d: invalid stride=%d, padding=%d", stride, padding))
	}

	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	N := inputShape[0]
	CIn := inputShape[1]
	H := inputShape[2]
	W := inputShape[3]
	COut := kernelShape[1]
	KH := kernelShape[2]
	KW := kernelShape[3]

	if CIn != kernelShape[0] {
		panic(fmt.Sprintf("conv_transpose2d: input channels %d != kernel channels %d", CIn, kernelShape[0]))
	}

	HOut := (H-1)*stride - 2*padding + KH
	WOut := (W-1)*stride - 2*padding + KW
	if HOut <= 0 || WOut <= 0 {
		panic(fmt.Sprintf("conv_transpose2d: invalid output dimensions: out_h=%d, out_w=%d (check stride/padding)", HOut, WOut))
	}

	output, err := tensor.NewRaw(tensor.Shape{N, COut, HOut, WOut}, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("conv_transpose2d: failed to create output tensor: %v", err))
	}

	inputData := input.AsFloat32()
	outputData := output.AsFloat32()

	colRows := COut * KH * KW
	positions := H * W
	weights := blas32.General{Rows: CIn, Cols: colRows, Stride: colRows, Data: kernel.AsFloat32()}

	parallel.For(N, func(n int) {
		col := make([]float32, colRows*positions)
		blas32.Gemm(blas.Trans, blas.NoTrans, 1,
			weights,
			blas32.General{Rows: CIn, Cols: positions, Stride: positions, Data: inputData[n*CIn*positions : (n+1)*CIn*positions]},
			0,
			blas32.General{Rows: colRows, Cols: positions, Stride: positions, Data: col},
		)

		col2im(outputData[n*COut*HOut*WOut:(n+1)*COut*HOut*WOut], col, COut, H, W, KH, KW, HOut, WOut, stride, padding)
	}, cpu.parallel)

	return output
}

// col2im accumulates a column matrix [C*K_h*K_w, H*W] into one output
// sample [C, H_out, W_out]. Contributions landing in the padding border are
// dropped.
func col2im(dst, col []float32, C, H, W, KH, KW, HOut, WOut, stride, padding int) {
	positions := H * W
	for c := 0; c < C; c++ {
		plane := dst[c*HOut*WOut : (c+1)*HOut*WOut]
		for kh := 0; kh < KH; kh++ {
			for kw := 0; kw < KW; kw++ {
				row := col[((c*KH+kh)*KW+kw)*positions:][:positions]
				for ih := 0; ih < H; ih++ {
					oh := ih*stride - padding + kh
					if oh < 0 || oh >= HOut {
						continue
					}
					for iw := 0; iw < W; iw++ {
						ow := iw*stride - padding + kw
						if ow < 0 || ow >= WOut {
							continue
						}
						plane[oh*WOut+ow] += row[ih*W+iw]
					}
				}
			}
		}
	}
}
