package nn

import (
	"fmt"

	"github.com/born-ml/gan/internal/tensor"
)

// ConvTranspose2D is a 2D transposed convolution ("deconvolution") layer.
//
// Input shape:  [batch, in_channels, height, width]
// Weight shape: [in_channels, out_channels, kernel_h, kernel_w]
// Bias shape:   [out_channels]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Where:
//
//	out_h = (height - 1)*stride - 2*padding + kernel_h
//	out_w = (width - 1)*stride - 2*padding + kernel_w
//
// With a 4x4 kernel, stride 2 and padding 1 the spatial size doubles.
type ConvTranspose2D[B tensor.Backend] struct {
	inChannels  int
	outChannels int
	kernelSize  [2]int
	stride      int
	padding     int
	useBias     bool

	weight *Parameter[B] // [in_channels, out_channels, kernel_h, kernel_w]
	bias   *Parameter[B] // [out_channels] or nil

	backend B
}

// NewConvTranspose2D creates a transposed convolution with Xavier initialization.
func NewConvTranspose2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padding int,
	useBias bool,
	backend B,
) *ConvTranspose2D[B] {
	validateConvArgs("conv_transpose2d", inChannels, outChannels, kernelH, kernelW, stride, padding)

	weightShape := tensor.Shape{inChannels, outChannels, kernelH, kernelW}
	fanIn := inChannels * kernelH * kernelW
	fanOut := outChannels * kernelH * kernelW
	weight := NewParameter("weight", Xavier(fanIn, fanOut, weightShape, backend))

	var bias *Parameter[B]
	if useBias {
		bias = NewParameter("bias", Zeros(tensor.Shape{outChannels}, backend))
	}

	return &ConvTranspose2D[B]{
		inChannels:  inChannels,
		outChannels: outChannels,
		kernelSize:  [2]int{kernelH, kernelW},
		stride:      stride,
		padding:     padding,
		useBias:     useBias,
		weight:      weight,
		bias:        bias,
		backend:     backend,
	}
}

// Forward performs the forward pass.
func (c *ConvTranspose2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	checkInput("conv_transpose2d", input, c.inChannels)

	output := tensor.New[float32, B](
		c.backend.ConvTranspose2D(input.Raw(), c.weight.Tensor().Raw(), c.stride, c.padding),
		c.backend,
	)

	if c.useBias {
		output = output.Add(c.bias.Tensor().Reshape(1, c.outChannels, 1, 1))
	}

	return output
}

// Parameters returns all trainable parameters.
func (c *ConvTranspose2D[B]) Parameters() []*Parameter[B] {
	if c.useBias {
		return []*Parameter[B]{c.weight, c.bias}
	}
	return []*Parameter[B]{c.weight}
}

// StateDict returns "weight" and, when present, "bias".
func (c *ConvTranspose2D[B]) StateDict() map[string]*tensor.RawTensor {
	return parameterState(c.Parameters())
}

// LoadStateDict loads "weight" and, when present, "bias".
func (c *ConvTranspose2D[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return loadParameters(stateDict, c.Parameters())
}

// String returns a string representation of the layer.
func (c *ConvTranspose2D[B]) String() string {
	return fmt.Sprintf("ConvTranspose2D(in_channels=%d, out_channels=%d, kernel_size=(%d, %d), stride=%d, padding=%d, bias=%v)",
		c.inChannels, c.outChannels,
		c.kernelSize[0], c.kernelSize[1],
		c.stride, c.padding, c.useBias)
}

// OutChannels returns the number of output channels.
func (c *ConvTranspose2D[B]) OutChannels() int {
	return c.outChannels
}

// InChannels returns the number of input channels.
func (c *ConvTranspose2D[B]) InChannels() int {
	return c.inChannels
}

// Weight returns the weight parameter.
func (c *ConvTranspose2D[B]) Weight() *Parameter[B] {
	return c.weight
}

// ComputeOutputSize computes output spatial dimensions for given input size.
func (c *ConvTranspose2D[B]) ComputeOutputSize(inputH, inputW int) [2]int {
	return ConvTranspose2DOutputSize(inputH, inputW, c.kernelSize, c.stride, c.padding)
}

// ConvTranspose2DOutputSize is the transposed convolution output-size formula.
func ConvTranspose2DOutputSize(inputH, inputW int, kernel [2]int, stride, padding int) [2]int {
	outH := (inputH-1)*stride - 2*padding + kernel[0]
	outW := (inputW-1)*stride - 2*padding + kernel[1]
	return [2]int{outH, outW}
}
